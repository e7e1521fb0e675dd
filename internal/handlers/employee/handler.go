package employee

import (
	"net/http"

	"bms/infras/otel"
	"bms/internal/domains/employee/model"
	"bms/internal/domains/employee/model/dto"
	"bms/internal/domains/employee/service"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/validator"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Employee
	otel    otel.Otel
}

func New(service service.Employee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/employees", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEmployee)
		routerGroup.Get("/", handler.GetEmployees)
		routerGroup.Get("/{id}", handler.GetEmployeeByID)
		routerGroup.Patch("/{id}", handler.UpdateEmployee)
		routerGroup.Delete("/{id}", handler.DeleteEmployee)
	})
}

// CreateEmployee handles the creation of a new employee.
// @Summary Create a new employee
// @Tags Employee
// @Accept json
// @Produce json
// @Param request body dto.CreateEmployeeRequest true "Create Employee Request"
// @Success 201 {object} response.Message "Employee created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees [post]
// @Security BearerAuth
func (handler *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEmployee")
	defer scope.End()

	req := dto.CreateEmployeeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create employee")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Employee created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Employee created successfully")
}

// GetEmployees retrieves employees with paging, sorting and filters.
// @Summary Get all employees
// @Tags Employee
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param nik query string false "Filter by nik"
// @Param first_name query string false "Filter by first name"
// @Param last_name query string false "Filter by last name"
// @Param email query string false "Filter by email"
// @Param gender query string false "Filter by gender"
// @Success 200 {object} response.Data[dto.GetEmployeesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees [get]
// @Security BearerAuth
func (handler *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployees")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldNIK, model.FieldFirstName, model.FieldHiringDate, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldNIK, gDto.FilterOperatorEq, query.Get("nik"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldFirstName, gDto.FilterOperatorLike, query.Get("first_name"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldLastName, gDto.FilterOperatorLike, query.Get("last_name"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldEmail, gDto.FilterOperatorLike, query.Get("email"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldGender, gDto.FilterOperatorEq, query.Get("gender"))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employees")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetEmployeeByID retrieves an employee by its ID.
// @Summary Get an employee by ID
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Data[dto.EmployeeResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEmployeeByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmployeeByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get employee by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateEmployee patches an existing employee.
// @Summary Update an employee by ID
// @Tags Employee
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body dto.UpdateEmployeeRequest true "Update Employee Request"
// @Success 200 {object} response.Message "Employee updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEmployee")
	defer scope.End()

	req := dto.UpdateEmployeeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update employee")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Employee updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Employee updated successfully")
}

// DeleteEmployee removes an employee by its ID.
// @Summary Delete an employee by ID
// @Tags Employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Message "Employee deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/employees/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEmployee")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete employee")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Employee deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Employee deleted successfully")
}
