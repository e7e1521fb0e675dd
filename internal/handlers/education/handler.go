package education

import (
	"net/http"

	"bms/infras/otel"
	"bms/internal/domains/education/model"
	"bms/internal/domains/education/model/dto"
	"bms/internal/domains/education/service"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/validator"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Education
	otel    otel.Otel
}

func New(service service.Education, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/educations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEducation)
		routerGroup.Get("/", handler.GetEducations)
		routerGroup.Get("/{id}", handler.GetEducationByID)
		routerGroup.Patch("/{id}", handler.UpdateEducation)
		routerGroup.Delete("/{id}", handler.DeleteEducation)
	})
}

// CreateEducation handles the creation of a new education.
// @Summary Create a new education
// @Tags Education
// @Accept json
// @Produce json
// @Param request body dto.CreateEducationRequest true "Create Education Request"
// @Success 201 {object} response.Message "Education created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/educations [post]
// @Security BearerAuth
func (handler *Handler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEducation")
	defer scope.End()

	req := dto.CreateEducationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create education")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Education created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Education created successfully")
}

// GetEducations retrieves educations with paging, sorting and filters.
// @Summary Get all educations
// @Tags Education
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param major query string false "Filter by major"
// @Param degree query string false "Filter by degree"
// @Param university_id query string false "Filter by university id"
// @Success 200 {object} response.Data[dto.GetEducationsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/educations [get]
// @Security BearerAuth
func (handler *Handler) GetEducations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEducations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldMajor, model.FieldGPA, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldMajor, gDto.FilterOperatorLike, query.Get("major"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldDegree, gDto.FilterOperatorEq, query.Get("degree"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldUniversityID, gDto.FilterOperatorEq, query.Get("university_id"))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get educations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetEducationByID retrieves an education by its ID.
// @Summary Get an education by ID
// @Tags Education
// @Produce json
// @Param id path string true "Education ID"
// @Success 200 {object} response.Data[dto.EducationResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/educations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEducationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEducationByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get education by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateEducation patches an existing education.
// @Summary Update an education by ID
// @Tags Education
// @Accept json
// @Produce json
// @Param id path string true "Education ID"
// @Param request body dto.UpdateEducationRequest true "Update Education Request"
// @Success 200 {object} response.Message "Education updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/educations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEducation")
	defer scope.End()

	req := dto.UpdateEducationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update education")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Education updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Education updated successfully")
}

// DeleteEducation removes an education by its ID.
// @Summary Delete an education by ID
// @Tags Education
// @Produce json
// @Param id path string true "Education ID"
// @Success 200 {object} response.Message "Education deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/educations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEducation")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete education")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Education deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Education deleted successfully")
}
