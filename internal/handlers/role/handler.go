package role

import (
	"net/http"

	"bms/infras/otel"
	"bms/internal/domains/role/model"
	"bms/internal/domains/role/model/dto"
	"bms/internal/domains/role/service"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/validator"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Role
	otel    otel.Otel
}

func New(service service.Role, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/roles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRole)
		routerGroup.Get("/", handler.GetRoles)
		routerGroup.Get("/{id}", handler.GetRoleByID)
		routerGroup.Patch("/{id}", handler.UpdateRole)
		routerGroup.Delete("/{id}", handler.DeleteRole)
	})
}

// CreateRole handles the creation of a new role.
// @Summary Create a new role
// @Tags Role
// @Accept json
// @Produce json
// @Param request body dto.CreateRoleRequest true "Create Role Request"
// @Success 201 {object} response.Message "Role created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles [post]
// @Security BearerAuth
func (handler *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRole")
	defer scope.End()

	req := dto.CreateRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Role created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Role created successfully")
}

// GetRoles retrieves roles with paging, sorting and filters.
// @Summary Get all roles
// @Tags Role
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetRolesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles [get]
// @Security BearerAuth
func (handler *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldName, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldName, gDto.FilterOperatorLike, query.Get("name"))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get roles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoleByID retrieves a role by its ID.
// @Summary Get a role by ID
// @Tags Role
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} response.Data[dto.RoleResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoleByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get role by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateRole patches an existing role.
// @Summary Update a role by ID
// @Tags Role
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body dto.UpdateRoleRequest true "Update Role Request"
// @Success 200 {object} response.Message "Role updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRole")
	defer scope.End()

	req := dto.UpdateRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Role updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Role updated successfully")
}

// DeleteRole removes a role by its ID.
// @Summary Delete a role by ID
// @Tags Role
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} response.Message "Role deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/roles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRole")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Role deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Role deleted successfully")
}
