package accountrole

import (
	"net/http"

	"bms/infras/otel"
	"bms/internal/domains/accountrole/model"
	"bms/internal/domains/accountrole/model/dto"
	"bms/internal/domains/accountrole/service"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/validator"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.AccountRole
	otel    otel.Otel
}

func New(service service.AccountRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/account-roles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccountRole)
		routerGroup.Get("/", handler.GetAccountRoles)
		routerGroup.Get("/{id}", handler.GetAccountRoleByID)
		routerGroup.Patch("/{id}", handler.UpdateAccountRole)
		routerGroup.Delete("/{id}", handler.DeleteAccountRole)
	})
}

// CreateAccountRole handles the creation of a new account role.
// @Summary Create a new account role
// @Tags AccountRole
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRoleRequest true "Create Account role Request"
// @Success 201 {object} response.Message "Account role created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/account-roles [post]
// @Security BearerAuth
func (handler *Handler) CreateAccountRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccountRole")
	defer scope.End()

	req := dto.CreateAccountRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create account role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Account role created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Account role created successfully")
}

// GetAccountRoles retrieves account roles with paging, sorting and filters.
// @Summary Get all account roles
// @Tags AccountRole
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param account_id query string false "Filter by account id"
// @Param role_id query string false "Filter by role id"
// @Success 200 {object} response.Data[dto.GetAccountRolesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/account-roles [get]
// @Security BearerAuth
func (handler *Handler) GetAccountRoles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccountRoles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldAccountID, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldAccountID, gDto.FilterOperatorEq, query.Get("account_id"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldRoleID, gDto.FilterOperatorEq, query.Get("role_id"))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get account roles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAccountRoleByID retrieves an account role by its ID.
// @Summary Get an account role by ID
// @Tags AccountRole
// @Produce json
// @Param id path string true "Account role ID"
// @Success 200 {object} response.Data[dto.AccountRoleResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/account-roles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccountRoleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccountRoleByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get account role by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateAccountRole patches an existing account role.
// @Summary Update an account role by ID
// @Tags AccountRole
// @Accept json
// @Produce json
// @Param id path string true "Account role ID"
// @Param request body dto.UpdateAccountRoleRequest true "Update Account role Request"
// @Success 200 {object} response.Message "Account role updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/account-roles/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAccountRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccountRole")
	defer scope.End()

	req := dto.UpdateAccountRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update account role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Account role updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Account role updated successfully")
}

// DeleteAccountRole removes an account role by its ID.
// @Summary Delete an account role by ID
// @Tags AccountRole
// @Produce json
// @Param id path string true "Account role ID"
// @Success 200 {object} response.Message "Account role deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/account-roles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccountRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccountRole")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete account role")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Account role deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Account role deleted successfully")
}
