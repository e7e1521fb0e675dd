package account

import (
	"net/http"

	"bms/infras/otel"
	"bms/internal/domains/account/model"
	"bms/internal/domains/account/model/dto"
	"bms/internal/domains/account/service"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/validator"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Account
	otel    otel.Otel
}

func New(service service.Account, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/accounts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAccount)
		routerGroup.Get("/", handler.GetAccounts)
		routerGroup.Get("/{id}", handler.GetAccountByID)
		routerGroup.Patch("/{id}", handler.UpdateAccount)
		routerGroup.Delete("/{id}", handler.DeleteAccount)
	})
}

// CreateAccount handles the creation of a new account.
// @Summary Create a new account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Create Account Request"
// @Success 201 {object} response.Message "Account created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [post]
// @Security BearerAuth
func (handler *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAccount")
	defer scope.End()

	req := dto.CreateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create account")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Account created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Account created successfully")
}

// GetAccounts retrieves accounts with paging, sorting and filters.
// @Summary Get all accounts
// @Tags Account
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAccountsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts [get]
// @Security BearerAuth
func (handler *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldID, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get accounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAccountByID retrieves an account by its ID.
// @Summary Get an account by ID
// @Tags Account
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Data[dto.AccountResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAccountByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAccountByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get account by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateAccount patches an existing account.
// @Summary Update an account by ID
// @Tags Account
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Message "Account updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAccount")
	defer scope.End()

	req := dto.UpdateAccountRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update account")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Account updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Account updated successfully")
}

// DeleteAccount removes an account by its ID.
// @Summary Delete an account by ID
// @Tags Account
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Message "Account deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/accounts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAccount")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete account")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Account deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Account deleted successfully")
}
