package university

import (
	"net/http"

	"bms/infras/otel"
	"bms/internal/domains/university/model"
	"bms/internal/domains/university/model/dto"
	"bms/internal/domains/university/service"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/validator"
	"bms/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.University
	otel    otel.Otel
}

func New(service service.University, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/universities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUniversity)
		routerGroup.Get("/", handler.GetUniversities)
		routerGroup.Get("/{id}", handler.GetUniversityByID)
		routerGroup.Patch("/{id}", handler.UpdateUniversity)
		routerGroup.Delete("/{id}", handler.DeleteUniversity)
	})
}

// CreateUniversity handles the creation of a new university.
// @Summary Create a new university
// @Tags University
// @Accept json
// @Produce json
// @Param request body dto.CreateUniversityRequest true "Create University Request"
// @Success 201 {object} response.Message "University created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/universities [post]
// @Security BearerAuth
func (handler *Handler) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUniversity")
	defer scope.End()

	req := dto.CreateUniversityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create university")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("University created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "University created successfully")
}

// GetUniversities retrieves universities with paging, sorting and filters.
// @Summary Get all universities
// @Tags University
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by code"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetUniversitiesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/universities [get]
// @Security BearerAuth
func (handler *Handler) GetUniversities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUniversities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true, model.FieldCode, model.FieldName, constant.FieldCreatedAt)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldCode, gDto.FilterOperatorEq, query.Get("code"))
	filterGroup.AddIfNotEmpty(model.TableName, model.FieldName, gDto.FilterOperatorLike, query.Get("name"))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get universities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUniversityByID retrieves a university by its ID.
// @Summary Get a university by ID
// @Tags University
// @Produce json
// @Param id path string true "University ID"
// @Success 200 {object} response.Data[dto.UniversityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/universities/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUniversityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUniversityByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get university by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateUniversity patches an existing university.
// @Summary Update a university by ID
// @Tags University
// @Accept json
// @Produce json
// @Param id path string true "University ID"
// @Param request body dto.UpdateUniversityRequest true "Update University Request"
// @Success 200 {object} response.Message "University updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/universities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUniversity")
	defer scope.End()

	req := dto.UpdateUniversityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update university")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("University updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "University updated successfully")
}

// DeleteUniversity removes a university by its ID.
// @Summary Delete a university by ID
// @Tags University
// @Produce json
// @Param id path string true "University ID"
// @Success 200 {object} response.Message "University deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/universities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUniversity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUniversity")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete university")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("University deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "University deleted successfully")
}
