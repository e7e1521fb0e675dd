package service

import (
	"context"
	"fmt"

	"bms/config"
	"bms/infras/otel"
	"bms/internal/domains/education/model"
	"bms/internal/domains/education/model/dto"
	"bms/internal/domains/education/repository"
	employeeModel "bms/internal/domains/employee/model"
	employeeRepo "bms/internal/domains/employee/repository"
	universityModel "bms/internal/domains/university/model"
	universityRepo "bms/internal/domains/university/repository"
	"bms/shared"
	"bms/shared/cache"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetEducation    = "education:get"
	cacheGetAllEducation = "education:gets"
	cacheCountEducation  = "education:count"
)

var (
	ErrEducationNotFound  = failure.NotFound("education not found")
	ErrEmployeeNotFound   = failure.NotFound("employee not found")
	ErrUniversityNotFound = failure.NotFound("university not found")
)

type Education interface {
	Create(ctx context.Context, req dto.CreateEducationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEducationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EducationResponse, error)
	Update(ctx context.Context, req dto.UpdateEducationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Education
	employeeRepo   employeeRepo.Employee
	universityRepo universityRepo.University
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Education,
	employeeRepo employeeRepo.Employee,
	universityRepo universityRepo.University,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Education {
	return &serviceImpl{
		repo:           repo,
		employeeRepo:   employeeRepo,
		universityRepo: universityRepo,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEducationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.employeeRepo.Exist(ctx, shared.FilterByID(req.EmployeeID, employeeModel.FieldID, employeeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check employee existence")

		return fmt.Errorf("failed to check employee existence: %w", err)
	}

	if !exist {
		return ErrEmployeeNotFound
	}

	if err = s.checkUniversity(ctx, req.UniversityID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create education")

		return fmt.Errorf("failed to create education: %w", failure.FromDatabase(err, "education already exists for this employee"))
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEducationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEducation, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for educations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count educations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get educations")

		return res, fmt.Errorf("failed to get educations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save educations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEducation, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count educations")

		return res, fmt.Errorf("failed to count educations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save education count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EducationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetEducation, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for education")

		return res, nil
	}

	mod, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get education")

		return res, fmt.Errorf("failed to get education: %w", err)
	}

	if mod.ID == constant.Empty {
		return res, ErrEducationNotFound
	}

	res.FromModel(mod)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save education to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEducationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check education existence")

		return fmt.Errorf("failed to check education existence: %w", err)
	}

	if !exist {
		return ErrEducationNotFound
	}

	if err = s.checkUniversity(ctx, req.UniversityID); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update education")

		return fmt.Errorf("failed to update education: %w", failure.FromDatabase(err, "education already exists for this employee"))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check education existence")

		return fmt.Errorf("failed to check education existence: %w", err)
	}

	if !exist {
		return ErrEducationNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete education")

		return fmt.Errorf("failed to delete education: %w", failure.FromDatabase(err, "education is still referenced"))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) checkUniversity(ctx context.Context, id string) error {
	if id == constant.Empty {
		return nil
	}

	exist, err := s.universityRepo.Exist(ctx, shared.FilterByID(id, universityModel.FieldID, universityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check university existence")

		return fmt.Errorf("failed to check university existence: %w", err)
	}

	if !exist {
		return ErrUniversityNotFound
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEducation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete education cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEducation)
		shared.InvalidateCaches(c, s.cache, cacheCountEducation)
	}()
}
