package service

import (
	"context"
	"fmt"

	"bms/config"
	"bms/infras/otel"
	"bms/internal/domains/account/model"
	"bms/internal/domains/account/model/dto"
	"bms/internal/domains/account/repository"
	employeeModel "bms/internal/domains/employee/model"
	employeeRepo "bms/internal/domains/employee/repository"
	"bms/shared"
	"bms/shared/cache"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"
	"bms/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAccount    = "account:get"
	cacheGetAllAccount = "account:gets"
	cacheCountAccount  = "account:count"
)

var (
	ErrAccountNotFound  = failure.NotFound("account not found")
	ErrEmployeeNotFound = failure.NotFound("employee not found")
)

type Account interface {
	Create(ctx context.Context, req dto.CreateAccountRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccountsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AccountResponse, error)
	Update(ctx context.Context, req dto.UpdateAccountRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Account
	employeeRepo employeeRepo.Employee
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Account, employeeRepo employeeRepo.Employee, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Account {
	return &serviceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAccountRequest) (err error) {
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

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create account")

		return fmt.Errorf("failed to create account: %w", failure.FromDatabase(err, "account already exists for this employee"))
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAccount, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for accounts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count accounts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get accounts")

		return res, fmt.Errorf("failed to get accounts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save accounts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAccount, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count accounts")

		return res, fmt.Errorf("failed to count accounts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AccountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAccount, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for account")

		return res, nil
	}

	mod, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account")

		return res, fmt.Errorf("failed to get account: %w", err)
	}

	if mod.ID == constant.Empty {
		return res, ErrAccountNotFound
	}

	res.FromModel(mod)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAccountRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check account existence")

		return fmt.Errorf("failed to check account existence: %w", err)
	}

	if !exist {
		return ErrAccountNotFound
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	updatedFields := shared.TransformFields(req, user)
	updatedFields[model.FieldPassword] = hashedPassword

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update account")

		return fmt.Errorf("failed to update account: %w", failure.FromDatabase(err, "account already exists for this employee"))
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
		log.Error().Err(err).Msg("failed to check account existence")

		return fmt.Errorf("failed to check account existence: %w", err)
	}

	if !exist {
		return ErrAccountNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete account")

		return fmt.Errorf("failed to delete account: %w", failure.FromDatabase(err, "account is still referenced"))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAccount, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete account cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAccount)
		shared.InvalidateCaches(c, s.cache, cacheCountAccount)
	}()
}
