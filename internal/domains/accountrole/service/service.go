package service

import (
	"context"
	"fmt"

	"bms/config"
	"bms/infras/otel"
	accountModel "bms/internal/domains/account/model"
	accountRepo "bms/internal/domains/account/repository"
	"bms/internal/domains/accountrole/model"
	"bms/internal/domains/accountrole/model/dto"
	"bms/internal/domains/accountrole/repository"
	roleModel "bms/internal/domains/role/model"
	roleRepo "bms/internal/domains/role/repository"
	"bms/shared"
	"bms/shared/cache"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAccountRole    = "accountrole:get"
	cacheGetAllAccountRole = "accountrole:gets"
	cacheCountAccountRole  = "accountrole:count"
)

var (
	ErrAccountRoleNotFound = failure.NotFound("account role not found")
	ErrAccountNotFound     = failure.NotFound("account not found")
	ErrRoleNotFound        = failure.NotFound("role not found")
)

type AccountRole interface {
	Create(ctx context.Context, req dto.CreateAccountRoleRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAccountRolesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AccountRoleResponse, error)
	Update(ctx context.Context, req dto.UpdateAccountRoleRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.AccountRole
	accountRepo accountRepo.Account
	roleRepo    roleRepo.Role
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.AccountRole,
	accountRepo accountRepo.Account,
	roleRepo roleRepo.Role,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) AccountRole {
	return &serviceImpl{
		repo:        repo,
		accountRepo: accountRepo,
		roleRepo:    roleRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAccountRoleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.accountRepo.Exist(ctx, shared.FilterByID(req.AccountID, accountModel.FieldID, accountModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check account existence")

		return fmt.Errorf("failed to check account existence: %w", err)
	}

	if !exist {
		return ErrAccountNotFound
	}

	if err = s.checkRole(ctx, req.RoleID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create account role")

		return fmt.Errorf("failed to create account role: %w", failure.FromDatabase(err, "role is already assigned to this account"))
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAccountRolesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAccountRole, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for account roles")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count account roles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get account roles")

		return res, fmt.Errorf("failed to get account roles: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account roles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAccountRole, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count account roles")

		return res, fmt.Errorf("failed to count account roles: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account role count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AccountRoleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAccountRole, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for account role")

		return res, nil
	}

	mod, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get account role")

		return res, fmt.Errorf("failed to get account role: %w", err)
	}

	if mod.ID == constant.Empty {
		return res, ErrAccountRoleNotFound
	}

	res.FromModel(mod)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save account role to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAccountRoleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check account role existence")

		return fmt.Errorf("failed to check account role existence: %w", err)
	}

	if !exist {
		return ErrAccountRoleNotFound
	}

	if err = s.checkRole(ctx, req.RoleID); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update account role")

		return fmt.Errorf("failed to update account role: %w", failure.FromDatabase(err, "role is already assigned to this account"))
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
		log.Error().Err(err).Msg("failed to check account role existence")

		return fmt.Errorf("failed to check account role existence: %w", err)
	}

	if !exist {
		return ErrAccountRoleNotFound
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete account role")

		return fmt.Errorf("failed to delete account role: %w", failure.FromDatabase(err, "account role is still referenced"))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) checkRole(ctx context.Context, id string) error {
	exist, err := s.roleRepo.Exist(ctx, shared.FilterByID(id, roleModel.FieldID, roleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check role existence")

		return fmt.Errorf("failed to check role existence: %w", err)
	}

	if !exist {
		return ErrRoleNotFound
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAccountRole, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete account role cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAccountRole)
		shared.InvalidateCaches(c, s.cache, cacheCountAccountRole)
	}()
}
