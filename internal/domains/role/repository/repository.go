package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bms/infras/otel"
	"bms/infras/postgres"
	"bms/internal/domains/role/model"
	gDto "bms/shared/dto"
	gRepo "bms/shared/repository"
)

type Role interface {
	Insert(ctx context.Context, model model.Role) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Role, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Role, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Role]
}

func New(db *postgres.Connection, otel otel.Otel) Role {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Role](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
