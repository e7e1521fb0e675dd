package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bms/infras/otel"
	"bms/infras/postgres"
	"bms/internal/domains/education/model"
	gDto "bms/shared/dto"
	gRepo "bms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Education interface {
	Insert(ctx context.Context, model model.Education) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Education) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Education, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Education, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Education]
}

func New(db *postgres.Connection, otel otel.Otel) Education {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Education](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
