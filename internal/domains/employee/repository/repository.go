package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bms/infras/otel"
	"bms/infras/postgres"
	"bms/internal/domains/employee/model"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/logger"
	gRepo "bms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Employee interface {
	Insert(ctx context.Context, model model.Employee) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Employee) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Employee, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Employee, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	LastNIK(ctx context.Context) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Employee]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Employee {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Employee](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// LastNIK returns the highest NIK issued so far, or an empty string for an empty table.
func (repo *repositoryImpl) LastNIK(ctx context.Context) (string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".employee.LastNIK")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY LENGTH(%s) DESC, %s DESC LIMIT 1",
		model.FieldNIK, model.TableName, model.FieldNIK, model.FieldNIK)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var nik string

	if err := repo.db.Read.GetContext(ctx, &nik, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return "", fmt.Errorf("failed to get last nik: %w", err)
	}

	return nik, nil
}
