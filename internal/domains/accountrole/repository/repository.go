package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bms/infras/otel"
	"bms/infras/postgres"
	"bms/internal/domains/accountrole/model"
	roleModel "bms/internal/domains/role/model"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/logger"
	gRepo "bms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type AccountRole interface {
	Insert(ctx context.Context, model model.AccountRole) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.AccountRole) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AccountRole, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AccountRole, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetRoleNames(ctx context.Context, accountID string) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AccountRole]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) AccountRole {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AccountRole](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetRoleNames lists the names of every role assigned to accountID.
func (repo *repositoryImpl) GetRoleNames(ctx context.Context, accountID string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".account_role.GetRoleNames")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT %[1]s.%[2]s FROM %[3]s JOIN %[1]s ON %[1]s.%[4]s = %[3]s.%[5]s WHERE %[3]s.%[6]s = :account_id ORDER BY %[1]s.%[2]s",
		roleModel.TableName, roleModel.FieldName, model.TableName, roleModel.FieldID, model.FieldRoleID, model.FieldAccountID,
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	names := []string{}

	if err = prepare.SelectContext(ctx, &names, map[string]any{"account_id": accountID}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get role names: %w", err)
	}

	return names, nil
}
