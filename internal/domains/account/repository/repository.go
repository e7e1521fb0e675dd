package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bms/infras/otel"
	"bms/infras/postgres"
	"bms/internal/domains/account/model"
	employeeModel "bms/internal/domains/employee/model"
	"bms/shared/constant"
	gDto "bms/shared/dto"
	"bms/shared/logger"
	gRepo "bms/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Account interface {
	Insert(ctx context.Context, model model.Account) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Account) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Account, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Account, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetByEmail(ctx context.Context, email string) (model.Account, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Account]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Account {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Account](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var accountColumns = []string{
	model.FieldID, model.FieldPassword, model.FieldOTP, model.FieldIsUsed, model.FieldExpiredTime,
	constant.FieldCreatedAt, constant.FieldModifiedAt, constant.FieldCreatedBy, constant.FieldModifiedBy,
}

// GetByEmail finds the account of the employee registered with email. A missing account
// is returned as the zero value.
func (repo *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".account.GetByEmail")
	defer scope.End()

	selected := make([]string, len(accountColumns))
	for i, col := range accountColumns {
		selected[i] = model.TableName + "." + col
	}

	query := fmt.Sprintf("SELECT %s FROM %s JOIN %s ON %s.%s = %s.%s WHERE %s.%s = :email LIMIT 1",
		strings.Join(selected, ", "),
		model.TableName,
		employeeModel.TableName,
		employeeModel.TableName, employeeModel.FieldID, model.TableName, model.FieldID,
		employeeModel.TableName, employeeModel.FieldEmail,
	)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var account model.Account

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return account, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &account, map[string]any{"email": email}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account, nil
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return account, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}
