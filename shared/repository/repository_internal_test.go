package repository

import (
	"context"
	"testing"
	"time"

	otelMocks "bms/infras/otel/mocks"
	"bms/shared/dto"
	"bms/shared/model"

	"github.com/stretchr/testify/assert"
)

type accountRow struct {
	ID       string `db:"id"`
	Password string `db:"password"`
	Email    string `column:"email"       db:"employee_email" table:"employees"`
	model.Metadata
}

func (accountRow) GetJoinQuery() string {
	return "JOIN employees ON employees.id = accounts.id"
}

type bookingRow struct {
	ID        string    `db:"id"`
	StartDate time.Time `db:"start_date"`
	Ignored   string
}

func TestNewRepositoryColumns(t *testing.T) {
	repo := NewRepository[accountRow]("account", "accounts", "id", nil, otelMocks.NewOtel())

	assert.Equal(t, []string{"id", "password", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Equal(t, "JOIN employees ON employees.id = accounts.id", repo.join)

	selectQuery := repo.getSelectQuery(context.Background())
	assert.Contains(t, selectQuery, "accounts.id")
	assert.Contains(t, selectQuery, "employees.email AS employee_email")

	assert.Equal(t, "accounts.id, accounts.password", repo.getSelectQuery(context.Background(), "id", "password"))
}

func TestNewRepositoryWithoutJoin(t *testing.T) {
	repo := NewRepository[bookingRow]("booking", "bookings", "id", nil, otelMocks.NewOtel())

	assert.Equal(t, []string{"id", "start_date"}, repo.InsertColumns)
	assert.Empty(t, repo.join)
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[bookingRow]("booking", "bookings", "id", nil, otelMocks.NewOtel())

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	filter := dto.FilterGroup{}
	filter.Add(
		dto.Filter{Table: "bookings", Field: "room_id", Operator: dto.FilterOperatorEq, Value: "r-1"},
		dto.Filter{Table: "bookings", Field: "status", Operator: dto.FilterOperatorIn, Value: []int{0, 1}},
	)

	where, args = repo.BuildWhereClause(context.Background(), filter)
	assert.Equal(t, " WHERE (bookings.room_id = :room_id AND bookings.status IN (:status_0, :status_1) ) ", where)
	assert.Equal(t, map[string]any{"room_id": "r-1", "status_0": 0, "status_1": 1}, args)
}

func TestRequiredFilter(t *testing.T) {
	repo := NewRepository[bookingRow]("booking", "bookings", "id", nil, otelMocks.NewOtel())
	ctx := context.Background()

	_, err := repo.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	err = repo.update(ctx, nil, map[string]any{"remarks": "x"}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	err = repo.delete(ctx, nil, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}
