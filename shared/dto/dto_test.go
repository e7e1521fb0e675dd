package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"bms/shared/constant"
	"bms/shared/dto"
	"bms/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	sortable := []string{"name", "floor", "created_at"}

	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:     "no parameters without defaults",
			query:    "",
			expected: dto.QueryParams{},
		},
		{
			name:           "no parameters with defaults",
			query:          "",
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:           "invalid numbers fall back",
			query:          "page=-1&limit=abc",
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:     "unknown sort column is ignored",
			query:    "sort_by=name%3BDROP%20TABLE%20rooms&sort_dir=DESC",
			expected: dto.QueryParams{SortDir: dto.SortDirDesc},
		},
		{
			name:     "invalid sort direction is ignored",
			query:    "sort_by=floor&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "floor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest, sortable...)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   dto.Filter
		where    string
		argument map[string]any
	}{
		{
			name:     "equal with table",
			filter:   dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: "r-1", Table: "bookings"},
			where:    "bookings.room_id = :room_id",
			argument: map[string]any{"room_id": "r-1"},
		},
		{
			name:     "strictly less with argument name",
			filter:   dto.Filter{ArgName: "window_end", Field: "start_date", Operator: dto.FilterOperatorLess, Value: 10},
			where:    "start_date < :window_end",
			argument: map[string]any{"window_end": 10},
		},
		{
			name:     "strictly greater",
			filter:   dto.Filter{ArgName: "window_start", Field: "end_date", Operator: dto.FilterOperatorGreater, Value: 5},
			where:    "end_date > :window_start",
			argument: map[string]any{"window_start": 5},
		},
		{
			name:     "in with slice",
			filter:   dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []int{0, 1}},
			where:    "status IN (:status_0, :status_1) ",
			argument: map[string]any{"status_0": 0, "status_1": 1},
		},
		{
			name:     "like",
			filter:   dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "Mawar"},
			where:    "LOWER(name) LIKE LOWER(:name) ",
			argument: map[string]any{"name": "%Mawar%"},
		},
		{
			name:     "is null",
			filter:   dto.Filter{Field: "image", Operator: dto.FilterIsNull},
			where:    "image IS NULL",
			argument: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.argument, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	group.AddIfNotEmpty("rooms", "name", dto.FilterOperatorLike, "").
		AddIfNotEmpty("rooms", "name", dto.FilterOperatorLike, "Melati").
		Add(dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{ArgName: "floor_a", Field: "floor", Operator: dto.FilterOperatorEq, Value: 1},
				dto.Filter{ArgName: "floor_b", Field: "floor", Operator: dto.FilterOperatorEq, Value: 2},
			},
		})

	where, args := group.GetWhereClause()

	assert.Equal(t, "(LOWER(rooms.name) LIKE LOWER(:name)  AND (floor = :floor_a OR floor = :floor_b))", where)
	assert.Equal(t, map[string]any{"name": "%Melati%", "floor_a": 1, "floor_b": 2}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
