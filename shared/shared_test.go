package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bms/shared"
	cacheMocks "bms/shared/cache/mocks"
	"bms/shared/constant"
	"bms/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input    string
		expected *bool
	}{
		{input: "", expected: nil},
		{input: "true", expected: boolPtr(true)},
		{input: "0", expected: boolPtr(false)},
		{input: "F", expected: boolPtr(false)},
		{input: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 12 ")
	assert.NoError(t, err)
	assert.Equal(t, 12, value)

	_, err = shared.ConvertStringToInt("twelve")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 0, limit: 10, expected: 1},
		{total: 10, limit: 0, expected: 1},
		{total: 10, limit: 10, expected: 1},
		{total: 11, limit: 10, expected: 2},
		{total: 95, limit: 20, expected: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		Name     string `db:"name"`
		Floor    *int   `db:"floor"`
		Capacity *int   `db:"capacity"`
		Active   *bool  `db:"active"`
		Note     string
		Skipped  string `db:"-"`
	}

	floor := 0
	active := false

	result := shared.TransformFields(updateRoom{
		Name:    "Anggrek",
		Floor:   &floor,
		Active:  &active,
		Note:    "not persisted",
		Skipped: "not persisted",
	}, "admin-1")

	assert.Equal(t, "Anggrek", result["name"])
	assert.Equal(t, 0, result["floor"])
	assert.Equal(t, false, result["active"])
	assert.NotContains(t, result, "capacity")
	assert.NotContains(t, result, "-")
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 5)
}

func TestFilterByID(t *testing.T) {
	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"},
		},
	}

	assert.Equal(t, expected, shared.FilterByID("room-1", "id", "rooms"))
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	filter.AddIfNotEmpty("rooms", "name", dto.FilterOperatorLike, "Mawar")

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	otherPage := shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, otherPage)
	assert.True(t, strings.HasPrefix(first, "room:gets:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func boolPtr(b bool) *bool {
	return &b
}
