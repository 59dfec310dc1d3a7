package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "zero", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "TRUE", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "approved", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = shared.ConvertStringToInt("four")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		Number   *string  `db:"number"`
		Price    *float64 `db:"price"`
		Capacity *int     `db:"capacity"`
		Type     string   `db:"type"`
		CheckIn  *string  `json:"check_in"`
		Internal string   `db:"-"`
	}

	tests := []struct {
		name     string
		input    updateRoom
		expected map[string]any
	}{
		{
			name:     "empty request only stamps the modifier",
			input:    updateRoom{},
			expected: map[string]any{},
		},
		{
			name:  "pointers are dereferenced",
			input: updateRoom{Number: strPtr("101"), Price: floatPtr(2000), Capacity: intPtr(2)},
			expected: map[string]any{
				"number":   "101",
				"price":    2000.0,
				"capacity": 2,
			},
		},
		{
			name:     "plain values are kept",
			input:    updateRoom{Type: "Suite"},
			expected: map[string]any{"type": "Suite"},
		},
		{
			name:     "fields without a column are skipped",
			input:    updateRoom{CheckIn: strPtr("2024-06-01"), Internal: "x"},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.TransformFields(tt.input, "staff-1")

			assert.Equal(t, "staff-1", got[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, got[constant.FieldModifiedAt])

			delete(got, constant.FieldModifiedBy)
			delete(got, constant.FieldModifiedAt)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilterByID(t *testing.T) {
	got := shared.FilterByID("r1", "id", "rooms")

	require.Len(t, got.Filters, 1)
	assert.Equal(t, dto.Filter{Field: "id", Value: "r1", Operator: dto.FilterOperatorEq, Table: "rooms"}, got.Filters[0])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
	assert.Equal(t, "room:get:r1", shared.BuildCacheKey("room:get", "r1"))
	assert.Equal(t, "room:get:h1:r1", shared.BuildCacheKey("room:get", "h1", "r1"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	available := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "Available", Operator: dto.FilterOperatorEq}}}
	booked := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "Booked", Operator: dto.FilterOperatorEq}}}

	first := shared.BuildCacheKeyWithQuery("room:gets", params, available)

	assert.True(t, strings.HasPrefix(first, "room:gets:"))
	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, available))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, booked))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, available))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), "room:gets"+constant.Asterix).Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), cache, "room:gets")
}

func TestCached(t *testing.T) {
	t.Run("hit skips the loader", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), "room:count", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*int) = 12

				return nil
			})

		got, err := shared.Cached(context.Background(), cache, "room:count", 60, func(context.Context) (int, error) {
			t.Fatal("loader must not run on a hit")

			return 0, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 12, got)
	})

	t.Run("miss loads and saves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		saved := make(chan struct{})

		cache.EXPECT().Get(gomock.Any(), "room:count", gomock.Any()).Return(errors.New("miss"))
		cache.EXPECT().Save(gomock.Any(), "room:count", 7, 60).
			DoAndReturn(func(context.Context, string, any, int) error {
				close(saved)

				return nil
			})

		got, err := shared.Cached(context.Background(), cache, "room:count", 60, func(context.Context) (int, error) {
			return 7, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 7, got)

		select {
		case <-saved:
		case <-time.After(time.Second):
			t.Fatal("value was not written back")
		}
	})

	t.Run("loader error is returned and nothing is saved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), "room:count", gomock.Any()).Return(errors.New("miss"))

		_, err := shared.Cached(context.Background(), cache, "room:count", 60, func(context.Context) (int, error) {
			return 0, errors.New("db down")
		})

		assert.EqualError(t, err, "db down")
	})
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, shared.ParseDate(nil))
	assert.Nil(t, shared.ParseDate(strPtr("")))
	assert.Nil(t, shared.ParseDate(strPtr("01/06/2024")))

	got := shared.ParseDate(strPtr("2024-06-01"))
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *got)

	assert.Equal(t, "2024-06-01", *shared.FormatDate(got))
	assert.Nil(t, shared.FormatDate(nil))
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}
