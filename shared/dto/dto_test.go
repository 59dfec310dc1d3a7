package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "Confirmed", Table: "reservations"},
			wantWhere: "reservations.status = :status",
			wantArgs:  map[string]any{"status": "Confirmed"},
		},
		{
			name:      "strict less with arg name",
			filter:    dto.Filter{ArgName: "stay_end", Field: "check_in", Operator: dto.FilterOperatorLess, Value: checkIn},
			wantWhere: "check_in < :stay_end",
			wantArgs:  map[string]any{"stay_end": checkIn},
		},
		{
			name:      "greater",
			filter:    dto.Filter{Field: "capacity", Operator: dto.FilterOperatorGreater, Value: 2},
			wantWhere: "capacity > :capacity",
			wantArgs:  map[string]any{"capacity": 2},
		},
		{
			name:      "like wraps value",
			filter:    dto.Filter{Field: "type", Operator: dto.FilterOperatorLike, Value: "suite"},
			wantWhere: "LOWER(type) LIKE LOWER(:type)",
			wantArgs:  map[string]any{"type": "%suite%"},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"Confirmed", "Checked In"}},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "Confirmed", "status_1": "Checked In"},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "empty not in matches everything",
			filter:    dto.Filter{Field: "id", Operator: dto.FilterOperatorNotIn, Value: []string{}},
			wantWhere: "TRUE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "room_id", Operator: dto.FilterIsNull, Table: "reservations"},
			wantWhere: "reservations.room_id IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "plain query",
			filter:    dto.Filter{Operator: dto.FilterPlainQuery, Value: "check_out > check_in"},
			wantWhere: "(check_out > check_in)",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Operator: "between", Value: 1},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("nested groups default to AND", func(t *testing.T) {
		statuses := dto.FilterGroup{Operator: dto.FilterGroupOperatorOr}
		statuses.Add(
			dto.Filter{ArgName: "s1", Field: "status", Operator: dto.FilterOperatorEq, Value: "Confirmed"},
			dto.Filter{ArgName: "s2", Field: "status", Operator: dto.FilterOperatorEq, Value: "Checked In"},
		)

		group := dto.FilterGroup{}
		group.Add(dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: "r-101"}, statuses)

		where, args := group.GetWhereClause()

		assert.Equal(t, "(room_id = :room_id AND (status = :s1 OR status = :s2))", where)
		assert.Equal(t, map[string]any{"room_id": "r-101", "s1": "Confirmed", "s2": "Checked In"}, args)
	})

	t.Run("empty clauses and foreign values are skipped", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
		group.Add("not a filter", dto.Filter{Field: "id", Operator: "unknown"}, dto.FilterGroup{})

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})
}

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(24 * time.Hour)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "front-desk",
		ModifiedBy: "manager",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "front-desk", metadata.CreatedBy)
	assert.Equal(t, "manager", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name     string
		query    string
		defaults bool
		want     dto.QueryParams
	}{
		{
			name:  "all parameters",
			query: "page=2&limit=20&sort_by=price&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "price", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults when empty",
			defaults: true,
			want:     defaults,
		},
		{
			name: "no defaults when empty",
			want: dto.QueryParams{},
		},
		{
			name:     "invalid and negative values fall back",
			query:    "page=-1&limit=abc&sort_dir=sideways",
			defaults: true,
			want:     defaults,
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			defaults: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: dto.MaxLimit},
		},
		{
			name:     "partial parameters",
			query:    "page=3&sort_by=number",
			defaults: true,
			want:     dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaults)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_AllowSortBy(t *testing.T) {
	t.Run("unknown column falls back", func(t *testing.T) {
		params := dto.QueryParams{SortBy: "price; DROP TABLE rooms"}
		params.AllowSortBy("number", "number", "price")

		assert.Equal(t, "number", params.SortBy)
		assert.Equal(t, dto.SortDirDesc, params.SortDir)
	})

	t.Run("allowed column and direction kept", func(t *testing.T) {
		params := dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc}
		params.AllowSortBy("number", "number", "price")

		assert.Equal(t, "price", params.SortBy)
		assert.Equal(t, dto.SortDirAsc, params.SortDir)
	})
}

func TestCreatedBy(t *testing.T) {
	at := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

	metadata := model.CreatedBy("front-desk", at)

	assert.Equal(t, model.Metadata{CreatedAt: at, ModifiedAt: at, CreatedBy: "front-desk", ModifiedBy: "front-desk"}, metadata)
}
