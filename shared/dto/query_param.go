package dto

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// MaxLimit caps page size so a listing cannot pull a whole table.
const MaxLimit = 100

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads paging and sorting from the query string. Malformed or
// non-positive numbers are ignored. With withDefaults the first page of
// DefaultValueLimit rows is assumed when the request names none.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positive(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positive(values, constant.RequestParamLimit); ok {
		q.Limit = min(limit, MaxLimit)
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positive(values url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// AllowSortBy replaces SortBy with fallback unless it names one of allowed.
// The column reaches ORDER BY verbatim.
func (q *QueryParams) AllowSortBy(fallback string, allowed ...string) {
	if !slices.Contains(allowed, q.SortBy) {
		q.SortBy = fallback
	}

	if q.SortDir == "" {
		q.SortDir = SortDirDesc
	}
}
