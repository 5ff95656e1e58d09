// Package paging provides the uniform pagination applied to every
// list-returning query: normalize parameters, filter, sort, then window.
package paging

import (
	"sort"
	"time"
)

// Order is the sort direction flag.
type Order string

const (
	ASC  Order = "ASC"
	DESC Order = "DESC"
)

// Defaults and bounds for normalized parameters.
const (
	DefaultPage   = 1
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultSortBy = "createdAt"
)

// Params are raw pagination parameters as supplied by a client.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder Order
}

// Normalize clamps parameters into their valid ranges and fills defaults.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortOrder != ASC {
		p.SortOrder = DESC
	}
	return p
}

// Meta describes the page that was produced relative to the filtered total.
type Meta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Page is the uniform shape every list query returns.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Sortable is implemented by records that can answer sort-key lookups.
type Sortable interface {
	RecordID() string
	SortValue(field string) any
}

// Apply filters items with match (nil matches all), sorts by the requested
// key with an ascending id tiebreak, and returns the requested window.
// Filtering precedes pagination so Meta reflects the filtered set.
func Apply[T Sortable](items []T, match func(T) bool, p Params) Page[T] {
	p = p.Normalize()

	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if match == nil || match(it) {
			filtered = append(filtered, it)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		c := compareValues(filtered[i].SortValue(p.SortBy), filtered[j].SortValue(p.SortBy))
		if c == 0 {
			c = compareStrings(filtered[i].RecordID(), filtered[j].RecordID())
			return c < 0
		}
		if p.SortOrder == DESC {
			return c > 0
		}
		return c < 0
	})

	total := len(filtered)
	totalPages := (total + p.Limit - 1) / p.Limit
	offset := (p.Page - 1) * p.Limit

	var window []T
	switch {
	case offset >= total:
		window = []T{}
	case offset+p.Limit > total:
		window = filtered[offset:]
	default:
		window = filtered[offset : offset+p.Limit]
	}

	return Page[T]{
		Data: window,
		Pagination: Meta{
			Page:            p.Page,
			Limit:           p.Limit,
			Total:           total,
			TotalPages:      totalPages,
			HasNextPage:     offset+p.Limit < total,
			HasPreviousPage: p.Page > 1,
		},
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareValues orders the sort-key types records produce: strings, ints,
// floats and timestamps. Mismatched or unknown types compare equal, which
// leaves ordering to the id tiebreak.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return compareStrings(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	}
	return 0
}
