package paging_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/pharmos/gateway/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	id      string
	name    string
	created time.Time
}

func (r rec) RecordID() string { return r.id }

func (r rec) SortValue(field string) any {
	switch field {
	case "name":
		return r.name
	case "createdAt":
		return r.created
	default:
		return nil
	}
}

func makeRecs(n int) []rec {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]rec, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rec{
			id:      fmt.Sprintf("rec_%03d", i),
			name:    fmt.Sprintf("item %03d", i),
			created: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestNormalize_Bounds(t *testing.T) {
	p := paging.Params{Page: 0, Limit: 0}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, "createdAt", p.SortBy)
	assert.Equal(t, paging.DESC, p.SortOrder)

	p = paging.Params{Page: -3, Limit: 500, SortOrder: "sideways"}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, paging.DESC, p.SortOrder)

	p = paging.Params{Page: 2, Limit: 10, SortBy: "name", SortOrder: paging.ASC}.Normalize()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, paging.ASC, p.SortOrder)
}

func TestApply_WindowsAndMeta(t *testing.T) {
	items := makeRecs(25)

	page1 := paging.Apply(items, nil, paging.Params{Page: 1, Limit: 10, SortOrder: paging.ASC})
	require.Len(t, page1.Data, 10)
	assert.Equal(t, 25, page1.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.True(t, page1.Pagination.HasNextPage)
	assert.False(t, page1.Pagination.HasPreviousPage)
	assert.Equal(t, "rec_000", page1.Data[0].RecordID())

	page3 := paging.Apply(items, nil, paging.Params{Page: 3, Limit: 10, SortOrder: paging.ASC})
	require.Len(t, page3.Data, 5)
	assert.False(t, page3.Pagination.HasNextPage)
	assert.True(t, page3.Pagination.HasPreviousPage)

	beyond := paging.Apply(items, nil, paging.Params{Page: 9, Limit: 10})
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 25, beyond.Pagination.Total)
	assert.False(t, beyond.Pagination.HasNextPage)
}

func TestApply_FilterPrecedesPagination(t *testing.T) {
	items := makeRecs(25)
	evens := func(r rec) bool {
		var i int
		fmt.Sscanf(r.id, "rec_%03d", &i)
		return i%2 == 0
	}

	page := paging.Apply(items, evens, paging.Params{Page: 1, Limit: 100})
	assert.Equal(t, 13, page.Pagination.Total,
		"meta must count the filtered set, not the input")
	assert.Len(t, page.Data, 13)
}

func TestApply_SortDescWithIDTiebreak(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []rec{
		{id: "b", created: ts},
		{id: "a", created: ts},
		{id: "c", created: ts.Add(time.Hour)},
	}

	page := paging.Apply(items, nil, paging.Params{Page: 1, Limit: 10, SortOrder: paging.DESC})
	require.Len(t, page.Data, 3)
	assert.Equal(t, "c", page.Data[0].RecordID())
	// Equal sort keys fall back to ascending id regardless of direction.
	assert.Equal(t, "a", page.Data[1].RecordID())
	assert.Equal(t, "b", page.Data[2].RecordID())
}

func TestApply_UnknownSortKeyFallsBackToID(t *testing.T) {
	items := makeRecs(3)
	page := paging.Apply(items, nil, paging.Params{Page: 1, Limit: 10, SortBy: "bogus", SortOrder: paging.DESC})
	require.Len(t, page.Data, 3)
	assert.Equal(t, "rec_000", page.Data[0].RecordID())
}
