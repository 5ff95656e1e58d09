package graphql

import (
	"testing"
	"time"

	"github.com/pharmos/gateway/internal/paging"
	"github.com/pharmos/gateway/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePagination(t *testing.T) {
	p := decodePagination(map[string]interface{}{
		"page":      3,
		"limit":     50,
		"sortBy":    "name",
		"sortOrder": "ASC",
	})
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, paging.ASC, p.SortOrder)

	// Absent argument decodes to the zero params; Normalize fills defaults.
	p = decodePagination(nil).Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
}

func TestDecodeMoleculeFilter(t *testing.T) {
	assert.Nil(t, decodeMoleculeFilter(nil))

	after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := decodeMoleculeFilter(map[string]interface{}{
		"nameContains": "asp",
		"projectId":    "proj_cardio",
		"createdAfter": after,
	})
	require.NotNil(t, f)
	require.NotNil(t, f.NameContains)
	assert.Equal(t, "asp", *f.NameContains)
	require.NotNil(t, f.ProjectID)
	assert.Equal(t, "proj_cardio", *f.ProjectID)
	require.NotNil(t, f.CreatedAfter)
	assert.True(t, f.CreatedAfter.Equal(after))
	assert.Nil(t, f.Name)
	assert.Nil(t, f.SMILES)
}

func TestDecodeProjectFilter_TypedEnums(t *testing.T) {
	f := decodeProjectFilter(map[string]interface{}{
		"status":   store.ProjectActive,
		"type":     store.ProjectResearch,
		"memberId": "user_chen",
	})
	require.NotNil(t, f)
	require.NotNil(t, f.Status)
	assert.Equal(t, store.ProjectActive, *f.Status)
	require.NotNil(t, f.Type)
	assert.Equal(t, store.ProjectResearch, *f.Type)
	require.NotNil(t, f.MemberID)
	assert.Equal(t, "user_chen", *f.MemberID)
}

func TestDecodeTrialFilter(t *testing.T) {
	f := decodeTrialFilter(map[string]interface{}{
		"phase":         store.Phase2,
		"minEnrollment": 100,
	})
	require.NotNil(t, f)
	require.NotNil(t, f.Phase)
	assert.Equal(t, store.Phase2, *f.Phase)
	require.NotNil(t, f.MinEnrollment)
	assert.Equal(t, 100, *f.MinEnrollment)
	assert.Nil(t, f.Status)
}

func TestDecodePredictionFilter_FloatCoercion(t *testing.T) {
	f := decodePredictionFilter(map[string]interface{}{"minConfidence": 0.7})
	require.NotNil(t, f)
	require.NotNil(t, f.MinConfidence)
	assert.Equal(t, 0.7, *f.MinConfidence)

	// Whole-number literals arrive as int.
	f = decodePredictionFilter(map[string]interface{}{"minConfidence": 1})
	require.NotNil(t, f)
	require.NotNil(t, f.MinConfidence)
	assert.Equal(t, 1.0, *f.MinConfidence)
}

func TestStringSlice(t *testing.T) {
	m := map[string]interface{}{
		"ids":   []interface{}{"a", "b"},
		"mixed": []interface{}{"a", 7},
	}
	assert.Equal(t, []string{"a", "b"}, stringSlice(m, "ids"))
	assert.Equal(t, []string{"a"}, stringSlice(m, "mixed"))
	assert.Nil(t, stringSlice(m, "absent"))
}
