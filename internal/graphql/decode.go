package graphql

import (
	"time"

	"github.com/pharmos/gateway/internal/paging"
	"github.com/pharmos/gateway/pkg/store"
)

// Argument decoding helpers. The engine hands input objects to resolvers as
// map[string]interface{}; these turn them into the typed structures the
// stores and the paging module expect.

func argMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func strField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}

func optInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func optFloat(m map[string]interface{}, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optTime(m map[string]interface{}, key string) *time.Time {
	if v, ok := m[key].(time.Time); ok {
		return &v
	}
	return nil
}

func stringSlice(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func decodePagination(arg interface{}) paging.Params {
	var p paging.Params
	m := argMap(arg)
	if m == nil {
		return p
	}
	if v, ok := m["page"].(int); ok {
		p.Page = v
	}
	if v, ok := m["limit"].(int); ok {
		p.Limit = v
	}
	if v, ok := m["sortBy"].(string); ok {
		p.SortBy = v
	}
	if v, ok := m["sortOrder"].(string); ok {
		p.SortOrder = paging.Order(v)
	}
	return p
}

func decodeMoleculeFilter(arg interface{}) *store.MoleculeFilter {
	m := argMap(arg)
	if m == nil {
		return nil
	}
	return &store.MoleculeFilter{
		Name:          optString(m, "name"),
		NameContains:  optString(m, "nameContains"),
		SMILES:        optString(m, "smiles"),
		ProjectID:     optString(m, "projectId"),
		CreatedBy:     optString(m, "createdBy"),
		CreatedAfter:  optTime(m, "createdAfter"),
		CreatedBefore: optTime(m, "createdBefore"),
	}
}

func decodeProjectFilter(arg interface{}) *store.ProjectFilter {
	m := argMap(arg)
	if m == nil {
		return nil
	}
	f := &store.ProjectFilter{
		OwnerID:      optString(m, "ownerId"),
		MemberID:     optString(m, "memberId"),
		NameContains: optString(m, "nameContains"),
	}
	if v, ok := m["status"].(store.ProjectStatus); ok {
		f.Status = &v
	}
	if v, ok := m["type"].(store.ProjectType); ok {
		f.Type = &v
	}
	return f
}

func decodeTrialFilter(arg interface{}) *store.TrialFilter {
	m := argMap(arg)
	if m == nil {
		return nil
	}
	f := &store.TrialFilter{
		ProjectID:     optString(m, "projectId"),
		MoleculeID:    optString(m, "moleculeId"),
		MinEnrollment: optInt(m, "minEnrollment"),
	}
	if v, ok := m["phase"].(store.TrialPhase); ok {
		f.Phase = &v
	}
	if v, ok := m["status"].(store.TrialStatus); ok {
		f.Status = &v
	}
	return f
}

func decodePaperFilter(arg interface{}) *store.PaperFilter {
	m := argMap(arg)
	if m == nil {
		return nil
	}
	return &store.PaperFilter{
		TitleContains:   optString(m, "titleContains"),
		Journal:         optString(m, "journal"),
		Author:          optString(m, "author"),
		MoleculeID:      optString(m, "moleculeId"),
		PublishedAfter:  optTime(m, "publishedAfter"),
		PublishedBefore: optTime(m, "publishedBefore"),
	}
}

func decodeSafetyEventFilter(arg interface{}) *store.SafetyEventFilter {
	m := argMap(arg)
	if m == nil {
		return nil
	}
	f := &store.SafetyEventFilter{
		MoleculeID: optString(m, "moleculeId"),
		TrialID:    optString(m, "trialId"),
	}
	if v, ok := m["severity"].(store.Severity); ok {
		f.Severity = &v
	}
	if v, ok := m["outcome"].(store.Outcome); ok {
		f.Outcome = &v
	}
	return f
}

func decodePredictionFilter(arg interface{}) *store.PredictionFilter {
	m := argMap(arg)
	if m == nil {
		return nil
	}
	return &store.PredictionFilter{
		MoleculeID:    optString(m, "moleculeId"),
		ModelType:     optString(m, "modelType"),
		MinConfidence: optFloat(m, "minConfidence"),
	}
}
