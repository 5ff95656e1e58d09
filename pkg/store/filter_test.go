package store_test

import (
	"testing"
	"time"

	"github.com/pharmos/gateway/pkg/store"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestMoleculeFilter_NilMatchesAll(t *testing.T) {
	var f *store.MoleculeFilter
	assert.True(t, f.Match(&store.Molecule{Name: "anything"}))
}

func TestMoleculeFilter_ANDComposition(t *testing.T) {
	m := &store.Molecule{
		Name:       "Aspirin",
		SMILES:     "CC(=O)OC1=CC=CC=C1C(=O)O",
		ProjectIDs: []string{"p1", "p2"},
		CreatedBy:  "user_chen",
		CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	f := &store.MoleculeFilter{
		NameContains: strPtr("asp"),
		ProjectID:    strPtr("p2"),
	}
	assert.True(t, f.Match(m))

	// Any single failing predicate rejects, regardless of the others.
	f.CreatedBy = strPtr("someone_else")
	assert.False(t, f.Match(m))
}

func TestMoleculeFilter_NameContainsIsCaseInsensitive(t *testing.T) {
	m := &store.Molecule{Name: "Paracetamol"}
	f := &store.MoleculeFilter{NameContains: strPtr("CETA")}
	assert.True(t, f.Match(m))
}

func TestMoleculeFilter_CreatedWindow(t *testing.T) {
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	m := &store.Molecule{Name: "A", CreatedAt: created}

	after := created.Add(-time.Hour)
	before := created.Add(time.Hour)
	f := &store.MoleculeFilter{CreatedAfter: &after, CreatedBefore: &before}
	assert.True(t, f.Match(m))

	outside := created.Add(2 * time.Hour)
	f = &store.MoleculeFilter{CreatedAfter: &outside}
	assert.False(t, f.Match(m))
}

func TestProjectFilter_OrderIndependent(t *testing.T) {
	p := &store.Project{
		Name:    "Cardio",
		Status:  store.ProjectActive,
		Type:    store.ProjectResearch,
		OwnerID: "u1",
		TeamIDs: []string{"u2", "u3"},
	}

	status := store.ProjectActive
	typ := store.ProjectResearch
	a := &store.ProjectFilter{Status: &status, Type: &typ}
	b := &store.ProjectFilter{Type: &typ, Status: &status}
	assert.Equal(t, a.Match(p), b.Match(p))
	assert.True(t, a.Match(p))
}

func TestProjectFilter_MemberIncludesOwner(t *testing.T) {
	p := &store.Project{OwnerID: "u1", TeamIDs: []string{"u2"}}

	f := &store.ProjectFilter{MemberID: strPtr("u1")}
	assert.True(t, f.Match(p), "owner counts as a member")

	f = &store.ProjectFilter{MemberID: strPtr("u2")}
	assert.True(t, f.Match(p))

	f = &store.ProjectFilter{MemberID: strPtr("u9")}
	assert.False(t, f.Match(p))
}

func TestTrialFilter_MinEnrollment(t *testing.T) {
	tr := &store.ClinicalTrial{Enrollment: 120, MoleculeIDs: []string{"m1"}}

	minE := 100
	f := &store.TrialFilter{MinEnrollment: &minE, MoleculeID: strPtr("m1")}
	assert.True(t, f.Match(tr))

	minE = 200
	assert.False(t, f.Match(tr))
}

func TestPaperFilter_AuthorSubstring(t *testing.T) {
	p := &store.ResearchPaper{
		Title:   "Aspirin in secondary prevention",
		Authors: []string{"S. Chen", "M. Diaz"},
	}

	f := &store.PaperFilter{Author: strPtr("diaz")}
	assert.True(t, f.Match(p))

	f = &store.PaperFilter{Author: strPtr("smith")}
	assert.False(t, f.Match(p))
}

func TestPaperFilter_PublishedWindowNeedsDate(t *testing.T) {
	after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &store.PaperFilter{PublishedAfter: &after}

	assert.False(t, f.Match(&store.ResearchPaper{Title: "unpublished"}),
		"papers without a publish date never satisfy a date window")

	published := after.Add(24 * time.Hour)
	assert.True(t, f.Match(&store.ResearchPaper{Title: "x", PublishedAt: &published}))
}

func TestSafetyEventFilter(t *testing.T) {
	sev := store.SeveritySevere
	e := &store.SafetyEvent{MoleculeID: "m1", Severity: store.SeveritySevere, Outcome: store.OutcomeRecovered}

	f := &store.SafetyEventFilter{MoleculeID: strPtr("m1"), Severity: &sev}
	assert.True(t, f.Match(e))

	mild := store.SeverityMild
	f.Severity = &mild
	assert.False(t, f.Match(e))
}

func TestPredictionFilter_MinConfidence(t *testing.T) {
	p := &store.MLPrediction{MoleculeID: "m1", ModelType: store.ModelToxicity, Confidence: 0.8}

	minC := 0.7
	f := &store.PredictionFilter{MinConfidence: &minC, ModelType: strPtr(store.ModelToxicity)}
	assert.True(t, f.Match(p))

	minC = 0.9
	assert.False(t, f.Match(p))
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, store.MatchesQuery("aspirin", "Aspirin study", "", ""))
	assert.True(t, store.MatchesQuery("STUDY", "Aspirin study"))
	assert.False(t, store.MatchesQuery("ibuprofen", "Aspirin study", "nothing here"))
}
