package store

import (
	"strings"
	"time"
)

// Entity filters are flat sets of optional predicate fields combined by
// logical AND. A nil filter matches everything.

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// MatchesQuery reports whether any of fields contains query, case-insensitive.
// Full-text search over the in-memory stores reduces to this.
func MatchesQuery(query string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, query) {
			return true
		}
	}
	return false
}

// MoleculeFilter selects molecules.
type MoleculeFilter struct {
	Name          *string
	NameContains  *string
	SMILES        *string
	ProjectID     *string
	CreatedBy     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Match reports whether m satisfies every set predicate.
func (f *MoleculeFilter) Match(m *Molecule) bool {
	if f == nil {
		return true
	}
	if f.Name != nil && m.Name != *f.Name {
		return false
	}
	if f.NameContains != nil && !containsFold(m.Name, *f.NameContains) {
		return false
	}
	if f.SMILES != nil && m.SMILES != *f.SMILES {
		return false
	}
	if f.ProjectID != nil {
		found := false
		for _, id := range m.ProjectIDs {
			if id == *f.ProjectID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CreatedBy != nil && m.CreatedBy != *f.CreatedBy {
		return false
	}
	if f.CreatedAfter != nil && !m.CreatedAt.After(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && !m.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

// ProjectFilter selects projects.
type ProjectFilter struct {
	Status       *ProjectStatus
	Type         *ProjectType
	OwnerID      *string
	MemberID     *string
	NameContains *string
}

// Match reports whether p satisfies every set predicate.
func (f *ProjectFilter) Match(p *Project) bool {
	if f == nil {
		return true
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.OwnerID != nil && p.OwnerID != *f.OwnerID {
		return false
	}
	if f.MemberID != nil {
		found := p.OwnerID == *f.MemberID
		for _, id := range p.TeamIDs {
			if id == *f.MemberID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.NameContains != nil && !containsFold(p.Name, *f.NameContains) {
		return false
	}
	return true
}

// TrialFilter selects clinical trials.
type TrialFilter struct {
	Phase         *TrialPhase
	Status        *TrialStatus
	ProjectID     *string
	MoleculeID    *string
	MinEnrollment *int
}

// Match reports whether t satisfies every set predicate.
func (f *TrialFilter) Match(t *ClinicalTrial) bool {
	if f == nil {
		return true
	}
	if f.Phase != nil && t.Phase != *f.Phase {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.ProjectID != nil && t.ProjectID != *f.ProjectID {
		return false
	}
	if f.MoleculeID != nil {
		found := false
		for _, id := range t.MoleculeIDs {
			if id == *f.MoleculeID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinEnrollment != nil && t.Enrollment < *f.MinEnrollment {
		return false
	}
	return true
}

// PaperFilter selects research papers.
type PaperFilter struct {
	TitleContains   *string
	Journal         *string
	Author          *string
	MoleculeID      *string
	PublishedAfter  *time.Time
	PublishedBefore *time.Time
}

// Match reports whether p satisfies every set predicate.
func (f *PaperFilter) Match(p *ResearchPaper) bool {
	if f == nil {
		return true
	}
	if f.TitleContains != nil && !containsFold(p.Title, *f.TitleContains) {
		return false
	}
	if f.Journal != nil && p.Journal != *f.Journal {
		return false
	}
	if f.Author != nil {
		found := false
		for _, a := range p.Authors {
			if containsFold(a, *f.Author) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MoleculeID != nil {
		found := false
		for _, id := range p.MoleculeIDs {
			if id == *f.MoleculeID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PublishedAfter != nil && (p.PublishedAt == nil || !p.PublishedAt.After(*f.PublishedAfter)) {
		return false
	}
	if f.PublishedBefore != nil && (p.PublishedAt == nil || !p.PublishedAt.Before(*f.PublishedBefore)) {
		return false
	}
	return true
}

// SafetyEventFilter selects safety events.
type SafetyEventFilter struct {
	MoleculeID *string
	TrialID    *string
	Severity   *Severity
	Outcome    *Outcome
}

// Match reports whether e satisfies every set predicate.
func (f *SafetyEventFilter) Match(e *SafetyEvent) bool {
	if f == nil {
		return true
	}
	if f.MoleculeID != nil && e.MoleculeID != *f.MoleculeID {
		return false
	}
	if f.TrialID != nil && e.TrialID != *f.TrialID {
		return false
	}
	if f.Severity != nil && e.Severity != *f.Severity {
		return false
	}
	if f.Outcome != nil && e.Outcome != *f.Outcome {
		return false
	}
	return true
}

// PredictionFilter selects stored ML predictions.
type PredictionFilter struct {
	MoleculeID    *string
	ModelType     *string
	MinConfidence *float64
}

// Match reports whether p satisfies every set predicate.
func (f *PredictionFilter) Match(p *MLPrediction) bool {
	if f == nil {
		return true
	}
	if f.MoleculeID != nil && p.MoleculeID != *f.MoleculeID {
		return false
	}
	if f.ModelType != nil && p.ModelType != *f.ModelType {
		return false
	}
	if f.MinConfidence != nil && p.Confidence < *f.MinConfidence {
		return false
	}
	return true
}
