// Package store defines the entity records and repository contracts for the
// PharmOS research gateway. Resolvers depend only on these interfaces, never
// on storage details.
package store

import (
	"context"
	"time"
)

// Record is the contract every stored entity satisfies. T is the concrete
// pointer type so Clone can return it without casts.
type Record[T any] interface {
	Clone() T
	RecordID() string
	SetRecordID(id string)
	Touch(now time.Time, created bool)
}

// Repository is the per-entity data access contract. Implementations must be
// atomic per call.
//
// FindByID and FindByIDs report a missing record as a nil entry, not an
// error. FindByIDs preserves input order positionally.
type Repository[T Record[T]] interface {
	FindByID(ctx context.Context, id string) (T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	FindAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, patch func(T)) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Stores aggregates one repository per entity type.
type Stores struct {
	Users        Repository[*User]
	Molecules    Repository[*Molecule]
	Projects     Repository[*Project]
	Trials       Repository[*ClinicalTrial]
	Papers       Repository[*ResearchPaper]
	SafetyEvents Repository[*SafetyEvent]
	Predictions  Repository[*MLPrediction]
	Insights     Repository[*ResearchInsight]
}

// ChildrenByParentIDs groups every record of a repository under the parent
// ids reported by parents, answering each requested parent positionally. A
// parent with no children gets an empty, non-nil slice. The repository is
// consulted exactly once regardless of how many parents are asked for.
func ChildrenByParentIDs[T Record[T]](ctx context.Context, repo Repository[T], parentIDs []string, parents func(T) []string) ([][]T, error) {
	all, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]T)
	for _, rec := range all {
		for _, pid := range parents(rec) {
			grouped[pid] = append(grouped[pid], rec)
		}
	}

	out := make([][]T, len(parentIDs))
	for i, pid := range parentIDs {
		children := grouped[pid]
		if children == nil {
			children = []T{}
		}
		out[i] = children
	}
	return out, nil
}

// User roles.
const (
	RoleAdmin      = "admin"
	RoleResearcher = "researcher"
	RoleClinician  = "clinician"
	RoleViewer     = "viewer"
)

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectArchived  ProjectStatus = "ARCHIVED"
)

// ProjectType enumerates project categories.
type ProjectType string

const (
	ProjectResearch    ProjectType = "RESEARCH"
	ProjectDevelopment ProjectType = "DEVELOPMENT"
	ProjectClinical    ProjectType = "CLINICAL"
	ProjectRegulatory  ProjectType = "REGULATORY"
)

// TrialPhase enumerates clinical trial phases.
type TrialPhase string

const (
	PhasePreclinical TrialPhase = "PRECLINICAL"
	Phase1           TrialPhase = "PHASE_1"
	Phase2           TrialPhase = "PHASE_2"
	Phase3           TrialPhase = "PHASE_3"
	Phase4           TrialPhase = "PHASE_4"
)

// TrialStatus enumerates clinical trial states.
type TrialStatus string

const (
	TrialPlanned    TrialStatus = "PLANNED"
	TrialRecruiting TrialStatus = "RECRUITING"
	TrialActive     TrialStatus = "ACTIVE"
	TrialSuspended  TrialStatus = "SUSPENDED"
	TrialCompleted  TrialStatus = "COMPLETED"
	TrialTerminated TrialStatus = "TERMINATED"
)

// Severity enumerates safety event severities.
type Severity string

const (
	SeverityMild            Severity = "MILD"
	SeverityModerate        Severity = "MODERATE"
	SeveritySevere          Severity = "SEVERE"
	SeverityLifeThreatening Severity = "LIFE_THREATENING"
	SeverityFatal           Severity = "FATAL"
)

// Outcome enumerates safety event outcomes.
type Outcome string

const (
	OutcomeRecovered    Outcome = "RECOVERED"
	OutcomeRecovering   Outcome = "RECOVERING"
	OutcomeNotRecovered Outcome = "NOT_RECOVERED"
	OutcomeFatal        Outcome = "FATAL"
	OutcomeUnknown      Outcome = "UNKNOWN"
)

// Model types accepted by the prediction provider.
const (
	ModelSolubility      = "SOLUBILITY"
	ModelToxicity        = "TOXICITY"
	ModelBindingAffinity = "BINDING_AFFINITY"
	ModelADMET           = "ADMET"
)

// User is a platform identity participating in projects.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Molecule is a chemical compound under research.
type Molecule struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	SMILES      string         `json:"smiles"`
	Formula     string         `json:"formula"`
	Description string         `json:"description"`
	Properties  map[string]any `json:"properties"`
	ProjectIDs  []string       `json:"projectIds"`
	CreatedBy   string         `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Project is a research program owning molecules, trials and papers.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Type        ProjectType   `json:"type"`
	OwnerID     string        `json:"ownerId"`
	TeamIDs     []string      `json:"teamIds"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ClinicalTrial is a staged study belonging to a project.
type ClinicalTrial struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Phase       TrialPhase  `json:"phase"`
	Status      TrialStatus `json:"status"`
	ProjectID   string      `json:"projectId"`
	MoleculeIDs []string    `json:"moleculeIds"`
	Enrollment  int         `json:"enrollment"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ResearchPaper is a bibliographic record tied to molecules and trials.
type ResearchPaper struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Abstract    string     `json:"abstract"`
	Authors     []string   `json:"authors"`
	Journal     string     `json:"journal"`
	DOI         string     `json:"doi"`
	ProjectID   string     `json:"projectId"`
	MoleculeIDs []string   `json:"moleculeIds"`
	TrialIDs    []string   `json:"trialIds"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SafetyEvent is an adverse event report for a molecule, optionally tied to
// a trial. TrialID is empty when the event was observed outside a trial.
type SafetyEvent struct {
	ID          string    `json:"id"`
	MoleculeID  string    `json:"moleculeId"`
	TrialID     string    `json:"trialId"`
	Severity    Severity  `json:"severity"`
	Outcome     Outcome   `json:"outcome"`
	Description string    `json:"description"`
	ReportedBy  string    `json:"reportedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MLPrediction is a stored prediction result for exactly one molecule.
type MLPrediction struct {
	ID         string         `json:"id"`
	MoleculeID string         `json:"moleculeId"`
	ModelType  string         `json:"modelType"`
	Confidence float64        `json:"confidence"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// ResearchInsight is a generated artifact referencing the papers it was
// derived from.
type ResearchInsight struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	PaperIDs   []string  `json:"paperIds"`
	Confidence float64   `json:"confidence"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
