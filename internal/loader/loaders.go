package loader

import (
	"context"

	"github.com/pharmos/gateway/pkg/store"
)

// Loaders is the full set of named loaders for one request. Field resolvers
// reach every cross-entity relation through these; one instance is built per
// incoming request and shared by all resolvers within it.
type Loaders struct {
	MoleculeByID *Loader[string, *store.Molecule]
	UserByID     *Loader[string, *store.User]
	ProjectByID  *Loader[string, *store.Project]
	TrialByID    *Loader[string, *store.ClinicalTrial]
	PaperByID    *Loader[string, *store.ResearchPaper]
	InsightByID  *Loader[string, *store.ResearchInsight]

	PredictionsByMoleculeID  *Loader[string, []*store.MLPrediction]
	SafetyEventsByMoleculeID *Loader[string, []*store.SafetyEvent]
	SafetyEventsByTrialID    *Loader[string, []*store.SafetyEvent]
	TrialsByMoleculeID       *Loader[string, []*store.ClinicalTrial]
	TrialsByProjectID        *Loader[string, []*store.ClinicalTrial]
	PapersByMoleculeID       *Loader[string, []*store.ResearchPaper]
	PapersByProjectID        *Loader[string, []*store.ResearchPaper]
	PapersByTrialID          *Loader[string, []*store.ResearchPaper]
	MoleculesByProjectID     *Loader[string, []*store.Molecule]
	ProjectsByUserID         *Loader[string, []*store.Project]
	InsightsByPaperID        *Loader[string, []*store.ResearchInsight]
}

// NewLoaders wires every loader against the given stores.
func NewLoaders(stores *store.Stores, cfg Config, observe func(name string, size int)) *Loaders {
	return &Loaders{
		MoleculeByID: New("moleculeById", func(ctx context.Context, ids []string) ([]*store.Molecule, error) {
			return stores.Molecules.FindByIDs(ctx, ids)
		}, cfg, observe),
		UserByID: New("userById", func(ctx context.Context, ids []string) ([]*store.User, error) {
			return stores.Users.FindByIDs(ctx, ids)
		}, cfg, observe),
		ProjectByID: New("projectById", func(ctx context.Context, ids []string) ([]*store.Project, error) {
			return stores.Projects.FindByIDs(ctx, ids)
		}, cfg, observe),
		TrialByID: New("clinicalTrialById", func(ctx context.Context, ids []string) ([]*store.ClinicalTrial, error) {
			return stores.Trials.FindByIDs(ctx, ids)
		}, cfg, observe),
		PaperByID: New("researchPaperById", func(ctx context.Context, ids []string) ([]*store.ResearchPaper, error) {
			return stores.Papers.FindByIDs(ctx, ids)
		}, cfg, observe),
		InsightByID: New("researchInsightById", func(ctx context.Context, ids []string) ([]*store.ResearchInsight, error) {
			return stores.Insights.FindByIDs(ctx, ids)
		}, cfg, observe),

		PredictionsByMoleculeID: New("predictionsByMoleculeId", func(ctx context.Context, ids []string) ([][]*store.MLPrediction, error) {
			return store.ChildrenByParentIDs(ctx, stores.Predictions, ids, func(p *store.MLPrediction) []string {
				return []string{p.MoleculeID}
			})
		}, cfg, observe),
		SafetyEventsByMoleculeID: New("safetyEventsByMoleculeId", func(ctx context.Context, ids []string) ([][]*store.SafetyEvent, error) {
			return store.ChildrenByParentIDs(ctx, stores.SafetyEvents, ids, func(e *store.SafetyEvent) []string {
				return []string{e.MoleculeID}
			})
		}, cfg, observe),
		SafetyEventsByTrialID: New("safetyEventsByTrialId", func(ctx context.Context, ids []string) ([][]*store.SafetyEvent, error) {
			return store.ChildrenByParentIDs(ctx, stores.SafetyEvents, ids, func(e *store.SafetyEvent) []string {
				if e.TrialID == "" {
					return nil
				}
				return []string{e.TrialID}
			})
		}, cfg, observe),
		TrialsByMoleculeID: New("clinicalTrialsByMoleculeId", func(ctx context.Context, ids []string) ([][]*store.ClinicalTrial, error) {
			return store.ChildrenByParentIDs(ctx, stores.Trials, ids, func(t *store.ClinicalTrial) []string {
				return t.MoleculeIDs
			})
		}, cfg, observe),
		TrialsByProjectID: New("clinicalTrialsByProjectId", func(ctx context.Context, ids []string) ([][]*store.ClinicalTrial, error) {
			return store.ChildrenByParentIDs(ctx, stores.Trials, ids, func(t *store.ClinicalTrial) []string {
				return []string{t.ProjectID}
			})
		}, cfg, observe),
		PapersByMoleculeID: New("researchPapersByMoleculeId", func(ctx context.Context, ids []string) ([][]*store.ResearchPaper, error) {
			return store.ChildrenByParentIDs(ctx, stores.Papers, ids, func(p *store.ResearchPaper) []string {
				return p.MoleculeIDs
			})
		}, cfg, observe),
		PapersByProjectID: New("researchPapersByProjectId", func(ctx context.Context, ids []string) ([][]*store.ResearchPaper, error) {
			return store.ChildrenByParentIDs(ctx, stores.Papers, ids, func(p *store.ResearchPaper) []string {
				if p.ProjectID == "" {
					return nil
				}
				return []string{p.ProjectID}
			})
		}, cfg, observe),
		PapersByTrialID: New("researchPapersByTrialId", func(ctx context.Context, ids []string) ([][]*store.ResearchPaper, error) {
			return store.ChildrenByParentIDs(ctx, stores.Papers, ids, func(p *store.ResearchPaper) []string {
				return p.TrialIDs
			})
		}, cfg, observe),
		MoleculesByProjectID: New("moleculesByProjectId", func(ctx context.Context, ids []string) ([][]*store.Molecule, error) {
			return store.ChildrenByParentIDs(ctx, stores.Molecules, ids, func(m *store.Molecule) []string {
				return m.ProjectIDs
			})
		}, cfg, observe),
		ProjectsByUserID: New("projectsByUserId", func(ctx context.Context, ids []string) ([][]*store.Project, error) {
			return store.ChildrenByParentIDs(ctx, stores.Projects, ids, func(p *store.Project) []string {
				members := make([]string, 0, len(p.TeamIDs)+1)
				members = append(members, p.OwnerID)
				for _, id := range p.TeamIDs {
					if id != p.OwnerID {
						members = append(members, id)
					}
				}
				return members
			})
		}, cfg, observe),
		InsightsByPaperID: New("researchInsightsByPaperId", func(ctx context.Context, ids []string) ([][]*store.ResearchInsight, error) {
			return store.ChildrenByParentIDs(ctx, stores.Insights, ids, func(i *store.ResearchInsight) []string {
				return i.PaperIDs
			})
		}, cfg, observe),
	}
}

type contextKey struct{}

// NewContext attaches a request's loaders to its context.
func NewContext(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the request's loaders, or nil when none are attached.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(contextKey{}).(*Loaders)
	return l
}
