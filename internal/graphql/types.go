package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/loader"
	"github.com/pharmos/gateway/pkg/store"
)

// Entity object types. Scalar fields resolve through the default resolver
// against the record's json tags; relation fields are attached afterwards
// by wireRelations because the type graph is cyclic.

var paginationInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PaginationInfo",
	Fields: graphql.Fields{
		"page":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"limit":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"total":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPages":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

func paginatedType(name string, item *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"data":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(item)))},
			"pagination": &graphql.Field{Type: graphql.NewNonNull(paginationInfoType)},
		},
	})
}

func (s *Schema) defineUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":       &graphql.Field{Type: graphql.String},
			"role":       &graphql.Field{Type: userRoleEnum},
			"department": &graphql.Field{Type: graphql.String},
			"createdAt":  &graphql.Field{Type: dateTimeType},
			"updatedAt":  &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineMoleculeType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Molecule",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"smiles":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"formula":     &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"properties":  &graphql.Field{Type: jsonType},
			"createdAt":   &graphql.Field{Type: dateTimeType},
			"updatedAt":   &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineProjectType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: projectStatusEnum},
			"type":        &graphql.Field{Type: projectTypeEnum},
			"createdAt":   &graphql.Field{Type: dateTimeType},
			"updatedAt":   &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineClinicalTrialType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "ClinicalTrial",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phase":      &graphql.Field{Type: trialPhaseEnum},
			"status":     &graphql.Field{Type: trialStatusEnum},
			"enrollment": &graphql.Field{Type: graphql.Int},
			"startDate":  &graphql.Field{Type: dateTimeType},
			"endDate":    &graphql.Field{Type: dateTimeType},
			"createdAt":  &graphql.Field{Type: dateTimeType},
			"updatedAt":  &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineResearchPaperType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "ResearchPaper",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"abstract":    &graphql.Field{Type: graphql.String},
			"authors":     &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"journal":     &graphql.Field{Type: graphql.String},
			"doi":         &graphql.Field{Type: graphql.String},
			"publishedAt": &graphql.Field{Type: dateTimeType},
			"createdAt":   &graphql.Field{Type: dateTimeType},
			"updatedAt":   &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineSafetyEventType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "SafetyEvent",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"severity":    &graphql.Field{Type: graphql.NewNonNull(severityEnum)},
			"outcome":     &graphql.Field{Type: outcomeEnum},
			"description": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: dateTimeType},
			"updatedAt":   &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineMLPredictionType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "MLPrediction",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"modelType":  &graphql.Field{Type: modelTypeEnum},
			"confidence": &graphql.Field{Type: graphql.Float},
			"properties": &graphql.Field{Type: jsonType},
			"createdAt":  &graphql.Field{Type: dateTimeType},
			"updatedAt":  &graphql.Field{Type: dateTimeType},
		},
	})
}

func (s *Schema) defineResearchInsightType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "ResearchInsight",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":      &graphql.Field{Type: graphql.String},
			"summary":    &graphql.Field{Type: graphql.String},
			"confidence": &graphql.Field{Type: graphql.Float},
			"createdAt":  &graphql.Field{Type: dateTimeType},
			"updatedAt":  &graphql.Field{Type: dateTimeType},
		},
	})
}

// wireRelations attaches every cross-entity field. Each resolver enqueues
// its key on the request's loaders and returns a deferred thunk so sibling
// fields land in the same batch.
func (s *Schema) wireRelations() {
	s.userType.AddFieldConfig("projects", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.projectType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			u := p.Source.(*store.User)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.ProjectsByUserID.LoadThunk(p.Context, u.ID)), nil
		},
	})

	s.moleculeType.AddFieldConfig("createdBy", &graphql.Field{
		Type: s.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := p.Source.(*store.Molecule)
			if m.CreatedBy == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.UserByID.LoadThunk(p.Context, m.CreatedBy)), nil
		},
	})
	s.moleculeType.AddFieldConfig("predictions", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.predictionType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := p.Source.(*store.Molecule)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.PredictionsByMoleculeID.LoadThunk(p.Context, m.ID)), nil
		},
	})
	s.moleculeType.AddFieldConfig("safetyEvents", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.safetyEventType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := p.Source.(*store.Molecule)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.SafetyEventsByMoleculeID.LoadThunk(p.Context, m.ID)), nil
		},
	})
	s.moleculeType.AddFieldConfig("clinicalTrials", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.trialType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := p.Source.(*store.Molecule)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.TrialsByMoleculeID.LoadThunk(p.Context, m.ID)), nil
		},
	})
	s.moleculeType.AddFieldConfig("researchPapers", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.paperType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := p.Source.(*store.Molecule)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.PapersByMoleculeID.LoadThunk(p.Context, m.ID)), nil
		},
	})
	s.moleculeType.AddFieldConfig("projects", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.projectType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			m := p.Source.(*store.Molecule)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return s.loadProjects(p, l, m.ProjectIDs), nil
		},
	})

	s.projectType.AddFieldConfig("owner", &graphql.Field{
		Type: s.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pr := p.Source.(*store.Project)
			if pr.OwnerID == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.UserByID.LoadThunk(p.Context, pr.OwnerID)), nil
		},
	})
	s.projectType.AddFieldConfig("team", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.userType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pr := p.Source.(*store.Project)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			thunks := make([]func() (*store.User, error), len(pr.TeamIDs))
			for i, id := range pr.TeamIDs {
				thunks[i] = l.UserByID.LoadThunk(p.Context, id)
			}
			return func() (interface{}, error) {
				users := make([]*store.User, 0, len(thunks))
				for _, get := range thunks {
					u, err := get()
					if err != nil {
						return nil, err
					}
					if u != nil {
						users = append(users, u)
					}
				}
				return users, nil
			}, nil
		},
	})
	s.projectType.AddFieldConfig("molecules", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.moleculeType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pr := p.Source.(*store.Project)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.MoleculesByProjectID.LoadThunk(p.Context, pr.ID)), nil
		},
	})
	s.projectType.AddFieldConfig("clinicalTrials", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.trialType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pr := p.Source.(*store.Project)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.TrialsByProjectID.LoadThunk(p.Context, pr.ID)), nil
		},
	})
	s.projectType.AddFieldConfig("researchPapers", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.paperType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pr := p.Source.(*store.Project)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.PapersByProjectID.LoadThunk(p.Context, pr.ID)), nil
		},
	})

	s.trialType.AddFieldConfig("project", &graphql.Field{
		Type: s.projectType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			t := p.Source.(*store.ClinicalTrial)
			if t.ProjectID == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.ProjectByID.LoadThunk(p.Context, t.ProjectID)), nil
		},
	})
	s.trialType.AddFieldConfig("molecules", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.moleculeType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			t := p.Source.(*store.ClinicalTrial)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return s.loadMolecules(p, l, t.MoleculeIDs), nil
		},
	})
	s.trialType.AddFieldConfig("safetyEvents", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.safetyEventType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			t := p.Source.(*store.ClinicalTrial)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.SafetyEventsByTrialID.LoadThunk(p.Context, t.ID)), nil
		},
	})
	s.trialType.AddFieldConfig("researchPapers", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.paperType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			t := p.Source.(*store.ClinicalTrial)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.PapersByTrialID.LoadThunk(p.Context, t.ID)), nil
		},
	})

	s.paperType.AddFieldConfig("project", &graphql.Field{
		Type: s.projectType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			paper := p.Source.(*store.ResearchPaper)
			if paper.ProjectID == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.ProjectByID.LoadThunk(p.Context, paper.ProjectID)), nil
		},
	})
	s.paperType.AddFieldConfig("molecules", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.moleculeType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			paper := p.Source.(*store.ResearchPaper)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return s.loadMolecules(p, l, paper.MoleculeIDs), nil
		},
	})
	s.paperType.AddFieldConfig("clinicalTrials", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.trialType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			paper := p.Source.(*store.ResearchPaper)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			thunks := make([]func() (*store.ClinicalTrial, error), len(paper.TrialIDs))
			for i, id := range paper.TrialIDs {
				thunks[i] = l.TrialByID.LoadThunk(p.Context, id)
			}
			return func() (interface{}, error) {
				trials := make([]*store.ClinicalTrial, 0, len(thunks))
				for _, get := range thunks {
					t, err := get()
					if err != nil {
						return nil, err
					}
					if t != nil {
						trials = append(trials, t)
					}
				}
				return trials, nil
			}, nil
		},
	})
	s.paperType.AddFieldConfig("insights", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.insightType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			paper := p.Source.(*store.ResearchPaper)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.InsightsByPaperID.LoadThunk(p.Context, paper.ID)), nil
		},
	})

	s.safetyEventType.AddFieldConfig("molecule", &graphql.Field{
		Type: s.moleculeType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			e := p.Source.(*store.SafetyEvent)
			if e.MoleculeID == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.MoleculeByID.LoadThunk(p.Context, e.MoleculeID)), nil
		},
	})
	s.safetyEventType.AddFieldConfig("clinicalTrial", &graphql.Field{
		Type: s.trialType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			e := p.Source.(*store.SafetyEvent)
			if e.TrialID == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.TrialByID.LoadThunk(p.Context, e.TrialID)), nil
		},
	})
	s.safetyEventType.AddFieldConfig("reportedBy", &graphql.Field{
		Type: s.userType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			e := p.Source.(*store.SafetyEvent)
			if e.ReportedBy == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.UserByID.LoadThunk(p.Context, e.ReportedBy)), nil
		},
	})

	s.predictionType.AddFieldConfig("molecule", &graphql.Field{
		Type: s.moleculeType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			pred := p.Source.(*store.MLPrediction)
			if pred.MoleculeID == "" {
				return nil, nil
			}
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return thunk(l.MoleculeByID.LoadThunk(p.Context, pred.MoleculeID)), nil
		},
	})

	s.insightType.AddFieldConfig("papers", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(s.paperType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			in := p.Source.(*store.ResearchInsight)
			l, err := loadersFrom(p.Context)
			if err != nil {
				return nil, err
			}
			thunks := make([]func() (*store.ResearchPaper, error), len(in.PaperIDs))
			for i, id := range in.PaperIDs {
				thunks[i] = l.PaperByID.LoadThunk(p.Context, id)
			}
			return func() (interface{}, error) {
				papers := make([]*store.ResearchPaper, 0, len(thunks))
				for _, get := range thunks {
					paper, err := get()
					if err != nil {
						return nil, err
					}
					if paper != nil {
						papers = append(papers, paper)
					}
				}
				return papers, nil
			}, nil
		},
	})
}

// loadProjects and loadMolecules batch a list of ids through the singular
// loaders, dropping soft-orphaned references that resolve to nil.

func (s *Schema) loadProjects(p graphql.ResolveParams, l *loader.Loaders, ids []string) func() (interface{}, error) {
	thunks := make([]func() (*store.Project, error), len(ids))
	for i, id := range ids {
		thunks[i] = l.ProjectByID.LoadThunk(p.Context, id)
	}
	return func() (interface{}, error) {
		projects := make([]*store.Project, 0, len(thunks))
		for _, get := range thunks {
			pr, err := get()
			if err != nil {
				return nil, err
			}
			if pr != nil {
				projects = append(projects, pr)
			}
		}
		return projects, nil
	}
}

func (s *Schema) loadMolecules(p graphql.ResolveParams, l *loader.Loaders, ids []string) func() (interface{}, error) {
	thunks := make([]func() (*store.Molecule, error), len(ids))
	for i, id := range ids {
		thunks[i] = l.MoleculeByID.LoadThunk(p.Context, id)
	}
	return func() (interface{}, error) {
		molecules := make([]*store.Molecule, 0, len(thunks))
		for _, get := range thunks {
			m, err := get()
			if err != nil {
				return nil, err
			}
			if m != nil {
				molecules = append(molecules, m)
			}
		}
		return molecules, nil
	}
}
