package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/paging"
	"github.com/pharmos/gateway/pkg/store"
)

func paginationArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"pagination": &graphql.ArgumentConfig{Type: paginationInput},
	}
}

func (s *Schema) defineQuery() *graphql.Object {
	moleculePage := paginatedType("MoleculePage", s.moleculeType)
	projectPage := paginatedType("ProjectPage", s.projectType)
	trialPage := paginatedType("ClinicalTrialPage", s.trialType)
	paperPage := paginatedType("ResearchPaperPage", s.paperType)
	safetyEventPage := paginatedType("SafetyEventPage", s.safetyEventType)
	predictionPage := paginatedType("MLPredictionPage", s.predictionType)
	insightPage := paginatedType("ResearchInsightPage", s.insightType)

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: s.userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ident, err := requireIdentity(p.Context)
					if err != nil {
						return nil, err
					}
					l, err := loadersFrom(p.Context)
					if err != nil {
						return nil, err
					}
					return thunk(l.UserByID.LoadThunk(p.Context, ident.ID)), nil
				},
			},

			"molecule": &graphql.Field{
				Type: s.moleculeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					l, err := loadersFrom(p.Context)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(string)
					return thunk(l.MoleculeByID.LoadThunk(p.Context, id)), nil
				},
			},
			"molecules": &graphql.Field{
				Type: moleculePage,
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: moleculeFilterInput},
					"pagination": &graphql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.Molecules.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					f := decodeMoleculeFilter(p.Args["filter"])
					return paging.Apply(all, f.Match, decodePagination(p.Args["pagination"])), nil
				},
			},

			"project": &graphql.Field{
				Type: s.projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					l, err := loadersFrom(p.Context)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(string)
					return thunk(l.ProjectByID.LoadThunk(p.Context, id)), nil
				},
			},
			"projects": &graphql.Field{
				Type: projectPage,
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: projectFilterInput},
					"pagination": &graphql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.Projects.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					f := decodeProjectFilter(p.Args["filter"])
					return paging.Apply(all, f.Match, decodePagination(p.Args["pagination"])), nil
				},
			},

			"clinicalTrial": &graphql.Field{
				Type: s.trialType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					l, err := loadersFrom(p.Context)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(string)
					return thunk(l.TrialByID.LoadThunk(p.Context, id)), nil
				},
			},
			"clinicalTrials": &graphql.Field{
				Type: trialPage,
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: trialFilterInput},
					"pagination": &graphql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.Trials.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					f := decodeTrialFilter(p.Args["filter"])
					return paging.Apply(all, f.Match, decodePagination(p.Args["pagination"])), nil
				},
			},

			"researchPaper": &graphql.Field{
				Type: s.paperType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					l, err := loadersFrom(p.Context)
					if err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(string)
					return thunk(l.PaperByID.LoadThunk(p.Context, id)), nil
				},
			},
			"researchPapers": &graphql.Field{
				Type: paperPage,
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: paperFilterInput},
					"pagination": &graphql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.Papers.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					f := decodePaperFilter(p.Args["filter"])
					return paging.Apply(all, f.Match, decodePagination(p.Args["pagination"])), nil
				},
			},

			"safetyEvents": &graphql.Field{
				Type: safetyEventPage,
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: safetyEventFilterInput},
					"pagination": &graphql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.SafetyEvents.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					f := decodeSafetyEventFilter(p.Args["filter"])
					return paging.Apply(all, f.Match, decodePagination(p.Args["pagination"])), nil
				},
			},

			"mlPredictions": &graphql.Field{
				Type: predictionPage,
				Args: graphql.FieldConfigArgument{
					"filter":     &graphql.ArgumentConfig{Type: predictionFilterInput},
					"pagination": &graphql.ArgumentConfig{Type: paginationInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.Predictions.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					f := decodePredictionFilter(p.Args["filter"])
					return paging.Apply(all, f.Match, decodePagination(p.Args["pagination"])), nil
				},
			},

			"researchInsights": &graphql.Field{
				Type: insightPage,
				Args: paginationArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					all, err := s.stores.Insights.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					return paging.Apply(all, nil, decodePagination(p.Args["pagination"])), nil
				},
			},

			"searchMolecules": &graphql.Field{
				Type: moleculePage,
				Args: searchArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					query, err := searchQuery(p.Args)
					if err != nil {
						return nil, err
					}
					all, err := s.stores.Molecules.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					match := func(m *store.Molecule) bool {
						return store.MatchesQuery(query, m.Name, m.Description, m.SMILES, m.Formula)
					}
					return paging.Apply(all, match, decodePagination(p.Args["pagination"])), nil
				},
			},
			"searchProjects": &graphql.Field{
				Type: projectPage,
				Args: searchArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					query, err := searchQuery(p.Args)
					if err != nil {
						return nil, err
					}
					all, err := s.stores.Projects.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					match := func(pr *store.Project) bool {
						return store.MatchesQuery(query, pr.Name, pr.Description)
					}
					return paging.Apply(all, match, decodePagination(p.Args["pagination"])), nil
				},
			},
			"searchResearchPapers": &graphql.Field{
				Type: paperPage,
				Args: searchArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireIdentity(p.Context); err != nil {
						return nil, err
					}
					query, err := searchQuery(p.Args)
					if err != nil {
						return nil, err
					}
					all, err := s.stores.Papers.FindAll(p.Context)
					if err != nil {
						return nil, err
					}
					match := func(paper *store.ResearchPaper) bool {
						return store.MatchesQuery(query, paper.Title, paper.Abstract, paper.Journal)
					}
					return paging.Apply(all, match, decodePagination(p.Args["pagination"])), nil
				},
			},
		},
	})
}

func searchArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"query":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"pagination": &graphql.ArgumentConfig{Type: paginationInput},
	}
}

func searchQuery(args map[string]interface{}) (string, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", NewInvalidInput("query must not be empty")
	}
	return query, nil
}
