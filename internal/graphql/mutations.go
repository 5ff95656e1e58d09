package graphql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/pubsub"
	"github.com/pharmos/gateway/pkg/store"
	"go.uber.org/zap"
)

// Every mutation follows the same shape: guard, validate, repository write,
// publish, return. Publishing happens strictly after the repository
// acknowledges the write so subscribers never observe state that a failed
// write would roll back.

func (s *Schema) defineMutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createMolecule": &graphql.Field{
				Type: graphql.NewNonNull(s.moleculeType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createMoleculeInput)},
				},
				Resolve: s.createMolecule,
			},
			"updateMolecule": &graphql.Field{
				Type: graphql.NewNonNull(s.moleculeType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateMoleculeInput)},
				},
				Resolve: s.updateMolecule,
			},
			"deleteMolecule": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.deleteMolecule,
			},
			"createProject": &graphql.Field{
				Type: graphql.NewNonNull(s.projectType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProjectInput)},
				},
				Resolve: s.createProject,
			},
			"updateProject": &graphql.Field{
				Type: graphql.NewNonNull(s.projectType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProjectInput)},
				},
				Resolve: s.updateProject,
			},
			"createClinicalTrial": &graphql.Field{
				Type: graphql.NewNonNull(s.trialType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTrialInput)},
				},
				Resolve: s.createClinicalTrial,
			},
			"updateClinicalTrial": &graphql.Field{
				Type: graphql.NewNonNull(s.trialType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTrialInput)},
				},
				Resolve: s.updateClinicalTrial,
			},
			"createResearchPaper": &graphql.Field{
				Type: graphql.NewNonNull(s.paperType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPaperInput)},
				},
				Resolve: s.createResearchPaper,
			},
			"createSafetyEvent": &graphql.Field{
				Type: graphql.NewNonNull(s.safetyEventType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createSafetyEventInput)},
				},
				Resolve: s.createSafetyEvent,
			},
			"requestPrediction": &graphql.Field{
				Type: graphql.NewNonNull(s.predictionType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(requestPredictionInput)},
				},
				Resolve: s.requestPrediction,
			},
			"generateInsight": &graphql.Field{
				Type: graphql.NewNonNull(s.insightType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(generateInsightInput)},
				},
				Resolve: s.generateInsight,
			},
		},
	})
}

func (s *Schema) publish(topic pubsub.Topic, payload any) {
	s.bus.Publish(topic, payload)
	if s.logger != nil {
		s.logger.Debug("event published", zap.String("topic", string(topic)))
	}
}

func (s *Schema) createMolecule(p graphql.ResolveParams) (interface{}, error) {
	ident, err := requireRole(p.Context, store.RoleResearcher)
	if err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	name := strings.TrimSpace(strField(in, "name"))
	smiles := strings.TrimSpace(strField(in, "smiles"))
	if name == "" {
		return nil, NewInvalidInput("molecule name must not be empty")
	}
	if smiles == "" {
		return nil, NewInvalidInput("molecule smiles must not be empty")
	}

	m := &store.Molecule{
		Name:        name,
		SMILES:      smiles,
		Formula:     strField(in, "formula"),
		Description: strField(in, "description"),
		ProjectIDs:  stringSlice(in, "projectIds"),
		CreatedBy:   ident.ID,
	}
	created, err := s.stores.Molecules.Create(p.Context, m)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicMoleculeCreated, created)
	return created, nil
}

func (s *Schema) updateMolecule(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleResearcher); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	in := argMap(p.Args["input"])

	updated, err := s.stores.Molecules.Update(p.Context, id, func(m *store.Molecule) {
		if v := optString(in, "name"); v != nil {
			m.Name = *v
		}
		if v := optString(in, "formula"); v != nil {
			m.Formula = *v
		}
		if v := optString(in, "description"); v != nil {
			m.Description = *v
		}
		if _, ok := in["projectIds"]; ok {
			m.ProjectIDs = stringSlice(in, "projectIds")
		}
	})
	if err != nil {
		return nil, notFoundToInvalid(err, "molecule", id)
	}
	s.publish(pubsub.TopicMoleculeUpdated, updated)
	return updated, nil
}

// deleteMolecule removes the record only. References held by trials, papers
// and events are left in place; their resolvers answer null for the missing
// id.
func (s *Schema) deleteMolecule(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleAdmin); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	ok, err := s.stores.Molecules.Delete(p.Context, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewInvalidInput("molecule %q not found", id)
	}
	s.publish(pubsub.TopicMoleculeDeleted, id)
	return true, nil
}

func (s *Schema) createProject(p graphql.ResolveParams) (interface{}, error) {
	ident, err := requireRole(p.Context, store.RoleResearcher)
	if err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	name := strings.TrimSpace(strField(in, "name"))
	if name == "" {
		return nil, NewInvalidInput("project name must not be empty")
	}

	pr := &store.Project{
		Name:        name,
		Description: strField(in, "description"),
		Status:      store.ProjectActive,
		Type:        store.ProjectResearch,
		OwnerID:     ident.ID,
		TeamIDs:     stringSlice(in, "teamIds"),
	}
	if v, ok := in["status"].(store.ProjectStatus); ok {
		pr.Status = v
	}
	if v, ok := in["type"].(store.ProjectType); ok {
		pr.Type = v
	}
	created, err := s.stores.Projects.Create(p.Context, pr)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicProjectCreated, created)
	return created, nil
}

func (s *Schema) updateProject(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleResearcher); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	in := argMap(p.Args["input"])

	updated, err := s.stores.Projects.Update(p.Context, id, func(pr *store.Project) {
		if v := optString(in, "name"); v != nil {
			pr.Name = *v
		}
		if v := optString(in, "description"); v != nil {
			pr.Description = *v
		}
		if v, ok := in["status"].(store.ProjectStatus); ok {
			pr.Status = v
		}
		if v, ok := in["type"].(store.ProjectType); ok {
			pr.Type = v
		}
		if _, ok := in["teamIds"]; ok {
			pr.TeamIDs = stringSlice(in, "teamIds")
		}
	})
	if err != nil {
		return nil, notFoundToInvalid(err, "project", id)
	}
	s.publish(pubsub.TopicProjectUpdated, updated)
	return updated, nil
}

func (s *Schema) createClinicalTrial(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleResearcher); err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	title := strings.TrimSpace(strField(in, "title"))
	if title == "" {
		return nil, NewInvalidInput("trial title must not be empty")
	}
	projectID := strField(in, "projectId")
	project, err := s.stores.Projects.FindByID(p.Context, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewInvalidInput("project %q not found", projectID)
	}

	t := &store.ClinicalTrial{
		Title:       title,
		Phase:       store.PhasePreclinical,
		Status:      store.TrialPlanned,
		ProjectID:   projectID,
		MoleculeIDs: stringSlice(in, "moleculeIds"),
		StartDate:   optTime(in, "startDate"),
	}
	if v, ok := in["phase"].(store.TrialPhase); ok {
		t.Phase = v
	}
	if v, ok := in["status"].(store.TrialStatus); ok {
		t.Status = v
	}
	if v := optInt(in, "enrollment"); v != nil {
		if *v < 0 {
			return nil, NewInvalidInput("enrollment must not be negative")
		}
		t.Enrollment = *v
	}
	created, err := s.stores.Trials.Create(p.Context, t)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicTrialCreated, created)
	return created, nil
}

func (s *Schema) updateClinicalTrial(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleResearcher); err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	in := argMap(p.Args["input"])
	if v := optInt(in, "enrollment"); v != nil && *v < 0 {
		return nil, NewInvalidInput("enrollment must not be negative")
	}

	updated, err := s.stores.Trials.Update(p.Context, id, func(t *store.ClinicalTrial) {
		if v, ok := in["phase"].(store.TrialPhase); ok {
			t.Phase = v
		}
		if v, ok := in["status"].(store.TrialStatus); ok {
			t.Status = v
		}
		if v := optInt(in, "enrollment"); v != nil {
			t.Enrollment = *v
		}
		if v := optTime(in, "endDate"); v != nil {
			t.EndDate = v
		}
	})
	if err != nil {
		return nil, notFoundToInvalid(err, "clinical trial", id)
	}
	s.publish(pubsub.TopicTrialUpdated, updated)
	return updated, nil
}

func (s *Schema) createResearchPaper(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleResearcher); err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	title := strings.TrimSpace(strField(in, "title"))
	if title == "" {
		return nil, NewInvalidInput("paper title must not be empty")
	}

	paper := &store.ResearchPaper{
		Title:       title,
		Abstract:    strField(in, "abstract"),
		Authors:     stringSlice(in, "authors"),
		Journal:     strField(in, "journal"),
		DOI:         strField(in, "doi"),
		ProjectID:   strField(in, "projectId"),
		MoleculeIDs: stringSlice(in, "moleculeIds"),
		TrialIDs:    stringSlice(in, "trialIds"),
		PublishedAt: optTime(in, "publishedAt"),
	}
	created, err := s.stores.Papers.Create(p.Context, paper)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicPaperCreated, created)
	return created, nil
}

func (s *Schema) createSafetyEvent(p graphql.ResolveParams) (interface{}, error) {
	ident, err := requireRole(p.Context, store.RoleResearcher)
	if err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	moleculeID := strField(in, "moleculeId")
	molecule, err := s.stores.Molecules.FindByID(p.Context, moleculeID)
	if err != nil {
		return nil, err
	}
	if molecule == nil {
		return nil, NewInvalidInput("molecule %q not found", moleculeID)
	}

	severity, ok := in["severity"].(store.Severity)
	if !ok {
		return nil, NewInvalidInput("severity is required")
	}
	ev := &store.SafetyEvent{
		MoleculeID:  moleculeID,
		TrialID:     strField(in, "trialId"),
		Severity:    severity,
		Outcome:     store.OutcomeUnknown,
		Description: strField(in, "description"),
		ReportedBy:  ident.ID,
	}
	if v, ok := in["outcome"].(store.Outcome); ok {
		ev.Outcome = v
	}
	if ev.TrialID != "" {
		trial, err := s.stores.Trials.FindByID(p.Context, ev.TrialID)
		if err != nil {
			return nil, err
		}
		if trial == nil {
			return nil, NewInvalidInput("clinical trial %q not found", ev.TrialID)
		}
	}
	created, err := s.stores.SafetyEvents.Create(p.Context, ev)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicSafetyEventCreated, created)
	return created, nil
}

func (s *Schema) requestPrediction(p graphql.ResolveParams) (interface{}, error) {
	if _, err := requireRole(p.Context, store.RoleResearcher); err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	moleculeID := strField(in, "moleculeId")
	modelType := strField(in, "modelType")

	molecule, err := s.stores.Molecules.FindByID(p.Context, moleculeID)
	if err != nil {
		return nil, err
	}
	if molecule == nil {
		return nil, NewInvalidInput("molecule %q not found", moleculeID)
	}

	result, err := s.predictor.Predict(p.Context, molecule.SMILES, modelType)
	if err != nil {
		return nil, fmt.Errorf("prediction for molecule %s: %w", moleculeID, err)
	}

	props := make(map[string]any, len(result.Properties)+1)
	for k, v := range result.Properties {
		props[k] = v
	}
	props["modelVersion"] = result.ModelVersion

	pred := &store.MLPrediction{
		MoleculeID: moleculeID,
		ModelType:  modelType,
		Confidence: result.Confidence,
		Properties: props,
	}
	created, err := s.stores.Predictions.Create(p.Context, pred)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicPredictionCompleted, created)
	return created, nil
}

func (s *Schema) generateInsight(p graphql.ResolveParams) (interface{}, error) {
	ident, err := requireRole(p.Context, store.RoleResearcher)
	if err != nil {
		return nil, err
	}
	in := argMap(p.Args["input"])
	paperIDs := stringSlice(in, "paperIds")
	if len(paperIDs) == 0 {
		return nil, NewInvalidInput("at least one paper id is required")
	}

	papers, err := s.stores.Papers.FindByIDs(p.Context, paperIDs)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(papers))
	for i, paper := range papers {
		if paper == nil {
			return nil, NewInvalidInput("research paper %q not found", paperIDs[i])
		}
		titles = append(titles, paper.Title)
	}

	title := strField(in, "title")
	if title == "" {
		title = fmt.Sprintf("Insight across %d papers", len(papers))
	}
	// Confidence grows with corpus size and saturates; a single paper is a
	// weak basis for a cross-cutting claim.
	confidence := 0.55 + 0.08*float64(len(papers))
	if confidence > 0.95 {
		confidence = 0.95
	}

	insight := &store.ResearchInsight{
		Title:      title,
		Summary:    fmt.Sprintf("Synthesized from: %s", strings.Join(titles, "; ")),
		PaperIDs:   paperIDs,
		Confidence: confidence,
		CreatedBy:  ident.ID,
	}
	created, err := s.stores.Insights.Create(p.Context, insight)
	if err != nil {
		return nil, err
	}
	s.publish(pubsub.TopicInsightCreated, created)
	return created, nil
}

// notFoundToInvalid maps a repository miss onto the input-validation error
// taxonomy; any other failure passes through.
func notFoundToInvalid(err error, kind, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return NewInvalidInput("%s %q not found", kind, id)
	}
	return err
}
