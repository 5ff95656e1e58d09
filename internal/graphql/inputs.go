package graphql

import "github.com/graphql-go/graphql"

// Input object definitions. Every list query takes the same PaginationInput;
// entity filters are flat sets of optional predicates combined by AND.

var paginationInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PaginationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"page":      &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 1},
		"limit":     &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 20},
		"sortBy":    &graphql.InputObjectFieldConfig{Type: graphql.String, DefaultValue: "createdAt"},
		"sortOrder": &graphql.InputObjectFieldConfig{Type: sortOrderEnum, DefaultValue: "DESC"},
	},
})

var moleculeFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "MoleculeFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"nameContains":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"smiles":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"projectId":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"createdBy":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"createdAfter":  &graphql.InputObjectFieldConfig{Type: dateTimeType},
		"createdBefore": &graphql.InputObjectFieldConfig{Type: dateTimeType},
	},
})

var projectFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProjectFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"status":       &graphql.InputObjectFieldConfig{Type: projectStatusEnum},
		"type":         &graphql.InputObjectFieldConfig{Type: projectTypeEnum},
		"ownerId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"memberId":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"nameContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var trialFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ClinicalTrialFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"phase":         &graphql.InputObjectFieldConfig{Type: trialPhaseEnum},
		"status":        &graphql.InputObjectFieldConfig{Type: trialStatusEnum},
		"projectId":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"moleculeId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"minEnrollment": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var paperFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ResearchPaperFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"titleContains":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"journal":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"author":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"moleculeId":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"publishedAfter":  &graphql.InputObjectFieldConfig{Type: dateTimeType},
		"publishedBefore": &graphql.InputObjectFieldConfig{Type: dateTimeType},
	},
})

var safetyEventFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SafetyEventFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"moleculeId": &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"trialId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"severity":   &graphql.InputObjectFieldConfig{Type: severityEnum},
		"outcome":    &graphql.InputObjectFieldConfig{Type: outcomeEnum},
	},
})

var predictionFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "MLPredictionFilter",
	Fields: graphql.InputObjectConfigFieldMap{
		"moleculeId":    &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"modelType":     &graphql.InputObjectFieldConfig{Type: modelTypeEnum},
		"minConfidence": &graphql.InputObjectFieldConfig{Type: graphql.Float},
	},
})

var createMoleculeInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateMoleculeInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"smiles":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"formula":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"projectIds":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
	},
})

var updateMoleculeInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateMoleculeInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"formula":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"projectIds":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
	},
})

var createProjectInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateProjectInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"type":        &graphql.InputObjectFieldConfig{Type: projectTypeEnum},
		"status":      &graphql.InputObjectFieldConfig{Type: projectStatusEnum},
		"teamIds":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
	},
})

var updateProjectInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateProjectInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"type":        &graphql.InputObjectFieldConfig{Type: projectTypeEnum},
		"status":      &graphql.InputObjectFieldConfig{Type: projectStatusEnum},
		"teamIds":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
	},
})

var createTrialInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateClinicalTrialInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"phase":       &graphql.InputObjectFieldConfig{Type: trialPhaseEnum},
		"status":      &graphql.InputObjectFieldConfig{Type: trialStatusEnum},
		"moleculeIds": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		"enrollment":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"startDate":   &graphql.InputObjectFieldConfig{Type: dateTimeType},
	},
})

var updateTrialInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateClinicalTrialInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"phase":      &graphql.InputObjectFieldConfig{Type: trialPhaseEnum},
		"status":     &graphql.InputObjectFieldConfig{Type: trialStatusEnum},
		"enrollment": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"endDate":    &graphql.InputObjectFieldConfig{Type: dateTimeType},
	},
})

var createPaperInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateResearchPaperInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"abstract":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"authors":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"journal":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"doi":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"moleculeIds": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		"trialIds":    &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		"publishedAt": &graphql.InputObjectFieldConfig{Type: dateTimeType},
	},
})

var createSafetyEventInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateSafetyEventInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"moleculeId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"severity":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(severityEnum)},
		"trialId":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"outcome":     &graphql.InputObjectFieldConfig{Type: outcomeEnum},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var requestPredictionInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RequestPredictionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"moleculeId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"modelType":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(modelTypeEnum)},
	},
})

var generateInsightInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "GenerateInsightInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"paperIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		"title":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
