package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/pkg/store"
)

var sortOrderEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortOrder",
	Values: graphql.EnumValueConfigMap{
		"ASC":  &graphql.EnumValueConfig{Value: "ASC"},
		"DESC": &graphql.EnumValueConfig{Value: "DESC"},
	},
})

var userRoleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "UserRole",
	Values: graphql.EnumValueConfigMap{
		"ADMIN":      &graphql.EnumValueConfig{Value: store.RoleAdmin},
		"RESEARCHER": &graphql.EnumValueConfig{Value: store.RoleResearcher},
		"CLINICIAN":  &graphql.EnumValueConfig{Value: store.RoleClinician},
		"VIEWER":     &graphql.EnumValueConfig{Value: store.RoleViewer},
	},
})

var projectStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ProjectStatus",
	Values: graphql.EnumValueConfigMap{
		"ACTIVE":    &graphql.EnumValueConfig{Value: store.ProjectActive},
		"ON_HOLD":   &graphql.EnumValueConfig{Value: store.ProjectOnHold},
		"COMPLETED": &graphql.EnumValueConfig{Value: store.ProjectCompleted},
		"ARCHIVED":  &graphql.EnumValueConfig{Value: store.ProjectArchived},
	},
})

var projectTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ProjectType",
	Values: graphql.EnumValueConfigMap{
		"RESEARCH":    &graphql.EnumValueConfig{Value: store.ProjectResearch},
		"DEVELOPMENT": &graphql.EnumValueConfig{Value: store.ProjectDevelopment},
		"CLINICAL":    &graphql.EnumValueConfig{Value: store.ProjectClinical},
		"REGULATORY":  &graphql.EnumValueConfig{Value: store.ProjectRegulatory},
	},
})

var trialPhaseEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "TrialPhase",
	Values: graphql.EnumValueConfigMap{
		"PRECLINICAL": &graphql.EnumValueConfig{Value: store.PhasePreclinical},
		"PHASE_1":     &graphql.EnumValueConfig{Value: store.Phase1},
		"PHASE_2":     &graphql.EnumValueConfig{Value: store.Phase2},
		"PHASE_3":     &graphql.EnumValueConfig{Value: store.Phase3},
		"PHASE_4":     &graphql.EnumValueConfig{Value: store.Phase4},
	},
})

var trialStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "TrialStatus",
	Values: graphql.EnumValueConfigMap{
		"PLANNED":    &graphql.EnumValueConfig{Value: store.TrialPlanned},
		"RECRUITING": &graphql.EnumValueConfig{Value: store.TrialRecruiting},
		"ACTIVE":     &graphql.EnumValueConfig{Value: store.TrialActive},
		"SUSPENDED":  &graphql.EnumValueConfig{Value: store.TrialSuspended},
		"COMPLETED":  &graphql.EnumValueConfig{Value: store.TrialCompleted},
		"TERMINATED": &graphql.EnumValueConfig{Value: store.TrialTerminated},
	},
})

var severityEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Severity",
	Values: graphql.EnumValueConfigMap{
		"MILD":             &graphql.EnumValueConfig{Value: store.SeverityMild},
		"MODERATE":         &graphql.EnumValueConfig{Value: store.SeverityModerate},
		"SEVERE":           &graphql.EnumValueConfig{Value: store.SeveritySevere},
		"LIFE_THREATENING": &graphql.EnumValueConfig{Value: store.SeverityLifeThreatening},
		"FATAL":            &graphql.EnumValueConfig{Value: store.SeverityFatal},
	},
})

var outcomeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Outcome",
	Values: graphql.EnumValueConfigMap{
		"RECOVERED":     &graphql.EnumValueConfig{Value: store.OutcomeRecovered},
		"RECOVERING":    &graphql.EnumValueConfig{Value: store.OutcomeRecovering},
		"NOT_RECOVERED": &graphql.EnumValueConfig{Value: store.OutcomeNotRecovered},
		"FATAL":         &graphql.EnumValueConfig{Value: store.OutcomeFatal},
		"UNKNOWN":       &graphql.EnumValueConfig{Value: store.OutcomeUnknown},
	},
})

var modelTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "ModelType",
	Values: graphql.EnumValueConfigMap{
		"SOLUBILITY":       &graphql.EnumValueConfig{Value: store.ModelSolubility},
		"TOXICITY":         &graphql.EnumValueConfig{Value: store.ModelToxicity},
		"BINDING_AFFINITY": &graphql.EnumValueConfig{Value: store.ModelBindingAffinity},
		"ADMET":            &graphql.EnumValueConfig{Value: store.ModelADMET},
	},
})
