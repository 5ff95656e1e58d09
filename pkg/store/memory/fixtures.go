package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmos/gateway/pkg/store"
)

// SeedDemo populates the stores with a small built-in dataset so the server
// is usable without external seed files.
func SeedDemo(ctx context.Context, stores *store.Stores) error {
	users := []*store.User{
		{ID: "user_admin", Email: "admin@pharmos.dev", Name: "Ada Okafor", Role: store.RoleAdmin, Department: "Platform"},
		{ID: "user_chen", Email: "chen@pharmos.dev", Name: "Li Chen", Role: store.RoleResearcher, Department: "Medicinal Chemistry"},
		{ID: "user_diaz", Email: "diaz@pharmos.dev", Name: "Marta Diaz", Role: store.RoleClinician, Department: "Clinical Ops"},
	}
	for _, u := range users {
		if _, err := stores.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
	}

	projects := []*store.Project{
		{
			ID: "proj_cardio", Name: "Cardiovascular Lead Optimization",
			Description: "Optimizing anti-thrombotic candidates",
			Status:      store.ProjectActive, Type: store.ProjectResearch,
			OwnerID: "user_chen", TeamIDs: []string{"user_chen", "user_diaz"},
		},
		{
			ID: "proj_analgesic", Name: "Next-Gen Analgesics",
			Description: "Non-opioid pain management program",
			Status:      store.ProjectActive, Type: store.ProjectDevelopment,
			OwnerID: "user_chen", TeamIDs: []string{"user_chen"},
		},
	}
	for _, p := range projects {
		if _, err := stores.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("seeding projects: %w", err)
		}
	}

	molecules := []*store.Molecule{
		{
			ID: "mol_aspirin", Name: "Aspirin", SMILES: "CC(=O)OC1=CC=CC=C1C(=O)O",
			Formula: "C9H8O4", Description: "Acetylsalicylic acid",
			ProjectIDs: []string{"proj_cardio"}, CreatedBy: "user_chen",
		},
		{
			ID: "mol_ibuprofen", Name: "Ibuprofen", SMILES: "CC(C)CC1=CC=C(C=C1)C(C)C(=O)O",
			Formula: "C13H18O2", Description: "Propionic acid derivative NSAID",
			ProjectIDs: []string{"proj_analgesic"}, CreatedBy: "user_chen",
		},
		{
			ID: "mol_paracetamol", Name: "Paracetamol", SMILES: "CC(=O)NC1=CC=C(C=C1)O",
			Formula: "C8H9NO2", Description: "Para-aminophenol analgesic",
			ProjectIDs: []string{"proj_analgesic"}, CreatedBy: "user_diaz",
		},
	}
	for _, m := range molecules {
		if _, err := stores.Molecules.Create(ctx, m); err != nil {
			return fmt.Errorf("seeding molecules: %w", err)
		}
	}

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	trials := []*store.ClinicalTrial{
		{
			ID: "trial_asp_1", Title: "ASP-201 Secondary Prevention Study",
			Phase: store.Phase2, Status: store.TrialRecruiting,
			ProjectID: "proj_cardio", MoleculeIDs: []string{"mol_aspirin"},
			Enrollment: 240, StartDate: &start,
		},
		{
			ID: "trial_ibu_1", Title: "IBU-110 Chronic Pain Comparison",
			Phase: store.Phase3, Status: store.TrialActive,
			ProjectID: "proj_analgesic", MoleculeIDs: []string{"mol_ibuprofen", "mol_paracetamol"},
			Enrollment: 680, StartDate: &start,
		},
	}
	for _, t := range trials {
		if _, err := stores.Trials.Create(ctx, t); err != nil {
			return fmt.Errorf("seeding trials: %w", err)
		}
	}

	published := time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC)
	papers := []*store.ResearchPaper{
		{
			ID: "paper_cox", Title: "COX Inhibition Profiles of Common NSAIDs",
			Abstract: "Comparative inhibition study across cyclooxygenase isoforms.",
			Authors:  []string{"L. Chen", "M. Diaz"}, Journal: "J Med Chem",
			DOI: "10.1000/pharmos.cox.2024", ProjectID: "proj_analgesic",
			MoleculeIDs: []string{"mol_aspirin", "mol_ibuprofen"},
			TrialIDs:    []string{"trial_ibu_1"}, PublishedAt: &published,
		},
	}
	for _, p := range papers {
		if _, err := stores.Papers.Create(ctx, p); err != nil {
			return fmt.Errorf("seeding papers: %w", err)
		}
	}

	events := []*store.SafetyEvent{
		{
			ID: "se_asp_gi", MoleculeID: "mol_aspirin", TrialID: "trial_asp_1",
			Severity: store.SeverityModerate, Outcome: store.OutcomeRecovered,
			Description: "Gastrointestinal irritation reported in week 3",
			ReportedBy:  "user_diaz",
		},
	}
	for _, e := range events {
		if _, err := stores.SafetyEvents.Create(ctx, e); err != nil {
			return fmt.Errorf("seeding safety events: %w", err)
		}
	}

	return nil
}
