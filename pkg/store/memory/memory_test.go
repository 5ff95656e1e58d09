package memory_test

import (
	"context"
	"testing"

	"github.com/pharmos/gateway/pkg/store"
	"github.com/pharmos/gateway/pkg/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_CreateMintsID(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()

	created, err := c.Create(ctx, &store.Molecule{Name: "Aspirin", SMILES: "CC(=O)OC1=CC=CC=C1C(=O)O"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCollection_CreateRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()

	_, err := c.Create(ctx, &store.Molecule{ID: "mol_1", Name: "A", SMILES: "C"})
	require.NoError(t, err)

	_, err = c.Create(ctx, &store.Molecule{ID: "mol_1", Name: "B", SMILES: "CC"})
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestCollection_FindByIDMissingIsNil(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()

	got, err := c.FindByID(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCollection_FindByIDsOrderAndHoles(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()
	for _, id := range []string{"m1", "m2", "m3"} {
		_, err := c.Create(ctx, &store.Molecule{ID: id, Name: id, SMILES: "C"})
		require.NoError(t, err)
	}

	got, err := c.FindByIDs(ctx, []string{"m3", "nope", "m1"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "m3", got[0].ID)
	assert.Nil(t, got[1])
	assert.Equal(t, "m1", got[2].ID)
}

func TestCollection_UpdateMergesAndMissingErrs(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()
	_, err := c.Create(ctx, &store.Molecule{ID: "m1", Name: "Old", SMILES: "C", Formula: "CH4"})
	require.NoError(t, err)

	updated, err := c.Update(ctx, "m1", func(m *store.Molecule) {
		m.Name = "New"
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "CH4", updated.Formula, "unpatched fields survive")
	assert.Equal(t, "m1", updated.ID)

	_, err = c.Update(ctx, "absent", func(m *store.Molecule) {})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollection_ReadsAreIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()
	_, err := c.Create(ctx, &store.Molecule{ID: "m1", Name: "A", SMILES: "C", ProjectIDs: []string{"p1"}})
	require.NoError(t, err)

	first, err := c.FindByID(ctx, "m1")
	require.NoError(t, err)
	first.Name = "mutated"
	first.ProjectIDs[0] = "hijacked"

	second, err := c.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "A", second.Name)
	assert.Equal(t, []string{"p1"}, second.ProjectIDs)
}

func TestCollection_Delete(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.Molecule]()
	_, err := c.Create(ctx, &store.Molecule{ID: "m1", Name: "A", SMILES: "C"})
	require.NoError(t, err)

	ok, err := c.Delete(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Delete(ctx, "m1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChildrenByParentIDs_SingleScan(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection[*store.ClinicalTrial]()
	trials := []*store.ClinicalTrial{
		{ID: "t1", Title: "One", ProjectID: "p1"},
		{ID: "t2", Title: "Two", ProjectID: "p1"},
		{ID: "t3", Title: "Three", ProjectID: "p2"},
	}
	for _, tr := range trials {
		_, err := c.Create(ctx, tr)
		require.NoError(t, err)
	}

	grouped, err := store.ChildrenByParentIDs(ctx, c, []string{"p2", "p1", "p9"}, func(tr *store.ClinicalTrial) []string {
		return []string{tr.ProjectID}
	})
	require.NoError(t, err)
	require.Len(t, grouped, 3)
	require.Len(t, grouped[0], 1)
	assert.Equal(t, "t3", grouped[0][0].ID)
	assert.Len(t, grouped[1], 2)
	assert.NotNil(t, grouped[2])
	assert.Empty(t, grouped[2], "unknown parent answers an empty slice, not nil")
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	require.NoError(t, memory.SeedDemo(ctx, stores))

	users, err := stores.Users.FindAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, users)

	mol, err := stores.Molecules.FindByID(ctx, "mol_aspirin")
	require.NoError(t, err)
	require.NotNil(t, mol)
	assert.Equal(t, "CC(=O)OC1=CC=CC=C1C(=O)O", mol.SMILES)

	projects, err := stores.Projects.FindAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, projects)
}
