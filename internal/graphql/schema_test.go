package graphql_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	graphqlgo "github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/auth"
	gql "github.com/pharmos/gateway/internal/graphql"
	"github.com/pharmos/gateway/internal/loader"
	"github.com/pharmos/gateway/internal/pubsub"
	"github.com/pharmos/gateway/pkg/predictor/mock"
	"github.com/pharmos/gateway/pkg/store"
	"github.com/pharmos/gateway/pkg/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type fixture struct {
	schema *gql.Schema
	stores *store.Stores
	bus    *pubsub.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	stores := memory.New()
	require.NoError(t, memory.SeedDemo(context.Background(), stores))

	bus := pubsub.New(8)
	schema, err := gql.NewSchema(gql.Deps{
		Stores:    stores,
		Bus:       bus,
		Predictor: mock.New(),
		Logger:    otelzap.New(zap.NewNop()),
	})
	require.NoError(t, err)

	return &fixture{schema: schema, stores: stores, bus: bus}
}

func (f *fixture) ctx(ident *auth.Identity) context.Context {
	ctx := context.Background()
	if ident != nil {
		ctx = auth.WithIdentity(ctx, ident)
	}
	loaders := f.schema.NewLoaders(loader.Config{Wait: 2 * time.Millisecond, MaxBatch: 100})
	return loader.NewContext(ctx, loaders)
}

func (f *fixture) exec(ident *auth.Identity, query string, vars map[string]interface{}) *graphqlgo.Result {
	return graphqlgo.Do(graphqlgo.Params{
		Schema:         f.schema.Graph(),
		RequestString:  query,
		VariableValues: vars,
		Context:        f.ctx(ident),
	})
}

var (
	researcher = &auth.Identity{ID: "user_chen", Email: "chen@pharmos.example", Role: auth.RoleResearcher}
	admin      = &auth.Identity{ID: "user_admin", Email: "admin@pharmos.example", Role: auth.RoleAdmin}
	viewer     = &auth.Identity{ID: "user_diaz", Email: "diaz@pharmos.example", Role: auth.RoleViewer}
)

func data(t *testing.T, result *graphqlgo.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, result.Errors, "unexpected GraphQL errors: %v", result.Errors)
	m, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return m
}

func TestQuery_RequiresIdentity(t *testing.T) {
	f := newFixture(t)

	result := f.exec(nil, `{ molecule(id: "mol_aspirin") { id } }`, nil)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "UNAUTHENTICATED", result.Errors[0].Extensions["code"])
}

func TestQuery_Me(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `{ me { id email } }`, nil)
	d := data(t, result)
	me := d["me"].(map[string]interface{})
	assert.Equal(t, "user_chen", me["id"])
}

func TestQuery_MoleculeByID(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `{ molecule(id: "mol_aspirin") { id name smiles } }`, nil)
	d := data(t, result)
	mol := d["molecule"].(map[string]interface{})
	assert.Equal(t, "Aspirin", mol["name"])
	assert.Equal(t, "CC(=O)OC1=CC=CC=C1C(=O)O", mol["smiles"])
}

func TestQuery_MissingMoleculeIsNull(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `{ molecule(id: "mol_nope") { id } }`, nil)
	d := data(t, result)
	assert.Nil(t, d["molecule"])
}

func TestQuery_PaginationShape(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `{
		molecules(pagination: {page: 1, limit: 2, sortBy: "name", sortOrder: ASC}) {
			data { id name }
			pagination { page limit total totalPages hasNextPage hasPreviousPage }
		}
	}`, nil)
	d := data(t, result)
	page := d["molecules"].(map[string]interface{})
	items := page["data"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Aspirin", items[0].(map[string]interface{})["name"])

	meta := page["pagination"].(map[string]interface{})
	assert.Equal(t, 1, meta["page"])
	assert.Equal(t, 2, meta["limit"])
	assert.Equal(t, 3, meta["total"])
	assert.Equal(t, 2, meta["totalPages"])
	assert.Equal(t, true, meta["hasNextPage"])
	assert.Equal(t, false, meta["hasPreviousPage"])
}

func TestQuery_FilteredProjects(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `{
		projects(filter: {status: ACTIVE, type: RESEARCH}) {
			data { id status type }
			pagination { total }
		}
	}`, nil)
	d := data(t, result)
	page := d["projects"].(map[string]interface{})
	for _, item := range page["data"].([]interface{}) {
		project := item.(map[string]interface{})
		assert.Equal(t, "ACTIVE", project["status"])
		assert.Equal(t, "RESEARCH", project["type"])
	}
}

func TestQuery_SearchMolecules(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `{
		searchMolecules(query: "aspirin") {
			data { id name }
			pagination { total }
		}
	}`, nil)
	d := data(t, result)
	page := d["searchMolecules"].(map[string]interface{})
	items := page["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "mol_aspirin", items[0].(map[string]interface{})["id"])
}

// countingUsers wraps the user repository to count batched lookups.
type countingUsers struct {
	store.Repository[*store.User]
	batchCalls *int32
	keyCount   *int32
}

func (c countingUsers) FindByIDs(ctx context.Context, ids []string) ([]*store.User, error) {
	atomic.AddInt32(c.batchCalls, 1)
	atomic.AddInt32(c.keyCount, int32(len(ids)))
	return c.Repository.FindByIDs(ctx, ids)
}

func TestRelations_SiblingResolversShareOneBatch(t *testing.T) {
	f := newFixture(t)

	var batchCalls, keyCount int32
	f.stores.Users = countingUsers{
		Repository: f.stores.Users,
		batchCalls: &batchCalls,
		keyCount:   &keyCount,
	}

	result := f.exec(researcher, `{
		molecules {
			data {
				id
				createdBy { id email }
			}
		}
	}`, nil)
	d := data(t, result)
	items := d["molecules"].(map[string]interface{})["data"].([]interface{})
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotNil(t, item.(map[string]interface{})["createdBy"])
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&batchCalls),
		"every sibling createdBy must resolve through a single batched fetch")
}

func TestRelations_DanglingReferenceResolvesNull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.stores.SafetyEvents.Create(ctx, &store.SafetyEvent{
		ID:         "se_orphan",
		MoleculeID: "mol_deleted",
		Severity:   store.SeverityMild,
		Outcome:    store.OutcomeUnknown,
	})
	require.NoError(t, err)

	result := f.exec(researcher, `{
		safetyEvents {
			data { id molecule { id } }
		}
	}`, nil)
	d := data(t, result)
	items := d["safetyEvents"].(map[string]interface{})["data"].([]interface{})

	var orphanSeen bool
	for _, item := range items {
		ev := item.(map[string]interface{})
		if ev["id"] == "se_orphan" {
			orphanSeen = true
			assert.Nil(t, ev["molecule"], "dangling molecule reference must resolve to null")
		}
	}
	assert.True(t, orphanSeen)
}

func TestMutation_CreateMolecule(t *testing.T) {
	f := newFixture(t)

	sub := f.bus.Subscribe(nil, pubsub.TopicMoleculeCreated)
	defer sub.Unsubscribe()

	result := f.exec(researcher, `mutation {
		createMolecule(input: {name: "Naproxen", smiles: "CC(C1=CC2=CC(=CC=C2C=C1)OC)C(=O)O"}) {
			id name smiles createdBy { id }
		}
	}`, nil)
	d := data(t, result)
	mol := d["createMolecule"].(map[string]interface{})
	assert.Equal(t, "Naproxen", mol["name"])
	assert.NotEmpty(t, mol["id"])
	assert.Equal(t, "user_chen", mol["createdBy"].(map[string]interface{})["id"])

	select {
	case ev := <-sub.C:
		created := ev.Payload.(*store.Molecule)
		assert.Equal(t, "Naproxen", created.Name)
	case <-time.After(time.Second):
		t.Fatal("expected a MOLECULE_CREATED event after the write")
	}
}

func TestMutation_CreateMoleculeRejectsBlankName(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `mutation {
		createMolecule(input: {name: "   ", smiles: "C"}) { id }
	}`, nil)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "INVALID_INPUT", result.Errors[0].Extensions["code"])
}

func TestMutation_ViewerIsForbidden(t *testing.T) {
	f := newFixture(t)

	result := f.exec(viewer, `mutation {
		createMolecule(input: {name: "X", smiles: "C"}) { id }
	}`, nil)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "FORBIDDEN", result.Errors[0].Extensions["code"])
}

func TestMutation_UpdateMoleculeMerges(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `mutation {
		updateMolecule(id: "mol_aspirin", input: {description: "updated description"}) {
			id name description
		}
	}`, nil)
	d := data(t, result)
	mol := d["updateMolecule"].(map[string]interface{})
	assert.Equal(t, "Aspirin", mol["name"], "unpatched fields survive")
	assert.Equal(t, "updated description", mol["description"])
}

func TestMutation_UpdateMissingMolecule(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `mutation {
		updateMolecule(id: "mol_nope", input: {description: "x"}) { id }
	}`, nil)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "INVALID_INPUT", result.Errors[0].Extensions["code"])
}

func TestMutation_DeleteMoleculeRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `mutation { deleteMolecule(id: "mol_aspirin") }`, nil)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "FORBIDDEN", result.Errors[0].Extensions["code"])

	result = f.exec(admin, `mutation { deleteMolecule(id: "mol_aspirin") }`, nil)
	d := data(t, result)
	assert.Equal(t, true, d["deleteMolecule"])

	// Soft orphan: the trial that referenced the molecule still resolves,
	// with the missing molecule dropped from its list.
	result = f.exec(researcher, `{
		clinicalTrial(id: "trial_asp_1") { id molecules { id } }
	}`, nil)
	d = data(t, result)
	trial := d["clinicalTrial"].(map[string]interface{})
	require.NotNil(t, trial)
	for _, m := range trial["molecules"].([]interface{}) {
		assert.NotEqual(t, "mol_aspirin", m.(map[string]interface{})["id"])
	}
}

func TestMutation_RequestPrediction(t *testing.T) {
	f := newFixture(t)

	sub := f.bus.Subscribe(nil, pubsub.TopicPredictionCompleted)
	defer sub.Unsubscribe()

	result := f.exec(researcher, `mutation {
		requestPrediction(input: {moleculeId: "mol_aspirin", modelType: SOLUBILITY}) {
			id modelType confidence molecule { id }
		}
	}`, nil)
	d := data(t, result)
	pred := d["requestPrediction"].(map[string]interface{})
	assert.Equal(t, "SOLUBILITY", pred["modelType"])
	assert.Equal(t, "mol_aspirin", pred["molecule"].(map[string]interface{})["id"])
	confidence := pred["confidence"].(float64)
	assert.GreaterOrEqual(t, confidence, 0.5)
	assert.LessOrEqual(t, confidence, 0.95)

	select {
	case ev := <-sub.C:
		assert.Equal(t, pubsub.TopicPredictionCompleted, ev.Topic)
	case <-time.After(time.Second):
		t.Fatal("expected a PREDICTION_COMPLETED event")
	}
}

func TestMutation_RequestPredictionUnknownMolecule(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `mutation {
		requestPrediction(input: {moleculeId: "mol_nope", modelType: TOXICITY}) { id }
	}`, nil)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "INVALID_INPUT", result.Errors[0].Extensions["code"])
}

func TestMutation_GenerateInsight(t *testing.T) {
	f := newFixture(t)

	result := f.exec(researcher, `mutation {
		generateInsight(input: {paperIds: ["paper_cox"]}) {
			id title confidence papers { id }
		}
	}`, nil)
	d := data(t, result)
	insight := d["generateInsight"].(map[string]interface{})
	assert.NotEmpty(t, insight["title"])
	papers := insight["papers"].([]interface{})
	require.Len(t, papers, 1)
	assert.Equal(t, "paper_cox", papers[0].(map[string]interface{})["id"])
}

func TestSubscription_MoleculeCreatedDelivery(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(f.ctx(researcher))
	defer cancel()

	results := graphqlgo.Subscribe(graphqlgo.Params{
		Schema:        f.schema.Graph(),
		RequestString: `subscription { moleculeCreated { id name } }`,
		Context:       ctx,
	})

	// The subscription attaches asynchronously; publish until the event
	// lands or the deadline passes.
	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case result, ok := <-results:
			require.True(t, ok)
			d := data(t, result)
			mol := d["moleculeCreated"].(map[string]interface{})
			assert.Equal(t, "mol_new", mol["id"])
			assert.Equal(t, "Celecoxib", mol["name"])
			return
		case <-tick.C:
			f.bus.Publish(pubsub.TopicMoleculeCreated, &store.Molecule{ID: "mol_new", Name: "Celecoxib"})
		case <-deadline:
			t.Fatal("subscription never delivered the published event")
		}
	}
}

func TestSubscription_PredicateFiltersByID(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(f.ctx(researcher))
	defer cancel()

	results := graphqlgo.Subscribe(graphqlgo.Params{
		Schema:        f.schema.Graph(),
		RequestString: `subscription { moleculeUpdated(id: "mol_aspirin") { id } }`,
		Context:       ctx,
	})

	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case result, ok := <-results:
			require.True(t, ok)
			d := data(t, result)
			mol := d["moleculeUpdated"].(map[string]interface{})
			assert.Equal(t, "mol_aspirin", mol["id"],
				"events for other molecules must be filtered out")
			return
		case <-tick.C:
			f.bus.Publish(pubsub.TopicMoleculeUpdated, &store.Molecule{ID: "mol_ibuprofen"})
			f.bus.Publish(pubsub.TopicMoleculeUpdated, &store.Molecule{ID: "mol_aspirin"})
		case <-deadline:
			t.Fatal("subscription never delivered the matching event")
		}
	}
}

func TestSubscription_RequiresIdentity(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(f.ctx(nil))
	defer cancel()

	results := graphqlgo.Subscribe(graphqlgo.Params{
		Schema:        f.schema.Graph(),
		RequestString: `subscription { moleculeCreated { id } }`,
		Context:       ctx,
	})

	select {
	case result, ok := <-results:
		require.True(t, ok)
		require.NotEmpty(t, result.Errors)
	case <-time.After(2 * time.Second):
		t.Fatal("expected an error result for the anonymous subscriber")
	}
}
