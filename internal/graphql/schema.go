// Package graphql holds the schema/type registry and the resolver layer of
// the research gateway. All cross-entity relations resolve through the
// request's loaders; mutations publish onto the event bus after the
// repository acknowledges the write.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/pharmos/gateway/internal/auth"
	"github.com/pharmos/gateway/internal/loader"
	"github.com/pharmos/gateway/internal/pubsub"
	"github.com/pharmos/gateway/internal/telemetry"
	"github.com/pharmos/gateway/pkg/predictor"
	"github.com/pharmos/gateway/pkg/store"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// Deps are the collaborators the resolver layer orchestrates.
type Deps struct {
	Stores    *store.Stores
	Bus       *pubsub.Bus
	Predictor predictor.Provider
	Logger    *otelzap.Logger
	Metrics   *telemetry.Metrics
}

// Schema is the executable GraphQL schema plus the dependencies its
// resolvers close over.
type Schema struct {
	stores    *store.Stores
	bus       *pubsub.Bus
	predictor predictor.Provider
	logger    *otelzap.Logger
	metrics   *telemetry.Metrics

	graph graphql.Schema

	userType        *graphql.Object
	moleculeType    *graphql.Object
	projectType     *graphql.Object
	trialType       *graphql.Object
	paperType       *graphql.Object
	safetyEventType *graphql.Object
	predictionType  *graphql.Object
	insightType     *graphql.Object
}

// NewSchema builds the full type registry and wires every resolver.
func NewSchema(deps Deps) (*Schema, error) {
	s := &Schema{
		stores:    deps.Stores,
		bus:       deps.Bus,
		predictor: deps.Predictor,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}

	s.userType = s.defineUserType()
	s.moleculeType = s.defineMoleculeType()
	s.projectType = s.defineProjectType()
	s.trialType = s.defineClinicalTrialType()
	s.paperType = s.defineResearchPaperType()
	s.safetyEventType = s.defineSafetyEventType()
	s.predictionType = s.defineMLPredictionType()
	s.insightType = s.defineResearchInsightType()
	s.wireRelations()

	graph, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:        s.defineQuery(),
		Mutation:     s.defineMutation(),
		Subscription: s.defineSubscription(),
	})
	if err != nil {
		return nil, err
	}
	s.graph = graph
	return s, nil
}

// Graph returns the executable schema.
func (s *Schema) Graph() graphql.Schema {
	return s.graph
}

// requireIdentity enforces the identity guard every resolver starts with.
func requireIdentity(ctx context.Context) (*auth.Identity, error) {
	if ident := auth.FromContext(ctx); ident != nil {
		return ident, nil
	}
	return nil, ErrUnauthenticated
}

// requireRole additionally enforces a role. Admin satisfies any
// requirement; other roles must match exactly.
func requireRole(ctx context.Context, role string) (*auth.Identity, error) {
	ident, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !ident.HasRole(role) {
		return nil, NewForbidden(role)
	}
	return ident, nil
}

// loadersFrom fetches the request-scoped loaders.
func loadersFrom(ctx context.Context) (*loader.Loaders, error) {
	if l := loader.FromContext(ctx); l != nil {
		return l, nil
	}
	return nil, &Error{Code: CodeBatchFetchFailure, Message: "no loaders attached to request context"}
}

// thunk adapts a typed loader thunk to the deferred-resolution shape the
// executor understands. Returning it lets sibling resolvers enqueue their
// keys before any batch flushes.
func thunk[V any](get func() (V, error)) func() (interface{}, error) {
	return func() (interface{}, error) { return get() }
}

func (s *Schema) observeBatch(name string, size int) {
	if s.metrics != nil {
		s.metrics.ObserveBatch(name, size)
	}
}

// NewLoaders builds a fresh per-request loader set against the schema's
// stores. The server calls this once per incoming request.
func (s *Schema) NewLoaders(cfg loader.Config) *loader.Loaders {
	return loader.NewLoaders(s.stores, cfg, s.observeBatch)
}
