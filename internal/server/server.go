// Package server exposes the gateway over HTTP: a JSON POST endpoint for
// queries and mutations, a websocket endpoint for subscriptions, plus
// health and metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pharmos/gateway/internal/auth"
	gql "github.com/pharmos/gateway/internal/graphql"
	"github.com/pharmos/gateway/internal/loader"
	"github.com/pharmos/gateway/internal/telemetry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Config holds server configuration.
type Config struct {
	Port           int
	LoaderWait     time.Duration
	LoaderMaxBatch int
}

// Server is the HTTP surface of the gateway.
type Server struct {
	cfg      Config
	schema   *gql.Schema
	verifier *auth.Verifier
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// New creates a server around an executable schema.
func New(cfg Config, schema *gql.Schema, verifier *auth.Verifier, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		schema:   schema,
		verifier: verifier,
		logger:   logger,
		metrics:  metrics,
	}
}

// Handler returns the full route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/graphql/ws", s.handleWebsocket)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, "Method not allowed, use POST")
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	ident, err := s.verifier.FromHeader(r.Header.Get("Authorization"))
	if err != nil {
		writeErrors(w, http.StatusUnauthorized, "invalid authorization token")
		return
	}

	ctx := s.requestContext(r.Context(), ident)

	start := time.Now()
	result := graphql.Do(graphql.Params{
		Schema:         s.schema.Graph(),
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	operation := req.OperationName
	if operation == "" {
		operation = "unnamed"
	}
	status := "ok"
	if len(result.Errors) > 0 {
		status = "error"
	}
	s.metrics.RecordRequest(operation, status, time.Since(start).Seconds())

	json.NewEncoder(w).Encode(result)
}

// requestContext attaches the caller identity and a fresh loader set. Loaders
// are never shared between requests; each carries its own cache.
func (s *Server) requestContext(ctx context.Context, ident *auth.Identity) context.Context {
	if ident != nil {
		ctx = auth.WithIdentity(ctx, ident)
	}
	loaders := s.schema.NewLoaders(loader.Config{
		Wait:     s.cfg.LoaderWait,
		MaxBatch: s.cfg.LoaderMaxBatch,
	})
	return loader.NewContext(ctx, loaders)
}

func writeErrors(w http.ResponseWriter, code int, messages ...string) {
	w.WriteHeader(code)
	errs := make([]gqlerrors.FormattedError, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, gqlerrors.FormattedError{Message: msg})
	}
	json.NewEncoder(w).Encode(graphql.Result{Errors: errs})
}
