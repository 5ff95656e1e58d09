package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pharmos/gateway/internal/auth"
	gql "github.com/pharmos/gateway/internal/graphql"
	"github.com/pharmos/gateway/internal/pubsub"
	"github.com/pharmos/gateway/internal/server"
	"github.com/pharmos/gateway/internal/telemetry"
	"github.com/pharmos/gateway/pkg/predictor/mock"
	"github.com/pharmos/gateway/pkg/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const testSecret = "server-test-secret"

// Prometheus collectors register globally; one set serves every test.
var testMetrics = telemetry.NewMetrics()

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	stores := memory.New()
	require.NoError(t, memory.SeedDemo(context.Background(), stores))

	logger := otelzap.New(zap.NewNop())
	schema, err := gql.NewSchema(gql.Deps{
		Stores:    stores,
		Bus:       pubsub.New(8),
		Predictor: mock.New(),
		Logger:    logger,
	})
	require.NoError(t, err)

	verifier, err := auth.NewVerifier(testSecret, 16)
	require.NoError(t, err)

	return server.New(server.Config{
		Port:           8080,
		LoaderWait:     time.Millisecond,
		LoaderMaxBatch: 100,
	}, schema, verifier, logger, testMetrics)
}

func signToken(t *testing.T, uid, role string) string {
	t.Helper()
	claims := auth.Claims{
		UID:  uid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func postGraphQL(t *testing.T, handler http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GraphQL_MethodNotAllowed(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_GraphQL_InvalidJSON(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := postGraphQL(t, handler, "", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GraphQL_InvalidToken(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := postGraphQL(t, handler, "garbage-token", `{"query": "{ me { id } }"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_GraphQL_AnonymousGetsErrorEntry(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := postGraphQL(t, handler, "", `{"query": "{ me { id } }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
}

func TestServer_GraphQL_AuthenticatedQuery(t *testing.T) {
	handler := newTestServer(t).Handler()
	token := signToken(t, "user_chen", auth.RoleResearcher)

	rec := postGraphQL(t, handler, token, `{"query": "{ me { id email } }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Me struct {
				ID    string `json:"id"`
				Email string `json:"email"`
			} `json:"me"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user_chen", resp.Data.Me.ID)
	assert.Equal(t, "chen@pharmos.dev", resp.Data.Me.Email)
}

func TestServer_GraphQL_MutationRoundTrip(t *testing.T) {
	handler := newTestServer(t).Handler()
	token := signToken(t, "user_chen", auth.RoleResearcher)

	body := `{"query": "mutation { createMolecule(input: {name: \"Ketoprofen\", smiles: \"CC(C1=CC(=CC=C1)C(=O)C2=CC=CC=C2)C(=O)O\"}) { id name } }"}`
	rec := postGraphQL(t, handler, token, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			CreateMolecule struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"createMolecule"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Data.CreateMolecule.ID)
	assert.Equal(t, "Ketoprofen", resp.Data.CreateMolecule.Name)
}

func TestServer_GraphQL_Variables(t *testing.T) {
	handler := newTestServer(t).Handler()
	token := signToken(t, "user_chen", auth.RoleResearcher)

	body := `{"query": "query Mol($id: ID!) { molecule(id: $id) { name } }", "variables": {"id": "mol_aspirin"}, "operationName": "Mol"}`
	rec := postGraphQL(t, handler, token, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Molecule struct {
				Name string `json:"name"`
			} `json:"molecule"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Aspirin", resp.Data.Molecule.Name)
}
