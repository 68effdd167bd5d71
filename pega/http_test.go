package pega

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casebridge-io/casebridge/config"
	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(cfg *config.PegaConfig)) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.PegaConfig{
		BaseURL: server.URL,
		Timeout: 2000,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewHTTPClient(cfg)
}

func TestCreateCase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cases", r.URL.Path)

		var body types.Map
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "HRSR-DepartmentChange", body["caseTypeID"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Map{"ID": "HRSR-1001"})
	}, nil)

	result, err := client.CreateCase(context.Background(), "HRSR-DepartmentChange", types.Map{"employeeId": "E1"})
	require.NoError(t, err)
	assert.Equal(t, "HRSR-1001", result["ID"])
}

func TestAPIKeyTakesPrecedence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer top-secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Map{})
	}, func(cfg *config.PegaConfig) {
		cfg.APIKey = "top-secret"
		cfg.Username = "svc"
		cfg.Password = "hunter2"
	})

	_, err := client.GetCase(context.Background(), "C-1")
	require.NoError(t, err)
}

func TestBasicAuth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "svc", username)
		assert.Equal(t, "hunter2", password)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Map{})
	}, func(cfg *config.PegaConfig) {
		cfg.Username = "svc"
		cfg.Password = "hunter2"
	})

	_, err := client.GetCase(context.Background(), "C-1")
	require.NoError(t, err)
}

func TestAddNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/C-1/actions/addNote", r.URL.Path)
		var body types.Map
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["content"])
		w.WriteHeader(http.StatusOK)
	}, nil)

	assert.NoError(t, client.AddNote(context.Background(), "C-1", "hello"))
}

func TestExecuteAction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cases/C-1/actions/approve", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}, nil)

	assert.NoError(t, client.ExecuteAction(context.Background(), "C-1", "approve", nil))
}

func TestUpstreamErrorOnHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	err := client.AddNote(context.Background(), "C-1", "hello")
	require.Error(t, err)

	var ue *errs.UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Contains(t, err.Error(), "502")
}
