package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/casebridge-io/casebridge/api"
	"github.com/casebridge-io/casebridge/config"
	"github.com/casebridge-io/casebridge/db"
	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/db/migrator"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/handlers"
	"github.com/casebridge-io/casebridge/pega"
	"github.com/casebridge-io/casebridge/pipeline"
	"github.com/casebridge-io/casebridge/services/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	*httptest.Server
	db *db.DB
}

// newTestServer wires the full stack over a temp sqlite file with a
// synchronous scheduler, so processing completes before intake responds.
func newTestServer(t *testing.T, client pega.Client) *testServer {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "events.db"),
		BusyTimeout: 5000,
		MaxPoolSize: 5,
	}
	sqlDB, err := db.NewSqlDB(cfg)
	require.NoError(t, err)
	require.NoError(t, migrator.New(sqlDB).Up())
	d := db.NewDB(sqlDB, zap.S())

	disp := dispatcher.New(client)
	handlers.RegisterAll(disp)
	scheduler := pipeline.NewSyncScheduler(pipeline.NewPipeline(d, disp))

	a := api.NewAPI(api.Options{
		DB:        d,
		Intake:    intake.NewService(d, scheduler),
		Scheduler: scheduler,
		Client:    client,
	})

	server := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		server.Close()
		_ = d.Close()
	})
	return &testServer{Server: server, db: d}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var data map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&data)
	return resp, data
}

func (s *testServer) doRaw(t *testing.T, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, s.URL+path, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var data map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&data)
	return resp, data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	resp, data := s.do(t, "GET", "/health", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", data["status"])
}

func TestNotFoundRoute(t *testing.T) {
	s := newTestServer(t, nil)
	resp, data := s.do(t, "GET", "/nope", nil)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "not found", data["message"])
}

func TestWebhookEndToEnd(t *testing.T) {
	s := newTestServer(t, nil)

	resp, data := s.do(t, "POST", "/webhook/pega", map[string]interface{}{
		"caseId":     "C-1",
		"event":      "employee_onboarding",
		"employeeId": "E1",
		"department": "Sales",
	})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "received", data["status"])
	assert.Equal(t, "event accepted for processing", data["message"])
	eventID := int64(data["eventId"].(float64))
	require.Positive(t, eventID)

	resp, record := s.do(t, "GET", fmt.Sprintf("/events/%d", eventID), nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "processed", record["status"])
	result := record["processing_result"].(map[string]interface{})
	assert.Equal(t, "employee_onboarding", result["event_type"])
}

func TestWebhookMissingCaseID(t *testing.T) {
	s := newTestServer(t, nil)

	resp, data := s.do(t, "POST", "/webhook/pega", map[string]interface{}{"event": "x"})
	assert.Equal(t, 400, resp.StatusCode)

	fields := data["error"].(map[string]interface{})
	assert.Equal(t, "required field missing", fields["caseId"])
}

func TestWebhookInvalidJSON(t *testing.T) {
	s := newTestServer(t, nil)
	resp, data := s.doRaw(t, "POST", "/webhook/pega", `{broken`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "invalid JSON", data["message"])
}

func TestWebhookConcurrent(t *testing.T) {
	s := newTestServer(t, nil)

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, data := s.do(t, "POST", "/webhook/pega", map[string]interface{}{
				"caseId": fmt.Sprintf("C-%d", i),
				"event":  "role_change",
			})
			if assert.Equal(t, 200, resp.StatusCode) {
				ids <- int64(data["eventId"].(float64))
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, n)

	resp, data := s.do(t, "GET", "/events?limit=100", nil)
	_ = data
	require.Equal(t, 200, resp.StatusCode)
}

func TestListEvents(t *testing.T) {
	s := newTestServer(t, nil)

	for i := 0; i < 15; i++ {
		eventType := "role_change"
		if i%2 == 0 {
			eventType = "risk_alert"
		}
		resp, _ := s.do(t, "POST", "/webhook/pega", map[string]interface{}{
			"caseId": fmt.Sprintf("C-%d", i%3),
			"event":  eventType,
		})
		require.Equal(t, 200, resp.StatusCode)
	}

	list := s.listEvents(t, "/events")
	assert.Len(t, list, 10) // default limit

	// newest first
	first := int64(list[0]["id"].(float64))
	second := int64(list[1]["id"].(float64))
	assert.Greater(t, first, second)

	list = s.listEvents(t, "/events?limit=101")
	assert.Len(t, list, 15) // clamped to 100

	list = s.listEvents(t, "/events?limit=100&event=role_change")
	assert.Len(t, list, 7)
	for _, record := range list {
		assert.Equal(t, "role_change", record["event"])
	}

	list = s.listEvents(t, "/events?limit=100&case_id=C-0")
	assert.Len(t, list, 5)

	list = s.listEvents(t, "/events?limit=100&status=processed")
	assert.Len(t, list, 15)
}

func (s *testServer) listEvents(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	resp, err := http.Get(s.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func TestGetEventNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	resp, data := s.do(t, "GET", "/events/999", nil)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "not found", data["message"])
}

func TestReprocess(t *testing.T) {
	s := newTestServer(t, nil)

	// unknown handler type terminates as processed, so reprocess is rejected
	resp, data := s.do(t, "POST", "/webhook/pega", map[string]interface{}{
		"caseId": "C-1",
		"event":  "risk_alert",
	})
	require.Equal(t, 200, resp.StatusCode)
	eventID := int64(data["eventId"].(float64))

	resp, data = s.do(t, "POST", fmt.Sprintf("/events/%d/reprocess", eventID), nil)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "cannot reprocess event in status 'processed'", data["message"])

	resp, _ = s.do(t, "POST", "/events/999/reprocess", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestReprocessFailedEvent(t *testing.T) {
	s := newTestServer(t, nil)

	// department_change with high risk and no pega client still processes;
	// force a failure by marking the event failed directly.
	resp, data := s.do(t, "POST", "/webhook/pega", map[string]interface{}{
		"caseId": "C-1",
		"event":  "role_change",
	})
	require.Equal(t, 200, resp.StatusCode)
	eventID := int64(data["eventId"].(float64))

	require.NoError(t, s.db.Events.Terminate(t.Context(), eventID, entities.StatusFailed, nil))

	resp, data = s.do(t, "POST", fmt.Sprintf("/events/%d/reprocess", eventID), nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "queued", data["status"])

	resp, record := s.do(t, "GET", fmt.Sprintf("/events/%d", eventID), nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "processed", record["status"])
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	for i := 0; i < 3; i++ {
		s.do(t, "POST", "/webhook/pega", map[string]interface{}{"caseId": "C-1", "event": "role_change"})
	}
	s.do(t, "POST", "/webhook/pega", map[string]interface{}{"caseId": "C-2", "event": "risk_alert"})

	resp, data := s.do(t, "GET", "/metrics", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.EqualValues(t, 4, data["total"])
	assert.NotEmpty(t, data["since"])

	byEvent := data["by_event"].([]interface{})
	require.Len(t, byEvent, 2)
	top := byEvent[0].(map[string]interface{})
	assert.Equal(t, "role_change", top["event"])
	assert.EqualValues(t, 3, top["count"])
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t, nil)

	s.do(t, "POST", "/webhook/pega", map[string]interface{}{"caseId": "C-1", "event": "role_change"})
	s.do(t, "POST", "/webhook/pega", map[string]interface{}{"caseId": "C-1", "event": "risk_alert"})

	resp, data := s.do(t, "GET", "/dashboard", nil)
	require.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, "24h", data["period"])
	assert.EqualValues(t, 2, data["total_events"])
	assert.Equal(t, false, data["pega_connection"])

	statuses := data["status_breakdown"].(map[string]interface{})
	assert.EqualValues(t, 2, statuses["processed"])

	events := data["event_breakdown"].(map[string]interface{})
	assert.EqualValues(t, 1, events["role_change"])

	trend := data["daily_trend"].([]interface{})
	require.Len(t, trend, 7)
	today := trend[6].(map[string]interface{})
	assert.EqualValues(t, 2, today["count"])
}

func TestPegaProxyUnconfigured(t *testing.T) {
	s := newTestServer(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{"POST", "/pega/case?case_type=HR"},
		{"GET", "/pega/case/C-1"},
		{"PUT", "/pega/case/C-1"},
		{"POST", "/pega/case/C-1/note"},
		{"POST", "/pega/case/C-1/action/Approve"},
	}
	for _, p := range paths {
		resp, data := s.do(t, p.method, p.path, nil)
		assert.Equal(t, 503, resp.StatusCode, p.path)
		assert.Equal(t, "pega client is not configured", data["message"])
	}
}

func TestPegaProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ID":"HR-42"}`))
	}))
	defer upstream.Close()

	client := pega.NewHTTPClient(config.PegaConfig{BaseURL: upstream.URL, Timeout: 5000})
	s := newTestServer(t, client)

	resp, data := s.do(t, "POST", "/pega/case?case_type=HR", map[string]interface{}{"name": "n"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "HR-42", data["ID"])

	resp, data = s.do(t, "GET", "/pega/case/HR-42", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "HR-42", data["ID"])

	resp, _ = s.do(t, "PUT", "/pega/case/HR-42", map[string]interface{}{"stage": "review"})
	assert.Equal(t, 200, resp.StatusCode)

	resp, data = s.do(t, "POST", "/pega/case/HR-42/note", map[string]interface{}{"note": "hello"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", data["status"])

	resp, _ = s.do(t, "POST", "/pega/case/HR-42/action/Approve", nil)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestPegaProxyValidation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	client := pega.NewHTTPClient(config.PegaConfig{BaseURL: upstream.URL, Timeout: 5000})
	s := newTestServer(t, client)

	resp, data := s.do(t, "POST", "/pega/case", nil)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "case_type is required", data["message"])

	resp, data = s.do(t, "POST", "/pega/case/HR-1/note", map[string]interface{}{})
	assert.Equal(t, 400, resp.StatusCode)
	fields := data["error"].(map[string]interface{})
	assert.Equal(t, "required field missing", fields["note"])
}
