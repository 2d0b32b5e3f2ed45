package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/salomonMuriel/schedule-creator/internal/config"
	"github.com/salomonMuriel/schedule-creator/internal/serverapp"
)

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_EmbeddedStaticAndRootRedirect(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	staticRes := app.request(http.MethodGet, "/static/js/app.js", nil, "")
	if staticRes.Code != http.StatusOK {
		t.Fatalf("embedded static asset expected 200, got %d", staticRes.Code)
	}
	if staticRes.Body.Len() == 0 {
		t.Fatalf("embedded static asset should not be empty")
	}

	rootRes := app.request(http.MethodGet, "/", nil, "")
	if rootRes.Code != http.StatusFound {
		t.Fatalf("root expected 302, got %d", rootRes.Code)
	}
	if loc := rootRes.Header().Get("Location"); loc != "/static/index.html" {
		t.Fatalf("root expected redirect to /static/index.html, got %q", loc)
	}
}

func TestServer_ActivityRoundTripAndUndo(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	createRes := app.json(http.MethodPost, "/api/schedule/activities", map[string]any{
		"day":         "W3-Mon",
		"pillar":      "Hacer",
		"name":        "Robotics lab",
		"description": "Build the line follower",
	})
	if createRes.Code != http.StatusOK {
		t.Fatalf("create expected 200, got %d body=%s", createRes.Code, createRes.Body.String())
	}
	created := decodeBodyMap(t, createRes)
	activity := asMap(t, created["activity"])
	id := asString(t, activity["id"])
	if !strings.HasPrefix(id, "act_") {
		t.Fatalf("expected generated activity id, got %q", id)
	}

	moveRes := app.json(http.MethodPost, "/api/schedule/move", map[string]any{
		"target":     "W3-Fri",
		"activityId": id,
		"source":     "W3-Mon",
	})
	if moveRes.Code != http.StatusOK {
		t.Fatalf("move expected 200, got %d body=%s", moveRes.Code, moveRes.Body.String())
	}
	state := decodeState(t, moveRes)
	if len(state.Days["W3-Mon"]) != 0 {
		t.Fatalf("expected W3-Mon empty after move, got %d activities", len(state.Days["W3-Mon"]))
	}
	if len(state.Days["W3-Fri"]) != 1 {
		t.Fatalf("expected W3-Fri to hold the moved activity, got %d", len(state.Days["W3-Fri"]))
	}

	undoRes := app.request(http.MethodPost, "/api/schedule/undo", nil, "")
	if undoRes.Code != http.StatusOK {
		t.Fatalf("undo expected 200, got %d body=%s", undoRes.Code, undoRes.Body.String())
	}
	state = decodeState(t, undoRes)
	if len(state.Days["W3-Mon"]) != 1 {
		t.Fatalf("expected undo to restore W3-Mon, got %d activities", len(state.Days["W3-Mon"]))
	}
}

func TestServer_SchedulePersistsAcrossRestart(t *testing.T) {
	dataDir := t.TempDir()

	app := newTestApp(t, dataDir)
	createRes := app.json(http.MethodPost, "/api/schedule/activities", map[string]any{
		"day":    "W1-Tue",
		"pillar": "Pensar",
		"name":   "Debate prep",
	})
	if createRes.Code != http.StatusOK {
		t.Fatalf("create expected 200, got %d body=%s", createRes.Code, createRes.Body.String())
	}

	reborn := newTestApp(t, dataDir)
	stateRes := reborn.request(http.MethodGet, "/api/schedule/state", nil, "")
	if stateRes.Code != http.StatusOK {
		t.Fatalf("state expected 200, got %d body=%s", stateRes.Code, stateRes.Body.String())
	}
	if !strings.Contains(stateRes.Body.String(), "Debate prep") {
		t.Fatalf("expected restarted server to load the saved schedule, body=%s", stateRes.Body.String())
	}
}

func TestServer_ExportHeadersAndImport(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	exportRes := app.request(http.MethodGet, "/api/schedule/export", nil, "")
	if exportRes.Code != http.StatusOK {
		t.Fatalf("export expected 200, got %d body=%s", exportRes.Code, exportRes.Body.String())
	}
	cd := exportRes.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "catapult_schedule_") || !strings.Contains(cd, ".json") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}

	importRes := app.request(http.MethodPost, "/api/schedule/import",
		strings.NewReader(`{"weeks":[{"week":1,"mon":{"activities":[{"pillar":"Ser","name":"Check-in","description":""}]}}]}`),
		"application/json")
	if importRes.Code != http.StatusOK {
		t.Fatalf("import expected 200, got %d body=%s", importRes.Code, importRes.Body.String())
	}
	state := decodeState(t, importRes)
	if state.Weeks != 1 {
		t.Fatalf("expected 1 week after import, got %d", state.Weeks)
	}
	if len(state.Days["W1-Mon"]) != 1 {
		t.Fatalf("expected imported activity on W1-Mon, got %d", len(state.Days["W1-Mon"]))
	}

	badRes := app.request(http.MethodPost, "/api/schedule/import",
		strings.NewReader(`{"weeks":"nope"}`), "application/json")
	if badRes.Code != http.StatusBadRequest {
		t.Fatalf("malformed import expected 400, got %d", badRes.Code)
	}
}

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T, dataDir string) *testApp {
	t.Helper()

	cfg := config.Default()
	cfg.Data.Dir = dataDir

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, logs: &logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

type stateSnapshot struct {
	Days    map[string][]map[string]any `json:"days"`
	Weeks   int                         `json:"weeks"`
	CanUndo bool                        `json:"canUndo"`
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateSnapshot {
	t.Helper()
	var out stateSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode state failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}
