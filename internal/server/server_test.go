package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerdrill/internal/attempts"
	"github.com/lox/pokerdrill/internal/scenario"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, store attempts.Store) *Server {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(testNow)
	return New(NewDirStore("testdata"), store, zerolog.Nop(), WithClock(clock))
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := do(t, newTestServer(t, attempts.NewMemory()), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestScenarioRoutes(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, attempts.NewMemory())

	rec := do(t, s, http.MethodGet, "/api/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var metas []scenario.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metas))
	require.Len(t, metas, 2)
	assert.Equal(t, "S002", metas[0].ID)
	assert.Equal(t, "S003", metas[1].ID)
	assert.Equal(t, "BB check-call a single-raised flop", metas[1].Title)

	rec = do(t, s, http.MethodGet, "/api/scenarios/S003", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sc scenario.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sc))
	assert.Equal(t, "S003", sc.ID)
	assert.Len(t, sc.Nodes, 3)

	rec = do(t, s, http.MethodGet, "/api/scenarios/S999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Scenario not found"}`, rec.Body.String())
}

func TestPreflopSpot(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, attempts.NewMemory())

	first := do(t, s, http.MethodGet, "/api/preflop/spot?seed=7", "")
	require.Equal(t, http.StatusOK, first.Code)
	second := do(t, s, http.MethodGet, "/api/preflop/spot?seed=7", "")
	assert.Equal(t, first.Body.String(), second.Body.String(), "a seed always deals the same spot")

	var resp SpotResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Seed)
	require.NotNil(t, resp.Spot)
	assert.True(t, strings.HasPrefix(resp.Spot.ID, "PF-"))
	assert.Contains(t, resp.Choices, scenario.Fold)
	assert.Contains(t, resp.Choices, resp.Recommendation.Action)
	assert.NotEmpty(t, resp.Explain)

	rec := do(t, s, http.MethodGet, "/api/preflop/spot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, testNow.UnixNano(), resp.Seed, "unseeded spots take their seed from the clock")

	rec = do(t, s, http.MethodGet, "/api/preflop/spot?seed=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttemptRoutes(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, attempts.NewMemory())

	rec := do(t, s, http.MethodGet, "/api/attempts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	posts := []string{
		`{"scenarioId":"S002","nodeId":"n2","chosenAction":"RAISE","chosenSizeBB":8,"isCorrect":true,"timestamp":1000}`,
		`{"scenarioId":"S002","nodeId":"n5","chosenAction":"CHECK","chosenSizeBB":null,"isCorrect":false}`,
		`{"scenarioId":"S003","nodeId":"d1","chosenAction":"CHECK","isCorrect":true,"timestamp":2000}`,
	}
	for _, body := range posts {
		rec = do(t, s, http.MethodPost, "/api/attempts", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var created scenario.AttemptResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(2000), created.Timestamp)

	rec = do(t, s, http.MethodGet, "/api/attempts?scenarioId=S002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []scenario.AttemptResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, int64(1000), list[0].Timestamp)
	assert.Equal(t, testNow.UnixMilli(), list[1].Timestamp, "missing timestamps are stamped on arrival")
	require.NotNil(t, list[0].ChosenSizeBB)
	assert.Equal(t, 8.0, *list[0].ChosenSizeBB)

	rec = do(t, s, http.MethodGet, "/api/scenarios/S002/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"attempts":2,"correct":1,"accuracy":0.5,"wrongNodeIds":["n5"]}`, rec.Body.String())

	rec = do(t, s, http.MethodDelete, "/api/attempts", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/attempts", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAppendAttemptRejectsBadInput(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, attempts.NewMemory())

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"scenarioId":`},
		{"unknown field", `{"scenarioId":"S002","nodeId":"n2","chosenAction":"FOLD","extra":1}`},
		{"missing scenario", `{"nodeId":"n2","chosenAction":"FOLD"}`},
		{"missing node", `{"scenarioId":"S002","chosenAction":"FOLD"}`},
		{"missing action", `{"scenarioId":"S002","nodeId":"n2"}`},
		{"unknown action", `{"scenarioId":"S002","nodeId":"n2","chosenAction":"LIMP"}`},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, "/api/attempts", tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
		assert.Contains(t, rec.Body.String(), `"error"`, tt.name)
	}
}

type failingStore struct{ attempts.Store }

var errBroken = errors.New("disk on fire")

func (failingStore) List(context.Context) ([]scenario.AttemptResult, error) { return nil, errBroken }
func (failingStore) Append(context.Context, scenario.AttemptResult) error  { return errBroken }
func (failingStore) Clear(context.Context) error                            { return errBroken }

func TestStorageErrorsAre500(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, failingStore{})

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/api/attempts", ""},
		{http.MethodPost, "/api/attempts", `{"scenarioId":"S002","nodeId":"n2","chosenAction":"FOLD"}`},
		{http.MethodDelete, "/api/attempts", ""},
		{http.MethodGet, "/api/scenarios/S002/stats", ""},
	} {
		rec := do(t, s, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.method+" "+tc.target)
		assert.JSONEq(t, `{"error":"disk on fire"}`, rec.Body.String())
	}
}

func TestDirStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rejects paths outside the directory", func(t *testing.T) {
		t.Parallel()
		d := NewDirStore("testdata")
		for _, id := range []string{"", "../S002", "sub/S002", ".hidden"} {
			_, err := d.Get(ctx, id)
			assert.ErrorIs(t, err, ErrScenarioNotFound, id)
		}
	})

	t.Run("invalid file fails the listing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"id":"BAD"}`), 0o644))
		_, err := NewDirStore(dir).List(ctx)
		assert.Error(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		data, err := os.ReadFile("testdata/S002.json")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), data, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), data, 0o644))
		_, err = NewDirStore(dir).List(ctx)
		assert.ErrorContains(t, err, "duplicate scenario id S002")
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		metas, err := NewDirStore(t.TempDir()).List(ctx)
		require.NoError(t, err)
		assert.Empty(t, metas)
	})
}

func TestServeAndShutdown(t *testing.T) {
	t.Parallel()
	s := New(NewDirStore("testdata"), attempts.NewMemory(), zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-done)
}

func TestShutdownBeforeServe(t *testing.T) {
	t.Parallel()
	s := New(NewDirStore("testdata"), attempts.NewMemory(), zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve kept running after Shutdown")
	}

	_, err = net.DialTimeout("tcp", ln.Addr().String(), time.Second)
	assert.Error(t, err, "listener is closed")
}
