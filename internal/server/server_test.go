package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/placement-tracker/internal/repository"
	"github.com/jonathan/placement-tracker/internal/server/ratelimit"
	"github.com/jonathan/placement-tracker/internal/store"
	"github.com/jonathan/placement-tracker/internal/timesource"
	"github.com/jonathan/placement-tracker/internal/tracker"
	"github.com/jonathan/placement-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday.
var testNow = time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	svc     *tracker.Service
	handler http.Handler
}

func newTestServer(t *testing.T, limits *ratelimit.Config) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.New(store.NewMemory(), logger)
	svc := tracker.New(repo,
		tracker.WithLogger(logger),
		tracker.WithNow(func() time.Time { return testNow }),
		tracker.WithClock(timesource.ClockFunc(func() time.Time { return testNow })),
	)
	if limits == nil {
		limits = &ratelimit.Config{Enabled: false}
	}
	s := New(svc, Config{Logger: logger, RateLimit: limits, Heartbeat: time.Hour})
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, svc: svc, handler: s.Handler()}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodOptions, "/applications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestApplicationsAPI(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/applications", map[string]string{"name": "Acme", "location": "Pune"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := decode[types.Application](t, w)
	assert.Equal(t, types.StatusApplied, app.Status)
	assert.Equal(t, "Pune", app.Location)

	w = ts.do(t, http.MethodPost, "/applications", map[string]string{"name": "Globex"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPut, "/applications/"+itoa(app.ID)+"/status", map[string]string{"status": "Interview"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, types.StatusInterview, decode[types.Application](t, w).Status)

	w = ts.do(t, http.MethodGet, "/applications?status=Interview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.Application](t, w), 1)

	w = ts.do(t, http.MethodGet, "/applications/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ApplicationStats{Total: 2, Applied: 1, Interview: 1}, decode[types.ApplicationStats](t, w))

	w = ts.do(t, http.MethodDelete, "/applications/"+itoa(app.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodDelete, "/applications/"+itoa(app.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationsAPI_Errors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		errMsg string
	}{
		{name: "malformed body", method: http.MethodPost, path: "/applications", body: "{", status: http.StatusBadRequest, errMsg: "Invalid request body"},
		{name: "missing name", method: http.MethodPost, path: "/applications", body: map[string]string{}, status: http.StatusBadRequest, errMsg: "name"},
		{name: "bad filter", method: http.MethodGet, path: "/applications?status=Ghosted", status: http.StatusBadRequest, errMsg: "Ghosted"},
		{name: "bad id", method: http.MethodPut, path: "/applications/abc/status", body: map[string]string{"status": "Offer"}, status: http.StatusBadRequest, errMsg: "invalid id"},
		{name: "unknown id", method: http.MethodPut, path: "/applications/7/status", body: map[string]string{"status": "Offer"}, status: http.StatusNotFound, errMsg: "application not found: 7"},
		{name: "bad status", method: http.MethodPut, path: "/applications/7/status", body: map[string]string{"status": "Ghosted"}, status: http.StatusBadRequest, errMsg: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode[map[string]string](t, w)["error"], tt.errMsg)
		})
	}
}

func TestStudyAPI(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/study", nil)
	require.Equal(t, http.StatusOK, w.Code)
	overview := decode[tracker.StudyOverview](t, w)
	assert.Equal(t, "dsa", overview.Active)
	assert.Len(t, overview.Topics, 12)

	for id := 1; id <= 3; id++ {
		w = ts.do(t, http.MethodPut, "/study/dsa/topics/"+itoa(int64(id)), map[string]bool{"completed": true})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	update := decode[tracker.TopicUpdate](t, w)
	assert.Equal(t, 25, update.Percent)
	require.Len(t, update.NewBadges, 1)
	assert.Equal(t, "DSA Bronze", update.NewBadges[0].Name)

	w = ts.do(t, http.MethodPut, "/study/dsa/topics/99", map[string]bool{"completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/study/active", map[string]string{"category": "os"})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodGet, "/study", nil)
	assert.Equal(t, "os", decode[tracker.StudyOverview](t, w).Active)

	w = ts.do(t, http.MethodGet, "/study?category=cloud", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[tracker.StudyOverview](t, w).Topics, 10)

	w = ts.do(t, http.MethodGet, "/study?category=ml", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/study/active", map[string]string{"category": "ml"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudyAPI_ExportImportReset(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPut, "/study/cn/topics/1", map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/study/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "study-progress-backup.json")
	exported := w.Body.String()

	w = ts.do(t, http.MethodPost, "/study/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range decode[tracker.StudyOverview](t, w).Categories {
		assert.Equal(t, 0, c.Completed)
	}

	w = ts.do(t, http.MethodPost, "/study/import", "definitely not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "import failed")

	w = ts.do(t, http.MethodPost, "/study/import", exported)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	imported := decode[types.StudyProgress](t, w)
	assert.True(t, imported["cn"][0].Completed)
}

func TestPlansAPI(t *testing.T) {
	ts := newTestServer(t, nil)
	req := types.NewPlanRequest{Title: "Sprint", Topics: []string{"dsa", "web"}, StartDate: "2025-10-06", EndDate: "2025-10-19"}

	w := ts.do(t, http.MethodPost, "/plans/preview", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[types.StudyPlan](t, w).DailyTasks, 14)
	w = ts.do(t, http.MethodGet, "/plans", nil)
	assert.Empty(t, decode[[]types.StudyPlan](t, w))

	w = ts.do(t, http.MethodPost, "/plans", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[types.StudyPlan](t, w)
	base := "/plans/" + itoa(plan.ID)

	w = ts.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sprint", decode[types.StudyPlan](t, w).Title)

	w = ts.do(t, http.MethodPost, base+"/tasks/0/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[types.DailyTask](t, w).Completed)

	w = ts.do(t, http.MethodPut, base+"/days/2", map[string]string{"task": "Mock interview"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mock interview", decode[types.DailyTask](t, w).Task)

	w = ts.do(t, http.MethodPut, base+"/weeks/2", map[string][]string{"tasks": {"Project day"}})
	require.Equal(t, http.StatusOK, w.Code)
	week := decode[[]types.DailyTask](t, w)
	require.Len(t, week, 7)
	assert.Equal(t, "Project day", week[0].Task)

	w = ts.do(t, http.MethodGet, "/plans/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	today := decode[tracker.TodayView](t, w)
	require.NotNil(t, today.Task)
	assert.Equal(t, 0, today.Index)
	assert.True(t, today.Task.Completed)

	w = ts.do(t, http.MethodGet, "/plans/reminders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]types.Reminder](t, w))

	w = ts.do(t, http.MethodPost, base+"/tasks/99/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlansAPI_InvalidRange(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodPost, "/plans", types.NewPlanRequest{
		Title: "Too long", Topics: []string{"dsa"}, StartDate: "2025-10-01", EndDate: "2025-12-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "cannot exceed 40 days")
}

func TestDashboardAndUserAPI(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/user", nil)
	assert.Equal(t, "Guest", decode[map[string]string](t, w)["name"])

	w = ts.do(t, http.MethodPut, "/user", map[string]string{"name": "Asha"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, "/user", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dashboard := decode[types.Dashboard](t, w)
	assert.Equal(t, "Asha", dashboard.UserName)
	assert.Len(t, dashboard.Categories, 5)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, &ratelimit.Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})

	w := ts.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = ts.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	// Health checks are never limited.
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", nil).Code)
	}
}

func TestEventsStream(t *testing.T) {
	ts := newTestServer(t, nil)
	httpServer := httptest.NewServer(ts.handler)
	defer httpServer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpServer.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)

	event, data := readEvent(t, reader)
	assert.Equal(t, "ready", event)
	assert.Contains(t, data, "client_id")

	_, err = ts.svc.SetUserName(ctx, types.UserNameRequest{Name: "Asha"})
	require.NoError(t, err)

	event, data = readEvent(t, reader)
	assert.Equal(t, "changed", event)
	var change repository.Change
	require.NoError(t, json.Unmarshal([]byte(data), &change))
	assert.Equal(t, repository.KeyUserName, change.Key)
}

// readEvent reads one "event:"/"data:" pair, skipping comments.
func readEvent(t *testing.T, r *bufio.Reader) (event, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
