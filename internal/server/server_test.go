package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packman/loadplan/internal/model"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	logger := log.New(bytes.NewBuffer(nil))
	return New(model.DefaultSettings(), nil, filepath.Join(dir, "plans"), filepath.Join(dir, "debug"), logger)
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func planRequest(taskID string, n int) PlanRequest {
	units := make([]model.CargoUnit, 0, n)
	for i := 0; i < n; i++ {
		u := model.NewCargoUnit("", 0.80, 1.20, 1.44, 420)
		u.PalletType = "PAL 80X120"
		units = append(units, u)
	}
	return PlanRequest{
		TaskID:        taskID,
		TransportType: "TENT_20T",
		Units:         units,
	}
}

func TestHealth(t *testing.T) {
	router := testServer(t).Router()
	w := getPath(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestPostPlan_PlacesUnits(t *testing.T) {
	srv := testServer(t)
	router := srv.Router()

	w := postJSON(t, router, "/plan", planRequest("task-100", 4))
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Plan)
	assert.Len(t, resp.Plan.Placed, 4)
	assert.Empty(t, resp.Plan.Unplaced)
	assert.NotEmpty(t, resp.RunID)
	assert.Greater(t, resp.Utilization.FloorM2.Util, 0.0)
}

func TestPostPlan_BadRequests(t *testing.T) {
	router := testServer(t).Router()

	// Missing task id.
	req := planRequest("", 1)
	w := postJSON(t, router, "/plan", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Invalid inline vehicle.
	req = planRequest("task-101", 1)
	req.Vehicle = &model.Vehicle{ID: "X", InnerWidth: 0, InnerHeight: 2.7, InnerLength: 13.6}
	w = postJSON(t, router, "/plan", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostPlan_RejectsDegenerateUnits(t *testing.T) {
	router := testServer(t).Router()

	// Zero width and negative length would build an inverted box that
	// collides with nothing; the boundary must refuse it.
	req := planRequest("task-103", 1)
	req.Units[0].Width = 0
	req.Units[0].Length = -1.2
	w := postJSON(t, router, "/plan", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "non-positive dimensions")

	req = planRequest("task-104", 1)
	req.Units[0].Weight = 0
	w = postJSON(t, router, "/plan", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "non-positive weight")
}

func TestGetPlan_RoundTripThroughStore(t *testing.T) {
	srv := testServer(t)
	router := srv.Router()

	w := postJSON(t, router, "/plan", planRequest("task-102", 2))
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/plan/task-102")
	require.Equal(t, http.StatusOK, w.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "task-102", resp.Plan.TaskID)
	assert.Len(t, resp.Plan.Placed, 2)
}

func TestGetPlan_NotFound(t *testing.T) {
	router := testServer(t).Router()
	w := getPath(router, "/plan/never-ran")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPlans(t *testing.T) {
	srv := testServer(t)
	router := srv.Router()

	postJSON(t, router, "/plan", planRequest("task-a", 1))
	postJSON(t, router, "/plan", planRequest("task-b", 1))

	w := getPath(router, "/plans")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []string `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"task-a", "task-b"}, resp.Tasks)
}

func TestRunLogger_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	runLog, err := NewRunLogger(dir, "task/7 id")
	require.NoError(t, err)

	emit := runLog.Event()
	emit("mode_detected", map[string]any{"mode": "mixed"})
	emit("candidate_chosen", map[string]any{"unitId": "u1"})
	require.NoError(t, runLog.Close())

	// Sanitized task id, no path separators.
	assert.Contains(t, filepath.Base(runLog.Path()), "task_7_id_")

	f, err := os.Open(runLog.Path())
	require.NoError(t, err)
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev runEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		require.NotEmpty(t, ev.Event)
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestRunLogger_EmitAfterClose(t *testing.T) {
	runLog, err := NewRunLogger(t.TempDir(), "task")
	require.NoError(t, err)
	emit := runLog.Event()
	require.NoError(t, runLog.Close())

	// Must not panic.
	emit("late", nil)
}
