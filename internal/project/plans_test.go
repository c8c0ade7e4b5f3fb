package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packman/loadplan/internal/model"
)

func storedPlan(taskID string) *model.Plan {
	u := model.NewCargoUnit("003400000000000010", 0.80, 1.20, 1.44, 500)
	c := model.NewCandidate(u, 0, 0, -6.0, 0, model.KindSingle, model.CandidateMeta{})
	return &model.Plan{
		TaskID:        taskID,
		TransportType: "TENT_20T",
		Vehicle:       model.PresetVehicle("TENT_20T"),
		Mode:          model.ModeDecision{Mode: model.ModeMixed, Alpha: 0.5},
		Placed:        []model.PlacedUnit{model.Place(c, u)},
		Loads:         model.AxleLoads{PayloadKg: 500},
	}
}

func TestSaveLoadPlan_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SavePlan(dir, storedPlan("task-7")))

	loaded, err := LoadPlan(dir, "task-7")
	require.NoError(t, err)
	assert.Equal(t, "task-7", loaded.TaskID)
	require.Len(t, loaded.Placed, 1)
	assert.Equal(t, "003400000000000010", loaded.Placed[0].Unit.SSCC)
	assert.InDelta(t, 500, loaded.Loads.PayloadKg, 1e-9)
}

func TestLoadPlan_NotFound(t *testing.T) {
	_, err := LoadPlan(t.TempDir(), "missing")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSavePlan_RequiresTaskID(t *testing.T) {
	plan := storedPlan("")
	err := SavePlan(t.TempDir(), plan)
	require.Error(t, err)
}

func TestSavePlan_OverwritesSameTask(t *testing.T) {
	dir := t.TempDir()

	first := storedPlan("task-9")
	require.NoError(t, SavePlan(dir, first))

	second := storedPlan("task-9")
	second.TransportType = "CONT_40HC"
	require.NoError(t, SavePlan(dir, second))

	loaded, err := LoadPlan(dir, "task-9")
	require.NoError(t, err)
	assert.Equal(t, "CONT_40HC", loaded.TransportType)

	ids, err := ListPlans(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"task-9"}, ids)
}

func TestListPlans_SortedAndEmptyDir(t *testing.T) {
	dir := t.TempDir()

	ids, err := ListPlans(dir)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, SavePlan(dir, storedPlan("task-b")))
	require.NoError(t, SavePlan(dir, storedPlan("task-a")))

	ids, err = ListPlans(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"task-a", "task-b"}, ids)
}

func TestDeletePlan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SavePlan(dir, storedPlan("task-x")))

	require.NoError(t, DeletePlan(dir, "task-x"))
	_, err := LoadPlan(dir, "task-x")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	// Deleting again is not an error.
	require.NoError(t, DeletePlan(dir, "task-x"))
}

func TestSanitizeTaskID(t *testing.T) {
	assert.Equal(t, "task-1.2_ok", sanitizeTaskID("task-1.2_ok"))
	assert.Equal(t, "task_7_id", sanitizeTaskID("task/7 id"))
	assert.Equal(t, "_", sanitizeTaskID(""))
	assert.Equal(t, ".._.._", sanitizeTaskID("../../"))
}
