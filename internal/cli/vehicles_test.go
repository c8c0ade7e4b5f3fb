package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

func TestVehiclesExport_BuiltinPreset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))

	path := filepath.Join(dir, "tent.json")
	require.NoError(t, runCommand(t, newVehiclesCmd(), "export", "TENT_20T", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var v model.Vehicle
	require.NoError(t, json.Unmarshal(data, &v))
	assert.Equal(t, "TENT_20T", v.ID)
	assert.InDelta(t, model.PresetVehicle("TENT_20T").InnerWidth, v.InnerWidth, 1e-9)
}

func TestVehiclesExport_UnknownPreset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))

	err := runCommand(t, newVehiclesCmd(), "export", "NO_SUCH", filepath.Join(dir, "x.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vehicle preset")
}

func TestVehiclesImport_AddsAndReplacesCustomPreset(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))

	payload := 18000.0
	v := model.Vehicle{
		ID:           "MEGA_TRAILER",
		InnerWidth:   2.48,
		InnerHeight:  3.00,
		InnerLength:  13.62,
		PayloadMaxKg: &payload,
	}
	path := filepath.Join(dir, "mega.json")
	require.NoError(t, project.ExportVehicle(path, v))

	require.NoError(t, runCommand(t, newVehiclesCmd(), "import", path))

	custom, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "MEGA_TRAILER", custom[0].ID)

	// Re-importing the same id replaces instead of duplicating.
	v.InnerHeight = 2.95
	require.NoError(t, project.ExportVehicle(path, v))
	require.NoError(t, runCommand(t, newVehiclesCmd(), "import", path))

	custom, err = project.LoadCustomVehicles(project.DefaultVehiclesPath())
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.InDelta(t, 2.95, custom[0].InnerHeight, 1e-9)
}

func TestVehiclesImport_RejectsInvalidVehicle(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))

	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"BAD","innerWidth":0}`), 0644))

	err := runCommand(t, newVehiclesCmd(), "import", path)
	require.Error(t, err)
}
