package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packman/loadplan/internal/model"
)

func TestExportImportAllData_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup", "loadplan-backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultTransportType = "CONT_40HC"
	vehicles := []model.Vehicle{customVehicle()}

	require.NoError(t, ExportAllData(path, cfg, vehicles))

	backup, err := ImportAllData(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, "CONT_40HC", backup.Config.DefaultTransportType)
	require.Len(t, backup.Vehicles, 1)
	assert.Equal(t, "MEGA_TRAILER", backup.Vehicles[0].ID)
	assert.NotNil(t, backup.Config.RecentManifests)
}

func TestImportAllData_MissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"config":{}}`), 0644))

	_, err := ImportAllData(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version")
}

func TestImportAllData_MissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
