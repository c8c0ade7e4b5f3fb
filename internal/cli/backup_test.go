package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SilenceUsage = true
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestBackupExportImport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))

	cfg := model.DefaultAppConfig()
	cfg.DefaultTransportType = "CONT_40HC"
	require.NoError(t, project.SaveAppConfig(project.DefaultConfigPath(), cfg))

	payload := 18000.0
	custom := model.Vehicle{
		ID:           "MEGA_TRAILER",
		InnerWidth:   2.48,
		InnerHeight:  3.00,
		InnerLength:  13.62,
		PayloadMaxKg: &payload,
	}
	require.NoError(t, project.SaveCustomVehicles(project.DefaultVehiclesPath(), []model.Vehicle{custom}))

	backupPath := filepath.Join(dir, "backup.json")
	require.NoError(t, runCommand(t, newBackupCmd(), "export", backupPath))
	_, err := os.Stat(backupPath)
	require.NoError(t, err)

	// Wipe the stored state, then restore it from the backup.
	require.NoError(t, os.Remove(project.DefaultConfigPath()))
	require.NoError(t, os.Remove(project.DefaultVehiclesPath()))

	require.NoError(t, runCommand(t, newBackupCmd(), "import", backupPath))

	restored, err := project.LoadAppConfig(project.DefaultConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "CONT_40HC", restored.DefaultTransportType)

	vehicles, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "MEGA_TRAILER", vehicles[0].ID)
}

func TestBackupImport_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))

	path := filepath.Join(dir, "not-a-backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"config":{}}`), 0644))

	err := runCommand(t, newBackupCmd(), "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version")
}
