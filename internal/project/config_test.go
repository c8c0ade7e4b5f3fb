package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packman/loadplan/internal/model"
)

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestSaveLoadAppConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultTransportType = "CONT_40HC"
	cfg.Planner.WindowSize = 8
	cfg.AddRecentManifest("/data/manifest.xlsx")

	require.NoError(t, SaveAppConfig(path, cfg))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "CONT_40HC", loaded.DefaultTransportType)
	assert.Equal(t, 8, loaded.Planner.WindowSize)
	assert.Equal(t, []string{"/data/manifest.xlsx"}, loaded.RecentManifests)
}

func TestLoadAppConfig_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadAppConfig(path)
	require.Error(t, err)
}

func TestAddRecentManifest_DedupAndCap(t *testing.T) {
	cfg := model.DefaultAppConfig()
	for i := 0; i < 12; i++ {
		cfg.AddRecentManifest(filepath.Join("/data", string(rune('a'+i))+".csv"))
	}
	assert.Len(t, cfg.RecentManifests, 10)
	assert.Equal(t, "/data/l.csv", cfg.RecentManifests[0])

	cfg.AddRecentManifest("/data/l.csv")
	assert.Len(t, cfg.RecentManifests, 10)
	assert.Equal(t, "/data/l.csv", cfg.RecentManifests[0])
}
