package model

// AppConfig holds application-wide preferences and the default planner
// settings applied to new runs.
type AppConfig struct {
	// Planner knobs applied when a run does not carry its own.
	Planner Settings `json:"planner"`

	// Transport type resolved when a manifest row carries none.
	DefaultTransportType string `json:"default_transport_type"`

	// Export toggles for the CLI; the server always returns JSON.
	ExportPDF    bool `json:"export_pdf"`
	ExportLabels bool `json:"export_labels"`
	ExportExcel  bool `json:"export_excel"`
	ExportDXF    bool `json:"export_dxf"`
	ExportChart  bool `json:"export_chart"`

	// Application preferences
	RecentManifests []string `json:"recent_manifests"`
	LogLevel        string   `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with the planner
// defaults from DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Planner:              DefaultSettings(),
		DefaultTransportType: DefaultVehicle.ID,
		ExportPDF:            true,
		ExportLabels:         false,
		ExportExcel:          true,
		ExportDXF:            false,
		ExportChart:          false,
		RecentManifests:      []string{},
		LogLevel:             "info",
	}
}

// AddRecentManifest records a manifest path at the front of the recent
// list, deduplicating and keeping at most ten entries.
func (c *AppConfig) AddRecentManifest(path string) {
	recent := []string{path}
	for _, p := range c.RecentManifests {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentManifests = recent
}
