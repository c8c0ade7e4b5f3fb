package cli

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// Values are injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// logger is configured by the root PersistentPreRun and shared by all
// commands.
var logger = charmlog.Default()

// Execute runs the loadplan CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	// The stored config seeds flag defaults and the log level; flags
	// override it per invocation.
	cfg, cfgErr := project.LoadAppConfig(project.DefaultConfigPath())
	if cfgErr != nil {
		cfg = model.DefaultAppConfig()
	}

	root := &cobra.Command{
		Use:          "loadplan",
		Short:        "loadplan plans truck and container loads from cargo manifests",
		Long:         `loadplan reads a cargo manifest, classifies the binding resource (weight, floor or volume), packs the units onto the vehicle floor and writes loading documents.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if lvl, err := charmlog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
				level = lvl
			}
			if verbose {
				level = charmlog.DebugLevel
			}
			logger = newLogger(os.Stderr, level)
			if cfgErr != nil {
				logger.Warn("falling back to default config", "err", cfgErr)
			}
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("loadplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPlanCmd(cfg))
	root.AddCommand(newServeCmd())
	root.AddCommand(newVehiclesCmd())
	root.AddCommand(newBackupCmd())

	return root.Execute()
}
