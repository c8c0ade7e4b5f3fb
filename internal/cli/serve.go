package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
	"github.com/packman/loadplan/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP planning service",
		Long:  `Starts an HTTP server exposing POST /plan for planning runs and GET /plan/:taskId for stored plans. Per-run debug trails are written as JSONL files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				logger.Warn("falling back to default config", "err", err)
				cfg = model.DefaultAppConfig()
			}

			custom, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
			if err != nil {
				logger.Warn("custom vehicle presets unavailable", "err", err)
			}

			plansDir := project.DefaultPlansDir()
			if noStore {
				plansDir = ""
			}
			debugDir := filepath.Join(project.DefaultConfigDir(), "debug")

			srv := server.New(cfg.Planner, custom, plansDir, debugDir, logger)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist plans to the plan store")

	return cmd
}
