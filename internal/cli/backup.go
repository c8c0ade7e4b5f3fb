package cli

import (
	"github.com/spf13/cobra"

	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the application config and custom vehicle presets",
	}
	cmd.AddCommand(newBackupExportCmd())
	cmd.AddCommand(newBackupImportCmd())
	return cmd
}

func newBackupExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all application data to a single backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				logger.Warn("falling back to default config", "err", err)
				cfg = model.DefaultAppConfig()
			}
			vehicles, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
			if err != nil {
				return err
			}

			if err := project.ExportAllData(args[0], cfg, vehicles); err != nil {
				return err
			}
			logger.Info("exported backup", "path", args[0], "vehicles", len(vehicles))
			return nil
		},
	}
}

func newBackupImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore application data from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}

			if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
				return err
			}
			if err := project.SaveCustomVehicles(project.DefaultVehiclesPath(), backup.Vehicles); err != nil {
				return err
			}
			logger.Info("imported backup",
				"created_at", backup.CreatedAt,
				"vehicles", len(backup.Vehicles),
			)
			return nil
		},
	}
}
