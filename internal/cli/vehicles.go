package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

func newVehiclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List built-in and custom vehicle presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVehiclesList(cmd)
		},
	}
	cmd.AddCommand(newVehiclesExportCmd())
	cmd.AddCommand(newVehiclesImportCmd())
	return cmd
}

func runVehiclesList(cmd *cobra.Command) error {
	custom, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
	if err != nil {
		return err
	}

	builtin := make([]model.Vehicle, 0, len(model.VehiclePresets))
	for _, v := range model.VehiclePresets {
		builtin = append(builtin, v)
	}
	sort.Slice(builtin, func(i, j int) bool { return builtin[i].ID < builtin[j].ID })

	printVehicle := func(v model.Vehicle, origin string) {
		payload := "-"
		if v.PayloadMaxKg != nil {
			payload = fmt.Sprintf("%.0f kg", *v.PayloadMaxKg)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-14s %5.2f x %4.2f x %5.2f m  payload %-10s %s\n",
			v.ID, v.InnerWidth, v.InnerHeight, v.InnerLength, payload, origin)
	}

	for _, v := range builtin {
		printVehicle(v, "built-in")
	}
	for _, v := range custom {
		printVehicle(v, "custom")
	}
	return nil
}

func newVehiclesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <preset-id> <file>",
		Short: "Export a vehicle preset to a JSON file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, path := args[0], args[1]

			custom, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
			if err != nil {
				return err
			}
			vehicle := project.ResolveVehicle(id, custom)
			if vehicle.ID != id {
				return fmt.Errorf("no vehicle preset %q", id)
			}
			if err := project.ExportVehicle(path, vehicle); err != nil {
				return err
			}
			logger.Info("exported vehicle preset", "id", id, "path", path)
			return nil
		},
	}
}

func newVehiclesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a vehicle preset and add it to the custom presets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicle, err := project.ImportVehicle(args[0])
			if err != nil {
				return err
			}

			custom, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
			if err != nil {
				return err
			}

			// Replace an existing preset with the same id.
			kept := custom[:0]
			for _, v := range custom {
				if v.ID != vehicle.ID {
					kept = append(kept, v)
				}
			}
			kept = append(kept, vehicle)

			if err := project.SaveCustomVehicles(project.DefaultVehiclesPath(), kept); err != nil {
				return err
			}
			logger.Info("imported vehicle preset", "id", vehicle.ID)
			return nil
		},
	}
}
