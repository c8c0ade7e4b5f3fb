package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packman/loadplan/internal/engine"
	"github.com/packman/loadplan/internal/export"
	"github.com/packman/loadplan/internal/importer"
	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

type planFlags struct {
	input     string
	taskID    string
	transport string
	outDir    string

	pdf    bool
	labels bool
	excel  bool
	dxfOut bool
	chart  bool
	store  bool
}

func newPlanCmd(cfg model.AppConfig) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a load from a cargo manifest",
		Long:  `Reads a CSV or Excel manifest, normalizes the rows into cargo units, plans the load and writes the selected export documents to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "manifest file (.csv, .xlsx)")
	cmd.Flags().StringVar(&flags.taskID, "task", "", "task id for the run (default: manifest file name)")
	cmd.Flags().StringVarP(&flags.transport, "vehicle", "t", "", "transport type or custom vehicle preset id")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", ".", "output directory for export documents")
	cmd.Flags().BoolVar(&flags.pdf, "pdf", cfg.ExportPDF, "write the floor diagram PDF")
	cmd.Flags().BoolVar(&flags.labels, "labels", cfg.ExportLabels, "write QR pallet labels")
	cmd.Flags().BoolVar(&flags.excel, "excel", cfg.ExportExcel, "write the plan workbook")
	cmd.Flags().BoolVar(&flags.dxfOut, "dxf", cfg.ExportDXF, "write the floor plan DXF")
	cmd.Flags().BoolVar(&flags.chart, "chart", cfg.ExportChart, "write the HTML report")
	cmd.Flags().BoolVar(&flags.store, "store", true, "persist the plan to the local plan store")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runPlan(flags planFlags) error {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("falling back to default config", "err", err)
		cfg = model.DefaultAppConfig()
	}

	custom, err := project.LoadCustomVehicles(project.DefaultVehiclesPath())
	if err != nil {
		logger.Warn("custom vehicle presets unavailable", "err", err)
	}

	result, err := importManifest(flags.input)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	for _, e := range result.Errors {
		logger.Error(e)
	}
	if len(result.Units) == 0 {
		return fmt.Errorf("manifest %q yielded no usable units", flags.input)
	}
	logger.Info("manifest imported",
		"units", len(result.Units),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)

	taskID := flags.taskID
	if taskID == "" {
		base := filepath.Base(flags.input)
		taskID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	transport := flags.transport
	if transport == "" {
		transport = cfg.DefaultTransportType
	}
	vehicle := project.ResolveVehicle(transport, custom)
	if err := vehicle.Validate(); err != nil {
		return err
	}

	settings := cfg.Planner

	events := func(event string, payload map[string]any) {
		logger.Debug(event, "payload", payload)
	}

	packer := engine.NewPacker(settings)
	plan := packer.Pack(result.Units, vehicle, engine.RunContext{
		TaskID:        taskID,
		TransportType: transport,
		Events:        events,
	})
	plan = engine.Refine(plan, settings, events)

	util := plan.Utilization(settings.FloorFill(vehicle))
	logger.Info("plan complete",
		"task", taskID,
		"mode", string(plan.Mode.Mode),
		"placed", len(plan.Placed),
		"unplaced", len(plan.Unplaced),
		"payload_kg", plan.Loads.PayloadKg,
		"floor_util", fmt.Sprintf("%.1f%%", util.FloorM2.Util*100),
	)
	for _, u := range plan.Unplaced {
		logger.Warn("unplaced", "sscc", u.SSCC, "type", u.PalletType)
	}

	if flags.store {
		if err := project.SavePlan(project.DefaultPlansDir(), plan); err != nil {
			logger.Error("failed to store plan", "err", err)
		}
	}

	cfg.AddRecentManifest(flags.input)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
		logger.Debug("config not saved", "err", err)
	}

	return writeExports(flags, plan, settings, taskID)
}

func importManifest(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return importer.ImportCSV(path), nil
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path), nil
	default:
		return importer.ImportResult{}, fmt.Errorf("unsupported manifest format %q", filepath.Ext(path))
	}
}

func writeExports(flags planFlags, plan *model.Plan, settings model.Settings, taskID string) error {
	if err := os.MkdirAll(flags.outDir, 0755); err != nil {
		return err
	}
	out := func(suffix string) string {
		return filepath.Join(flags.outDir, taskID+suffix)
	}

	if flags.pdf {
		if err := export.ExportPDF(out(".pdf"), plan, settings); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		logger.Info("wrote floor diagram", "path", out(".pdf"))
	}
	if flags.labels && len(plan.Placed) > 0 {
		if err := export.ExportLabels(out("_labels.pdf"), plan); err != nil {
			return fmt.Errorf("labels export: %w", err)
		}
		logger.Info("wrote pallet labels", "path", out("_labels.pdf"))
	}
	if flags.excel {
		if err := export.ExportExcel(out(".xlsx"), plan, settings); err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
		logger.Info("wrote plan workbook", "path", out(".xlsx"))
	}
	if flags.dxfOut {
		if err := export.ExportDXF(out(".dxf"), plan); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		logger.Info("wrote floor plan DXF", "path", out(".dxf"))
	}
	if flags.chart {
		if err := export.ExportChart(out(".html"), plan, settings); err != nil {
			return fmt.Errorf("chart export: %w", err)
		}
		logger.Info("wrote HTML report", "path", out(".html"))
	}
	return nil
}
