package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/packman/loadplan/internal/model"
)

// ExportExcel writes the plan as a three-sheet workbook: placed units
// with poses, unplaced units, and a summary sheet with loads and
// utilization. The layout matches what warehouse staff print and check
// off during loading.
func ExportExcel(path string, plan *model.Plan, s model.Settings) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writePlacedSheet(f, plan, headerStyle); err != nil {
		return err
	}
	if err := writeUnplacedSheet(f, plan, headerStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, plan, s, headerStyle); err != nil {
		return err
	}

	// Drop the default sheet and open the workbook on the placed list.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex("Placed")
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writePlacedSheet(f *excelize.File, plan *model.Plan, headerStyle int) error {
	const sheet = "Placed"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Seq", "SSCC", "Pallet Type", "Kind", "X (m)", "Z (m)", "Rot", "Width (m)", "Length (m)", "Height (m)", "Weight (kg)", "Zone Dist From Head (m)"}
	if err := writeHeaderRow(f, sheet, headers, headerStyle); err != nil {
		return err
	}

	halfLen := plan.Vehicle.HalfLength()
	for i, p := range plan.Placed {
		row := i + 2
		values := []any{
			i + 1,
			p.Unit.SSCC,
			p.Unit.PalletType,
			string(p.Kind),
			round2(p.X),
			round2(p.Z),
			p.RotationY,
			round2(p.DX),
			round2(p.DZ),
			round2(p.DY),
			round1(p.Unit.Weight),
			round2(p.Z + halfLen),
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 16)
	_ = f.SetColWidth(sheet, "L", "L", 22)
	return nil
}

func writeUnplacedSheet(f *excelize.File, plan *model.Plan, headerStyle int) error {
	const sheet = "Unplaced"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"SSCC", "Pallet Type", "Width (m)", "Length (m)", "Height (m)", "Weight (kg)"}
	if err := writeHeaderRow(f, sheet, headers, headerStyle); err != nil {
		return err
	}

	for i, u := range plan.Unplaced {
		row := i + 2
		values := []any{
			u.SSCC,
			u.PalletType,
			round2(u.Width),
			round2(u.Length),
			round2(u.Height),
			round1(u.Weight),
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 16)
	return nil
}

func writeSummarySheet(f *excelize.File, plan *model.Plan, s model.Settings, headerStyle int) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	util := plan.Utilization(s.FloorFill(plan.Vehicle))

	rows := [][2]any{
		{"Task", plan.TaskID},
		{"Transport Type", plan.TransportType},
		{"Vehicle", plan.Vehicle.ID},
		{"Hold (W x H x L, m)", fmt.Sprintf("%.2f x %.2f x %.2f", plan.Vehicle.InnerWidth, plan.Vehicle.InnerHeight, plan.Vehicle.InnerLength)},
		{"Mode", string(plan.Mode.Mode)},
		{"Weight Pressure", round2(plan.Mode.WeightPressure)},
		{"Floor Pressure", round2(plan.Mode.FloorPressure)},
		{"Volume Pressure", round2(plan.Mode.VolumePressure)},
		{"Placed Units", len(plan.Placed)},
		{"Unplaced Units", len(plan.Unplaced)},
		{"Payload (kg)", round1(plan.Loads.PayloadKg)},
		{"Axle A Load (kg)", round1(plan.Loads.AxleAKg)},
		{"Axle B Load (kg)", round1(plan.Loads.AxleBKg)},
		{"Floor Used (m²)", round2(util.FloorM2.Used)},
		{"Floor Utilization", fmt.Sprintf("%.1f%%", util.FloorM2.Util*100)},
		{"Volume Used (m³)", round2(util.VolumeM3.Used)},
		{"Volume Utilization", fmt.Sprintf("%.1f%%", util.VolumeM3.Util*100)},
		{"Floor Demand (slots)", round2(util.FloorDemand.Used)},
	}

	if err := writeHeaderRow(f, sheet, []string{"Metric", "Value"}, headerStyle); err != nil {
		return err
	}
	for i, kv := range rows {
		if err := writeRow(f, sheet, i+2, []any{kv[0], kv[1]}); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
