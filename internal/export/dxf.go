package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/packman/loadplan/internal/model"
)

// dxfScale converts plan meters to drawing millimeters. CAD viewers on
// the warehouse side expect millimeter units.
const dxfScale = 1000.0

// ExportDXF writes the floor plan as a DXF drawing: the hold outline on
// one layer, placed unit footprints on another, and SSCC text labels on
// a third. The drawing uses the same head-left orientation as the PDF
// diagram: X runs from head to tail, Y across the hold.
func ExportDXF(path string, plan *model.Plan) error {
	d := dxf.NewDrawing()

	halfW := plan.Vehicle.HalfWidth()
	halfL := plan.Vehicle.HalfLength()

	// toDrawing maps a hold-centered (x, z) pose to drawing coordinates.
	toDrawing := func(x, z float64) (float64, float64) {
		return (z + halfL) * dxfScale, (x + halfW) * dxfScale
	}

	if _, err := d.AddLayer("HOLD", color.White, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add HOLD layer: %w", err)
	}
	holdW := plan.Vehicle.InnerLength * dxfScale
	holdH := plan.Vehicle.InnerWidth * dxfScale
	if err := drawRect(d, 0, 0, holdW, holdH); err != nil {
		return err
	}

	if _, err := d.AddLayer("UNITS", color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add UNITS layer: %w", err)
	}
	for _, p := range plan.Placed {
		px, py := toDrawing(p.Box.MinX, p.Box.MinZ)
		if err := drawRect(d, px, py, p.DZ*dxfScale, p.DX*dxfScale); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer("LABELS", color.Yellow, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add LABELS layer: %w", err)
	}
	for i, p := range plan.Placed {
		cx, cy := toDrawing(p.X, p.Z)
		textHeight := min3(p.DX, p.DZ, 0.30) * dxfScale * 0.5
		label := fmt.Sprintf("%d %s", i+1, p.Unit.SSCC)
		if _, err := d.Text(label, cx, cy, 0.0, textHeight); err != nil {
			return fmt.Errorf("failed to add label for %q: %w", p.Unit.SSCC, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawRect draws an axis-aligned rectangle as four LINE entities, the
// representation most DXF consumers handle without polyline support.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	lines := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0.0, l[2], l[3], 0.0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
