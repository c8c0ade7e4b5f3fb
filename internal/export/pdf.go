// Package export renders load plans to the formats the warehouse
// actually consumes: a PDF plan sheet, QR pallet labels, an Excel
// workbook, a DXF floor drawing and an HTML chart report.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/packman/loadplan/internal/model"
)

type rgb struct {
	R, G, B int
}

// kindColors maps placement kinds to the floor diagram palette.
var kindColors = map[model.CandidateKind]rgb{
	model.KindSingle:           {R: 33, G: 150, B: 243},  // blue
	model.KindPattern3Across:   {R: 76, G: 175, B: 80},   // green
	model.KindPattern140Plus80: {R: 255, G: 152, B: 0},   // orange
	model.KindPattern3Plus2:    {R: 156, G: 39, B: 176},  // purple
	model.KindPatternZigzag:    {R: 0, G: 188, B: 212},   // cyan
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the plan sheet: a top-down floor diagram with the
// hold drawn head-left, color-coded by placement kind, followed by a
// summary page with mode, loads, utilization and the unplaced list.
func ExportPDF(path string, plan *model.Plan, s model.Settings) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderFloorPage(pdf, plan, s)

	pdf.AddPage()
	renderSummaryPage(pdf, plan, s)

	return pdf.OutputFileAndClose(path)
}

// renderFloorPage draws the hold floor with Z (length) running along
// the page X axis, head wall on the left.
func renderFloorPage(pdf *fpdf.Fpdf, plan *model.Plan, s model.Settings) {
	v := plan.Vehicle

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Load plan %s: %s (%.2f x %.2f x %.2f m)",
		plan.TaskID, v.ID, v.InnerWidth, v.InnerHeight, v.InnerLength)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Mode: %s | Placed: %d | Unplaced: %d | Payload: %.0f kg",
		plan.Mode.Mode, len(plan.Placed), len(plan.Unplaced), plan.Loads.PayloadKg)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 25

	scale := math.Min(drawWidth/v.InnerLength, drawHeight/v.InnerWidth)
	canvasW := v.InnerLength * scale
	canvasH := v.InnerWidth * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Hold floor background.
	pdf.SetFillColor(235, 235, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawZoneSeparators(pdf, s, scale, offsetX, offsetY, canvasH, v.InnerLength)

	for i, p := range plan.Placed {
		col, ok := kindColors[p.Kind]
		if !ok {
			col = rgb{R: 150, G: 150, B: 150}
		}

		// Page X from head: candidate Z is hold-centered.
		px := offsetX + (p.Box.MinZ+v.HalfLength())*scale
		py := offsetY + (p.Box.MinX+v.HalfWidth())*scale
		pw := p.DZ * scale
		ph := p.DX * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 10 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%d", i+1)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	// Head marker.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(offsetX-12, offsetY+canvasH/2-2)
	pdf.CellFormat(10, 4, "HEAD", "", 0, "R", false, 0, "")
	pdf.SetXY(offsetX+canvasW+2, offsetY+canvasH/2-2)
	pdf.CellFormat(10, 4, "TAIL", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	drawPlacedLegend(pdf, plan, offsetY+canvasH+6)
}

// drawZoneSeparators marks the A/B/C/D zone boundaries on the floor.
func drawZoneSeparators(pdf *fpdf.Fpdf, s model.Settings, scale, offsetX, offsetY, canvasH, innerLength float64) {
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)

	bounds := []float64{
		innerLength * s.Zones.A,
		innerLength * (s.Zones.A + s.Zones.B),
		innerLength * (s.Zones.A + s.Zones.B + s.Zones.C),
	}
	for _, b := range bounds {
		x := offsetX + b*scale
		pdf.Line(x, offsetY, x, offsetY+canvasH)
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(150, 150, 150)
	zoneStarts := []float64{0, bounds[0], bounds[1], bounds[2]}
	zoneEnds := []float64{bounds[0], bounds[1], bounds[2], innerLength}
	names := []string{"A", "B", "C", "D"}
	for i, name := range names {
		cx := offsetX + (zoneStarts[i]+zoneEnds[i])/2*scale
		pdf.SetXY(cx-2, offsetY-4)
		pdf.CellFormat(4, 3, name, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawPlacedLegend lists the numbered placements under the diagram.
func drawPlacedLegend(pdf *fpdf.Fpdf, plan *model.Plan, startY float64) {
	if len(plan.Placed) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Placed units:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range plan.Placed {
		col, ok := kindColors[p.Kind]
		if !ok {
			col = rgb{R: 150, G: 150, B: 150}
		}
		label := fmt.Sprintf("%d: %s (%.0f kg)", i+1, p.Unit.SSCC, p.Unit.Weight)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws totals, loads and the unplaced list.
func renderSummaryPage(pdf *fpdf.Fpdf, plan *model.Plan, s model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	util := plan.Utilization(s.FloorFill(plan.Vehicle))

	y := marginTop + 18
	items := []struct {
		label string
		value string
	}{
		{"Task", plan.TaskID},
		{"Transport type", plan.TransportType},
		{"Mode", string(plan.Mode.Mode)},
		{"Weight pressure", fmt.Sprintf("%.2f", plan.Mode.WeightPressure)},
		{"Floor pressure", fmt.Sprintf("%.2f", plan.Mode.FloorPressure)},
		{"Volume pressure", fmt.Sprintf("%.2f", plan.Mode.VolumePressure)},
		{"Units placed", fmt.Sprintf("%d", len(plan.Placed))},
		{"Units unplaced", fmt.Sprintf("%d", len(plan.Unplaced))},
		{"Payload", fmt.Sprintf("%.0f kg", plan.Loads.PayloadKg)},
		{"Axle A / B", fmt.Sprintf("%.0f / %.0f kg", plan.Loads.AxleAKg, plan.Loads.AxleBKg)},
		{"Floor used", fmt.Sprintf("%.1f / %.1f m2 (%.0f%%)", util.FloorM2.Used, util.FloorM2.Total, util.FloorM2.Util*100)},
		{"Volume used", fmt.Sprintf("%.1f / %.1f m3 (%.0f%%)", util.VolumeM3.Used, util.VolumeM3.Total, util.VolumeM3.Util*100)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(plan.Unplaced) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Units", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, u := range plan.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.2f x %.2f x %.2f m, %.0f kg", u.SSCC, u.Width, u.Length, u.Height, u.Weight)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by loadplan", "", 0, "C", false, 0, "")
}

func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
