package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/packman/loadplan/internal/model"
)

// LabelInfo is the payload encoded into each pallet label's QR code.
type LabelInfo struct {
	SSCC      string  `json:"sscc"`
	TaskID    string  `json:"taskId,omitempty"`
	Kind      string  `json:"kind"`
	X         float64 `json:"x_m"`
	Z         float64 `json:"z_m"`
	RotationY int     `json:"rot"`
	WeightKg  float64 `json:"weight_kg"`
	Sequence  int     `json:"seq"`
}

// Label layout constants for Avery 5160-compatible sheets (3 columns,
// 10 rows on US Letter).
const (
	labelPageWidth  = 215.9
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos extracts one label per placed unit, in loading
// order (the sequence the loaders work through).
func CollectLabelInfos(plan *model.Plan) []LabelInfo {
	labels := make([]LabelInfo, 0, len(plan.Placed))
	for i, p := range plan.Placed {
		labels = append(labels, LabelInfo{
			SSCC:      p.Unit.SSCC,
			TaskID:    plan.TaskID,
			Kind:      string(p.Kind),
			X:         p.X,
			Z:         p.Z,
			RotationY: p.RotationY,
			WeightKg:  p.Unit.Weight,
			Sequence:  i + 1,
		})
	}
	return labels
}

// ExportLabels writes a PDF of QR-coded pallet labels for every placed
// unit. Each label carries the SSCC, the loading sequence number and a
// QR code with the placement as JSON.
func ExportLabels(path string, plan *model.Plan) error {
	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no placed units to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		col := pos % labelCols
		row := pos / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.SSCC, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.SSCC, info.Sequence)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	sscc := info.SSCC
	if pdf.GetStringWidth(sscc) > textW {
		for len(sscc) > 0 && pdf.GetStringWidth(sscc+"...") > textW {
			sscc = sscc[:len(sscc)-1]
		}
		sscc += "..."
	}
	pdf.CellFormat(textW, 4.5, sscc, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Seq %d | %.0f kg", info.Sequence, info.WeightKg), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("pos (%.2f, %.2f) m", info.X, info.Z), "", 1, "L", false, 0, "")

	if info.RotationY != 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
