package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"

	"github.com/packman/loadplan/internal/model"
)

func samplePlan() *model.Plan {
	v := model.PresetVehicle("TENT_20T")

	u1 := model.NewCargoUnit("003400123456789012", 0.80, 1.20, 1.44, 520)
	u1.PalletType = "PAL 80X120"
	u2 := model.NewCargoUnit("003400123456789029", 1.00, 1.20, 1.10, 640)
	u2.PalletType = "PAL 100X120"
	left := model.NewCargoUnit("003400123456789036", 2.00, 3.00, 2.00, 900)
	left.Status = model.StatusUnplaced

	c1 := model.NewCandidate(u1, -0.80, 0, -6.10, 0, model.KindSingle, model.CandidateMeta{})
	c2 := model.NewCandidate(u2, 0.60, 0, -6.10, 90, model.KindSingle, model.CandidateMeta{})

	payload := u1.Weight + u2.Weight
	return &model.Plan{
		TaskID:        "task-42",
		TransportType: "TENT_20T",
		Vehicle:       v,
		Mode: model.ModeDecision{
			Mode:           model.ModeMixed,
			WeightPressure: 0.31,
			FloorPressure:  0.28,
			VolumePressure: 0.22,
			Alpha:          0.5,
		},
		Placed:   []model.PlacedUnit{model.Place(c1, u1), model.Place(c2, u2)},
		Unplaced: []model.CargoUnit{left},
		Loads:    model.AxleLoads{PayloadKg: payload},
	}
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportPDF_WritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	err := ExportPDF(path, samplePlan(), model.DefaultSettings())
	require.NoError(t, err)
	requireNonEmptyFile(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestCollectLabelInfos_SequenceAndPose(t *testing.T) {
	plan := samplePlan()
	labels := CollectLabelInfos(plan)
	require.Len(t, labels, 2)

	assert.Equal(t, "003400123456789012", labels[0].SSCC)
	assert.Equal(t, 1, labels[0].Sequence)
	assert.Equal(t, 0, labels[0].RotationY)
	assert.Equal(t, "task-42", labels[0].TaskID)

	assert.Equal(t, 2, labels[1].Sequence)
	assert.Equal(t, 90, labels[1].RotationY)
	assert.InDelta(t, 640, labels[1].WeightKg, 1e-9)
}

func TestExportLabels_WritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	err := ExportLabels(path, samplePlan())
	require.NoError(t, err)
	requireNonEmptyFile(t, path)
}

func TestExportLabels_EmptyPlan(t *testing.T) {
	plan := &model.Plan{Vehicle: model.DefaultVehicle}
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), plan)
	require.Error(t, err)
}

func TestExportExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, ExportExcel(path, samplePlan(), model.DefaultSettings()))
	requireNonEmptyFile(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Placed")
	assert.Contains(t, sheets, "Unplaced")
	assert.Contains(t, sheets, "Summary")
	assert.NotContains(t, sheets, "Sheet1")

	sscc, err := f.GetCellValue("Placed", "B2")
	require.NoError(t, err)
	assert.Equal(t, "003400123456789012", sscc)

	unplaced, err := f.GetCellValue("Unplaced", "A2")
	require.NoError(t, err)
	assert.Equal(t, "003400123456789036", unplaced)

	task, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "task-42", task)
}

func TestExportDXF_OpensBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	require.NoError(t, ExportDXF(path, samplePlan()))
	requireNonEmptyFile(t, path)

	d, err := dxf.Open(path)
	require.NoError(t, err)
	// 4 hold outline lines, 4 per placed unit, plus text labels.
	assert.GreaterOrEqual(t, len(d.Entities()), 12)
}

func TestExportChart_WritesHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, ExportChart(path, samplePlan(), model.DefaultSettings()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
	assert.Contains(t, string(data), "Weight by zone")
}
