package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packman/loadplan/internal/model"
)

func testVehicle() model.Vehicle {
	return model.Vehicle{ID: "TENT_20T", InnerWidth: 2.45, InnerHeight: 2.70, InnerLength: 13.60}
}

func stdUnit(id string, weight float64) model.CargoUnit {
	u := model.NewCargoUnit(id, 0.80, 1.20, 1.0, weight)
	return u
}

func TestDetectMode_EmptySet(t *testing.T) {
	m := DetectMode(nil, testVehicle(), model.DefaultSettings())

	assert.Equal(t, model.ModeMixed, m.Mode)
	assert.Equal(t, 0.5, m.Alpha)
	assert.Equal(t, 0.0, m.WeightPressure)
	assert.Equal(t, 0.0, m.FloorPressure)
}

func TestDetectMode_WeightDominates(t *testing.T) {
	v := testVehicle()
	payload := 1000.0
	v.PayloadMaxKg = &payload

	// Near-capacity weight on a nearly empty floor.
	units := []model.CargoUnit{stdUnit("a", 950)}

	m := DetectMode(units, v, model.DefaultSettings())

	assert.Equal(t, model.ModeWeight, m.Mode)
	assert.GreaterOrEqual(t, m.WeightPressure, 0.85)
	assert.Less(t, m.FloorPressure, 0.85)
}

func TestDetectMode_FloorDominates(t *testing.T) {
	v := model.Vehicle{ID: "short", InnerWidth: 2.45, InnerHeight: 2.70, InnerLength: 2.0}
	payload := 100000.0
	v.PayloadMaxKg = &payload

	var units []model.CargoUnit
	for i := 0; i < 5; i++ {
		units = append(units, stdUnit("", 10))
	}

	m := DetectMode(units, v, model.DefaultSettings())

	assert.Equal(t, model.ModeVolume, m.Mode)
	assert.GreaterOrEqual(t, m.FloorPressure, 0.85)
}

func TestDetectMode_MixedAlphaClamped(t *testing.T) {
	v := testVehicle()
	payload := 1000.0
	v.PayloadMaxKg = &payload

	// Weight pressure just under the threshold, floor nearly empty: the
	// raw blend exceeds 0.8 and must clamp.
	m := DetectMode([]model.CargoUnit{stdUnit("a", 840)}, v, model.DefaultSettings())

	assert.Equal(t, model.ModeMixed, m.Mode)
	assert.Equal(t, 0.8, m.Alpha)
}

func TestValueK_ByMode(t *testing.T) {
	u := stdUnit("a", 500) // ratio = 0.96, volume = 0.96

	kw := ValueK(u, model.ModeDecision{Mode: model.ModeWeight})
	assert.InDelta(t, 500*0.96, kw, 1e-9)

	kv := ValueK(u, model.ModeDecision{Mode: model.ModeVolume})
	assert.InDelta(t, 0.96*0.96, kv, 1e-9)

	km := ValueK(u, model.ModeDecision{Mode: model.ModeMixed, Alpha: 0.5})
	assert.InDelta(t, 0.5*kw+0.5*kv, km, 1e-9)
}

func TestValueK_RatioFallback(t *testing.T) {
	u := stdUnit("a", 100)
	u.Ratio = 0

	k := ValueK(u, model.ModeDecision{Mode: model.ModeWeight})
	assert.InDelta(t, 100.0, k, 1e-9, "missing ratio falls back to 1.0")
}
