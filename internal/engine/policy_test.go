package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packman/loadplan/internal/model"
)

func TestZoneFor_QuarterBoundaries(t *testing.T) {
	v := testVehicle() // L = 13.60, head at -6.80
	s := model.DefaultSettings()

	assert.Equal(t, ZoneA, ZoneFor(-6.80, v, s.Zones))
	assert.Equal(t, ZoneA, ZoneFor(-3.40, v, s.Zones)) // boundary belongs to the earlier zone
	assert.Equal(t, ZoneB, ZoneFor(-3.39, v, s.Zones))
	assert.Equal(t, ZoneB, ZoneFor(0.0, v, s.Zones))
	assert.Equal(t, ZoneC, ZoneFor(0.01, v, s.Zones))
	assert.Equal(t, ZoneD, ZoneFor(6.79, v, s.Zones))

	// Out-of-range Z clamps into the hold.
	assert.Equal(t, ZoneA, ZoneFor(-100, v, s.Zones))
	assert.Equal(t, ZoneD, ZoneFor(100, v, s.Zones))
}

func candAt(u model.CargoUnit, z float64) model.Candidate {
	return model.NewCandidate(u, 0, 0, z, 0, model.KindSingle, model.CandidateMeta{})
}

func TestEvaluatePolicy_WeightMode(t *testing.T) {
	v := testVehicle()
	s := model.DefaultSettings()
	mode := model.ModeDecision{Mode: model.ModeWeight}

	heavy := stdUnit("h", 900)
	light := stdUnit("l", 100)

	front := EvaluatePolicy(heavy, candAt(heavy, -5), v, mode, s, false)
	assert.Equal(t, s.WeightHiABBonus, front.ZoneBonus)
	assert.Zero(t, front.ZonePenalty)

	rear := EvaluatePolicy(heavy, candAt(heavy, 5), v, mode, s, false)
	assert.Equal(t, s.WeightHiCDPenalty, rear.ZonePenalty)

	lightFront := EvaluatePolicy(light, candAt(light, -5), v, mode, s, false)
	assert.Equal(t, s.WeightLoABPenalty, lightFront.ZonePenalty)

	lightRear := EvaluatePolicy(light, candAt(light, 5), v, mode, s, false)
	assert.Equal(t, s.WeightLoCDBonus, lightRear.ZoneBonus)
}

func TestEvaluatePolicy_BoxGuidance(t *testing.T) {
	v := testVehicle()
	s := model.DefaultSettings()
	mode := model.ModeDecision{Mode: model.ModeMixed, Alpha: 0.5}

	box := model.NewCargoUnit("box", 0.35, 0.35, 0.30, 5)
	assert.Equal(t, model.ClassBox, box.Class(v.InnerWidth))

	// Front: the low-value mixed penalty stacks with the box penalty.
	front := EvaluatePolicy(box, candAt(box, -5), v, mode, s, false)
	assert.Equal(t, s.MixedLoABPenalty+s.BoxABPenalty, front.ZonePenalty)

	rear := EvaluatePolicy(box, candAt(box, 5), v, mode, s, false)
	assert.Equal(t, s.BoxCDBonus, rear.ZoneBonus)
}

func TestEvaluatePolicy_HardOversizeInD(t *testing.T) {
	v := testVehicle()
	s := model.DefaultSettings()
	mode := model.ModeDecision{Mode: model.ModeMixed, Alpha: 0.5}

	big := model.NewCargoUnit("xl", 2.0, 2.4, 1.0, 800)
	assert.Equal(t, model.ClassOversize, big.Class(v.InnerWidth))

	// Disabled by default, even with hard rules allowed.
	pol := EvaluatePolicy(big, candAt(big, 6), v, mode, s, true)
	assert.Empty(t, pol.HardRejectReasons)

	s.HardOversizeInD = true
	pol = EvaluatePolicy(big, candAt(big, 6), v, mode, s, true)
	assert.Equal(t, []string{"oversize_in_D"}, pol.HardRejectReasons)

	// Hard rules never fire from the soft path.
	pol = EvaluatePolicy(big, candAt(big, 6), v, mode, s, false)
	assert.Empty(t, pol.HardRejectReasons)
}

func TestSortQueue_ClassThenValue(t *testing.T) {
	v := testVehicle()
	s := model.DefaultSettings()
	mode := model.ModeDecision{Mode: model.ModeWeight}

	oversize := model.NewCargoUnit("xl", 2.0, 2.4, 1.0, 10)
	heavyStd := stdUnit("heavy", 900)
	lightStd := stdUnit("light", 100)
	box := model.NewCargoUnit("box", 0.35, 0.35, 0.30, 2000)

	units := []model.CargoUnit{box, lightStd, heavyStd, oversize}
	SortQueue(units, v, mode, s)

	assert.Equal(t, "xl", units[0].ID, "oversize leads regardless of K")
	assert.Equal(t, "heavy", units[1].ID)
	assert.Equal(t, "light", units[2].ID)
	assert.Equal(t, "box", units[3].ID, "boxes last even when heavy")
}
