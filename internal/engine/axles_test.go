package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packman/loadplan/internal/model"
)

func axleVehicle() model.Vehicle {
	v := model.Vehicle{ID: "axle", InnerWidth: 2.45, InnerHeight: 2.70, InnerLength: 10.0}
	aPos, bPos := 1.0, 9.0
	aLim, bLim := 1000.0, 1000.0
	v.AxleAPosFromHeadM = &aPos
	v.AxleBPosFromHeadM = &bPos
	v.AxleALimitKg = &aLim
	v.AxleBLimitKg = &bLim
	return v
}

func placedAt(z, weight float64) model.PlacedUnit {
	u := stdUnit("", weight)
	c := model.NewCandidate(u, 0, 0, z, 0, model.KindSingle, model.CandidateMeta{})
	return model.Place(c, u)
}

func TestComputeLoads_MidpointSplitsEvenly(t *testing.T) {
	v := axleVehicle()

	// z = 0 is 5.0 m from the head, the exact axle midpoint.
	loads := ComputeLoads([]model.PlacedUnit{placedAt(0, 800)}, v)

	assert.InDelta(t, 800.0, loads.PayloadKg, 1e-9)
	assert.InDelta(t, 400.0, loads.AxleAKg, 1e-9)
	assert.InDelta(t, 400.0, loads.AxleBKg, 1e-9)
}

func TestComputeLoads_LeverArm(t *testing.T) {
	v := axleVehicle()

	// 3.0 m from the head: 2/8 of the span past axle A.
	loads := ComputeLoads([]model.PlacedUnit{placedAt(-2.0, 800)}, v)

	assert.InDelta(t, 200.0, loads.AxleBKg, 1e-9)
	assert.InDelta(t, 600.0, loads.AxleAKg, 1e-9)
}

func TestComputeLoads_NoAxleModel(t *testing.T) {
	v := testVehicle()
	loads := ComputeLoads([]model.PlacedUnit{placedAt(0, 500), placedAt(2, 300)}, v)

	assert.InDelta(t, 800.0, loads.PayloadKg, 1e-9)
	assert.Zero(t, loads.AxleAKg)
	assert.Zero(t, loads.AxleBKg)
}

func TestCheckLoads(t *testing.T) {
	v := axleVehicle()
	payload := 1500.0
	v.PayloadMaxKg = &payload

	ok, reasons := CheckLoads(model.AxleLoads{PayloadKg: 1400, AxleAKg: 900, AxleBKg: 500}, v)
	assert.True(t, ok)
	assert.Empty(t, reasons)

	ok, reasons = CheckLoads(model.AxleLoads{PayloadKg: 1600, AxleAKg: 1100, AxleBKg: 500}, v)
	assert.False(t, ok)
	assert.Equal(t, []string{"payload_limit", "axleA_limit"}, reasons)
}

func TestCheckLoads_NoLimits(t *testing.T) {
	ok, reasons := CheckLoads(model.AxleLoads{PayloadKg: 1e9}, testVehicle())
	assert.True(t, ok)
	assert.Empty(t, reasons)
}
