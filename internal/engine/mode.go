package engine

import (
	"math"

	"github.com/packman/loadplan/internal/model"
)

// DetectMode classifies a unit set against a vehicle by comparing three
// resource pressures: total weight against payload capacity, total
// floor demand against floor slot capacity, and total volume against
// volume capacity. Exactly one pressure clearly dominating selects the
// weight or volume mode; everything else is mixed with a blend factor.
func DetectMode(units []model.CargoUnit, vehicle model.Vehicle, s model.Settings) model.ModeDecision {
	if len(units) == 0 {
		return model.ModeDecision{Mode: model.ModeMixed, Alpha: 0.5}
	}

	var totalWeight, totalVolume, totalFloorDemand float64
	for _, u := range units {
		totalWeight += math.Max(0, u.Weight)
		totalVolume += u.Volume()
		totalFloorDemand += u.FloorDemand()
	}

	weightCapacity := math.Max(totalWeight, 1.0)
	if vehicle.PayloadMaxKg != nil {
		weightCapacity = *vehicle.PayloadMaxKg
	}

	// Floor demand is counted in standard slots, one slot per m² of
	// floor, so the slot capacity is the usable floor area itself.
	floorCapacity := vehicle.FloorArea() * s.FloorFill(vehicle)
	volCapacity := vehicle.Volume() * s.VolumeFill(vehicle)

	wp := totalWeight / math.Max(weightCapacity, s.Eps)
	fp := totalFloorDemand / math.Max(floorCapacity, s.Eps)
	vp := totalVolume / math.Max(volCapacity, s.Eps)

	thr := s.ModePressureThreshold

	if wp >= thr && fp < thr {
		return model.ModeDecision{Mode: model.ModeWeight, WeightPressure: wp, FloorPressure: fp, VolumePressure: vp}
	}
	if fp >= thr && wp < thr {
		return model.ModeDecision{Mode: model.ModeVolume, WeightPressure: wp, FloorPressure: fp, VolumePressure: vp}
	}

	alpha := math.Min(0.8, math.Max(0.2, (wp-fp+1.0)/2.0))
	return model.ModeDecision{Mode: model.ModeMixed, WeightPressure: wp, FloorPressure: fp, VolumePressure: vp, Alpha: alpha}
}

// ValueK returns the unit's priority value under a mode. The floor
// demand ratio multiplies the value: a unit that eats more floor must
// be considered earlier, never later.
func ValueK(u model.CargoUnit, mode model.ModeDecision) float64 {
	r := u.FloorDemand()
	w := math.Max(0, u.Weight) * r
	vol := u.Volume() * r

	switch mode.Mode {
	case model.ModeWeight:
		return w
	case model.ModeVolume:
		return vol
	}

	alpha := mode.Alpha
	if alpha == 0 {
		alpha = 0.5
	}
	return alpha*w + (1.0-alpha)*vol
}
