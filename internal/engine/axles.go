package engine

import (
	"math"

	"github.com/packman/loadplan/internal/model"
)

// ComputeLoads distributes the placed weight over the two-axle model.
// Each unit's weight splits by the lever arm between the axles; when
// the vehicle has no axle model only the payload total is filled.
// Loads are always recomputed from the full placed set, never updated
// incrementally.
func ComputeLoads(placed []model.PlacedUnit, vehicle model.Vehicle) model.AxleLoads {
	var total float64
	for _, p := range placed {
		total += p.Unit.Weight
	}

	loads := model.AxleLoads{PayloadKg: total}

	if !vehicle.HasAxleModel() {
		return loads
	}
	aPos := *vehicle.AxleAPosFromHeadM
	bPos := *vehicle.AxleBPosFromHeadM
	span := bPos - aPos
	if math.Abs(span) < 1e-9 {
		return loads
	}

	for _, p := range placed {
		w := p.Unit.Weight
		xFromHead := XFromHead(p.Z, vehicle)

		rb := w * (xFromHead - aPos) / span
		loads.AxleAKg += w - rb
		loads.AxleBKg += rb
	}
	return loads
}

// CheckLoads gates a load aggregate against the vehicle limits.
// Missing limits do not constrain.
func CheckLoads(loads model.AxleLoads, vehicle model.Vehicle) (bool, []string) {
	var reasons []string

	if vehicle.PayloadMaxKg != nil && loads.PayloadKg > *vehicle.PayloadMaxKg+1e-9 {
		reasons = append(reasons, "payload_limit")
	}
	if vehicle.AxleALimitKg != nil && loads.AxleAKg > *vehicle.AxleALimitKg+1e-9 {
		reasons = append(reasons, "axleA_limit")
	}
	if vehicle.AxleBLimitKg != nil && loads.AxleBKg > *vehicle.AxleBLimitKg+1e-9 {
		reasons = append(reasons, "axleB_limit")
	}

	return len(reasons) == 0, reasons
}
