package engine

import (
	"strings"

	"github.com/packman/loadplan/internal/geometry"
	"github.com/packman/loadplan/internal/model"
)

// checkBounds rejects a candidate whose box leaves the hold interior.
func checkBounds(c model.Candidate, vehicle model.Vehicle) (bool, []string) {
	if c.Box.OutsideHold(vehicle.HalfWidth(), vehicle.InnerHeight, vehicle.HalfLength(), geometry.Eps) {
		return false, []string{"oob"}
	}
	return true, nil
}

// checkCollision rejects a candidate whose box overlaps any placed unit.
func checkCollision(c model.Candidate, placed []model.PlacedUnit) (bool, []string) {
	for _, p := range placed {
		if c.Box.Intersects(p.Box, geometry.Eps) {
			return false, []string{"collision"}
		}
	}
	return true, nil
}

// canCommitGroup validates a pattern group atomically: no internal
// collision, every member in bounds and clear of placed units, and the
// axle gate passing with all members applied together.
func canCommitGroup(st *planState, group []model.Candidate) (bool, []string) {
	for i := range group {
		for j := 0; j < i; j++ {
			if group[i].Box.Intersects(group[j].Box, geometry.Eps) {
				return false, []string{"pattern_internal_collision"}
			}
		}
	}

	for _, c := range group {
		if ok, r := checkBounds(c, st.vehicle); !ok {
			return false, r
		}
		if ok, r := checkCollision(c, st.placed); !ok {
			return false, r
		}
	}

	tmp := make([]model.PlacedUnit, len(st.placed), len(st.placed)+len(group))
	copy(tmp, st.placed)
	for _, c := range group {
		tmp = append(tmp, model.Place(c, st.unitsByID[c.UnitID]))
	}

	loads := ComputeLoads(tmp, st.vehicle)
	if ok, r := CheckLoads(loads, st.vehicle); !ok {
		return false, r
	}

	return true, nil
}

// rejectBucket folds raw reject reasons into a small set of stable
// buckets for the event trail.
func rejectBucket(reasons []string) string {
	if len(reasons) == 0 {
		return "unknown"
	}
	s := strings.ToLower(strings.Join(reasons, "|"))
	switch {
	case strings.Contains(s, "pattern_internal_collision"):
		return "internal_collision"
	case strings.Contains(s, "oob"), strings.Contains(s, "out"):
		return "oob"
	case strings.Contains(s, "collision"), strings.Contains(s, "intersect"):
		return "collision"
	case strings.Contains(s, "axle"), strings.Contains(s, "load"), strings.Contains(s, "support"):
		return "axles"
	default:
		return "other"
	}
}
