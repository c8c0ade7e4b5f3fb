package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/packman/loadplan/internal/geometry"
	"github.com/packman/loadplan/internal/model"
)

// anchorsForRect returns the distinct corner anchors where a dx x dz
// footprint can sit inside the rect (min/max X crossed with min/max Z).
func anchorsForRect(r geometry.Rect, dx, dz float64) [][2]float64 {
	x0, x1 := r.MinX, r.MaxX-dx
	z0, z1 := r.MinZ, r.MaxZ-dz
	if x1 < x0-1e-9 || z1 < z0-1e-9 {
		return nil
	}

	pts := [][2]float64{{x0, z0}, {x1, z0}, {x0, z1}, {x1, z1}}
	seen := make(map[[2]float64]bool, 4)
	var out [][2]float64
	for _, p := range pts {
		key := [2]float64{math.Round(p[0]*1e6) / 1e6, math.Round(p[1]*1e6) / 1e6}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// zAnchorsForLen returns the two Z anchors for a slot of slotLen inside
// the rect: flush with the rect's near edge and flush with its far edge.
func zAnchorsForLen(r geometry.Rect, slotLen float64) []float64 {
	if r.Length()+1e-9 < slotLen {
		return nil
	}
	return []float64{r.MinZ, r.MaxZ - slotLen}
}

// assignPatternID stamps one fresh id on every member of a pack. Each
// enumerated variant gets its own id; sharing an id between variants
// would glue alternatives into one group and trip the internal
// collision check.
func assignPatternID(pack []model.Candidate) {
	pid := uuid.New().String()
	for i := range pack {
		pack[i].Meta.PatternID = pid
	}
}

// GenerateFloorCandidates enumerates all floor placements for the
// window: pattern packs over the largest free rects first, then single
// anchor placements for every unit in both rotations. Nothing is
// filtered here beyond rect fit; bounds, collision and axle gates run
// in the packer.
func (st *planState) GenerateFloorCandidates(window []model.CargoUnit) []model.Candidate {
	var out []model.Candidate

	rects := st.free.List()
	if len(rects) > st.settings.MaxFreeRects {
		rects = rects[:st.settings.MaxFreeRects]
	}

	var stdUnits, bigUnits []model.CargoUnit
	for _, u := range window {
		if u.IsStandard80x120() {
			stdUnits = append(stdUnits, u)
		}
		if u.IsBig140x120() {
			bigUnits = append(bigUnits, u)
		}
	}

	for _, r := range rects {
		for _, z0 := range zAnchorsForLen(r, pattern3AcrossZ) {
			for _, pack := range genThreeAcross(r, stdUnits, z0, st.settings) {
				assignPatternID(pack)
				out = append(out, pack...)
			}
		}
		for _, z0 := range zAnchorsForLen(r, pattern140P80Z) {
			for _, pack := range gen140Plus80(r, bigUnits, stdUnits, z0, st.settings) {
				assignPatternID(pack)
				out = append(out, pack...)
			}
		}
		for _, z0 := range zAnchorsForLen(r, pattern3Plus2Z) {
			for _, pack := range genThreePlus2(r, stdUnits, z0, st.settings) {
				assignPatternID(pack)
				out = append(out, pack...)
			}
		}
		for _, z0 := range zAnchorsForLen(r, patternZigzagZ) {
			for _, pack := range genZigzag(r, stdUnits, z0, st.settings) {
				assignPatternID(pack)
				out = append(out, pack...)
			}
		}
	}

	for _, u := range window {
		for _, rot := range []int{0, 90} {
			dx, dz := u.Width, u.Length
			if rot == 90 {
				dx, dz = u.Length, u.Width
			}

			for _, r := range rects {
				if r.Width()+1e-9 < dx || r.Length()+1e-9 < dz {
					continue
				}
				for _, a := range anchorsForRect(r, dx, dz) {
					x := a[0] + dx/2.0
					z := a[1] + dz/2.0
					meta := model.CandidateMeta{Rect: r, AnchorX: a[0], AnchorZ: a[1]}
					out = append(out, model.NewCandidate(u, x, 0, z, rot, model.KindSingle, meta))
				}
			}
		}
	}

	return out
}
