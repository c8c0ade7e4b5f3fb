package geometry

import (
	"math"
	"sort"
)

const (
	// minRectArea is the threshold under which a residual strip is
	// considered degenerate and dropped.
	minRectArea = 1e-9

	// mergeEps is the edge-alignment tolerance for the merge pass.
	mergeEps = 1e-6

	// mergeMaxIters bounds the merge fixpoint iteration. Merging
	// converges in a handful of passes for realistic rect counts; the
	// cap is a safety bound only.
	mergeMaxIters = 50
)

// Rect is an open floor region on the hold floor, in hold-centered
// XZ coordinates.
type Rect struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinZ float64 `json:"minZ"`
	MaxZ float64 `json:"maxZ"`
}

// Width returns the X extent of the rect.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Length returns the Z extent of the rect.
func (r Rect) Length() float64 { return r.MaxZ - r.MinZ }

// Area returns the floor area of the rect (zero for degenerate rects).
func (r Rect) Area() float64 {
	return math.Max(0, r.Width()) * math.Max(0, r.Length())
}

// Contains reports whether r fully contains other, within eps.
func (r Rect) Contains(other Rect, eps float64) bool {
	return other.MinX >= r.MinX-eps && other.MaxX <= r.MaxX+eps &&
		other.MinZ >= r.MinZ-eps && other.MaxZ <= r.MaxZ+eps
}

// Intersects reports whether r and other overlap by more than eps.
func (r Rect) Intersects(other Rect, eps float64) bool {
	if r.MaxX <= other.MinX+eps || r.MinX >= other.MaxX-eps {
		return false
	}
	if r.MaxZ <= other.MinZ+eps || r.MinZ >= other.MaxZ-eps {
		return false
	}
	return true
}

// splitRect removes the area of used from free, producing up to four
// residual strips: left/right at full Z extent, front/back clipped to
// the used X range. Degenerate strips are dropped.
func splitRect(free, used Rect, eps float64) []Rect {
	var out []Rect

	if used.MinX > free.MinX+eps {
		out = append(out, Rect{free.MinX, math.Min(used.MinX, free.MaxX), free.MinZ, free.MaxZ})
	}
	if used.MaxX < free.MaxX-eps {
		out = append(out, Rect{math.Max(used.MaxX, free.MinX), free.MaxX, free.MinZ, free.MaxZ})
	}
	if used.MinZ > free.MinZ+eps {
		out = append(out, Rect{
			math.Max(free.MinX, used.MinX), math.Min(free.MaxX, used.MaxX),
			free.MinZ, math.Min(used.MinZ, free.MaxZ),
		})
	}
	if used.MaxZ < free.MaxZ-eps {
		out = append(out, Rect{
			math.Max(free.MinX, used.MinX), math.Min(free.MaxX, used.MaxX),
			math.Max(used.MaxZ, free.MinZ), free.MaxZ,
		})
	}

	kept := out[:0]
	for _, r := range out {
		if r.Area() > minRectArea {
			kept = append(kept, r)
		}
	}
	return kept
}

// pruneContained removes rects fully contained in another rect.
func pruneContained(rects []Rect, eps float64) []Rect {
	out := make([]Rect, 0, len(rects))
	for i, r := range rects {
		contained := false
		for j, other := range rects {
			if i == j {
				continue
			}
			if other.Contains(r, eps) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, r)
		}
	}
	return out
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// normalizeRect fixes inverted edges and snaps tiny eps drift to zero.
func normalizeRect(r Rect, eps float64) Rect {
	if r.MaxX < r.MinX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MaxZ < r.MinZ {
		r.MinZ, r.MaxZ = r.MaxZ, r.MinZ
	}
	if math.Abs(r.MinX) < eps {
		r.MinX = 0
	}
	if math.Abs(r.MaxX) < eps {
		r.MaxX = 0
	}
	if math.Abs(r.MinZ) < eps {
		r.MinZ = 0
	}
	if math.Abs(r.MaxZ) < eps {
		r.MaxZ = 0
	}
	return r
}

// tryMerge merges two rects sharing a full edge (equal span on the
// orthogonal axis, touching or overlapping within eps on the other).
func tryMerge(a, b Rect, eps float64) (Rect, bool) {
	// Merge along X: same Z span.
	if almostEqual(a.MinZ, b.MinZ, eps) && almostEqual(a.MaxZ, b.MaxZ, eps) {
		if a.MaxX >= b.MinX-eps && b.MaxX >= a.MinX-eps {
			return Rect{math.Min(a.MinX, b.MinX), math.Max(a.MaxX, b.MaxX), a.MinZ, a.MaxZ}, true
		}
	}
	// Merge along Z: same X span.
	if almostEqual(a.MinX, b.MinX, eps) && almostEqual(a.MaxX, b.MaxX, eps) {
		if a.MaxZ >= b.MinZ-eps && b.MaxZ >= a.MinZ-eps {
			return Rect{a.MinX, a.MaxX, math.Min(a.MinZ, b.MinZ), math.Max(a.MaxZ, b.MaxZ)}, true
		}
	}
	return Rect{}, false
}

// mergeAdjacent repeatedly merges edge-sharing rects to a fixpoint.
// Repeated splitting fragments the free set badly enough to starve
// later pattern placement; this pass counters that.
func mergeAdjacent(rects []Rect, eps float64, maxIters int) []Rect {
	if len(rects) == 0 {
		return nil
	}

	cur := make([]Rect, 0, len(rects))
	for _, r := range rects {
		if r.Area() > minRectArea {
			cur = append(cur, normalizeRect(r, eps))
		}
	}

	for iter := 0; iter < maxIters; iter++ {
		mergedAny := false
		used := make([]bool, len(cur))
		var next []Rect

		for i := range cur {
			if used[i] {
				continue
			}
			merged := cur[i]

			// Greedy: keep absorbing any compatible rect.
			changed := true
			for changed {
				changed = false
				for j := range cur {
					if i == j || used[j] {
						continue
					}
					if m, ok := tryMerge(merged, cur[j], eps); ok {
						merged = normalizeRect(m, eps)
						used[j] = true
						mergedAny = true
						changed = true
					}
				}
			}

			used[i] = true
			next = append(next, merged)
		}

		next = pruneContained(next, eps)
		kept := next[:0]
		for _, r := range next {
			if r.Area() > minRectArea {
				kept = append(kept, normalizeRect(r, eps))
			}
		}

		cur = kept
		if !mergedAny {
			break
		}
	}

	return cur
}

// FreeRects tracks the set of free floor rectangles inside the hold.
// Invariant: the rects never overlap a reserved area, no rect is fully
// contained in another, and their union is exactly the unreserved floor.
type FreeRects struct {
	rects []Rect
}

// NewFreeRects creates a tracker with one rect spanning the full floor
// of a hold with the given inner width and length.
func NewFreeRects(innerWidth, innerLength float64) *FreeRects {
	halfW := innerWidth / 2.0
	halfL := innerLength / 2.0
	return &FreeRects{
		rects: []Rect{{MinX: -halfW, MaxX: halfW, MinZ: -halfL, MaxZ: halfL}},
	}
}

// List returns a snapshot of the current free rects, sorted by
// descending area. The caller owns the slice.
func (f *FreeRects) List() []Rect {
	out := make([]Rect, len(f.rects))
	copy(out, f.rects)
	sort.Slice(out, func(i, j int) bool { return out[i].Area() > out[j].Area() })
	return out
}

// Len returns the number of free rects.
func (f *FreeRects) Len() int { return len(f.rects) }

// Reserve removes the used area from the free set: every overlapping
// rect is split into residual strips, contained rects are pruned, and
// adjacent rects are merged back together.
func (f *FreeRects) Reserve(used Rect) {
	var next []Rect
	for _, r := range f.rects {
		if !r.Intersects(used, Eps) {
			next = append(next, r)
			continue
		}
		next = append(next, splitRect(r, used, Eps)...)
	}

	next = pruneContained(next, Eps)
	f.rects = mergeAdjacent(next, mergeEps, mergeMaxIters)
}
