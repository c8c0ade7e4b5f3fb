package engine

import (
	"math"

	"github.com/packman/loadplan/internal/model"
)

// SingleScore orders single candidates: placed-count delta first (in
// floor planning always 1, kept as the leading component), then the
// unit value K, then used floor area as an anti-fragmentation proxy,
// then the weighted policy term.
type SingleScore struct {
	Placed   int
	K        float64
	UsedArea float64
	Policy   float64
}

// Better reports strict lexicographic ordering, larger wins.
func (s SingleScore) Better(o SingleScore) bool {
	if s.Placed != o.Placed {
		return s.Placed > o.Placed
	}
	if s.K != o.K {
		return s.K > o.K
	}
	if s.UsedArea != o.UsedArea {
		return s.UsedArea > o.UsedArea
	}
	return s.Policy > o.Policy
}

// PatternScore orders pattern groups. Geometry leads: the packing
// quality comes before everything, and the group's K sum is last so a
// heavy group can never outrank a tighter one.
type PatternScore struct {
	Placed      int
	Quality     float64
	UsedAreaSum float64
	PolicySum   float64
	KSum        float64
}

func (s PatternScore) Better(o PatternScore) bool {
	if s.Placed != o.Placed {
		return s.Placed > o.Placed
	}
	if s.Quality != o.Quality {
		return s.Quality > o.Quality
	}
	if s.UsedAreaSum != o.UsedAreaSum {
		return s.UsedAreaSum > o.UsedAreaSum
	}
	if s.PolicySum != o.PolicySum {
		return s.PolicySum > o.PolicySum
	}
	return s.KSum > o.KSum
}

// scoreSingle scores one candidate under the current mode; the policy
// term is folded into the last component with its settings weight.
func scoreSingle(u model.CargoUnit, c model.Candidate, mode model.ModeDecision, pol PolicyDecision, s model.Settings) SingleScore {
	return SingleScore{
		Placed:   1,
		K:        ValueK(u, mode),
		UsedArea: c.DX * c.DZ,
		Policy:   s.PolicyScoreWeight * pol.Term(),
	}
}

// touchEps is the tolerance for counting a bbox side as flush with its
// free-rect border.
const touchEps = 1e-3

// patternQuality rates a pattern group geometrically: density of the
// group inside its own bounding box, how many bbox sides sit flush
// against the free rect that hosted the pattern, and the total slack
// left between bbox and rect.
func patternQuality(group []model.Candidate, s model.Settings) (float64, map[string]any) {
	if len(group) == 0 {
		return 0, nil
	}

	var used float64
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)

	for _, c := range group {
		used += c.DX * c.DZ
		minX = math.Min(minX, c.Box.MinX)
		maxX = math.Max(maxX, c.Box.MaxX)
		minZ = math.Min(minZ, c.Box.MinZ)
		maxZ = math.Max(maxZ, c.Box.MaxZ)
	}

	bboxArea := math.Max(0, maxX-minX) * math.Max(0, maxZ-minZ)
	density := 0.0
	if bboxArea > 1e-9 {
		density = used / bboxArea
	}

	rect := group[0].Meta.Rect
	leftGap := math.Max(0, minX-rect.MinX)
	rightGap := math.Max(0, rect.MaxX-maxX)
	frontGap := math.Max(0, minZ-rect.MinZ)
	backGap := math.Max(0, rect.MaxZ-maxZ)
	slack := leftGap + rightGap + frontGap + backGap

	touch := 0.0
	for _, g := range []float64{leftGap, rightGap, frontGap, backGap} {
		if g <= touchEps {
			touch++
		}
	}

	quality := s.QualityDensityWeight*density + s.QualityTouchWeight*touch - s.QualitySlackWeight*slack

	dbg := map[string]any{
		"used":     used,
		"bboxArea": bboxArea,
		"density":  density,
		"slack":    slack,
		"touch":    touch,
		"quality":  quality,
	}
	return quality, dbg
}
