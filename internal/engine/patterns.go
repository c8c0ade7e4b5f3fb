package engine

import (
	"math"

	"github.com/packman/loadplan/internal/geometry"
	"github.com/packman/loadplan/internal/model"
)

// Pattern slot footprints. Patterns lay whole rows of EUR pallets
// (0.80 x 1.20) and big pallets (1.40 x 1.20) into a free rect; the
// slot dimensions are fixed nominal values, members only have to fit
// under the per-slot caps.
const (
	pattern3AcrossW = 2.40
	pattern3AcrossZ = 1.20

	pattern140P80W = 2.20
	pattern140P80Z = 1.20

	pattern3Plus2W = 2.40
	pattern3Plus2Z = 2.00

	patternZigzagW = 2.40
	patternZigzagZ = 2.00

	// Per-member caps: nominal slot plus tolerances.
	stdCapX = 0.86
	stdCapZ = 1.26
	bigCapX = 1.46
	bigCapZ = 1.26
)

func topOf(units []model.CargoUnit, n int) []model.CargoUnit {
	if n <= 0 {
		return nil
	}
	if len(units) < n {
		n = len(units)
	}
	return units[:n]
}

// rotFor picks the rotation that puts the unit's X extent near wantW
// and Z extent near wantL.
func rotFor(u model.CargoUnit, wantW, wantL float64) int {
	if math.Abs(u.Width-wantW) <= model.SizeTol && math.Abs(u.Length-wantL) <= model.SizeTol {
		return 0
	}
	return 90
}

// variantsTake3 enumerates up to maxVariants index triples over the
// prefix of a value-ordered pool, highest value first. The pool order
// comes from the packer queue; no re-sorting happens here.
func variantsTake3(pool []model.CargoUnit, maxVariants int) [][3]model.CargoUnit {
	n := len(pool)
	if n < 3 {
		return nil
	}

	idxSets := [][3]int{{0, 1, 2}}
	if n >= 4 {
		idxSets = append(idxSets, [3]int{0, 1, 3}, [3]int{0, 2, 3}, [3]int{1, 2, 3})
	}
	if n >= 5 {
		idxSets = append(idxSets, [3]int{0, 1, 4}, [3]int{0, 2, 4})
	}

	var out [][3]model.CargoUnit
	for _, idx := range idxSets {
		if len(out) >= maxVariants {
			break
		}
		out = append(out, [3]model.CargoUnit{pool[idx[0]], pool[idx[1]], pool[idx[2]]})
	}
	return out
}

// variantsTake5 enumerates up to maxVariants index quintuples, base
// top-5 first, then swaps near the tail to give slightly weaker units
// a chance when the tight set fails geometry or axle checks.
func variantsTake5(pool []model.CargoUnit, maxVariants int) [][5]model.CargoUnit {
	n := len(pool)
	if n < 5 {
		return nil
	}

	idxSets := [][5]int{{0, 1, 2, 3, 4}}
	if n >= 6 {
		idxSets = append(idxSets,
			[5]int{0, 1, 2, 3, 5},
			[5]int{0, 1, 2, 4, 5},
			[5]int{0, 1, 3, 4, 5})
	}
	if n >= 7 {
		idxSets = append(idxSets,
			[5]int{0, 2, 3, 4, 5},
			[5]int{1, 2, 3, 4, 5},
			[5]int{0, 1, 2, 3, 6},
			[5]int{0, 1, 2, 4, 6})
	}

	var out [][5]model.CargoUnit
	for _, idx := range idxSets {
		if len(out) >= maxVariants {
			break
		}
		var five [5]model.CargoUnit
		for k, i := range idx {
			five[k] = pool[i]
		}
		out = append(out, five)
	}
	return out
}

// memberAt builds one pattern member candidate centered at (x, zc)
// with the slot rotation, rejecting members over the caps.
func memberAt(u model.CargoUnit, x, zc, wantW, wantL, capX, capZ float64, kind model.CandidateKind, meta model.CandidateMeta) (model.Candidate, bool) {
	rot := rotFor(u, wantW, wantL)
	dx, dz := u.Width, u.Length
	if rot == 90 {
		dx, dz = u.Length, u.Width
	}
	if dx > capX || dz > capZ {
		return model.Candidate{}, false
	}
	return model.NewCandidate(u, x, 0, zc, rot, kind, meta), true
}

// genThreeAcross lays three standard pallets across the rect width in
// one 1.20 deep row.
func genThreeAcross(rect geometry.Rect, stdUnits []model.CargoUnit, zAnchor float64, s model.Settings) [][]model.Candidate {
	if rect.Width()+1e-9 < pattern3AcrossW || rect.Length()+1e-9 < pattern3AcrossZ {
		return nil
	}

	pool := topOf(stdUnits, s.PatternPrefixStd)
	if len(pool) < 3 {
		return nil
	}

	zc := zAnchor + pattern3AcrossZ/2.0

	var out [][]model.Candidate
	for _, trio := range variantsTake3(pool, s.MaxVariants3Across) {
		pack := make([]model.Candidate, 0, 3)
		ok := true
		for j, u := range trio {
			meta := model.CandidateMeta{
				Pattern: "3across", Rect: rect, SlotZ0: zAnchor, Index: j, KRank: j,
			}
			x := rect.MinX + float64(j)*0.80 + memberHalfX(u, 0.80, 1.20)
			c, fits := memberAt(u, x, zc, 0.80, 1.20, stdCapX, stdCapZ, model.KindPattern3Across, meta)
			if !fits {
				ok = false
				break
			}
			pack = append(pack, c)
		}
		if ok {
			out = append(out, pack)
		}
	}
	return out
}

// memberHalfX returns half the member's X extent under the slot
// rotation, used to convert a slot edge into a center coordinate.
func memberHalfX(u model.CargoUnit, wantW, wantL float64) float64 {
	if rotFor(u, wantW, wantL) == 0 {
		return u.Width / 2.0
	}
	return u.Length / 2.0
}

// gen140Plus80 pairs one big 1.40 pallet with one standard pallet in a
// single 1.20 deep row. The orientation is fixed: the pair always
// spans 2.20 across X.
func gen140Plus80(rect geometry.Rect, bigUnits, stdUnits []model.CargoUnit, zAnchor float64, s model.Settings) [][]model.Candidate {
	if rect.Width()+1e-9 < pattern140P80W || rect.Length()+1e-9 < pattern140P80Z {
		return nil
	}

	bigPool := topOf(bigUnits, s.PatternPrefixBig)
	stdPool := topOf(stdUnits, s.PatternPrefixStd)
	if len(bigPool) == 0 || len(stdPool) == 0 {
		return nil
	}

	zc := zAnchor + pattern140P80Z/2.0

	var out [][]model.Candidate
	for bi, big := range bigPool {
		rotB := rotFor(big, 1.40, 1.20)
		dxB, dzB := big.Width, big.Length
		if rotB == 90 {
			dxB, dzB = big.Length, big.Width
		}
		if dxB > bigCapX || dzB > bigCapZ {
			continue
		}

		for si, std := range stdPool {
			rotS := rotFor(std, 0.80, 1.20)
			dxS, dzS := std.Width, std.Length
			if rotS == 90 {
				dxS, dzS = std.Length, std.Width
			}
			if dxS > stdCapX || dzS > stdCapZ {
				continue
			}
			if dxB+dxS > rect.Width()+1e-9 {
				continue
			}

			xb := rect.MinX + dxB/2.0
			xs := rect.MinX + dxB + dxS/2.0

			metaB := model.CandidateMeta{Pattern: "140plus80", Rect: rect, SlotZ0: zAnchor, Role: "big", KRank: bi}
			metaS := model.CandidateMeta{Pattern: "140plus80", Rect: rect, SlotZ0: zAnchor, Role: "std", KRank: si}

			out = append(out, []model.Candidate{
				model.NewCandidate(big, xb, 0, zc, rotB, model.KindPattern140Plus80, metaB),
				model.NewCandidate(std, xs, 0, zc, rotS, model.KindPattern140Plus80, metaS),
			})
			if len(out) >= s.MaxVariants140Plus80 {
				return out
			}
		}
	}
	return out
}

// genThreePlus2 stacks two rows into a 2.40 x 2.00 block: three
// upright pallets, then two rotated ones behind them.
func genThreePlus2(rect geometry.Rect, stdUnits []model.CargoUnit, zAnchor float64, s model.Settings) [][]model.Candidate {
	if rect.Width()+1e-9 < pattern3Plus2W || rect.Length()+1e-9 < pattern3Plus2Z {
		return nil
	}

	pool := topOf(stdUnits, s.PatternPrefixStd)
	if len(pool) < 5 {
		return nil
	}

	zc1 := zAnchor + 1.20/2.0
	zc2 := zAnchor + 1.20 + 0.80/2.0

	var out [][]model.Candidate
	for _, five := range variantsTake5(pool, s.MaxVariants5) {
		pack := make([]model.Candidate, 0, 5)
		ok := true

		for j := 0; j < 3; j++ {
			u := five[j]
			meta := model.CandidateMeta{Pattern: "3plus2", Rect: rect, SlotZ0: zAnchor, Row: 1, Index: j, KRank: j}
			x := rect.MinX + float64(j)*0.80 + memberHalfX(u, 0.80, 1.20)
			c, fits := memberAt(u, x, zc1, 0.80, 1.20, stdCapX, stdCapZ, model.KindPattern3Plus2, meta)
			if !fits {
				ok = false
				break
			}
			pack = append(pack, c)
		}
		if !ok {
			continue
		}

		for j := 0; j < 2; j++ {
			u := five[3+j]
			meta := model.CandidateMeta{Pattern: "3plus2", Rect: rect, SlotZ0: zAnchor, Row: 2, Index: j, KRank: 3 + j}
			x := rect.MinX + float64(j)*1.20 + memberHalfX(u, 1.20, 0.80)
			c, fits := memberAt(u, x, zc2, 1.20, 0.80, stdCapZ, stdCapX, model.KindPattern3Plus2, meta)
			if !fits {
				ok = false
				break
			}
			pack = append(pack, c)
		}

		if ok {
			out = append(out, pack)
		}
	}
	return out
}

// genZigzag is the reversed two-row block: the rotated pair first,
// then the upright trio.
func genZigzag(rect geometry.Rect, stdUnits []model.CargoUnit, zAnchor float64, s model.Settings) [][]model.Candidate {
	if rect.Width()+1e-9 < patternZigzagW || rect.Length()+1e-9 < patternZigzagZ {
		return nil
	}

	pool := topOf(stdUnits, s.PatternPrefixStd)
	if len(pool) < 5 {
		return nil
	}

	zc1 := zAnchor + 0.80/2.0
	zc2 := zAnchor + 0.80 + 1.20/2.0

	var out [][]model.Candidate
	for _, five := range variantsTake5(pool, s.MaxVariants5) {
		pack := make([]model.Candidate, 0, 5)
		ok := true

		for j := 0; j < 2; j++ {
			u := five[j]
			meta := model.CandidateMeta{Pattern: "zigzag", Rect: rect, SlotZ0: zAnchor, Row: 1, Index: j, KRank: j}
			x := rect.MinX + float64(j)*1.20 + memberHalfX(u, 1.20, 0.80)
			c, fits := memberAt(u, x, zc1, 1.20, 0.80, stdCapZ, stdCapX, model.KindPatternZigzag, meta)
			if !fits {
				ok = false
				break
			}
			pack = append(pack, c)
		}
		if !ok {
			continue
		}

		for j := 0; j < 3; j++ {
			u := five[2+j]
			meta := model.CandidateMeta{Pattern: "zigzag", Rect: rect, SlotZ0: zAnchor, Row: 2, Index: j, KRank: 2 + j}
			x := rect.MinX + float64(j)*0.80 + memberHalfX(u, 0.80, 1.20)
			c, fits := memberAt(u, x, zc2, 0.80, 1.20, stdCapX, stdCapZ, model.KindPatternZigzag, meta)
			if !fits {
				ok = false
				break
			}
			pack = append(pack, c)
		}

		if ok {
			out = append(out, pack)
		}
	}
	return out
}
