package engine

import (
	"math"
	"sort"

	"github.com/packman/loadplan/internal/model"
)

// Zone names the four longitudinal zones of the hold, head to tail.
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
	ZoneD Zone = "D"
)

// XFromHead converts a centered Z coordinate to a distance from the
// head wall, in [0, innerLength].
func XFromHead(z float64, vehicle model.Vehicle) float64 {
	return z + vehicle.InnerLength/2.0
}

// ZoneFor maps a candidate's Z center to its zone.
func ZoneFor(z float64, vehicle model.Vehicle, zones model.ZoneFractions) Zone {
	L := vehicle.InnerLength
	x := math.Min(math.Max(XFromHead(z, vehicle), 0), L)

	aEnd := L * zones.A
	bEnd := aEnd + L*zones.B
	cEnd := bEnd + L*zones.C

	switch {
	case x <= aEnd:
		return ZoneA
	case x <= bEnd:
		return ZoneB
	case x <= cEnd:
		return ZoneC
	default:
		return ZoneD
	}
}

func (z Zone) isFront() bool { return z == ZoneA || z == ZoneB }
func (z Zone) isRear() bool  { return z == ZoneC || z == ZoneD }

// PolicyDecision is the zoning verdict for one candidate: soft bonus
// and penalty terms plus optional hard reject reasons.
type PolicyDecision struct {
	HardRejectReasons []string
	ZonePenalty       float64
	ZoneBonus         float64
	Tags              map[string]string
}

// Term returns bonus minus penalty.
func (p PolicyDecision) Term() float64 { return p.ZoneBonus - p.ZonePenalty }

// isHighValue is a plain heavy/bulky heuristic. The floor demand ratio
// never enters here: it is a demand, not a divisor.
func isHighValue(u model.CargoUnit, mode model.ModeDecision, s model.Settings) bool {
	switch mode.Mode {
	case model.ModeWeight:
		return math.Max(0, u.Weight) >= s.HiWeightKg
	case model.ModeVolume:
		return u.Volume() >= s.HiVolumeM3
	}
	return math.Max(0, u.Weight) >= s.HiWeightMixedKg
}

// EvaluatePolicy scores a candidate's zone fit for its unit. All rules
// are soft guidance unless allowHard is set and the matching hard rule
// is enabled in the settings.
func EvaluatePolicy(u model.CargoUnit, c model.Candidate, vehicle model.Vehicle, mode model.ModeDecision, s model.Settings, allowHard bool) PolicyDecision {
	zone := ZoneFor(c.Z, vehicle, s.Zones)
	cls := u.Class(vehicle.InnerWidth)
	hi := isHighValue(u, mode, s)

	var hard []string
	var penalty, bonus float64

	switch mode.Mode {
	case model.ModeWeight:
		if hi {
			if zone.isFront() {
				bonus += s.WeightHiABBonus
			} else {
				penalty += s.WeightHiCDPenalty
			}
		} else {
			if zone.isRear() {
				bonus += s.WeightLoCDBonus
			} else {
				penalty += s.WeightLoABPenalty
			}
		}

	case model.ModeVolume:
		if u.Footprint() >= s.BigFootprintM2 {
			if zone != ZoneD {
				bonus += s.VolumeBigABCBonus
			} else {
				penalty += s.VolumeBigDPenalty
			}
		} else if zone.isRear() {
			bonus += s.VolumeSmallCDBonus
		}

	default:
		if hi && zone.isFront() {
			bonus += s.MixedHiABBonus
		}
		if !hi && zone.isFront() {
			penalty += s.MixedLoABPenalty
		}
	}

	if cls == model.ClassOversize {
		bonus += s.OversizeBonus
	}
	if cls == model.ClassBox {
		if zone.isFront() {
			penalty += s.BoxABPenalty
		} else {
			bonus += s.BoxCDBonus
		}
	}

	if allowHard && s.HardOversizeInD && cls == model.ClassOversize && zone == ZoneD {
		hard = append(hard, "oversize_in_D")
	}

	hiTag := "0"
	if hi {
		hiTag = "1"
	}

	return PolicyDecision{
		HardRejectReasons: hard,
		ZonePenalty:       penalty,
		ZoneBonus:         bonus,
		Tags: map[string]string{
			"zone":  string(zone),
			"class": string(cls),
			"hi":    hiTag,
			"mode":  string(mode.Mode),
		},
	}
}

// SortQueue orders units for the packer: class priority first
// (oversize earliest), then descending K. The sort is stable so equal
// keys keep their input order.
func SortQueue(units []model.CargoUnit, vehicle model.Vehicle, mode model.ModeDecision, s model.Settings) {
	sort.SliceStable(units, func(i, j int) bool {
		pi := s.PriorityFor(units[i].Class(vehicle.InnerWidth))
		pj := s.PriorityFor(units[j].Class(vehicle.InnerWidth))
		if pi != pj {
			return pi < pj
		}
		return ValueK(units[i], mode) > ValueK(units[j], mode)
	})
}
