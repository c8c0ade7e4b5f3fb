package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// UnitStatus is the lifecycle status of a cargo unit. The core only
// ever moves a unit from StatusOK to StatusUnplaced; everything else
// is set by the normalization collaborator.
type UnitStatus string

const (
	StatusOK       UnitStatus = "ok"
	StatusUnplaced UnitStatus = "unplaced"
)

// UnitClass is the priority class used for queue ordering and zoning.
type UnitClass string

const (
	ClassOversize UnitClass = "oversize"
	ClassStandard UnitClass = "standard"
	ClassBox      UnitClass = "box"
	ClassOther    UnitClass = "other"
)

// SizeTol is the dimensional tolerance (meters) for pallet size-class
// checks. Real pallets drift a couple of centimeters from nominal.
const SizeTol = 0.03

// CargoUnit is one pallet or box to be placed. Dimensions are meters,
// weight is kilograms. Ratio is the floor demand in standard floor
// slots; when unknown it defaults to the footprint in m².
type CargoUnit struct {
	ID            string `json:"id"`
	SSCC          string `json:"sscc,omitempty"`
	TaskID        string `json:"taskId,omitempty"`
	RouteID       string `json:"routeId,omitempty"`
	TransportType string `json:"transportType,omitempty"`

	ProviderID   string `json:"providerId,omitempty"`
	ProviderName string `json:"providerName,omitempty"`

	PalletType     string `json:"palletType,omitempty"`
	PalletTypeNorm string `json:"palletTypeNorm,omitempty"`

	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Ratio  float64 `json:"ratio"`

	CanBeBase    bool `json:"canBeBase"`
	CanBeStacked bool `json:"canBeStacked"`

	Status UnitStatus `json:"status"`
}

// NewCargoUnit builds a unit with an SSCC identity (a fresh short id
// when empty) and the ratio fallback of its footprint.
func NewCargoUnit(sscc string, width, length, height, weight float64) CargoUnit {
	id := sscc
	if id == "" {
		id = uuid.New().String()[:8]
	}
	return CargoUnit{
		ID:        id,
		SSCC:      id,
		Width:     width,
		Length:    length,
		Height:    height,
		Weight:    weight,
		Ratio:     width * length,
		CanBeBase: true,
		Status:    StatusOK,
	}
}

// Validate rejects units the packer cannot place sanely. The core
// assumes every queued unit has positive dimensions and weight, so
// surfaces that accept raw units call this before packing.
func (u CargoUnit) Validate() error {
	if u.Width <= 0 || u.Length <= 0 || u.Height <= 0 {
		return fmt.Errorf("unit %q has non-positive dimensions (%.2f x %.2f x %.2f)",
			u.ID, u.Width, u.Length, u.Height)
	}
	if u.Weight <= 0 {
		return fmt.Errorf("unit %q has non-positive weight (%.1f kg)", u.ID, u.Weight)
	}
	return nil
}

// Volume returns the unit volume in m³.
func (u CargoUnit) Volume() float64 {
	return math.Max(u.Width, 0) * math.Max(u.Length, 0) * math.Max(u.Height, 0)
}

// Footprint returns the unit floor footprint in m².
func (u CargoUnit) Footprint() float64 {
	return math.Max(u.Width, 0) * math.Max(u.Length, 0)
}

// FloorDemand returns the floor demand in standard slots, falling back
// to 1.0 when the ratio is missing or non-positive.
func (u CargoUnit) FloorDemand() float64 {
	if u.Ratio > 0 {
		return u.Ratio
	}
	return 1.0
}

func closeTo(x, y, tol float64) bool { return math.Abs(x-y) <= tol }

// matchesFootprint reports whether the unit footprint matches a x b in
// either orientation, within tol.
func (u CargoUnit) matchesFootprint(a, b, tol float64) bool {
	return (closeTo(u.Width, a, tol) && closeTo(u.Length, b, tol)) ||
		(closeTo(u.Width, b, tol) && closeTo(u.Length, a, tol))
}

// IsStandard80x120 reports a EUR pallet footprint (0.80 x 1.20).
func (u CargoUnit) IsStandard80x120() bool { return u.matchesFootprint(0.80, 1.20, SizeTol) }

// IsFin100x120 reports a FIN pallet footprint (1.00 x 1.20).
func (u CargoUnit) IsFin100x120() bool { return u.matchesFootprint(1.00, 1.20, SizeTol) }

// IsSquare120 reports a square 1.20 x 1.20 footprint.
func (u CargoUnit) IsSquare120() bool {
	return closeTo(u.Width, 1.20, SizeTol) && closeTo(u.Length, 1.20, SizeTol)
}

// IsBig140x120 reports a 1.40 x 1.20 footprint, the "big" pattern slot.
func (u CargoUnit) IsBig140x120() bool { return u.matchesFootprint(1.40, 1.20, SizeTol) }

// IsBoxLike reports a loose box or crate rather than a pallet.
func (u CargoUnit) IsBoxLike() bool {
	if strings.Contains(strings.ToUpper(u.PalletType), "BOX") ||
		strings.Contains(strings.ToUpper(u.PalletTypeNorm), "BOX") {
		return true
	}
	// Very small footprint is usually a carton.
	if u.Footprint() <= 0.40*0.40 {
		return true
	}
	// Tall and narrow: packaging on an unclear pallet type.
	if u.Height >= 1.6 && math.Min(u.Width, u.Length) <= 0.6 {
		return true
	}
	return false
}

// IsOversize reports units too large for regular slotting: much bigger
// than typical pallets, or nearly as wide as the hold itself.
func (u CargoUnit) IsOversize(vehicleInnerWidth float64) bool {
	longest := math.Max(u.Width, u.Length)
	if longest >= 1.60+0.01 {
		return true
	}
	if vehicleInnerWidth > 0 {
		if u.Width >= vehicleInnerWidth-0.02 || u.Length >= vehicleInnerWidth-0.02 {
			return true
		}
	}
	return false
}

// Class returns the priority class of the unit.
func (u CargoUnit) Class(vehicleInnerWidth float64) UnitClass {
	if u.IsOversize(vehicleInnerWidth) {
		return ClassOversize
	}
	if u.IsStandard80x120() || u.IsFin100x120() || u.IsSquare120() {
		return ClassStandard
	}
	if u.IsBoxLike() {
		return ClassBox
	}
	return ClassOther
}
