package model

import "fmt"

// Vehicle describes the cargo hold of one vehicle. All dimensions are
// meters, weights are kilograms. A Vehicle is immutable for the
// duration of one planning run.
type Vehicle struct {
	ID          string  `json:"id,omitempty"`
	InnerWidth  float64 `json:"innerWidth"`
	InnerHeight float64 `json:"innerHeight"`
	InnerLength float64 `json:"innerLength"`

	// Fill-factor targets used only for pressure estimation.
	// Zero means "use the settings default".
	FillFactorFloor  float64 `json:"fillFactorFloor,omitempty"`
	FillFactorVolume float64 `json:"fillFactorVolume,omitempty"`

	// Optional total payload limit.
	PayloadMaxKg *float64 `json:"payloadMaxKg,omitempty"`

	// Optional two-axle model. Positions are measured from the hold's
	// head end; both positions and both limits must be set for the
	// axle gate to apply.
	AxleALimitKg      *float64 `json:"axleALimitKg,omitempty"`
	AxleBLimitKg      *float64 `json:"axleBLimitKg,omitempty"`
	AxleAPosFromHeadM *float64 `json:"axleAPosFromHeadM,omitempty"`
	AxleBPosFromHeadM *float64 `json:"axleBPosFromHeadM,omitempty"`
}

// Validate checks the planning preconditions. A vehicle with
// non-positive inner dimensions fails the whole run.
func (v Vehicle) Validate() error {
	if v.InnerWidth <= 0 || v.InnerHeight <= 0 || v.InnerLength <= 0 {
		return fmt.Errorf("vehicle %q has non-positive inner dimensions (%.2f x %.2f x %.2f)",
			v.ID, v.InnerWidth, v.InnerHeight, v.InnerLength)
	}
	return nil
}

// HalfWidth returns half the inner width (X spans [-HalfWidth, HalfWidth]).
func (v Vehicle) HalfWidth() float64 { return v.InnerWidth / 2.0 }

// HalfLength returns half the inner length (Z spans [-HalfLength, HalfLength]).
func (v Vehicle) HalfLength() float64 { return v.InnerLength / 2.0 }

// FloorArea returns the hold floor area in m².
func (v Vehicle) FloorArea() float64 { return v.InnerWidth * v.InnerLength }

// Volume returns the hold volume in m³.
func (v Vehicle) Volume() float64 { return v.FloorArea() * v.InnerHeight }

// HasAxleModel reports whether the two-axle lever-arm model applies.
func (v Vehicle) HasAxleModel() bool {
	return v.AxleAPosFromHeadM != nil && v.AxleBPosFromHeadM != nil
}

// Built-in vehicle presets keyed by transport type.
var VehiclePresets = map[string]Vehicle{
	"TENT_20T": {ID: "TENT_20T", InnerWidth: 2.45, InnerHeight: 2.70, InnerLength: 13.60},
	"TENT_10T": {ID: "TENT_10T", InnerWidth: 2.45, InnerHeight: 2.70, InnerLength: 6.80},
	"CONT_40HC": {ID: "CONT_40HC", InnerWidth: 2.35, InnerHeight: 2.39, InnerLength: 12.02},
}

// DefaultVehicle is the preset used when the transport type is unknown.
var DefaultVehicle = Vehicle{ID: "TENT_20T", InnerWidth: 2.45, InnerHeight: 2.70, InnerLength: 13.60}

// PresetVehicle resolves a transport type to a vehicle preset, falling
// back to DefaultVehicle for unknown or empty types.
func PresetVehicle(transportType string) Vehicle {
	if transportType == "" {
		return DefaultVehicle
	}
	if v, ok := VehiclePresets[transportType]; ok {
		return v
	}
	return DefaultVehicle
}
