package model

import "github.com/packman/loadplan/internal/geometry"

// CandidateKind tags the origin of a candidate placement.
type CandidateKind string

const (
	KindSingle           CandidateKind = "single"
	KindPattern3Across   CandidateKind = "pattern_3across"
	KindPattern140Plus80 CandidateKind = "pattern_140plus80"
	KindPattern3Plus2    CandidateKind = "pattern_3plus2"
	KindPatternZigzag    CandidateKind = "pattern_zigzag"
)

// CandidateMeta carries placement provenance. PatternID groups the
// members of one pattern variant; it must be unique per enumerated
// variant, never shared between alternative variants of one template.
type CandidateMeta struct {
	Pattern   string        `json:"pattern,omitempty"`
	PatternID string        `json:"patternId,omitempty"`
	Rect      geometry.Rect `json:"rect"`
	SlotZ0    float64       `json:"slotZ0,omitempty"`
	Row       int           `json:"row,omitempty"`
	Index     int           `json:"idx,omitempty"`
	Role      string        `json:"role,omitempty"`
	KRank     int           `json:"kRank"`
	AnchorX   float64       `json:"anchorX,omitempty"`
	AnchorZ   float64       `json:"anchorZ,omitempty"`
}

// Candidate is a proposed placement for one unit: a center pose, a
// rotation about the vertical axis (0 or 90 degrees), the resulting
// extents and bounding box. Candidates are generated fresh every
// iteration and never persisted.
type Candidate struct {
	UnitID string `json:"unitId"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	RotationY int `json:"rotationY"`

	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	DZ float64 `json:"dz"`

	Box  geometry.AABB `json:"aabb"`
	Kind CandidateKind `json:"kind"`
	Meta CandidateMeta `json:"meta"`
}

// IsPattern reports whether the candidate belongs to a pattern group.
func (c Candidate) IsPattern() bool { return c.Meta.PatternID != "" }

// NewCandidate builds a candidate for a unit at floor pose (x, z) with
// the given rotation. y is the floor height of the unit base (0 on the
// floor).
func NewCandidate(unit CargoUnit, x, y, z float64, rotationY int, kind CandidateKind, meta CandidateMeta) Candidate {
	dx, dz := unit.Width, unit.Length
	if rotationY%180 == 90 {
		dx, dz = unit.Length, unit.Width
	}
	dy := unit.Height
	return Candidate{
		UnitID:    unit.ID,
		X:         x,
		Y:         y,
		Z:         z,
		RotationY: rotationY,
		DX:        dx,
		DY:        dy,
		DZ:        dz,
		Box:       geometry.BoxFromCenter(x, y+dy/2.0, z, dx, dy, dz),
		Kind:      kind,
		Meta:      meta,
	}
}

// PlacedUnit is a committed candidate bound to its unit. Created on
// commit, never mutated afterward.
type PlacedUnit struct {
	Unit CargoUnit `json:"unit"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	RotationY int `json:"rotationY"`

	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	DZ float64 `json:"dz"`

	Box  geometry.AABB `json:"aabb"`
	Kind CandidateKind `json:"kind"`
}

// Place binds a candidate to its unit.
func Place(c Candidate, unit CargoUnit) PlacedUnit {
	return PlacedUnit{
		Unit:      unit,
		X:         c.X,
		Y:         c.Y,
		Z:         c.Z,
		RotationY: c.RotationY,
		DX:        c.DX,
		DY:        c.DY,
		DZ:        c.DZ,
		Box:       c.Box,
		Kind:      c.Kind,
	}
}

// UsedArea returns the floor area occupied by the placed unit.
func (p PlacedUnit) UsedArea() float64 { return p.DX * p.DZ }

// AxleLoads is the derived load aggregate, recomputed from the full
// placed set on every commit.
type AxleLoads struct {
	PayloadKg float64 `json:"payload_kg"`
	AxleAKg   float64 `json:"axleA_kg"`
	AxleBKg   float64 `json:"axleB_kg"`
}

// Mode names the binding physical resource for a unit set.
type Mode string

const (
	ModeWeight Mode = "weight"
	ModeVolume Mode = "volume"
	ModeMixed  Mode = "mixed"
)

// ModeDecision is the outcome of pressure classification. Alpha is the
// weight/volume blend factor, meaningful only in mixed mode.
type ModeDecision struct {
	Mode           Mode    `json:"mode"`
	WeightPressure float64 `json:"weightPressure"`
	FloorPressure  float64 `json:"floorPressure"`
	VolumePressure float64 `json:"volumePressure"`
	Alpha          float64 `json:"alpha,omitempty"`
}

// DebugEvent is one entry of the append-only plan event trail.
type DebugEvent struct {
	Event   string         `json:"evt"`
	Payload map[string]any `json:"payload"`
}

// Plan is the result of one planning run.
type Plan struct {
	TaskID        string `json:"taskId"`
	TransportType string `json:"transportType"`

	Vehicle Vehicle      `json:"vehicle"`
	Mode    ModeDecision `json:"mode"`

	Placed   []PlacedUnit `json:"placed"`
	Unplaced []CargoUnit  `json:"unplaced"`

	Loads  AxleLoads    `json:"loads"`
	Events []DebugEvent `json:"debug,omitempty"`
}

// ResourceUtilization is one used/total pair of the plan aggregates.
type ResourceUtilization struct {
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
	Util  float64 `json:"util"`
}

// Utilization summarizes how much of the hold the plan consumes.
type Utilization struct {
	FloorM2     ResourceUtilization `json:"floor"`
	VolumeM3    ResourceUtilization `json:"volume"`
	FloorDemand ResourceUtilization `json:"floorDemand"`
}

// Utilization computes the plan's floor, volume and floor-demand usage.
// fillFactorFloor scales the floor-demand capacity; one standard floor
// slot equals 1.0 m².
func (p Plan) Utilization(fillFactorFloor float64) Utilization {
	floorTotal := p.Vehicle.FloorArea()
	volTotal := p.Vehicle.Volume()

	var usedFloor, usedVol, usedDemand float64
	for _, pu := range p.Placed {
		usedFloor += pu.DX * pu.DZ
		usedVol += pu.DX * pu.DY * pu.DZ
		usedDemand += pu.Unit.FloorDemand()
	}

	demandCapacity := floorTotal * fillFactorFloor

	ratio := func(used, total float64) float64 {
		if total <= 0 {
			return 0
		}
		return used / total
	}

	return Utilization{
		FloorM2:     ResourceUtilization{Used: usedFloor, Total: floorTotal, Util: ratio(usedFloor, floorTotal)},
		VolumeM3:    ResourceUtilization{Used: usedVol, Total: volTotal, Util: ratio(usedVol, volTotal)},
		FloorDemand: ResourceUtilization{Used: usedDemand, Total: demandCapacity, Util: ratio(usedDemand, demandCapacity)},
	}
}
