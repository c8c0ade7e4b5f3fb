// Package geometry provides the axis-aligned box kernel and the
// free-floor-rectangle tracker used by the load planning engine.
//
// Coordinates are hold-centered: X spans the hold width, Z spans the
// hold length (head at -L/2, tail at +L/2), Y goes up from the floor.
package geometry

// Eps is the default tolerance for geometric comparisons.
const Eps = 1e-9

// AABB is an axis-aligned bounding box.
type AABB struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
	MinZ float64 `json:"minZ"`
	MaxZ float64 `json:"maxZ"`
}

// BoxFromCenter builds an AABB around a center point with the given
// full extents dx, dy, dz.
func BoxFromCenter(x, y, z, dx, dy, dz float64) AABB {
	return AABB{
		MinX: x - dx/2.0, MaxX: x + dx/2.0,
		MinY: y - dy/2.0, MaxY: y + dy/2.0,
		MinZ: z - dz/2.0, MaxZ: z + dz/2.0,
	}
}

// Intersects reports whether a and b overlap by more than eps on every
// axis. Boxes that merely touch do not intersect.
func (a AABB) Intersects(b AABB, eps float64) bool {
	if a.MaxX <= b.MinX+eps || a.MinX >= b.MaxX-eps {
		return false
	}
	if a.MaxY <= b.MinY+eps || a.MinY >= b.MaxY-eps {
		return false
	}
	if a.MaxZ <= b.MinZ+eps || a.MinZ >= b.MaxZ-eps {
		return false
	}
	return true
}

// OutsideHold reports whether the box sticks out of the hold interior
// [-halfWidth, halfWidth] x [0, innerHeight] x [-halfLength, halfLength].
func (a AABB) OutsideHold(halfWidth, innerHeight, halfLength, eps float64) bool {
	if a.MinX < -halfWidth-eps || a.MaxX > halfWidth+eps {
		return true
	}
	if a.MinZ < -halfLength-eps || a.MaxZ > halfLength+eps {
		return true
	}
	if a.MinY < -eps || a.MaxY > innerHeight+eps {
		return true
	}
	return false
}

// FloorRect projects the box down onto the floor plane.
func (a AABB) FloorRect() Rect {
	return Rect{MinX: a.MinX, MaxX: a.MaxX, MinZ: a.MinZ, MaxZ: a.MaxZ}
}
