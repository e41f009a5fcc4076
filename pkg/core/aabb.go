package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// InverseDirection returns the component-wise reciprocal of a ray direction.
// Zero components become signed infinities; HitInv treats those axes as parallel.
func InverseDirection(direction Vec3) Vec3 {
	return Vec3{X: 1.0 / direction.X, Y: 1.0 / direction.Y, Z: 1.0 / direction.Z}
}

// HitInv is the slab test against a precomputed reciprocal direction
func (aabb AABB) HitInv(origin, invDirection Vec3, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		o := origin.Axis(axis)
		inv := invDirection.Axis(axis)

		// Ray parallel to this slab: (min-o)*Inf would be NaN when o == min
		if math.IsInf(inv, 0) {
			if o < min || o > max {
				return false
			}
			continue
		}

		t1 := (min - o) * inv
		t2 := (max - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}

		// Equality is kept so zero-extent boxes still report a hit
		if tMax < tMin {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}
