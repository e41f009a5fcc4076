package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Sphere is a static sphere
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a validated sphere surface
func NewSphere(center core.Vec3, radius float64, mat material.Material) (Surface, error) {
	s := Surface{
		Kind:   KindSphere,
		Sphere: Sphere{Center: center, Radius: radius, Material: mat},
	}
	if err := s.Validate(); err != nil {
		return Surface{}, err
	}
	return s, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	return hitSphere(ray, s.Center, s.Radius, &s.Material, tMin, tMax, hit)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return sphereBox(s.Center, s.Radius)
}

func (s *Sphere) validate() error {
	if !s.Center.IsFinite() {
		return core.ErrNonFinite
	}
	return validateRadius(s.Radius)
}

// hitSphere solves |o + t·d - c|² = r² with the half-b form of the quadratic.
// A tangent ray (zero discriminant) is a miss.
func hitSphere(ray core.Ray, center core.Vec3, radius float64, mat *material.Material, tMin, tMax float64, hit *material.HitRecord) bool {
	oc := ray.Origin.Subtract(center)

	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearer root first, then the farther one
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Subtract(center).Multiply(1.0 / radius)

	hit.T = root
	hit.Point = point
	hit.Material = mat
	hit.U, hit.V = sphereUV(outwardNormal)
	hit.SetFaceNormal(ray, outwardNormal)
	return true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// v runs from 0 at y=-1 to 1 at y=+1, u wraps around the y axis starting at -x.
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := core.NewVec3(radius, radius, radius)
	return core.NewAABB(center.Subtract(r), center.Add(r))
}

func validateRadius(radius float64) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return ErrInvalidRadius
	}
	return nil
}
