package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// MovingSphere translates linearly from Center0 at Time0 to Center1 at Time1.
// Times outside the keyframes extrapolate along the same line.
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a validated moving sphere surface
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) (Surface, error) {
	s := Surface{
		Kind: KindMovingSphere,
		Moving: MovingSphere{
			Center0:  center0,
			Center1:  center1,
			Time0:    time0,
			Time1:    time1,
			Radius:   radius,
			Material: mat,
		},
	}
	if err := s.Validate(); err != nil {
		return Surface{}, err
	}
	return s, nil
}

// CenterAt returns the sphere center at the given time
func (m *MovingSphere) CenterAt(time float64) core.Vec3 {
	fraction := (time - m.Time0) / (m.Time1 - m.Time0)
	return m.Center0.Add(m.Center1.Subtract(m.Center0).Multiply(fraction))
}

// Hit intersects the sphere at its position at ray.Time
func (m *MovingSphere) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	return hitSphere(ray, m.CenterAt(ray.Time), m.Radius, &m.Material, tMin, tMax, hit)
}

// BoundingBox encloses the sphere at both keyframes
func (m *MovingSphere) BoundingBox() core.AABB {
	r := core.NewVec3(m.Radius, m.Radius, m.Radius)
	return core.NewAABBFromPoints(
		m.Center0.Subtract(r), m.Center0.Add(r),
		m.Center1.Subtract(r), m.Center1.Add(r),
	)
}

func (m *MovingSphere) validate() error {
	if !m.Center0.IsFinite() || !m.Center1.IsFinite() ||
		math.IsNaN(m.Time0) || math.IsInf(m.Time0, 0) ||
		math.IsNaN(m.Time1) || math.IsInf(m.Time1, 0) {
		return core.ErrNonFinite
	}
	if m.Time0 == m.Time1 {
		return ErrDegenerateTimeRange
	}
	return validateRadius(m.Radius)
}
