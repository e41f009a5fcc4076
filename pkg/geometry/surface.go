package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// SurfaceKind identifies a surface variant
type SurfaceKind uint8

const (
	KindSphere SurfaceKind = iota
	KindMovingSphere
)

func (k SurfaceKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindMovingSphere:
		return "moving-sphere"
	default:
		return fmt.Sprintf("surface(%d)", uint8(k))
	}
}

var (
	ErrInvalidRadius       = errors.New("radius must be a finite positive number")
	ErrDegenerateTimeRange = errors.New("moving sphere keyframe times must differ")
	ErrUnknownSurface      = errors.New("unknown surface kind")
)

// Surface is the closed set of primitives a World can hold.
// Only the variant selected by Kind is meaningful.
type Surface struct {
	Kind   SurfaceKind
	Sphere Sphere
	Moving MovingSphere
}

// Hit fills hit with the nearest intersection strictly inside (tMin, tMax).
// hit is left untouched when there is none.
func (s *Surface) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	switch s.Kind {
	case KindSphere:
		return s.Sphere.Hit(ray, tMin, tMax, hit)
	case KindMovingSphere:
		return s.Moving.Hit(ray, tMin, tMax, hit)
	default:
		return false
	}
}

// BoundingBox returns a box enclosing the surface over the whole shutter interval
func (s *Surface) BoundingBox() core.AABB {
	switch s.Kind {
	case KindSphere:
		return s.Sphere.BoundingBox()
	case KindMovingSphere:
		return s.Moving.BoundingBox()
	default:
		return core.AABB{}
	}
}

// Material returns the surface's material
func (s *Surface) Material() *material.Material {
	switch s.Kind {
	case KindMovingSphere:
		return &s.Moving.Material
	default:
		return &s.Sphere.Material
	}
}

// Validate rejects geometry and materials that would produce NaN during a render
func (s *Surface) Validate() error {
	var err error
	switch s.Kind {
	case KindSphere:
		err = s.Sphere.validate()
	case KindMovingSphere:
		err = s.Moving.validate()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownSurface, s.Kind)
	}
	if err != nil {
		return fmt.Errorf("%v: %w", s.Kind, err)
	}
	if err := s.Material().Validate(); err != nil {
		return fmt.Errorf("%v material: %w", s.Kind, err)
	}
	return nil
}
