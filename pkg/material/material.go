package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Kind identifies a material variant
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

var (
	ErrInvalidRefractiveIndex = errors.New("refractive index must be a finite positive number")
	ErrMissingTexture         = errors.New("lambertian material has no texture")
	ErrUnknownMaterial        = errors.New("unknown material kind")
	ErrInvalidFuzz            = errors.New("metal fuzz must be in [0, 1]")
)

// Material is a closed set of surface responses. Only the fields belonging to
// Kind are meaningful. Materials are immutable once constructed and are copied
// by value into surfaces.
type Material struct {
	Kind Kind

	Albedo *Texture // Lambertian reflectance

	Color    core.Vec3 // Metal albedo
	Fuzzness float64   // Metal roughness: 0.0 = perfect mirror, 1.0 = very fuzzy

	RefractiveIndex float64 // Dielectric index of refraction (e.g., 1.5 for glass)
}

// Scatter decides how rayIn continues after hitting the surface.
// Returning false means the ray was absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(rayIn, hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Validate rejects parameters that would put NaN into a render
func (m *Material) Validate() error {
	switch m.Kind {
	case KindLambertian:
		if m.Albedo == nil {
			return ErrMissingTexture
		}
		return m.Albedo.Validate()
	case KindMetal:
		if !m.Color.IsFinite() {
			return fmt.Errorf("metal: %w", core.ErrNonFinite)
		}
		if !(m.Fuzzness >= 0 && m.Fuzzness <= 1) {
			return fmt.Errorf("%w: %v", ErrInvalidFuzz, m.Fuzzness)
		}
		return nil
	case KindDielectric:
		if !(m.RefractiveIndex > 0) || math.IsInf(m.RefractiveIndex, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidRefractiveIndex, m.RefractiveIndex)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMaterial, m.Kind)
	}
}

// reflectVector calculates the reflection of a vector v off a surface with normal n
func reflectVector(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
