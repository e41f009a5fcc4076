package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/noise"
)

// TextureKind identifies a texture variant
type TextureKind uint8

const (
	TextureSolid TextureKind = iota
	TextureChecker
	TextureNoise
)

var ErrInvalidTexture = errors.New("invalid texture")

// Texture provides spatially-varying colors for materials.
// Checker textures own their two sub-textures; noise textures share an
// immutable noise field.
type Texture struct {
	Kind TextureKind

	Color core.Vec3 // Solid color

	Odd  *Texture // Checker cell where sin(10x)sin(10y)sin(10z) < 0
	Even *Texture // Remaining checker cells

	Scale float64       // Noise frequency along z
	Field *noise.Perlin // Noise field
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *Texture {
	return &Texture{Kind: TextureSolid, Color: color}
}

// NewCheckerTexture creates a 3D checker pattern alternating between two textures
func NewCheckerTexture(odd, even *Texture) *Texture {
	return &Texture{Kind: TextureChecker, Odd: odd, Even: even}
}

// NewCheckerColors creates a checker pattern of two solid colors
func NewCheckerColors(odd, even core.Vec3) *Texture {
	return NewCheckerTexture(NewSolidColor(odd), NewSolidColor(even))
}

// NewNoiseTexture creates a marble-like banded texture driven by field
func NewNoiseTexture(field *noise.Perlin, scale float64) *Texture {
	return &Texture{Kind: TextureNoise, Field: field, Scale: scale}
}

// Value returns the color at surface coordinates (u, v) and point p
func (t *Texture) Value(u, v float64, p core.Vec3) core.Vec3 {
	switch t.Kind {
	case TextureSolid:
		return t.Color
	case TextureChecker:
		sines := math.Sin(10*p.X) * math.Sin(10*p.Y) * math.Sin(10*p.Z)
		if sines < 0 {
			return t.Odd.Value(u, v, p)
		}
		return t.Even.Value(u, v, p)
	case TextureNoise:
		turb := t.Field.Turbulence(p, noise.DefaultTurbulenceDepth)
		return core.NewVec3(1, 1, 1).Multiply(0.5 * (1 + math.Sin(t.Scale*p.Z+10*turb)))
	default:
		return core.Vec3{}
	}
}

// Validate checks the texture tree for missing children and non-finite values
func (t *Texture) Validate() error {
	switch t.Kind {
	case TextureSolid:
		if !t.Color.IsFinite() {
			return fmt.Errorf("solid color: %w", core.ErrNonFinite)
		}
		return nil
	case TextureChecker:
		if t.Odd == nil || t.Even == nil {
			return fmt.Errorf("%w: checker needs two sub-textures", ErrInvalidTexture)
		}
		if err := t.Odd.Validate(); err != nil {
			return err
		}
		return t.Even.Validate()
	case TextureNoise:
		if t.Field == nil {
			return fmt.Errorf("%w: noise texture has no field", ErrInvalidTexture)
		}
		if math.IsNaN(t.Scale) || math.IsInf(t.Scale, 0) {
			return fmt.Errorf("noise scale: %w", core.ErrNonFinite)
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidTexture, t.Kind)
	}
}
