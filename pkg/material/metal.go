package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) Material {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return Material{Kind: KindMetal, Color: albedo, Fuzzness: fuzzness}
}

// scatterMetal reflects about the normal, perturbed by the fuzz radius
func (m *Material) scatterMetal(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Calculate perfect reflection direction
	reflected := reflectVector(rayIn.Direction.Normalize(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzzness > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Fuzzy reflections pointing into the surface are absorbed
	scatters := scattered.Direction.Dot(hit.Normal) > 0

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Color,
	}, scatters
}
