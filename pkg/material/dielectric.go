package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// scatterDielectric picks reflection or refraction per hit. Instead of tracing
// both branches it reflects with the Schlick probability.
func (m *Material) scatterDielectric(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Determine if we're entering or exiting the material
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractiveIndex // Ray is entering the material (from air to glass)
	} else {
		refractionRatio = m.RefractiveIndex // Ray is exiting the material (from glass to air)
	}

	// Normalize the incoming ray direction
	unitDirection := rayIn.Direction.Normalize()

	// Calculate the cosine of the angle between ray and normal
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	// Check for total internal reflection
	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = reflectVector(unitDirection, hit.Normal)
	} else {
		direction = refractVector(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// refractVector calculates the refraction of a vector using Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
