package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture *Texture) Material {
	return Material{Kind: KindLambertian, Albedo: albedoTexture}
}

// scatterLambertian scatters toward normal + a random unit vector. It never absorbs.
func (m *Material) scatterLambertian(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.SampleOnUnitSphere(sampler.Get2D()))

	// The unit vector can cancel the normal almost exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time),
		Attenuation: m.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
