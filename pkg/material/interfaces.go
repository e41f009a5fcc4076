package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It lives only for the duration of one integrator step.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	U, V      float64   // Surface coordinates in [0, 1]
	Material  *Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
