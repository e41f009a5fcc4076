package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along ray. scratch is the
	// calling goroutine's BVH traversal stack.
	RayColor(ray core.Ray, world *geometry.World, sampler core.Sampler, scratch *geometry.Scratch) core.Vec3
}

// Background is a vertical gradient used for rays that escape the scene
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultBackground fades from white at the horizon-down to sky blue overhead
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the background seen along a ray direction
func (b Background) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}
