package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// HitEpsilon is the minimum hit distance, so scattered rays do not
// re-hit the surface they leave
const HitEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with
// no light sampling: radiance comes only from the background
type PathTracingIntegrator struct {
	maxDepth   int
	background Background
}

// NewPathTracingIntegrator creates a path tracer that follows at most maxDepth bounces
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth:   maxDepth,
		background: background,
	}
}

// RayColor follows one path, multiplying attenuations into a running
// throughput until the path escapes, is absorbed or runs out of depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *geometry.World, sampler core.Sampler, scratch *geometry.Scratch) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	var hit material.HitRecord

	for depth := pt.maxDepth; depth > 0; depth-- {
		if !world.HitWithScratch(ray, HitEpsilon, math.Inf(1), &hit, scratch) {
			return throughput.MultiplyVec(pt.background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, &hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return core.Vec3{}
}
