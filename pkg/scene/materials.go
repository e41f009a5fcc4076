package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewMaterialsScene places a diffuse sphere between a fuzzy metal sphere and
// a rough metal sphere on a large yellow ground sphere, seen from the origin
func NewMaterialsScene() (*Scene, error) {
	b := newBuilder()

	b.sphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	b.sphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	b.sphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3))
	b.sphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0))

	world, err := b.finish("materials")
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:  "materials",
		World: world,
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(0, 0, 0),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        90.0,
			AspectRatio: 16.0 / 9.0,
		},
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 100,
			MaxDepth:        50,
			TileSize:        32,
		},
		Width:      500,
		Background: integrator.DefaultBackground(),
	}, nil
}
