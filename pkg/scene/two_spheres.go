package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/noise"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene() (*Scene, error) {
	b := newBuilder()

	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	b.sphere(core.NewVec3(0, -10, 0), 10, checker)
	b.sphere(core.NewVec3(0, 10, 0), 10, checker)

	world, err := b.finish("two-spheres")
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:         "two-spheres",
		World:        world,
		CameraConfig: orbitCamera(0.0, 0.0),
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 50,
			MaxDepth:        50,
			TileSize:        32,
		},
		Width:      400,
		Background: integrator.DefaultBackground(),
	}, nil
}

// NewTwoPerlinSpheresScene shades a ground sphere and a small sphere with one
// marble-like noise texture. The seed picks the noise field.
func NewTwoPerlinSpheresScene(seed int64) (*Scene, error) {
	b := newBuilder()

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(noise.NewSeededPerlin(seed), 4.0))
	b.sphere(core.NewVec3(0, -1000, 0), 1000, marble)
	b.sphere(core.NewVec3(0, 2, 0), 2, marble)

	world, err := b.finish("two-perlin-spheres")
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:         "two-perlin-spheres",
		World:        world,
		CameraConfig: orbitCamera(0.0, 0.0),
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 50,
			MaxDepth:        50,
			TileSize:        32,
		},
		Width:      400,
		Background: integrator.DefaultBackground(),
	}, nil
}
