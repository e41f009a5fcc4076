package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// orbitCamera is the camera shared by the showcase scenes: looking at the
// origin from (13, 2, 3) with a narrow field of view
func orbitCamera(aperture, focusDistance float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      aperture,
		FocusDistance: focusDistance,
		Time0:         0.0,
		Time1:         1.0,
	}
}

// NewRandomSpheresScene creates a checkered ground covered with a 22x22 grid
// of small spheres plus one large glass, diffuse and metal sphere each.
// Diffuse grid spheres bounce upward during the shutter interval.
func NewRandomSpheresScene(seed int64) (*Scene, error) {
	random := rand.New(rand.NewSource(seed))
	b := newBuilder()

	ground := material.NewTexturedLambertian(
		material.NewCheckerColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	b.sphere(core.NewVec3(0, -1000, 0), 1000, ground)

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(c)+random.Float64())

			// Keep the space around the large metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				center2 := center.Add(core.NewVec3(0, core.RandomRange(random, 0, 0.5), 0))
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				b.movingSphere(center, center2, 0, 1, 0.2, material.NewLambertian(albedo))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := core.RandomRange(random, 0, 0.5)
				b.sphere(center, 0.2, material.NewMetal(albedo, fuzz))
			default:
				b.sphere(center, 0.2, material.NewDielectric(1.5))
			}
		}
	}

	b.sphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	b.sphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	b.sphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	world, err := b.finish("random-spheres")
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:         "random-spheres",
		World:        world,
		CameraConfig: orbitCamera(0.1, 10.0),
		SamplingConfig: renderer.SamplingConfig{
			SamplesPerPixel: 100,
			MaxDepth:        50,
			TileSize:        32,
		},
		Width:      400,
		Background: integrator.DefaultBackground(),
	}, nil
}
