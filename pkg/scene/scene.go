package scene

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig // Recommended settings for this scene
	Width          int                     // Recommended image width, height follows the aspect ratio
	Background     integrator.Background
}

// Height returns the image height matching Width and the camera aspect ratio
func (s *Scene) Height() int {
	return HeightFor(s.Width, s.CameraConfig.AspectRatio)
}

// HeightFor truncates width / aspectRatio the way the image dimensions are derived everywhere
func HeightFor(width int, aspectRatio float64) int {
	return int(float64(width) / aspectRatio)
}

// Camera validates the camera configuration and builds the camera
func (s *Scene) Camera() (*renderer.Camera, error) {
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return renderer.NewCamera(s.CameraConfig), nil
}

// builder accumulates surfaces and keeps the first error, so scene
// functions can add many spheres without checking each call
type builder struct {
	world *geometry.World
	err   error
}

func newBuilder() *builder {
	return &builder{world: geometry.NewWorld()}
}

func (b *builder) add(surface geometry.Surface, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	b.err = b.world.Add(surface)
}

func (b *builder) sphere(center core.Vec3, radius float64, mat material.Material) {
	b.add(geometry.NewSphere(center, radius, mat))
}

func (b *builder) movingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) {
	b.add(geometry.NewMovingSphere(center0, center1, time0, time1, radius, mat))
}

// finish builds the BVH and wraps any construction error with the scene name
func (b *builder) finish(name string) (*geometry.World, error) {
	if b.err != nil {
		return nil, fmt.Errorf("build scene %s: %w", name, b.err)
	}
	b.world.Build()
	return b.world, nil
}
