package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

func TestNew_BuiltinScenes(t *testing.T) {
	tests := []struct {
		name     string
		minCount int
		maxCount int
	}{
		{"random-spheres", 400, 1 + 22*22 + 3},
		{"two-spheres", 2, 2},
		{"two-perlin-spheres", 2, 2},
		{"materials", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.name, 42)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.name, err)
			}
			if s.Name != tt.name {
				t.Errorf("Expected name %q, got %q", tt.name, s.Name)
			}
			if !s.World.Built() {
				t.Error("Expected scene world to be built")
			}
			if n := s.World.Len(); n < tt.minCount || n > tt.maxCount {
				t.Errorf("Expected %d..%d surfaces, got %d", tt.minCount, tt.maxCount, n)
			}
			if _, err := s.Camera(); err != nil {
				t.Errorf("Camera: %v", err)
			}
			if s.Width <= 0 || s.Height() <= 0 {
				t.Errorf("Expected positive dimensions, got %dx%d", s.Width, s.Height())
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 || s.SamplingConfig.MaxDepth <= 0 {
				t.Errorf("Expected recommended sampling, got %+v", s.SamplingConfig)
			}
			if s.SamplingConfig.Seed != 42 {
				t.Errorf("Expected seed 42 in sampling config, got %d", s.SamplingConfig.Seed)
			}
		})
	}
}

func TestNew_UnknownScene(t *testing.T) {
	for _, name := range []string{"", "cornell", "Random-Spheres"} {
		s, err := New(name, 1)
		if !errors.Is(err, ErrUnknownScene) {
			t.Errorf("New(%q): expected ErrUnknownScene, got %v", name, err)
		}
		if s != nil {
			t.Errorf("New(%q): expected nil scene", name)
		}
	}
}

func TestNames(t *testing.T) {
	want := []string{"materials", "random-spheres", "two-perlin-spheres", "two-spheres"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	for _, info := range List() {
		if info.Description == "" {
			t.Errorf("Scene %s has no description", info.Name)
		}
	}
	if _, ok := builtinScenes[DefaultScene]; !ok {
		t.Errorf("Default scene %q is not registered", DefaultScene)
	}
}

func TestRandomSpheres_SeedDeterminesWorld(t *testing.T) {
	a, err := NewRandomSpheresScene(7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRandomSpheresScene(7)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewRandomSpheresScene(8)
	if err != nil {
		t.Fatal(err)
	}

	// Compare what a fan of rays sees rather than the internals
	differs := false
	for i := 0; i < 200; i++ {
		x := -11 + 22*float64(i)/200
		ray := core.NewRayAtTime(core.NewVec3(x, 5, -12), core.NewVec3(0.05, -0.4, 1), 0.5)

		var ha, hb, hc material.HitRecord
		okA := a.World.Hit(ray, 0.001, math.Inf(1), &ha)
		okB := b.World.Hit(ray, 0.001, math.Inf(1), &hb)
		okC := c.World.Hit(ray, 0.001, math.Inf(1), &hc)
		if okA != okB || ha.T != hb.T {
			t.Fatalf("Same seed produced different worlds at ray %d", i)
		}
		if okA != okC || ha.T != hc.T {
			differs = true
		}
	}
	if a.World.Len() != b.World.Len() {
		t.Errorf("Same seed produced %d and %d surfaces", a.World.Len(), b.World.Len())
	}
	if !differs && a.World.Len() == c.World.Len() {
		t.Error("Expected a different seed to change the world")
	}
}

func TestRandomSpheres_ClearingAroundMetalSphere(t *testing.T) {
	s, err := NewRandomSpheresScene(3)
	if err != nil {
		t.Fatal(err)
	}

	// A vertical ray through (4, *, 0) meets only the big metal sphere and the ground
	var hit material.HitRecord
	ray := core.NewRayAtTime(core.NewVec3(4, 10, 0), core.NewVec3(0, -1, 0), 0)
	if !s.World.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("Expected to hit the metal sphere")
	}
	if math.Abs(hit.T-8) > 1e-9 || hit.Material.Kind != material.KindMetal {
		t.Errorf("Expected metal sphere top at t=8, got t=%f kind=%v", hit.T, hit.Material.Kind)
	}
}

func TestHeightFor(t *testing.T) {
	if got := HeightFor(400, 16.0/9.0); got != 225 {
		t.Errorf("Expected 225, got %d", got)
	}
	if got := HeightFor(500, 16.0/9.0); got != 281 {
		t.Errorf("Expected 281, got %d", got)
	}
}

func TestScene_Camera_InvalidConfig(t *testing.T) {
	s := &Scene{Name: "broken", CameraConfig: renderer.CameraConfig{VFov: 0}}
	if _, err := s.Camera(); !errors.Is(err, renderer.ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestBuilder_KeepsFirstError(t *testing.T) {
	b := newBuilder()
	b.sphere(core.Vec3{}, -1, material.NewLambertian(core.Vec3{}))
	b.sphere(core.Vec3{}, 1, material.NewDielectric(0))

	_, err := b.finish("bad")
	if !errors.Is(err, geometry.ErrInvalidRadius) {
		t.Errorf("Expected the first error (invalid radius), got %v", err)
	}
}

func TestTwoSpheres_RendersSmallImage(t *testing.T) {
	s, err := New("two-spheres", 1)
	if err != nil {
		t.Fatal(err)
	}
	camera, err := s.Camera()
	if err != nil {
		t.Fatal(err)
	}

	config := s.SamplingConfig
	config.SamplesPerPixel = 2
	config.NumWorkers = 2
	pt := integrator.NewPathTracingIntegrator(config.MaxDepth, s.Background)
	img, stats, err := renderer.NewRaytracer(s.World, camera, pt, 32, HeightFor(32, s.CameraConfig.AspectRatio), config, core.NopLogger{}).Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Errorf("Unexpected image size %v", img.Bounds())
	}
	if stats.TotalSamples != 32*18*2 {
		t.Errorf("Expected %d samples, got %d", 32*18*2, stats.TotalSamples)
	}
}
