package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 1, 0)
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		FrontFace: true,
		Material:  &lambertian,
	}
	rayIn := core.NewRayAtTime(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1), 0.4)

	for i := 0; i < 1000; i++ {
		result, scattered := lambertian.Scatter(rayIn, hit, sampler)
		if !scattered {
			t.Fatal("Lambertian must never absorb")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		// normal + unit vector never points below the surface
		if result.Scattered.Direction.Dot(normal) < -1e-12 {
			t.Fatalf("Scattered direction %v below surface", result.Scattered.Direction)
		}
		if result.Scattered.Time != 0.4 {
			t.Fatalf("Expected scattered ray to keep time 0.4, got %f", result.Scattered.Time)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewVec3(0, 0, 1)
	hit := &HitRecord{Normal: normal}

	// Sample (1,1) maps to the unit vector (0,0,-1), cancelling the normal
	result, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), hit, &fixedSampler{value: 1.0})
	if result.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal %v, got %v", normal, result.Scattered.Direction)
	}
}

func TestLambertian_TexturedAttenuation(t *testing.T) {
	odd := core.NewVec3(0.2, 0.3, 0.1)
	even := core.NewVec3(0.9, 0.9, 0.9)
	lambertian := NewTexturedLambertian(NewCheckerColors(odd, even))

	hit := &HitRecord{
		Point:  core.NewVec3(0.35, 0.05, 0.05), // sin(3.5) < 0
		Normal: core.NewVec3(0, 1, 0),
	}
	result, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, &fixedSampler{value: 0.3})
	if result.Attenuation != odd {
		t.Errorf("Expected odd checker color %v, got %v", odd, result.Attenuation)
	}
}
