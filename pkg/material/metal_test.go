package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// fixedSampler returns the same value for every dimension
type fixedSampler struct {
	value float64
	calls int
}

func (f *fixedSampler) Get1D() float64 {
	f.calls++
	return f.value
}

func (f *fixedSampler) Get2D() core.Vec2 {
	f.calls++
	return core.NewVec2(f.value, f.value)
}

func (f *fixedSampler) Get3D() core.Vec3 {
	f.calls++
	return core.NewVec3(f.value, f.value, f.value)
}

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
			if metal.Kind != KindMetal {
				t.Errorf("Expected metal kind, got %v", metal.Kind)
			}
		})
	}
}

func TestMetal_PerfectReflectionOffSphere(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Point on a unit sphere at the origin, normal = point / radius
	point := core.NewVec3(1, 1, 0).Normalize()
	hit := &HitRecord{
		Point:     point,
		Normal:    point,
		T:         1.0,
		FrontFace: true,
		Material:  &metal,
	}
	rayIn := core.NewRayAtTime(core.NewVec3(3, 0.2, 0.5), point.Subtract(core.NewVec3(3, 0.2, 0.5)), 0.7)

	sampler := &fixedSampler{value: 0.3}
	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter a reflection leaving the surface")
	}

	// Bit-exact mirror reflection and no random draws
	expected := reflectVector(rayIn.Direction.Normalize(), hit.Normal)
	if scatter.Scattered.Direction != expected {
		t.Errorf("Expected exact mirror direction %v, got %v", expected, scatter.Scattered.Direction)
	}
	if sampler.calls != 0 {
		t.Errorf("Expected no samples drawn for fuzz 0, got %d", sampler.calls)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.Scattered.Origin != point {
		t.Errorf("Expected scattered origin %v, got %v", point, scatter.Scattered.Origin)
	}
	if scatter.Scattered.Time != rayIn.Time {
		t.Errorf("Expected scattered ray to keep time %f, got %f", rayIn.Time, scatter.Scattered.Time)
	}
}

func TestMetal_PerfectReflection45Degrees(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, &fixedSampler{value: 0.5})
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if scatter.Scattered.Direction.Normalize().Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	perfect := core.NewVec3(0, 0, 1)
	varied := false
	for i := 0; i < 100; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			// Head-on with fuzz 0.5 can never point into the surface
			t.Fatal("Expected head-on fuzzy reflection to scatter")
		}
		deviation := scatter.Scattered.Direction.Subtract(perfect).Length()
		if deviation > 0.5+1e-9 {
			t.Fatalf("Perturbation %f exceeds fuzz radius", deviation)
		}
		if deviation > 1e-6 {
			varied = true
		}
	}
	if !varied {
		t.Error("Expected fuzzy reflections to deviate from the mirror direction")
	}
}

func TestMetal_GlancingFuzzAbsorbs(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))

	// Nearly tangent incoming ray: the mirror direction barely leaves the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := &HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	absorbed, scattered := 0, 0
	for i := 0; i < 500; i++ {
		result, ok := metal.Scatter(rayIn, hit, sampler)
		if ok {
			scattered++
			if result.Scattered.Direction.Dot(hit.Normal) <= 0 {
				t.Fatal("Scattered direction must leave the surface")
			}
		} else {
			absorbed++
		}
	}

	if absorbed == 0 || scattered == 0 {
		t.Errorf("Expected a mix of absorbed and scattered rays, got %d absorbed, %d scattered", absorbed, scattered)
	}
}
