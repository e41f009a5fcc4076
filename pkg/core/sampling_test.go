package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		v := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-9 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
		mean = mean.Add(p)
	}

	// Uniform distribution is centered on the origin
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Expected z=0, got %f", p.Z)
		}
		if p.X*p.X+p.Y*p.Y > 1+1e-9 {
			t.Fatalf("Point %v outside unit disk", p)
		}
	}

	// Center of the sample square maps to the disk center
	if c := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); c != (Vec3{}) {
		t.Errorf("Expected origin, got %v", c)
	}
}

func TestRandomRange(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := RandomRange(random, 0.5, 1.0)
		if v < 0.5 || v >= 1.0 {
			t.Fatalf("Value %f outside [0.5, 1.0)", v)
		}
	}
}

func TestSeededSamplerDeterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}
