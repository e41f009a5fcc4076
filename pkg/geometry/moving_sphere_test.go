package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func TestMovingSphere_CenterAt(t *testing.T) {
	s, err := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 4, 0), 0, 1, 0.5,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewMovingSphere: %v", err)
	}

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(1, 2, 0)},
		{1, core.NewVec3(2, 4, 0)},
		{2, core.NewVec3(4, 8, 0)},
	}
	for _, tt := range tests {
		if got := s.Moving.CenterAt(tt.time); got.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("time %f: expected %v, got %v", tt.time, tt.expected, got)
		}
	}
}

func TestMovingSphere_HitDependsOnRayTime(t *testing.T) {
	s, err := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 3, 0), 0, 1, 1,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewMovingSphere: %v", err)
	}

	// Horizontal ray at y=3 only meets the sphere once it has moved up
	origin := core.NewVec3(0, 3, 5)
	direction := core.NewVec3(0, 0, -1)

	var hit material.HitRecord
	if s.Hit(core.NewRayAtTime(origin, direction, 0), 0.001, math.Inf(1), &hit) {
		t.Error("Expected miss at time 0")
	}
	if !s.Hit(core.NewRayAtTime(origin, direction, 1), 0.001, math.Inf(1), &hit) {
		t.Fatal("Expected hit at time 1")
	}
	if math.Abs(hit.T-4) > 1e-9 || hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Unexpected hit t=%f normal=%v", hit.T, hit.Normal)
	}
}

func TestMovingSphere_BoundingBoxCoversPath(t *testing.T) {
	s, err := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, -3), 0, 1, 0.5,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1))
	if err != nil {
		t.Fatalf("NewMovingSphere: %v", err)
	}

	box := s.BoundingBox()
	if box.Min != core.NewVec3(-0.5, -0.5, -3.5) || box.Max != core.NewVec3(1.5, 2.5, 0.5) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

func TestNewMovingSphere_Validation(t *testing.T) {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	if _, err := NewMovingSphere(core.Vec3{}, core.NewVec3(1, 0, 0), 0.5, 0.5, 1, gray); !errors.Is(err, ErrDegenerateTimeRange) {
		t.Errorf("Expected ErrDegenerateTimeRange, got %v", err)
	}
	if _, err := NewMovingSphere(core.Vec3{}, core.NewVec3(1, 0, 0), 0, 1, -2, gray); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", err)
	}
	if _, err := NewMovingSphere(core.Vec3{}, core.NewVec3(math.Inf(1), 0, 0), 0, 1, 1, gray); !errors.Is(err, core.ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite, got %v", err)
	}
	if _, err := NewMovingSphere(core.Vec3{}, core.Vec3{}, 1, 0, 1, gray); err != nil {
		t.Errorf("Reversed keyframe times should be valid, got %v", err)
	}
}
