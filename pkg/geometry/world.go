package geometry

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// World is the set of surfaces in a scene. Surfaces are added first, then
// Build freezes them into a BVH that is safe for concurrent reads.
type World struct {
	surfaces []Surface
	bvh      *BVH
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// Add validates and appends a surface. Any previously built BVH is discarded.
func (w *World) Add(surface Surface) error {
	if err := surface.Validate(); err != nil {
		return fmt.Errorf("surface %d: %w", len(w.surfaces), err)
	}
	w.surfaces = append(w.surfaces, surface)
	w.bvh = nil
	return nil
}

// Build constructs the acceleration structure over the current surfaces
func (w *World) Build() {
	w.bvh = NewBVH(w.surfaces)
}

// Built reports whether Build has run since the last Add
func (w *World) Built() bool {
	return w.bvh != nil
}

// Len returns the number of surfaces
func (w *World) Len() int {
	return len(w.surfaces)
}

// Hit intersects the ray with the world using the BVH.
// It reports no hit until Build has been called.
func (w *World) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	return w.HitWithScratch(ray, tMin, tMax, hit, nil)
}

// HitWithScratch is Hit with a caller-owned traversal stack
func (w *World) HitWithScratch(ray core.Ray, tMin, tMax float64, hit *material.HitRecord, scratch *Scratch) bool {
	if w.bvh == nil {
		return false
	}
	return w.bvh.Hit(ray, tMin, tMax, hit, scratch)
}

// HitLinear tests every surface in insertion order with a shrinking bound
func (w *World) HitLinear(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax
	for i := range w.surfaces {
		if w.surfaces[i].Hit(ray, tMin, closestSoFar, hit) {
			hitAnything = true
			closestSoFar = hit.T
		}
	}
	return hitAnything
}

// BoundingBox returns the bounds of all surfaces, or an empty box for an empty world
func (w *World) BoundingBox() core.AABB {
	if len(w.surfaces) == 0 {
		return core.AABB{}
	}
	box := w.surfaces[0].BoundingBox()
	for i := 1; i < len(w.surfaces); i++ {
		box = box.Union(w.surfaces[i].BoundingBox())
	}
	return box
}

// Stats reports the BVH shape, zero before Build
func (w *World) Stats() BVHStats {
	if w.bvh == nil {
		return BVHStats{}
	}
	return w.bvh.Stats()
}
