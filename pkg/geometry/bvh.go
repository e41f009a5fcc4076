package geometry

import (
	"math"
	"sort"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// bvhNode is one entry of the flattened hierarchy. A node is a leaf iff
// Primitive >= 0, in which case Left and Right are unused.
type bvhNode struct {
	Box         core.AABB
	Left, Right int32
	Primitive   int32
	Axis        uint8 // split axis, used to order child visits
}

// BVH is a bounding volume hierarchy over a fixed slice of surfaces,
// stored as a flat node array with the root at index 0
type BVH struct {
	nodes    []bvhNode
	surfaces []Surface
}

// Scratch is the traversal stack for one goroutine. Reusing it across rays
// keeps traversal allocation-free.
type Scratch struct {
	stack []int32
}

// NewScratch creates an empty traversal stack
func NewScratch() *Scratch {
	return &Scratch{stack: make([]int32, 0, 64)}
}

// NewBVH builds a hierarchy with one surface per leaf using median splits
// along the longest axis of each node's bounds
func NewBVH(surfaces []Surface) *BVH {
	bvh := &BVH{surfaces: surfaces}
	if len(surfaces) == 0 {
		return bvh
	}

	boxes := make([]core.AABB, len(surfaces))
	indices := make([]int32, len(surfaces))
	for i := range surfaces {
		boxes[i] = surfaces[i].BoundingBox()
		indices[i] = int32(i)
	}

	bvh.nodes = make([]bvhNode, 0, 2*len(surfaces)-1)
	bvh.build(indices, boxes)
	return bvh
}

// build appends the subtree for indices and returns its root node index
func (bvh *BVH) build(indices []int32, boxes []core.AABB) int32 {
	nodeIndex := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, bvhNode{Left: -1, Right: -1, Primitive: -1})

	if len(indices) == 1 {
		bvh.nodes[nodeIndex].Box = boxes[indices[0]]
		bvh.nodes[nodeIndex].Primitive = indices[0]
		return nodeIndex
	}

	box := boxes[indices[0]]
	for _, i := range indices[1:] {
		box = box.Union(boxes[i])
	}
	axis := box.LongestAxis()

	sort.Slice(indices, func(i, j int) bool {
		return boxes[indices[i]].Center().Axis(axis) < boxes[indices[j]].Center().Axis(axis)
	})

	mid := len(indices) / 2
	left := bvh.build(indices[:mid], boxes)
	right := bvh.build(indices[mid:], boxes)

	// bvh.nodes may have been reallocated by the recursive calls
	node := &bvh.nodes[nodeIndex]
	node.Box = box
	node.Left = left
	node.Right = right
	node.Axis = uint8(axis)
	return nodeIndex
}

// Hit finds the closest surface hit strictly inside (tMin, tMax).
// scratch must not be shared between goroutines.
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord, scratch *Scratch) bool {
	if len(bvh.nodes) == 0 {
		return false
	}
	if scratch == nil {
		scratch = NewScratch()
	}

	invDirection := core.InverseDirection(ray.Direction)
	stack := append(scratch.stack[:0], 0)
	hitAnything := false
	closestSoFar := tMax
	closestIndex := int32(-1)

	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &bvh.nodes[index]
		if !node.Box.HitInv(ray.Origin, invDirection, tMin, closestSoFar) {
			continue
		}

		if node.Primitive >= 0 {
			// Equal distances resolve to the lowest surface index, as in a linear scan
			bound := closestSoFar
			if hitAnything && node.Primitive < closestIndex {
				bound = math.Nextafter(closestSoFar, math.Inf(1))
			}
			if bvh.surfaces[node.Primitive].Hit(ray, tMin, bound, hit) {
				hitAnything = true
				closestSoFar = hit.T
				closestIndex = node.Primitive
			}
			continue
		}

		// Push the farther child first so the nearer one is popped next
		near, far := node.Left, node.Right
		if ray.Direction.Axis(int(node.Axis)) < 0 {
			near, far = far, near
		}
		stack = append(stack, far, near)
	}

	scratch.stack = stack[:0]
	return hitAnything
}

// BoundingBox returns the bounds of the whole hierarchy
func (bvh *BVH) BoundingBox() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.AABB{}
	}
	return bvh.nodes[0].Box
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
	Primitives int
}

// Stats walks the hierarchy and reports its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if len(bvh.nodes) == 0 {
		return stats
	}

	bvh.collectStats(0, 0, &stats)
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

func (bvh *BVH) collectStats(index int32, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node := &bvh.nodes[index]
	if node.Primitive >= 0 {
		stats.LeafNodes++
		stats.Primitives++
		stats.AvgDepth += float64(depth)
		return
	}
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
