// Package noise provides a gradient (Perlin) noise field for procedural textures.
package noise

import (
	"math"
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

const pointCount = 256

// DefaultTurbulenceDepth is the number of octaves summed by Turbulence in textures
const DefaultTurbulenceDepth = 7

// Perlin is an immutable noise field. The gradient and permutation tables are
// generated once by NewPerlin and only read afterwards, so a single field can be
// shared by any number of textures and render goroutines.
type Perlin struct {
	gradients [pointCount]core.Vec3
	permX     [pointCount]int
	permY     [pointCount]int
	permZ     [pointCount]int
}

// NewPerlin builds a noise field from the given generator
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.RandomVec3(random, -1, 1).Normalize()
	}
	generatePerm(random, &p.permX)
	generatePerm(random, &p.permY)
	generatePerm(random, &p.permZ)
	return p
}

// NewSeededPerlin builds a noise field from a fixed seed
func NewSeededPerlin(seed int64) *Perlin {
	return NewPerlin(rand.New(rand.NewSource(seed)))
}

// Noise returns the smoothed gradient noise at p, roughly in [-1, 1].
// Corner weights use the raw cell offset; Hermite smoothing is applied once.
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx := math.Floor(point.X)
	fy := math.Floor(point.Y)
	fz := math.Floor(point.Z)

	u := point.X - fx
	v := point.Y - fy
	w := point.Z - fz

	i := int(fx)
	j := int(fy)
	k := int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.permX[(i+di)&255]^
					p.permY[(j+dj)&255]^
					p.permZ[(k+dk)&255]]
			}
		}
	}

	return interpolate(&c, u, v, w)
}

// Turbulence sums depth octaves of noise at doubling frequency and halving weight
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0

	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}

	return math.Abs(accum)
}

// interpolate blends the eight corner gradients with Hermite smoothing
func interpolate(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}

	return accum
}

// generatePerm fills perm with a Fisher-Yates shuffle of 0..pointCount-1
func generatePerm(random *rand.Rand, perm *[pointCount]int) {
	for i := range perm {
		perm[i] = i
	}
	for i := pointCount - 1; i > 0; i-- {
		target := random.Intn(i + 1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}
