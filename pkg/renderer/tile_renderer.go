package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds only read-only state and is shared by all workers.
type TileRenderer struct {
	world           *geometry.World
	camera          *Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(world *geometry.World, camera *Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTile renders the pixels of one tile into img. Tiles write disjoint
// pixels so concurrent calls on distinct tiles are safe.
func (tr *TileRenderer) RenderTile(tile *Tile, img *image.RGBA, scratch *geometry.Scratch) RenderStats {
	sampler := core.NewRandomSampler(tile.NewRandom())
	bounds := tile.Bounds

	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), TilesRendered: 1}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var ps PixelStats
			tr.samplePixel(x, y, &ps, sampler, scratch)
			stats.TotalSamples += ps.SampleCount
			img.SetRGBA(x, y, vec3ToColor(ps.GetColor()))
		}
	}
	return stats
}

// samplePixel traces samplesPerPixel jittered camera rays through pixel (x, y).
// Image rows run top to bottom while t runs bottom to top.
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, scratch *geometry.Scratch) {
	row := tr.height - 1 - y
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		s := (float64(x) + sampler.Get1D()) / float64(tr.width-1)
		t := (float64(row) + sampler.Get1D()) / float64(tr.height-1)

		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler, scratch))
	}
}

// vec3ToColor applies gamma 2 and quantizes each channel to 8 bits
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(channel float64) uint8 {
	if math.IsNaN(channel) || channel <= 0 {
		return 0
	}
	return uint8(256 * math.Min(math.Sqrt(channel), 0.999))
}
