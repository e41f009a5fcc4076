package renderer

import (
	"image"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for each pixel
	TilesRendered   int           // Tiles completed
	NumWorkers      int           // Workers used
	Elapsed         time.Duration // Wall-clock render time
}

// AverageSamples returns the mean number of samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// merge adds the counters of a tile into the render total
func (s *RenderStats) merge(tile RenderStats) {
	s.TotalPixels += tile.TotalPixels
	s.TotalSamples += tile.TotalSamples
	s.TilesRendered += tile.TilesRendered
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an
// 8-bit image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
