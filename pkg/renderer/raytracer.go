package renderer

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

var (
	ErrInvalidDimensions = errors.New("image must be at least 2x2 pixels")
	ErrInvalidSampling   = errors.New("samples per pixel must be positive")
	ErrWorldNotBuilt     = errors.New("world has no BVH; call Build before rendering")
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Edge length of square tiles in pixels
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Scene seed, every tile stream derives from it
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Raytracer renders a frozen world through a camera into an 8-bit image
type Raytracer struct {
	world      *geometry.World
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(world *geometry.World, camera *Camera, integratorInst integrator.Integrator, width, height int, config SamplingConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultSamplingConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
		config:     config,
		logger:     logger,
	}
}

func (rt *Raytracer) validate() error {
	switch {
	case rt.width < 2 || rt.height < 2:
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rt.width, rt.height)
	case rt.config.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: got %d", ErrInvalidSampling, rt.config.SamplesPerPixel)
	case rt.world == nil || !rt.world.Built():
		return ErrWorldNotBuilt
	case rt.camera == nil || rt.integrator == nil:
		return errors.New("raytracer needs a camera and an integrator")
	}
	return nil
}

// Render renders every tile in parallel and returns the finished image.
// If any tile fails, the error of the lowest-numbered failed tile is
// returned once all tiles have drained, and no image is returned.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	if err := rt.validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize, rt.config.Seed)

	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, rt.width, rt.height, rt.config.SamplesPerPixel)
	workerPool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))
	workerPool.Start()

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, %d tiles on %d workers...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, len(tiles), workerPool.GetNumWorkers())

	// The task and result queues hold every tile, so submission never blocks
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img})
	}

	stats := RenderStats{SamplesPerPixel: rt.config.SamplesPerPixel, NumWorkers: workerPool.GetNumWorkers()}
	var firstErr error
	firstErrID := len(tiles)
	nextReport := 1

	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, errors.New("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if result.TaskID < firstErrID {
				firstErr, firstErrID = result.Error, result.TaskID
			}
			continue
		}
		stats.merge(result.Stats)

		// Report roughly every tenth of the image
		if done := workerPool.Completed(); done*10 >= nextReport*len(tiles) {
			rt.logger.Printf("Progress: %d/%d tiles\n", done, len(tiles))
			nextReport = done*10/len(tiles) + 1
		}
	}
	workerPool.Stop()

	if firstErr != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", firstErr)
	}

	stats.Elapsed = time.Since(startTime)
	rt.logger.Printf("Render completed in %v (%d samples, average luminance %.3f)\n",
		stats.Elapsed, stats.TotalSamples, CalculateAverageLuminance(img))
	return img, stats, nil
}
