package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func main() {
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Args[1:], os.LookupEnv, core.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv adds the variables in path to the environment. A missing file
// is not an error; a file that cannot be read or parsed is.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// run parses the configuration, renders the chosen scene and saves it
func run(args []string, lookup func(string) (string, bool), logger core.Logger) error {
	cfg, err := parseConfig(args, lookup)
	if err != nil {
		return err
	}

	if cfg.Help {
		logger.Printf("%s", usage())
		return nil
	}
	if cfg.List {
		logger.Printf("Available scenes:\n")
		for _, info := range scene.List() {
			logger.Printf("  %-20s %s\n", info.Name, info.Description)
		}
		return nil
	}

	logger.Printf("Starting Sphere Path Tracer...\n")
	logHostInfo(logger)

	selectedScene, err := scene.New(cfg.Scene, cfg.Seed)
	if err != nil {
		return err
	}
	camera, err := selectedScene.Camera()
	if err != nil {
		return err
	}

	if cfg.Width > 0 {
		selectedScene.Width = cfg.Width
	}
	width, height := selectedScene.Width, selectedScene.Height()

	sampling := mergeSamplingConfig(selectedScene.SamplingConfig, cfg)
	stats := selectedScene.World.Stats()
	logger.Printf("Using %s scene: %d surfaces, BVH of %d nodes (max depth %d)\n",
		selectedScene.Name, selectedScene.World.Len(), stats.TotalNodes, stats.MaxDepth)

	pathTracer := integrator.NewPathTracingIntegrator(sampling.MaxDepth, selectedScene.Background)
	raytracer := renderer.NewRaytracer(selectedScene.World, camera, pathTracer, width, height, sampling, logger)

	img, renderStats, err := raytracer.Render()
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f, %d tiles on %d workers\n",
		renderStats.AverageSamples(), renderStats.TilesRendered, renderStats.NumWorkers)

	filename := cfg.Output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", selectedScene.Name, fmt.Sprintf("render_%s.ppm", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := output.Save(filename, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)

	if cfg.Thumbnail > 0 {
		thumbPath := output.ThumbnailPath(filename)
		thumb := output.Thumbnail(img, uint(cfg.Thumbnail), uint(cfg.Thumbnail))
		if err := output.Save(thumbPath, thumb); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}
	return nil
}

// mergeSamplingConfig applies the non-zero command line overrides to the
// scene's recommended sampling settings
func mergeSamplingConfig(base renderer.SamplingConfig, cfg Config) renderer.SamplingConfig {
	result := base
	if cfg.Samples > 0 {
		result.SamplesPerPixel = cfg.Samples
	}
	if cfg.Depth > 0 {
		result.MaxDepth = cfg.Depth
	}
	if cfg.TileSize > 0 {
		result.TileSize = cfg.TileSize
	}
	result.NumWorkers = cfg.Workers
	if result.NumWorkers == 0 {
		result.NumWorkers = defaultWorkers()
	}
	result.Seed = cfg.Seed
	return result
}

// logHostInfo reports the CPU model and memory of the machine
func logHostInfo(logger core.Logger) {
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		logger.Printf("CPU: %s (%d physical cores)\n", info[0].ModelName, defaultWorkers())
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Printf("Memory: %.1f GB total, %.1f GB available\n",
			float64(vm.Total)/(1<<30), float64(vm.Available)/(1<<30))
	}
}
