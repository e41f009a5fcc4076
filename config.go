package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/shirou/gopsutil/cpu"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Config holds the command line settings. Zero numeric values mean
// "use the scene's recommendation".
type Config struct {
	Scene     string
	Width     int
	Samples   int
	Depth     int
	Workers   int
	Seed      int64
	TileSize  int
	Output    string
	Thumbnail int
	List      bool
	Help      bool
}

// envPrefix namespaces the environment variables that provide flag defaults
const envPrefix = "RAYTRACER_"

// parseConfig reads flags from args. Environment variables found through
// lookup (RAYTRACER_SCENE, RAYTRACER_WIDTH, ...) replace the built-in
// defaults, and explicit flags win over both.
func parseConfig(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		Scene: scene.DefaultScene,
		Seed:  42,
	}

	env := func(name string) (string, bool) {
		return lookup(envPrefix + name)
	}
	if v, ok := env("SCENE"); ok {
		cfg.Scene = v
	}
	if v, ok := env("OUTPUT"); ok {
		cfg.Output = v
	}
	for _, item := range []struct {
		name string
		dest *int
	}{
		{"WIDTH", &cfg.Width},
		{"SAMPLES", &cfg.Samples},
		{"DEPTH", &cfg.Depth},
		{"WORKERS", &cfg.Workers},
		{"TILE_SIZE", &cfg.TileSize},
		{"THUMBNAIL", &cfg.Thumbnail},
	} {
		if v, ok := env(item.name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, fmt.Errorf("%s%s: %w", envPrefix, item.name, err)
			}
			*item.dest = n
		}
	}
	if v, ok := env("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		cfg.Seed = n
	}

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to render (see -list)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels (0 = scene default)")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Maximum bounces per path (0 = scene default)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers (0 = physical cores)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for scene generation and sampling")
	fs.IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "Tile edge in pixels (0 = scene default)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output file, .ppm/.png/.jpg (default output/<scene>/render_<timestamp>.ppm)")
	fs.IntVar(&cfg.Thumbnail, "thumbnail", cfg.Thumbnail, "Also write a thumbnail no larger than NxN pixels (0 = off)")
	fs.BoolVar(&cfg.List, "list", false, "List available scenes")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	for _, check := range []struct {
		name  string
		value int
	}{
		{"width", cfg.Width},
		{"samples", cfg.Samples},
		{"depth", cfg.Depth},
		{"workers", cfg.Workers},
		{"tile-size", cfg.TileSize},
		{"thumbnail", cfg.Thumbnail},
	} {
		if check.value < 0 {
			return Config{}, fmt.Errorf("%s must not be negative, got %d", check.name, check.value)
		}
	}
	if cfg.Width == 1 {
		return Config{}, fmt.Errorf("width must be at least 2")
	}

	return cfg, nil
}

// usage returns the flag help text
func usage() string {
	return `Sphere Path Tracer
Usage: raytracer [options]

Options:
  -scene string      Scene to render (default "` + scene.DefaultScene + `", see -list)
  -width int         Image width in pixels (0 = scene default)
  -samples int       Samples per pixel (0 = scene default)
  -depth int         Maximum bounces per path (0 = scene default)
  -workers int       Parallel workers (0 = physical cores)
  -seed int          Seed for scene generation and sampling (default 42)
  -tile-size int     Tile edge in pixels (0 = scene default)
  -output string     Output file, .ppm/.png/.jpg (default output/<scene>/render_<timestamp>.ppm)
  -thumbnail int     Also write a thumbnail no larger than NxN pixels (0 = off)
  -list              List available scenes
  -help              Show help information

Every option can also be set with a RAYTRACER_<NAME> environment variable
(for example RAYTRACER_SAMPLES=200), or in a .env file in the working directory.
`
}

// defaultWorkers returns the number of physical cores, or the logical CPU
// count when the platform does not report physical cores
func defaultWorkers() int {
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
