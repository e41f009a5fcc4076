package scene

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

type sceneFactory struct {
	info  SceneInfo
	build func(seed int64) (*Scene, error)
}

var builtinScenes = map[string]sceneFactory{
	"random-spheres": {
		SceneInfo{"random-spheres", "Grid of small random spheres with bouncing diffuse spheres and three large spheres"},
		NewRandomSpheresScene,
	},
	"two-spheres": {
		SceneInfo{"two-spheres", "Two large checkered spheres"},
		func(int64) (*Scene, error) { return NewTwoSpheresScene() },
	},
	"two-perlin-spheres": {
		SceneInfo{"two-perlin-spheres", "Marble-like Perlin noise on a ground sphere and a small sphere"},
		NewTwoPerlinSpheresScene,
	},
	"materials": {
		SceneInfo{"materials", "Diffuse sphere between fuzzy and rough metal spheres on a yellow ground"},
		func(int64) (*Scene, error) { return NewMaterialsScene() },
	},
}

// DefaultScene is the scene rendered when none is named
const DefaultScene = "random-spheres"

// New builds the named scene. The seed drives every random choice the
// scene makes, so the same name and seed always give the same world.
func New(name string, seed int64) (*Scene, error) {
	factory, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	s, err := factory.build(seed)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig.Seed = seed
	return s, nil
}

// List returns the built-in scenes sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, factory := range builtinScenes {
		infos = append(infos, factory.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Names returns the built-in scene names sorted alphabetically
func Names() []string {
	var names []string
	for _, info := range List() {
		names = append(names, info.Name)
	}
	return names
}
