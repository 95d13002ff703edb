package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the settings file when no path is given.
const EnvConfigPath = "VOXEL_VIEWER_CONFIG"

// Settings is the on-disk viewer configuration.
type Settings struct {
	Window      WindowSettings `yaml:"window"`
	Camera      CameraSettings `yaml:"camera"`
	World       WorldSettings  `yaml:"world"`
	Render      RenderSettings `yaml:"render"`
	Debug       bool           `yaml:"debug"`
	MetricsAddr string         `yaml:"metrics_addr"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraSettings struct {
	FOV              float32 `yaml:"fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	MoveSpeed        float32 `yaml:"move_speed"`
	PanSpeed         float32 `yaml:"pan_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	MaxPitch         float32 `yaml:"max_pitch"`
}

type WorldSettings struct {
	CubeSize   float32 `yaml:"cube_size"`
	Size       int     `yaml:"size"`
	Headroom   int     `yaml:"headroom"`
	Terrain    string  `yaml:"terrain"`
	Seed       int64   `yaml:"seed"`
	WallHeight int     `yaml:"wall_height"`
	// Heightmap, when set, replaces the generated world with a heightmap file.
	Heightmap    string `yaml:"heightmap"`
	PruneOnPlace bool   `yaml:"prune_on_place"`
	PlaceBlock   int    `yaml:"place_block"`
}

type RenderSettings struct {
	FPSLimit       int     `yaml:"fps_limit"`
	ShadowMapSize  int     `yaml:"shadow_map_size"`
	ShadowDistance float32 `yaml:"shadow_distance"`
	CPUCull        bool    `yaml:"cpu_cull"`
	TexturesDir    string  `yaml:"textures_dir"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: WindowSettings{Width: 1280, Height: 720, Title: "voxel-viewer"},
		Camera: CameraSettings{
			FOV:              60,
			Near:             0.1,
			Far:              1000,
			MoveSpeed:        0.2,
			PanSpeed:         5,
			MouseSensitivity: 0.5,
			MaxPitch:         85,
		},
		World: WorldSettings{
			CubeSize:     0.5,
			Size:         700,
			Headroom:     16,
			Terrain:      "sine",
			WallHeight:   1000,
			PruneOnPlace: true,
			PlaceBlock:   1,
		},
		Render: RenderSettings{
			FPSLimit:       60,
			ShadowMapSize:  2048,
			ShadowDistance: 64,
			TexturesDir:    "assets/textures",
		},
	}
}

// Load reads settings from path, or from $VOXEL_VIEWER_CONFIG when path is
// empty. With neither set it returns the defaults. Fields missing from the
// file keep their default values.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return s, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}
