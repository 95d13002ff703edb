package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"voxel-viewer/internal/camera"
	"voxel-viewer/internal/config"
	"voxel-viewer/internal/graphics/renderables/crosshair"
	"voxel-viewer/internal/graphics/renderables/shadow"
	"voxel-viewer/internal/graphics/renderables/voxels"
	"voxel-viewer/internal/graphics/renderables/wireframe"
	"voxel-viewer/internal/graphics/renderer"
	"voxel-viewer/internal/input"
	"voxel-viewer/internal/logging"
	"voxel-viewer/internal/metrics"
	"voxel-viewer/internal/terrain"
	"voxel-viewer/internal/viewer"
	"voxel-viewer/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

type flags struct {
	config          string
	heightmap       string
	saveHeightmap   string
	debug           bool
	metricsAddr     string
	legacyPlacement bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.config, "config", "", "settings file (default $"+config.EnvConfigPath+")")
	flag.StringVar(&f.heightmap, "heightmap", "", "load the world from a .yaml or .yaml.zst heightmap")
	flag.StringVar(&f.saveHeightmap, "save-heightmap", "", "write the world heightmap to this file and exit")
	flag.BoolVar(&f.debug, "debug", false, "enable debug logging")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.BoolVar(&f.legacyPlacement, "legacy-placement", false, "append placed blocks without pruning enclosed neighbours")
	flag.Parse()
	return f
}

// applyFlags overrides settings with the flags given on the command line.
func applyFlags(s *config.Settings, f flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "heightmap":
			s.World.Heightmap = f.heightmap
		case "debug":
			s.Debug = f.debug
		case "metrics-addr":
			s.MetricsAddr = f.metricsAddr
		case "legacy-placement":
			s.World.PruneOnPlace = !f.legacyPlacement
		}
	})
}

func main() {
	f := parseFlags()

	settings, err := config.Load(f.config)
	if err != nil {
		closer.Fatalln(err)
	}
	applyFlags(&settings, f)
	config.Apply(settings)

	log := logging.NewDefaultLogger("voxel-viewer", settings.Debug)

	hm, err := loadHeightmap(settings.World)
	if err != nil {
		closer.Fatalln(err)
	}
	if f.saveHeightmap != "" {
		if err := terrain.Save(f.saveHeightmap, hm); err != nil {
			closer.Fatalln(err)
		}
		log.Infof("heightmap written to %s", f.saveHeightmap)
		closer.Close()
		return
	}

	w, err := world.New(hm.Heights, world.Options{
		CubeSize:     settings.World.CubeSize,
		Headroom:     settings.World.Headroom,
		PruneOnPlace: settings.World.PruneOnPlace,
		PlaceBlock:   world.Block(settings.World.PlaceBlock),
		Logger:       logging.NewDefaultLogger("world", settings.Debug),
	})
	if err != nil {
		closer.Fatalln(err)
	}
	log.Infof("world ready: %d blocks, prune on place %t", w.TotalBlocks(), w.PruneOnPlace())

	var exporter *metrics.Exporter
	if settings.MetricsAddr != "" {
		exporter = metrics.NewExporter()
		srv := exporter.Serve(settings.MetricsAddr, log)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Close(ctx); err != nil {
				log.Warnf("metrics shutdown: %v", err)
			}
		})
	}

	if err := run(settings, w, exporter, log); err != nil {
		closer.Fatalln(err)
	}
	log.Infof("bye")
	closer.Close()
}

func loadHeightmap(ws config.WorldSettings) (terrain.Heightmap, error) {
	if ws.Heightmap != "" {
		return terrain.Load(ws.Heightmap)
	}
	return terrain.Build(terrain.Params{
		Size:       ws.Size,
		WallHeight: ws.WallHeight,
		Generator:  ws.Terrain,
		Seed:       ws.Seed,
	})
}

// run owns the window and GL context. It returns after the window closes,
// with all GL resources released.
func run(settings config.Settings, w *world.World, exporter *metrics.Exporter, log logging.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}

	var mu sync.Mutex
	terminated := false
	done := make(chan struct{})
	defer func() {
		mu.Lock()
		terminated = true
		glfw.Terminate()
		mu.Unlock()
		close(done)
	}()

	window, err := setupWindow(settings.Window)
	if err != nil {
		return err
	}

	// SIGINT/SIGTERM close the window and wait for this thread to release
	// the GL resources.
	closer.Bind(func() {
		mu.Lock()
		if !terminated {
			window.SetShouldClose(true)
		}
		mu.Unlock()
		<-done
	})

	cam := camera.NewWithProjection(settings.Camera.FOV, 1, settings.Camera.Near, settings.Camera.Far)
	eye := spawnPoint(w)
	cam.LookAt(eye, eye.Add(forward), up)

	vox := voxels.New(settings.Render.TexturesDir, log)
	r := renderer.NewRenderer(log,
		shadow.New(vox, settings.Render.ShadowMapSize, settings.Render.ShadowDistance, log),
		vox,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
	)
	if err := r.Init(); err != nil {
		return err
	}
	defer r.Dispose()

	v := viewer.New(cam, w, input.NewInputManager(), log)
	app := viewer.NewApp(window, v, r, exporter, log)
	return app.Run()
}
