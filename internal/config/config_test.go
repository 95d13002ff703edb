package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, `
camera:
  move_speed: 0.5
world:
  size: 128
  prune_on_place: false
render:
  cpu_cull: true
metrics_addr: ":9100"
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(0.5), s.Camera.MoveSpeed)
	assert.Equal(t, float32(85), s.Camera.MaxPitch)
	assert.Equal(t, 128, s.World.Size)
	assert.False(t, s.World.PruneOnPlace)
	assert.Equal(t, 16, s.World.Headroom)
	assert.True(t, s.Render.CPUCull)
	assert.Equal(t, ":9100", s.MetricsAddr)
	assert.Equal(t, "voxel-viewer", s.Window.Title)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "debug: true\n")
	t.Setenv(EnvConfigPath, path)

	s, err := Load("")
	require.NoError(t, err)
	assert.True(t, s.Debug)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "camera: [1, 2"))
	assert.Error(t, err)
}

func TestApplyClamps(t *testing.T) {
	t.Cleanup(func() { Apply(Default()) })

	s := Default()
	s.Camera.MoveSpeed = 100
	s.Camera.MaxPitch = 120
	s.Render.FPSLimit = 3
	s.Render.CPUCull = true
	Apply(s)

	assert.Equal(t, float32(10), GetMoveSpeed())
	assert.Equal(t, float32(89.9), GetMaxPitch())
	assert.Equal(t, 10, GetFPSLimit())
	assert.True(t, GetCPUCull())

	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetMouseSensitivity(0)
	assert.Equal(t, float32(0.01), GetMouseSensitivity())
}

func TestDefaultsInstalledAtInit(t *testing.T) {
	assert.Equal(t, float32(0.2), GetMoveSpeed())
	assert.Equal(t, float32(5), GetPanSpeed())
	assert.Equal(t, 60, GetFPSLimit())
	assert.False(t, GetDebug())
}
