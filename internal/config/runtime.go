package config

import "sync"

// runtimeSettings holds the values the viewer may change while running.
type runtimeSettings struct {
	mu               sync.RWMutex
	moveSpeed        float32
	panSpeed         float32
	mouseSensitivity float32
	maxPitch         float32
	fpsLimit         int
	cpuCull          bool
	debug            bool
}

var globalRuntime = &runtimeSettings{}

func init() {
	Apply(Default())
}

// Apply installs the tunable fields of s, clamped, as the current values.
func Apply(s Settings) {
	SetMoveSpeed(s.Camera.MoveSpeed)
	SetPanSpeed(s.Camera.PanSpeed)
	SetMouseSensitivity(s.Camera.MouseSensitivity)
	SetMaxPitch(s.Camera.MaxPitch)
	SetFPSLimit(s.Render.FPSLimit)
	SetCPUCull(s.Render.CPUCull)
	SetDebug(s.Debug)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GetMoveSpeed returns the camera displacement per movement tick
func GetMoveSpeed() float32 {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.moveSpeed
}

func SetMoveSpeed(speed float32) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.moveSpeed = clampf(speed, 0.01, 10)
}

// GetPanSpeed returns the keyboard pan step in degrees
func GetPanSpeed() float32 {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.panSpeed
}

func SetPanSpeed(deg float32) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.panSpeed = clampf(deg, 0.1, 90)
}

// GetMouseSensitivity returns degrees of pan per pixel of mouse motion
func GetMouseSensitivity() float32 {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.mouseSensitivity
}

func SetMouseSensitivity(s float32) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.mouseSensitivity = clampf(s, 0.01, 5)
}

// GetMaxPitch returns the accumulated pitch limit in degrees
func GetMaxPitch() float32 {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.maxPitch
}

func SetMaxPitch(deg float32) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.maxPitch = clampf(deg, 1, 89.9)
}

// GetFPSLimit returns the frame cap; 0 means uncapped
func GetFPSLimit() int {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.fpsLimit
}

func SetFPSLimit(fps int) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	if fps < 0 {
		fps = 0
	}
	if fps > 0 && fps < 10 {
		fps = 10
	}
	if fps > 1000 {
		fps = 1000
	}
	globalRuntime.fpsLimit = fps
}

// GetCPUCull reports whether instances are frustum-culled on the CPU before upload
func GetCPUCull() bool {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.cpuCull
}

func SetCPUCull(enabled bool) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.cpuCull = enabled
}

func GetDebug() bool {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.debug
}

func SetDebug(enabled bool) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.debug = enabled
}
