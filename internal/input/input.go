package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionRemoveBlock
	ActionPlaceBlock
	ActionBlock1
	ActionBlock2
	ActionBlock3
	ActionBlock4
	ActionBlock5
	ActionBlock6
	ActionToggleCull
	ActionTogglePruning
	ActionToggleProfiling
	ActionToggleWireframe
	ActionRebuildCache
	ActionReleaseCursor
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveForward:     "move_forward",
	ActionMoveBackward:    "move_backward",
	ActionMoveLeft:        "move_left",
	ActionMoveRight:       "move_right",
	ActionMoveUp:          "move_up",
	ActionMoveDown:        "move_down",
	ActionPanLeft:         "pan_left",
	ActionPanRight:        "pan_right",
	ActionPanUp:           "pan_up",
	ActionPanDown:         "pan_down",
	ActionRemoveBlock:     "remove_block",
	ActionPlaceBlock:      "place_block",
	ActionBlock1:          "block_1",
	ActionBlock2:          "block_2",
	ActionBlock3:          "block_3",
	ActionBlock4:          "block_4",
	ActionBlock5:          "block_5",
	ActionBlock6:          "block_6",
	ActionToggleCull:      "toggle_cull",
	ActionTogglePruning:   "toggle_pruning",
	ActionToggleProfiling: "toggle_profiling",
	ActionToggleWireframe: "toggle_wireframe",
	ActionRebuildCache:    "rebuild_cache",
	ActionReleaseCursor:   "release_cursor",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// BlockActions lists the palette selection actions in block-code order.
var BlockActions = [...]Action{ActionBlock1, ActionBlock2, ActionBlock3, ActionBlock4, ActionBlock5, ActionBlock6}

// InputManager manages keyboard and mouse input state and maps physical keys/buttons to logical actions
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	// Mouse button to action mapping
	mouseButtonToActions map[glfw.MouseButton][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Previous frame state (for edge detection)
	prevState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Cursor motion accumulated since the last PostUpdate
	cursorX, cursorY float64
	hasCursor        bool
	deltaX, deltaY   float64
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	im.BindKey(glfw.KeyQ, ActionPanLeft)
	im.BindKey(glfw.KeyE, ActionPanRight)
	im.BindKey(glfw.KeyLeft, ActionPanLeft)
	im.BindKey(glfw.KeyRight, ActionPanRight)
	im.BindKey(glfw.KeyUp, ActionPanUp)
	im.BindKey(glfw.KeyDown, ActionPanDown)
	im.BindKey(glfw.Key1, ActionBlock1)
	im.BindKey(glfw.Key2, ActionBlock2)
	im.BindKey(glfw.Key3, ActionBlock3)
	im.BindKey(glfw.Key4, ActionBlock4)
	im.BindKey(glfw.Key5, ActionBlock5)
	im.BindKey(glfw.Key6, ActionBlock6)
	im.BindKey(glfw.KeyC, ActionToggleCull)
	im.BindKey(glfw.KeyP, ActionTogglePruning)
	im.BindKey(glfw.KeyV, ActionToggleProfiling)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.KeyR, ActionRebuildCache)
	im.BindKey(glfw.KeyEscape, ActionReleaseCursor)
	im.BindKey(glfw.KeyF10, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionRemoveBlock)
	im.BindMouseButton(glfw.MouseButtonRight, ActionPlaceBlock)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// UnbindMouseButton removes all action bindings for a mouse button
func (im *InputManager) UnbindMouseButton(button glfw.MouseButton) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.mouseButtonToActions, button)
}

// HandleKeyEvent processes a key event and updates internal state
// This can be called from a custom key callback
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.keyToActions[key]
	im.mu.RUnlock()

	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat

	im.mu.Lock()
	for _, act := range actions {
		if act >= 0 && act < ActionCount {
			// Detect edges immediately when event arrives
			if isPressed && !im.currentState[act] {
				im.justPressed[act] = true
			}
			if !isPressed && im.currentState[act] {
				im.justReleased[act] = true
			}
			im.currentState[act] = isPressed
		}
	}
	im.mu.Unlock()
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
// This can be called from a custom mouse button callback
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.mouseButtonToActions[button]
	im.mu.RUnlock()

	if !exists {
		return
	}

	isPressed := action == glfw.Press

	im.mu.Lock()
	for _, act := range actions {
		if act >= 0 && act < ActionCount {
			// Detect edges immediately when event arrives
			if isPressed && !im.currentState[act] {
				im.justPressed[act] = true
			}
			if !isPressed && im.currentState[act] {
				im.justReleased[act] = true
			}
			im.currentState[act] = isPressed
		}
	}
	im.mu.Unlock()
}

// HandleCursorPos accumulates cursor motion. The first sample after a reset
// only sets the reference point.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.hasCursor {
		im.deltaX += x - im.cursorX
		im.deltaY += y - im.cursorY
	}
	im.cursorX, im.cursorY = x, y
	im.hasCursor = true
}

// ResetCursor forgets the reference point, e.g. after the cursor is captured
// again, so the jump is not reported as motion.
func (im *InputManager) ResetCursor() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.hasCursor = false
	im.deltaX, im.deltaY = 0, 0
}

// CursorDelta returns the cursor motion accumulated this frame.
func (im *InputManager) CursorDelta() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.deltaX, im.deltaY
}

// Attach installs key, mouse button and cursor callbacks on window.
// This should be called once during initialization
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorPos(x, y)
	})
}

// PostUpdate must be called at the end of each frame to update edge detection states
// This should be called after all input checks are done
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	// Reset edge flags and update prev state
	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
		im.prevState[i] = im.currentState[i]
	}
	im.deltaX, im.deltaY = 0, 0
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}
