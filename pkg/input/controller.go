// Package input maps window-system-neutral actions and cursor positions onto
// camera operations. Cursor and scroll events are gathered between frames and
// applied once per frame by Update, which also returns the frame so it can be
// recorded.
package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/flycam/pkg/camera"
	"github.com/leterax/flycam/pkg/replay"
)

// Action is a bindable camera movement
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

// Actions lists every action in the order Update applies them
var Actions = [...]Action{MoveForward, MoveBackward, MoveLeft, MoveRight, MoveUp, MoveDown}

var actionMovement = [...]camera.Movement{
	MoveForward:  camera.Forward,
	MoveBackward: camera.Backward,
	MoveLeft:     camera.Left,
	MoveRight:    camera.Right,
	MoveUp:       camera.Up,
	MoveDown:     camera.Down,
}

// Movement returns the camera movement bound to the action
func (a Action) Movement() camera.Movement {
	return actionMovement[a]
}

// KeyState reports which actions are currently held
type KeyState interface {
	Pressed(a Action) bool
}

// KeyStateFunc adapts a function to KeyState
type KeyStateFunc func(a Action) bool

// Pressed calls f(a)
func (f KeyStateFunc) Pressed(a Action) bool {
	return f(a)
}

// Mode selects what cursor movement does
type Mode uint8

const (
	// Fly turns the camera in place and lets the keyboard move it
	Fly Mode = iota
	// Orbit circles the target on a sphere; the keyboard is ignored
	Orbit
	// OrbitEllipsoid circles the target with the ellipsoid orbit
	OrbitEllipsoid

	modeCount
)

func (m Mode) String() string {
	switch m {
	case Fly:
		return "fly"
	case Orbit:
		return "orbit"
	case OrbitEllipsoid:
		return "ellipsoid orbit"
	}
	return "unknown"
}

func (m Mode) look() replay.Look {
	switch m {
	case Orbit:
		return replay.LookSphere
	case OrbitEllipsoid:
		return replay.LookEllipsoid
	}
	return replay.LookFree
}

// Controller drives a camera from input events
type Controller struct {
	camera *camera.Camera
	mode   Mode
	target mgl32.Vec3

	// Mouse state
	lastX      float64
	lastY      float64
	firstMouse bool

	pending replay.Frame
}

// NewController creates a fly-mode controller for c orbiting the origin
func NewController(c *camera.Camera) *Controller {
	return &Controller{
		camera:     c,
		firstMouse: true,
	}
}

// Camera returns the driven camera
func (ic *Controller) Camera() *camera.Camera {
	return ic.camera
}

// Mode returns the current mode
func (ic *Controller) Mode() Mode {
	return ic.mode
}

// SetMode switches to m
func (ic *Controller) SetMode(m Mode) {
	ic.mode = m
}

// ToggleMode switches to the next mode and returns it
func (ic *Controller) ToggleMode() Mode {
	ic.mode = (ic.mode + 1) % modeCount
	return ic.mode
}

// Target returns the point orbited in the orbit modes
func (ic *Controller) Target() mgl32.Vec3 {
	return ic.target
}

// SetTarget moves the point the orbit modes circle
func (ic *Controller) SetTarget(target mgl32.Vec3) {
	ic.target = target
}

// ResetCursor makes the next cursor event only record its position, so
// capturing the cursor does not make the camera jump
func (ic *Controller) ResetCursor() {
	ic.firstMouse = true
}

// CursorMoved accumulates the offset from the previous cursor position
func (ic *Controller) CursorMoved(xpos, ypos float64) {
	if ic.firstMouse {
		ic.lastX = xpos
		ic.lastY = ypos
		ic.firstMouse = false
		return
	}

	ic.pending.XOffset += float32(xpos - ic.lastX)
	ic.pending.YOffset += float32(ic.lastY - ypos) // Reversed: y ranges bottom to top

	ic.lastX = xpos
	ic.lastY = ypos
}

// Tune makes the next Update apply the tuning of cfg before any other
// input. A later call before that Update replaces it.
func (ic *Controller) Tune(cfg camera.Config) {
	tuning := replay.TuningOf(cfg)
	ic.pending.Tuning = &tuning
}

// Scrolled accumulates a vertical scroll offset
func (ic *Controller) Scrolled(yoffset float64) {
	ic.pending.Scroll += float32(yoffset)
}

// Update applies the input gathered since the last call together with the
// held actions and returns the applied frame. keys may be nil.
func (ic *Controller) Update(keys KeyState, deltaTime float32) replay.Frame {
	frame := ic.pending
	ic.pending = replay.Frame{}

	frame.DeltaTime = deltaTime
	frame.Look = ic.mode.look()
	if ic.mode != Fly {
		frame.Target = ic.target
	}

	if keys != nil && ic.mode == Fly {
		for _, a := range Actions {
			if keys.Pressed(a) {
				frame.Moves = append(frame.Moves, a.Movement())
			}
		}
	}

	replay.Apply(ic.camera, frame)

	return frame
}
