// Package replay records per-frame camera input and plays it back.
//
// A recording is a small uncompressed header carrying the starting camera
// configuration, followed by an lz4 stream of fixed-size little-endian frame
// records. Playing the frames back onto a camera built from that
// configuration reproduces the recorded path.
package replay

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/flycam/pkg/camera"
)

// Look selects how cursor offsets turn the camera
type Look uint8

const (
	// LookFree turns the camera in place with the pitch constrained
	LookFree Look = iota
	// LookSphere orbits the frame's target on a sphere
	LookSphere
	// LookEllipsoid orbits the frame's target with the ellipsoid variant
	LookEllipsoid
)

// Tuning holds the camera scalars a config reload can change mid-session
type Tuning struct {
	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
}

// TuningOf returns the tuning part of a camera configuration
func TuningOf(cfg camera.Config) Tuning {
	return Tuning{
		MovementSpeed:    cfg.MovementSpeed,
		MouseSensitivity: cfg.MouseSensitivity,
		Zoom:             cfg.Zoom,
	}
}

// Frame is the camera input gathered during one rendered frame
type Frame struct {
	DeltaTime float32
	Moves     []camera.Movement
	Look      Look
	XOffset   float32
	YOffset   float32
	Scroll    float32
	Target    mgl32.Vec3

	// Tuning is set on the frame where a reloaded tuning took effect
	Tuning *Tuning
}

// Apply replays one frame onto c: tuning first, then look input, then
// scroll, then keyboard movement with the frame's delta time
func Apply(c *camera.Camera, f Frame) {
	if f.Tuning != nil {
		c.SetMovementSpeed(f.Tuning.MovementSpeed)
		c.SetMouseSensitivity(f.Tuning.MouseSensitivity)
		c.SetZoom(f.Tuning.Zoom)
	}

	if f.XOffset != 0 || f.YOffset != 0 {
		switch f.Look {
		case LookSphere:
			c.MoveInSphere(f.XOffset, f.YOffset, f.Target)
		case LookEllipsoid:
			c.MoveInEllipsoid(f.XOffset, f.YOffset, f.Target)
		default:
			c.ProcessMouseMovement(f.XOffset, f.YOffset, true)
		}
	}

	if f.Scroll != 0 {
		c.ProcessMouseScroll(f.Scroll)
	}

	for _, m := range f.Moves {
		c.ProcessKeyboard(m, f.DeltaTime)
	}
}
