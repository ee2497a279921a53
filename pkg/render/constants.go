package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/flycam/pkg/input"
)

// Key constants for keyboard input
const (
	KeyEscape     = glfw.KeyEscape
	KeyToggleLook = glfw.KeyC // capture or release the cursor
	KeyToggleMode = glfw.KeyO // cycle fly / orbit / ellipsoid orbit
	KeyPrintInfo  = glfw.KeyP
)

// Action constants for key states
const (
	Press   = glfw.Press
	Release = glfw.Release
)

// KeyBindings maps movement actions to keys
var KeyBindings = map[input.Action]glfw.Key{
	input.MoveForward:  glfw.KeyW,
	input.MoveBackward: glfw.KeyS,
	input.MoveLeft:     glfw.KeyA,
	input.MoveRight:    glfw.KeyD,
	input.MoveUp:       glfw.KeySpace,
	input.MoveDown:     glfw.KeyLeftShift,
}

// Scene constants
const (
	GridSize    = 11 // cubes per side of the demo grid
	GridSpacing = 3.0

	NearPlane = 0.1
	FarPlane  = 500.0

	AmbientStrength = 0.15
)

var (
	ClearColor = mgl32.Vec4{0.05, 0.05, 0.1, 1.0}
	LightPos   = mgl32.Vec3{30.0, 30.0, 30.0}
	LightColor = mgl32.Vec3{1.0, 1.0, 1.0}
)
