package camera

// Camera defaults
const (
	DefaultYaw              = -90.0 // Facing -Z direction
	DefaultPitch            = 0.0
	DefaultMovementSpeed    = 2.5
	DefaultMouseSensitivity = 0.1
	DefaultZoom             = 45.0
)

// Constraints
const (
	MaxPitch = 89.0
	MinPitch = -89.0

	// Zoom is a vertical field of view in degrees
	MinZoom = 1.0
	MaxZoom = 45.0
)

// OrbitSensitivityScale damps mouse offsets while orbiting a target
const OrbitSensitivityScale = 0.1

// EllipsoidAxes is the width:height:depth (x:y:z) ratio of the ellipsoid orbit.
// MoveInEllipsoid does not apply it yet, the orbit is still spherical.
var EllipsoidAxes = [3]float32{3, 2, 2}
