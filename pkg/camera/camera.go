// Package camera implements a yaw/pitch fly camera with an orbit mode.
// It turns keyboard, mouse and scroll input into a position and an
// orthonormal basis and produces view and projection matrices for OpenGL.
package camera

import (
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera implements a 3D camera for navigation
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles in degrees
	yaw   float32
	pitch float32

	// Camera options
	movementSpeed    float32
	mouseSensitivity float32
	zoom             float32
}

// Option configures a Camera at construction
type Option func(*Camera)

// WithMovementSpeed sets the translation speed in world units per second
func WithMovementSpeed(speed float32) Option {
	return func(c *Camera) {
		c.movementSpeed = speed
	}
}

// WithMouseSensitivity sets the degrees of rotation per unit of cursor offset
func WithMouseSensitivity(sensitivity float32) Option {
	return func(c *Camera) {
		c.mouseSensitivity = sensitivity
	}
}

// WithZoom sets the initial field of view, clamped to [MinZoom, MaxZoom]
func WithZoom(zoom float32) Option {
	return func(c *Camera) {
		c.zoom = Clamp(zoom, MinZoom, MaxZoom)
	}
}

// New creates a camera at position looking along the direction given by yaw
// and pitch (degrees). worldUp is the fixed reference up vector.
func New(position, worldUp mgl32.Vec3, yaw, pitch float32, opts ...Option) *Camera {
	camera := &Camera{
		position:         position,
		worldUp:          worldUp,
		front:            mgl32.Vec3{0, 0, -1},
		yaw:              yaw,
		pitch:            pitch,
		movementSpeed:    DefaultMovementSpeed,
		mouseSensitivity: DefaultMouseSensitivity,
		zoom:             DefaultZoom,
	}

	for _, opt := range opts {
		opt(camera)
	}

	camera.updateCameraVectors()

	return camera
}

// NewDefault creates a camera at the origin facing -Z with a Y-up world
func NewDefault() *Camera {
	return New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch)
}

// NewFromScalars is New with the position and world up given component-wise
func NewFromScalars(posX, posY, posZ, upX, upY, upZ, yaw, pitch float32) *Camera {
	return New(mgl32.Vec3{posX, posY, posZ}, mgl32.Vec3{upX, upY, upZ}, yaw, pitch)
}

// updateCameraVectors recalculates camera vectors based on Euler angles
func (c *Camera) updateCameraVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()

	// Re-calculate right and up vectors
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// ViewMatrix returns the look-at matrix for the current position and basis
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns a perspective projection using the zoom as the
// vertical field of view
func (c *Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

// ProcessKeyboard moves the camera along its basis. Only the position changes.
func (c *Camera) ProcessKeyboard(direction Movement, deltaTime float32) {
	velocity := c.movementSpeed * deltaTime

	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	case Up:
		c.position = c.position.Add(c.worldUp.Mul(velocity))
	case Down:
		c.position = c.position.Sub(c.worldUp.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by the cursor offsets scaled by the
// mouse sensitivity. With constrainPitch the pitch stays within
// [MinPitch, MaxPitch] so the view never flips over the poles.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	xOffset *= c.mouseSensitivity
	yOffset *= c.mouseSensitivity

	c.yaw += xOffset
	c.pitch += yOffset

	if constrainPitch {
		c.pitch = Clamp(c.pitch, MinPitch, MaxPitch)
	}

	c.updateCameraVectors()
}

// MoveInSphere orbits the camera around target, keeping its current distance.
// The offsets rotate opposite to ProcessMouseMovement and are damped by
// OrbitSensitivityScale.
func (c *Camera) MoveInSphere(xOffset, yOffset float32, target mgl32.Vec3) {
	c.orbit(xOffset, yOffset, target)
}

// MoveInEllipsoid orbits the camera around target.
//
// The orbit is meant to follow an ellipsoid with EllipsoidAxes proportions,
// but the position is computed exactly like MoveInSphere.
func (c *Camera) MoveInEllipsoid(xOffset, yOffset float32, target mgl32.Vec3) {
	c.orbit(xOffset, yOffset, target)
}

func (c *Camera) orbit(xOffset, yOffset float32, target mgl32.Vec3) {
	xOffset *= c.mouseSensitivity * OrbitSensitivityScale
	yOffset *= c.mouseSensitivity * OrbitSensitivityScale

	c.yaw -= xOffset
	c.pitch -= yOffset

	alpha := mgl32.DegToRad(c.yaw)
	beta := mgl32.DegToRad(c.pitch)

	distance := c.position.Sub(target).Len()

	c.position = mgl32.Vec3{
		target.X() - distance*math32.Cos(alpha)*math32.Cos(beta),
		target.Y() - distance*math32.Sin(beta),
		target.Z() - distance*math32.Sin(alpha)*math32.Cos(beta),
	}

	c.updateCameraVectors()
}

// ProcessMouseScroll narrows (positive offset) or widens the field of view.
// The zoom is kept within [MinZoom, MaxZoom].
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	if c.zoom >= MinZoom && c.zoom <= MaxZoom {
		c.zoom -= yOffset
	}
	c.zoom = Clamp(c.zoom, MinZoom, MaxZoom)
}

// Position returns the current camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition sets the camera position
func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

// Orientation returns the current camera orientation (yaw, pitch)
func (c *Camera) Orientation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// Yaw returns the heading in degrees
func (c *Camera) Yaw() float32 {
	return c.yaw
}

// Pitch returns the elevation in degrees
func (c *Camera) Pitch() float32 {
	return c.pitch
}

// SetRotation sets the camera rotation angles
func (c *Camera) SetRotation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = Clamp(pitch, MinPitch, MaxPitch)

	c.updateCameraVectors()
}

// LookAt makes the camera look at a specific point
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.position).Normalize()

	// Calculate yaw and pitch from direction vector
	c.yaw = mgl32.RadToDeg(math32.Atan2(direction.Z(), direction.X()))
	c.pitch = Clamp(mgl32.RadToDeg(math32.Asin(direction.Y())), MinPitch, MaxPitch)

	c.updateCameraVectors()
}

// Front returns the camera's front direction vector
func (c *Camera) Front() mgl32.Vec3 {
	return c.front
}

// Right returns the camera's right direction vector
func (c *Camera) Right() mgl32.Vec3 {
	return c.right
}

// Up returns the camera's up direction vector
func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

// WorldUp returns the reference up vector the camera was created with
func (c *Camera) WorldUp() mgl32.Vec3 {
	return c.worldUp
}

// Zoom returns the vertical field of view in degrees
func (c *Camera) Zoom() float32 {
	return c.zoom
}

// SetZoom sets the field of view, clamped to [MinZoom, MaxZoom]
func (c *Camera) SetZoom(zoom float32) {
	c.zoom = Clamp(zoom, MinZoom, MaxZoom)
}

// MovementSpeed returns the translation speed in world units per second
func (c *Camera) MovementSpeed() float32 {
	return c.movementSpeed
}

// SetMovementSpeed sets the translation speed
func (c *Camera) SetMovementSpeed(speed float32) {
	c.movementSpeed = speed
}

// MouseSensitivity returns the degrees turned per unit of cursor offset
func (c *Camera) MouseSensitivity() float32 {
	return c.mouseSensitivity
}

// SetMouseSensitivity sets the degrees turned per unit of cursor offset
func (c *Camera) SetMouseSensitivity(sensitivity float32) {
	c.mouseSensitivity = sensitivity
}

// String formats the position, world up and angles on one line
func (c *Camera) String() string {
	return fmt.Sprintf("position: (%.3f, %.3f, %.3f) world up: (%.3f, %.3f, %.3f) yaw: %.3f pitch: %.3f",
		c.position.X(), c.position.Y(), c.position.Z(),
		c.worldUp.X(), c.worldUp.Y(), c.worldUp.Z(),
		c.yaw, c.pitch)
}

// PrintInfo writes the position, world up and angles to w
func (c *Camera) PrintInfo(w io.Writer) {
	fmt.Fprintln(w, c.String())
}
