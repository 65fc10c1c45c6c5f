package renderer

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	// DefaultFov is the vertical field of view in radians
	DefaultFov = math32.Pi / 3

	// MinZoomDistance is the closest the eye may get to the center
	MinZoomDistance = 0.1

	// maxPitch keeps orbiting just short of the poles
	maxPitch = math32.Pi/2 - 0.01
)

// Camera is a look-at camera. Forward, Right and ViewUp are derived from
// Eye, Center and Up by UpdateBasis and always form an orthonormal basis.
type Camera struct {
	Eye    core.Vec3 // Camera position
	Center core.Vec3 // Point the camera looks at
	Up     core.Vec3 // World up hint

	Forward core.Vec3
	Right   core.Vec3
	ViewUp  core.Vec3

	Fov float32 // Vertical field of view in radians
}

// CameraControls holds one frame of user input
type CameraControls struct {
	Yaw   float32 // Orbit around the vertical axis, radians
	Pitch float32 // Orbit up or down, radians
	Zoom  float32 // Positive moves towards the center
	Pan   float32 // Vertical translation of eye and center
}

// IsZero reports whether the controls would leave the camera unchanged
func (c CameraControls) IsZero() bool {
	return c.Yaw == 0 && c.Pitch == 0 && c.Zoom == 0 && c.Pan == 0
}

// NewCamera creates a camera at eye looking at center
func NewCamera(eye, center, up core.Vec3) Camera {
	c := Camera{
		Eye:    eye,
		Center: center,
		Up:     up,
		Fov:    DefaultFov,
	}
	c.UpdateBasis()
	return c
}

// UpdateBasis recomputes Forward, Right and ViewUp. When the view direction
// is parallel to Up another hint is used so the basis stays orthonormal.
func (c *Camera) UpdateBasis() {
	forward := c.Center.Subtract(c.Eye).Normalize()
	if forward.IsZero() {
		forward = core.NewVec3(0, 0, -1)
	}

	right := forward.Cross(c.Up.Normalize())
	if right.LengthSquared() < 1e-12 {
		hint := core.NewVec3(0, 0, -1)
		if math32.Abs(forward.Z) > 0.9 {
			hint = core.NewVec3(1, 0, 0)
		}
		right = forward.Cross(hint)
	}
	right = right.Normalize()

	c.Forward = forward
	c.Right = right
	c.ViewUp = right.Cross(forward).Normalize()
}

// BasisChange maps a camera-local vector (x right, y up, -z forward) to world space
func (c Camera) BasisChange(local core.Vec3) core.Vec3 {
	return c.Right.Multiply(local.X).
		Add(c.ViewUp.Multiply(local.Y)).
		Subtract(c.Forward.Multiply(local.Z))
}

// RayDirection returns the normalized world direction through the center of
// pixel (x, y) for an image of the given size. Row 0 is the top of the image.
func (c Camera) RayDirection(x, y, width, height int) core.Vec3 {
	fov := c.Fov
	if fov <= 0 {
		fov = DefaultFov
	}
	scale := math32.Tan(fov / 2)
	aspect := float32(width) / float32(height)

	sx := 2*(float32(x)+0.5)/float32(width) - 1
	sy := 1 - 2*(float32(y)+0.5)/float32(height)

	local := core.NewVec3(sx*aspect*scale, sy*scale, -1).Normalize()
	return c.BasisChange(local).Normalize()
}

// Orbit rotates the eye around the center on a sphere of constant radius.
// Pitch is clamped short of the poles.
func (c *Camera) Orbit(deltaYaw, deltaPitch float32) {
	offset := c.Eye.Subtract(c.Center)
	radius := offset.Length()
	if radius == 0 {
		return
	}

	yaw := math32.Atan2(offset.X, offset.Z) + deltaYaw
	pitch := math32.Asin(clamp(offset.Y/radius, -1, 1)) + deltaPitch
	pitch = clamp(pitch, -maxPitch, maxPitch)

	cosPitch := math32.Cos(pitch)
	c.Eye = c.Center.Add(core.NewVec3(
		radius*cosPitch*math32.Sin(yaw),
		radius*math32.Sin(pitch),
		radius*cosPitch*math32.Cos(yaw),
	))
	c.UpdateBasis()
}

// Zoom moves the eye along the view direction. Positive deltas move closer.
func (c *Camera) Zoom(delta float32) {
	distance := c.Center.Subtract(c.Eye).Length()
	distance = max(MinZoomDistance, distance-delta)
	c.Eye = c.Center.Subtract(c.Forward.Multiply(distance))
	c.UpdateBasis()
}

// Pan moves the eye and center together along the world up direction
func (c *Camera) Pan(delta float32) {
	up := c.Up.Normalize()
	if up.IsZero() {
		up = core.NewVec3(0, 1, 0)
	}
	offset := up.Multiply(delta)
	c.Eye = c.Eye.Add(offset)
	c.Center = c.Center.Add(offset)
	c.UpdateBasis()
}

// ApplyControls applies one frame of input
func (c *Camera) ApplyControls(controls CameraControls) {
	if controls.Yaw != 0 || controls.Pitch != 0 {
		c.Orbit(controls.Yaw, controls.Pitch)
	}
	if controls.Zoom != 0 {
		c.Zoom(controls.Zoom)
	}
	if controls.Pan != 0 {
		c.Pan(controls.Pan)
	}
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
