package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the viewer pose. Angles are radians; FOV is degrees.
// At yaw = 0 the camera looks along +y, and +z is up.
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64 // kept in [-pi/2, pi/2] by Apply
	FOV      float64
	// ZNear is informational. Projection rejects only points at or behind
	// the camera plane, so geometry closer than ZNear is still drawn.
	ZNear float64
	ZFar  float64 // cubes whose center is farther are not drawn
}

// New returns a camera at the default eye position.
func New() *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 0, 2},
		FOV:      60,
		ZNear:    0.1,
		ZFar:     30,
	}
}

// Intent is one frame of sampled input.
type Intent struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool

	MouseDX, MouseDY float64
}

// Forward returns the horizontal walking direction.
func (c *Camera) Forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(c.Yaw), math.Cos(c.Yaw), 0}
}

// LookDir returns the unit view direction including pitch. A point along it
// projects to the center of the screen.
func (c *Camera) LookDir() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{math.Sin(c.Yaw) * cp, math.Cos(c.Yaw) * cp, math.Sin(c.Pitch)}
}

// Right returns the horizontal strafing direction.
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.Yaw), -math.Sin(c.Yaw), 0}
}

// Apply turns the camera by the mouse delta and moves it along the held
// directions. speed is in units per second, sensitivity in radians per
// pixel. Pitch is clamped here so nothing downstream has to.
func (c *Camera) Apply(in Intent, speed, sensitivity, dt float64) {
	c.Yaw += in.MouseDX * sensitivity
	c.Pitch -= in.MouseDY * sensitivity
	c.Pitch = mgl64.Clamp(c.Pitch, -math.Pi/2, math.Pi/2)

	step := speed * dt
	forward := c.Forward()
	right := c.Right()

	if in.Forward {
		c.Position = c.Position.Add(forward.Mul(step))
	}
	if in.Backward {
		c.Position = c.Position.Sub(forward.Mul(step))
	}
	if in.Right {
		c.Position = c.Position.Add(right.Mul(step))
	}
	if in.Left {
		c.Position = c.Position.Sub(right.Mul(step))
	}
	if in.Up {
		c.Position[2] += step
	}
	if in.Down {
		c.Position[2] -= step
	}
}
