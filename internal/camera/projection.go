package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ToView rotates p into camera space: yaw about the vertical axis first,
// then pitch about the resulting horizontal axis. The returned z is depth
// along the view direction.
func ToView(p mgl64.Vec3, c *Camera) mgl64.Vec3 {
	d := p.Sub(c.Position)
	sinYaw, cosYaw := math.Sincos(c.Yaw)
	sinPitch, cosPitch := math.Sincos(c.Pitch)

	xr := d[0]*cosYaw - d[1]*sinYaw
	zr := d[0]*sinYaw + d[1]*cosYaw
	yr := d[2]*cosPitch - zr*sinPitch
	depth := d[2]*sinPitch + zr*cosPitch
	return mgl64.Vec3{xr, yr, depth}
}

// ToNDC maps p to normalized device coordinates for the given aspect ratio
// (width / height). ok is false when p is at or behind the camera plane.
func ToNDC(p mgl64.Vec3, c *Camera, aspect float64) (ndc mgl64.Vec2, ok bool) {
	v := ToView(p, c)
	if v[2] <= 0 {
		return mgl64.Vec2{}, false
	}
	f := 1 / math.Tan(mgl64.DegToRad(c.FOV)/2)
	return mgl64.Vec2{
		v[0] / v[2] * f / aspect,
		v[1] / v[2] * f,
	}, true
}

// ToScreen maps NDC to pixels; screen y grows downward.
func ToScreen(ndc mgl64.Vec2, width, height int) mgl64.Vec2 {
	w := float64(width)
	h := float64(height)
	return mgl64.Vec2{
		ndc[0]*w/2 + w/2,
		-ndc[1]*h/2 + h/2,
	}
}

// Project maps a world point to pixel coordinates. ok is false when the
// point is behind the camera; such points have no screen position.
func Project(p mgl64.Vec3, c *Camera, width, height int) (mgl64.Vec2, bool) {
	ndc, ok := ToNDC(p, c, float64(width)/float64(height))
	if !ok {
		return mgl64.Vec2{}, false
	}
	return ToScreen(ndc, width, height), true
}

// InView reports whether p projects inside the NDC box grown by margin on
// every side. It shares ToNDC with Project so culling and drawing agree.
func InView(p mgl64.Vec3, c *Camera, aspect, margin float64) bool {
	ndc, ok := ToNDC(p, c, aspect)
	if !ok {
		return false
	}
	limit := 1 + margin
	return math.Abs(ndc[0]) <= limit && math.Abs(ndc[1]) <= limit
}
