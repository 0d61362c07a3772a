package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectCenter(t *testing.T) {
	c := New()
	p, ok := Project(mgl64.Vec3{0, 10, 2}, c, 800, 600)
	if !ok {
		t.Fatal("point straight ahead reported behind the camera")
	}
	if p != (mgl64.Vec2{400, 300}) {
		t.Errorf("Project = %v, want exact viewport center", p)
	}
}

func TestProjectBehind(t *testing.T) {
	c := New()
	for _, p := range []mgl64.Vec3{
		{0, -1, 2},
		{3, -0.5, 0},
		{0, 0, 2}, // on the camera plane
		{5, 0, -1},
	} {
		if _, ok := Project(p, c, 800, 600); ok {
			t.Errorf("Project(%v) should be behind the camera", p)
		}
	}
}

func TestProjectAxes(t *testing.T) {
	c := New()
	right, ok := Project(mgl64.Vec3{1, 10, 2}, c, 800, 600)
	if !ok || right[0] <= 400 || right[1] != 300 {
		t.Errorf("point to the right projected to %v", right)
	}
	above, ok := Project(mgl64.Vec3{0, 10, 3}, c, 800, 600)
	if !ok || above[1] >= 300 || above[0] != 400 {
		t.Errorf("point above projected to %v", above)
	}
}

func TestProjectFieldOfViewEdge(t *testing.T) {
	c := New()
	// At 60 degrees vertical fov a point at depth d and height d*tan(30)
	// sits on the top edge.
	d := 10.0
	p, ok := Project(mgl64.Vec3{0, d, 2 + d*math.Tan(math.Pi/6)}, c, 800, 600)
	if !ok {
		t.Fatal("unexpected behind-camera result")
	}
	if math.Abs(p[1]) > 1e-9 {
		t.Errorf("y = %v, want 0", p[1])
	}
}

func TestProjectFollowsYawAndPitch(t *testing.T) {
	c := New()
	c.Yaw = math.Pi / 2 // looking along +x
	if p, ok := Project(mgl64.Vec3{10, 0, 2}, c, 800, 600); !ok || !p.ApproxEqual(mgl64.Vec2{400, 300}) {
		t.Errorf("yawed center = %v ok=%v", p, ok)
	}
	if _, ok := Project(mgl64.Vec3{-10, 0, 2}, c, 800, 600); ok {
		t.Error("point along -x should be behind a camera facing +x")
	}

	c = New()
	c.Pitch = math.Pi / 2 // looking straight up
	if p, ok := Project(mgl64.Vec3{0, 0, 12}, c, 800, 600); !ok || !p.ApproxEqual(mgl64.Vec2{400, 300}) {
		t.Errorf("pitched center = %v ok=%v", p, ok)
	}
}

func TestInView(t *testing.T) {
	c := New()
	aspect := 800.0 / 600.0
	if !InView(mgl64.Vec3{0, 10, 2}, c, aspect, 0) {
		t.Error("center not in view")
	}
	if InView(mgl64.Vec3{0, -10, 2}, c, aspect, 0.5) {
		t.Error("point behind the camera in view")
	}

	// ndc.x = 12/10 * f / aspect, roughly 1.56.
	side := mgl64.Vec3{12, 10, 2}
	if InView(side, c, aspect, 0) {
		t.Error("off-screen point in view without margin")
	}
	if !InView(side, c, aspect, 0.6) {
		t.Error("off-screen point outside the enlarged view")
	}
}

func TestToScreenCorners(t *testing.T) {
	if p := ToScreen(mgl64.Vec2{-1, 1}, 800, 600); p != (mgl64.Vec2{0, 0}) {
		t.Errorf("top-left = %v", p)
	}
	if p := ToScreen(mgl64.Vec2{1, -1}, 800, 600); p != (mgl64.Vec2{800, 600}) {
		t.Errorf("bottom-right = %v", p)
	}
}

func TestLookDirProjectsToCenter(t *testing.T) {
	c := New()
	c.Yaw = 0.7
	c.Pitch = -0.4
	p, ok := Project(c.Position.Add(c.LookDir().Mul(5)), c, 800, 600)
	if !ok {
		t.Fatal("point along the view direction reported behind the camera")
	}
	if math.Abs(p[0]-400) > 1e-6 || math.Abs(p[1]-300) > 1e-6 {
		t.Errorf("Project = %v, want (400, 300)", p)
	}
	if l := c.LookDir().Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("LookDir length = %v", l)
	}
}

func TestProjectIgnoresZNear(t *testing.T) {
	c := New()
	c.ZNear = 1
	// Depth 0.05 is inside ZNear but in front of the camera plane.
	if _, ok := Project(mgl64.Vec3{0, 0.05, 2}, c, 800, 600); !ok {
		t.Error("point in front of the camera rejected by ZNear")
	}
	if _, ok := Project(mgl64.Vec3{0, 0, 2}, c, 800, 600); ok {
		t.Error("point on the camera plane projected")
	}
}
