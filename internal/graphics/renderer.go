package graphics

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/camera"
	"voxview/internal/profiling"
	"voxview/internal/world"
)

// Stats counts the work done by one Draw call.
type Stats struct {
	Chunks       int
	Cubes        int // cubes within the far plane
	FacesTested  int
	FacesDrawn   int
	FacesClipped int // visible but with a corner behind the camera
	Target       PickResult
}

// Renderer paints cube faces onto a Surface back to front.
type Renderer struct {
	// Outlines strokes every drawn face when the surface supports it.
	Outlines     bool
	OutlineColor color.NRGBA
	// TargetColor outlines the cube under the crosshair.
	TargetColor color.NRGBA
}

// NewRenderer returns a renderer with black outlines enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		Outlines:     true,
		OutlineColor: color.NRGBA{0, 0, 0, 255},
		TargetColor:  color.NRGBA{255, 255, 255, 255},
	}
}

type sortedCube struct {
	cube   *world.Cube
	distSq float64
}

// Draw renders chunks in the order given, which callers arrange farthest
// first. Inside each chunk cubes are drawn farthest first as well. A face is
// drawn only if it is exposed, faces the camera and has all four corners in
// front of the camera.
func (r *Renderer) Draw(s Surface, cam *camera.Camera, chunks []*world.Chunk) Stats {
	defer profiling.Track("graphics.Draw")()

	var stats Stats
	stats.Chunks = len(chunks)
	width, height := s.Size()
	farSq := cam.ZFar * cam.ZFar

	perChunk := make([][]sortedCube, len(chunks))
	var all []*world.Cube
	func() {
		defer profiling.Track("graphics.Draw.gather")()
		for i, ch := range chunks {
			for _, c := range ch.Cubes {
				d := c.Center().Sub(cam.Position).LenSqr()
				if d > farSq {
					continue
				}
				perChunk[i] = append(perChunk[i], sortedCube{c, d})
				all = append(all, c)
			}
		}
	}()
	stats.Cubes = len(all)

	index := NewOcclusionIndex(all)
	stats.Target = index.Pick(cam.Position, cam.LookDir(), MaxPickDistance)
	outliner, canOutline := s.(Outliner)
	outline := r.Outlines && canOutline

	var pts [4]mgl64.Vec2
	for _, cubes := range perChunk {
		sort.SliceStable(cubes, func(i, j int) bool {
			return cubes[i].distSq > cubes[j].distSq
		})
		for _, sc := range cubes {
			c := sc.cube
			for f := world.Face(0); f < world.FaceCount; f++ {
				stats.FacesTested++
				if !index.Visible(c, f, cam.Position) {
					continue
				}
				if !projectFace(c, f, cam, width, height, &pts) {
					stats.FacesClipped++
					continue
				}
				s.FillPolygon(pts[:], c.Color())
				switch {
				case canOutline && stats.Target.Cube == c:
					outliner.StrokePolygon(pts[:], r.TargetColor)
				case outline:
					outliner.StrokePolygon(pts[:], r.OutlineColor)
				}
				stats.FacesDrawn++
			}
		}
	}
	return stats
}

// projectFace writes the screen corners of face f into out. It returns false
// as soon as one corner is behind the camera.
func projectFace(c *world.Cube, f world.Face, cam *camera.Camera, width, height int, out *[4]mgl64.Vec2) bool {
	for i, p := range c.FacePoints(f) {
		sp, ok := camera.Project(p, cam, width, height)
		if !ok {
			return false
		}
		out[i] = sp
	}
	return true
}
