package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas is a software drawing surface backed by an RGBA image.
// Polygons are composited with draw.Over, so translucent fills blend with
// whatever was painted before them.
type Canvas struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	bg   *image.Uniform
	face font.Face

	clip []mgl64.Vec2 // scratch buffers for polygon clipping
	tmp  []mgl64.Vec2
}

// New allocates a width x height canvas cleared to bg.
func New(width, height int, bg color.NRGBA) *Canvas {
	c := &Canvas{
		bg:   image.NewUniform(bg),
		face: basicfont.Face7x13,
	}
	c.Resize(width, height)
	return c
}

// Resize reallocates the backing image when the size changes.
func (c *Canvas) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if c.img != nil && c.img.Rect.Dx() == width && c.img.Rect.Dy() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.ras = vector.NewRasterizer(width, height)
	c.Clear()
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (int, int) {
	return c.img.Rect.Dx(), c.img.Rect.Dy()
}

// SetBackground changes the color used by Clear.
func (c *Canvas) SetBackground(bg color.NRGBA) {
	c.bg = image.NewUniform(bg)
}

// Clear fills the whole canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Rect, c.bg, image.Point{}, draw.Src)
}

// FillPolygon fills the closed polygon pts.
func (c *Canvas) FillPolygon(pts []mgl64.Vec2, col color.NRGBA) {
	pts = c.clipToBounds(pts)
	if len(pts) < 3 {
		return
	}
	w, h := c.Size()
	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Over
	c.ras.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		c.ras.LineTo(float32(p[0]), float32(p[1]))
	}
	c.ras.ClosePath()
	c.ras.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{})
}

// StrokePolygon draws the closed outline of pts one pixel wide.
func (c *Canvas) StrokePolygon(pts []mgl64.Vec2, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	w, h := c.Size()
	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Over

	drawn := false
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		// Every edge quad is wound the same way so overlaps at the
		// corners add up instead of cancelling.
		n := mgl64.Vec2{-d[1], d[0]}.Mul(0.5 / l)
		quad := []mgl64.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
		quad = c.clipToBounds(quad)
		if len(quad) < 3 {
			continue
		}
		c.ras.MoveTo(float32(quad[0][0]), float32(quad[0][1]))
		for _, p := range quad[1:] {
			c.ras.LineTo(float32(p[0]), float32(p[1]))
		}
		c.ras.ClosePath()
		drawn = true
	}
	if drawn {
		c.ras.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{})
	}
}

// clipToBounds clips pts to the canvas rectangle (Sutherland-Hodgman).
// Projected points close to the camera plane can be far outside the image,
// and the rasterizer works in float32.
func (c *Canvas) clipToBounds(pts []mgl64.Vec2) []mgl64.Vec2 {
	w, h := c.Size()
	inside := true
	for _, p := range pts {
		if p[0] < 0 || p[0] > float64(w) || p[1] < 0 || p[1] > float64(h) ||
			math.IsNaN(p[0]) || math.IsNaN(p[1]) {
			inside = false
			break
		}
	}
	if inside {
		return pts
	}

	out := append(c.clip[:0], pts...)
	for edge := range 4 {
		in := out
		c.tmp = c.tmp[:0]
		for i := range in {
			cur := in[i]
			prev := in[(i+len(in)-1)%len(in)]
			curIn := insideEdge(cur, edge, w, h)
			prevIn := insideEdge(prev, edge, w, h)
			if curIn {
				if !prevIn {
					c.tmp = append(c.tmp, intersectEdge(prev, cur, edge, w, h))
				}
				c.tmp = append(c.tmp, cur)
			} else if prevIn {
				c.tmp = append(c.tmp, intersectEdge(prev, cur, edge, w, h))
			}
		}
		out, c.tmp = c.tmp, in
		if len(out) == 0 {
			break
		}
	}
	c.clip = out
	return out
}

func insideEdge(p mgl64.Vec2, edge, w, h int) bool {
	switch edge {
	case 0:
		return p[0] >= 0
	case 1:
		return p[0] <= float64(w)
	case 2:
		return p[1] >= 0
	default:
		return p[1] <= float64(h)
	}
}

func intersectEdge(a, b mgl64.Vec2, edge, w, h int) mgl64.Vec2 {
	var t float64
	switch edge {
	case 0:
		t = (0 - a[0]) / (b[0] - a[0])
	case 1:
		t = (float64(w) - a[0]) / (b[0] - a[0])
	case 2:
		t = (0 - a[1]) / (b[1] - a[1])
	default:
		t = (float64(h) - a[1]) / (b[1] - a[1])
	}
	return a.Add(b.Sub(a).Mul(t))
}

// SetFace replaces the text face; nil restores the built-in bitmap font.
func (c *Canvas) SetFace(face font.Face) {
	if face == nil {
		face = basicfont.Face7x13
	}
	c.face = face
}

// DrawText writes lines top-down starting with the first baseline at (x, y).
func (c *Canvas) DrawText(lines []string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
	}
	step := c.face.Metrics().Height
	dot := fixed.P(x, y)
	for _, line := range lines {
		d.Dot = dot
		d.DrawString(line)
		dot.Y += step
	}
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// WritePNG encodes the current frame.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// LoadFace parses a TrueType/OpenType font file at the given pixel size.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}
