package graphics

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface is a 2D drawing target in pixel coordinates, y down.
// Implementations must not retain pts after the call returns.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillPolygon(pts []mgl64.Vec2, c color.NRGBA)
}

// Outliner is implemented by surfaces that can stroke polygon edges.
type Outliner interface {
	StrokePolygon(pts []mgl64.Vec2, c color.NRGBA)
}
