package graphics

import (
	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/world"
)

// IsFrontFacing reports whether face f of c points toward eye. The normal is
// taken from the face's winding, so it holds for any cube position.
func IsFrontFacing(c *world.Cube, f world.Face, eye mgl64.Vec3) bool {
	pts := c.FacePoints(f)
	normal := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0]))
	return normal.Dot(eye.Sub(pts[0])) > 0
}

type faceKey struct {
	pos  world.BlockPos
	face world.Face
}

// OcclusionIndex answers neighbor queries for one render pass. Build a new
// one every frame; it is not safe for concurrent use.
type OcclusionIndex struct {
	cubes  map[world.BlockPos]*world.Cube
	hidden map[faceKey]struct{}
}

// NewOcclusionIndex indexes cubes by position. When two cubes share a
// position the later one wins.
func NewOcclusionIndex(cubes []*world.Cube) *OcclusionIndex {
	idx := &OcclusionIndex{
		cubes:  make(map[world.BlockPos]*world.Cube, len(cubes)),
		hidden: make(map[faceKey]struct{}),
	}
	for _, c := range cubes {
		idx.cubes[c.Pos] = c
	}
	return idx
}

// Len returns the number of indexed positions.
func (o *OcclusionIndex) Len() int {
	return len(o.cubes)
}

// At returns the cube at pos, or nil.
func (o *OcclusionIndex) At(pos world.BlockPos) *world.Cube {
	return o.cubes[pos]
}

// Exposed reports whether face f of c can be seen past its neighbor.
// A neighbor hides the face when it has the same block type or is opaque,
// so water next to water merges while stone behind water still shows.
// Once hidden, a face stays hidden for the rest of the pass.
func (o *OcclusionIndex) Exposed(c *world.Cube, f world.Face) bool {
	key := faceKey{c.Pos, f}
	if _, ok := o.hidden[key]; ok {
		return false
	}

	n, ok := o.cubes[c.Pos.Neighbor(f)]
	if !ok {
		return true
	}
	if n.Block == c.Block || n.Block.IsOpaque() {
		o.hidden[key] = struct{}{}
		return false
	}
	return true
}

// Visible combines the occlusion and orientation tests.
func (o *OcclusionIndex) Visible(c *world.Cube, f world.Face, eye mgl64.Vec3) bool {
	return o.Exposed(c, f) && IsFrontFacing(c, f, eye)
}
