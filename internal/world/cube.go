package world

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockPos is the integer origin corner of one voxel.
type BlockPos struct {
	X, Y, Z int
}

// Add returns p translated by o.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Neighbor returns the position adjacent to p across face f.
func (p BlockPos) Neighbor(f Face) BlockPos {
	return p.Add(faceDirections[f])
}

// Vec3 converts p to a world-space point.
func (p BlockPos) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Face identifies one of the six quads of a cube.
type Face int

const (
	FaceFront Face = iota // +y
	FaceLeft              // -x
	FaceBack              // -y
	FaceRight             // +x
	FaceUp                // +z
	FaceDown              // -z

	FaceCount
)

var faceNames = [FaceCount]string{"front", "left", "back", "right", "up", "down"}

func (f Face) String() string {
	if f >= 0 && f < FaceCount {
		return faceNames[f]
	}
	return "invalid"
}

var faceDirections = [FaceCount]BlockPos{
	FaceFront: {0, 1, 0},
	FaceLeft:  {-1, 0, 0},
	FaceBack:  {0, -1, 0},
	FaceRight: {1, 0, 0},
	FaceUp:    {0, 0, 1},
	FaceDown:  {0, 0, -1},
}

// Direction returns the unit offset toward the neighbor behind face f.
func (f Face) Direction() BlockPos {
	return faceDirections[f]
}

// Cube template. Faces are wound so that (p1-p0)x(p2-p0) points outward.
var (
	cubeCorners = [8]mgl64.Vec3{
		{1, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 1},
		{0, 1, 1},
		{0, 0, 1},
		{1, 0, 1},
	}

	cubeEdges = [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	cubeFaces = [FaceCount][4]int{
		FaceFront: {0, 1, 5, 4},
		FaceLeft:  {1, 2, 6, 5},
		FaceBack:  {2, 3, 7, 6},
		FaceRight: {3, 0, 4, 7},
		FaceUp:    {4, 5, 6, 7},
		FaceDown:  {0, 3, 2, 1},
	}
)

// Cube is one voxel instance. It is owned by the chunk that generated it.
type Cube struct {
	Pos    BlockPos
	Points [8]mgl64.Vec3
	Block  BlockType
}

// NewCube places the template at pos.
func NewCube(pos BlockPos, block BlockType) *Cube {
	c := &Cube{Pos: pos, Block: block}
	origin := pos.Vec3()
	for i, off := range cubeCorners {
		c.Points[i] = origin.Add(off)
	}
	return c
}

// Edges returns the corner index pairs of the 12 edges.
func (c *Cube) Edges() [12][2]int {
	return cubeEdges
}

// Faces returns the corner indices of all six faces, indexed by Face.
func (c *Cube) Faces() [FaceCount][4]int {
	return cubeFaces
}

// Color is the fill color of the cube's block.
func (c *Cube) Color() color.NRGBA {
	return c.Block.Color()
}

// FaceIndices returns the 4 corner indices of face f.
func (c *Cube) FaceIndices(f Face) [4]int {
	return cubeFaces[f]
}

// FacePoints returns the 4 world-space corners of face f in winding order.
func (c *Cube) FacePoints(f Face) [4]mgl64.Vec3 {
	idx := cubeFaces[f]
	return [4]mgl64.Vec3{c.Points[idx[0]], c.Points[idx[1]], c.Points[idx[2]], c.Points[idx[3]]}
}

// Center returns the middle of the cube.
func (c *Cube) Center() mgl64.Vec3 {
	return c.Pos.Vec3().Add(mgl64.Vec3{0.5, 0.5, 0.5})
}
