package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChunkCoord identifies a chunk column on the horizontal plane.
type ChunkCoord struct {
	X, Y int
}

// Center returns the world-space center of the chunk on the ground plane.
func (c ChunkCoord) Center(size int) mgl64.Vec3 {
	half := float64(size) / 2
	return mgl64.Vec3{float64(c.X*size) + half, float64(c.Y*size) + half, 0}
}

// Corners returns the four ground-plane corners of the chunk.
func (c ChunkCoord) Corners(size int) [4]mgl64.Vec3 {
	x0 := float64(c.X * size)
	y0 := float64(c.Y * size)
	x1 := x0 + float64(size)
	y1 := y0 + float64(size)
	return [4]mgl64.Vec3{
		{x0, y0, 0},
		{x1, y0, 0},
		{x1, y1, 0},
		{x0, y1, 0},
	}
}

// ChunkCoordOf returns the chunk containing world point (x, y).
func ChunkCoordOf(x, y float64, size int) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(int(math.Floor(x)), size),
		Y: floorDiv(int(math.Floor(y)), size),
	}
}

// Chunk is a size x size column of cubes covering every generated height.
type Chunk struct {
	Coord ChunkCoord
	Size  int
	Cubes []*Cube
}

// NewChunk creates an empty chunk at the specified chunk coordinates.
func NewChunk(cx, cy, size int) *Chunk {
	return &Chunk{
		Coord: ChunkCoord{X: cx, Y: cy},
		Size:  size,
		Cubes: make([]*Cube, 0, size*size),
	}
}

// Add appends a cube of the given block at pos.
func (c *Chunk) Add(pos BlockPos, block BlockType) {
	c.Cubes = append(c.Cubes, NewCube(pos, block))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
