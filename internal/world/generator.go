package world

import "math"

// ChunkGenerator builds the contents of one chunk column.
type ChunkGenerator interface {
	Generate(cx, cy, size int) *Chunk
	HeightAt(worldX, worldY int) int
}

// Tree shape and placement.
const (
	TrunkHeight   = 4
	TreeThreshold = 0.1
	treeScale     = 0.61
	treeOffset    = 0.37
)

// leafOffsets is the canopy: center, four cardinals and one on top.
var leafOffsets = [6]BlockPos{
	{0, 0, 0},
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
}

// Generator handles terrain generation logic.
type Generator struct {
	seed  int64
	noise NoiseSource
	scale float64
	amp   float64
}

// NewGenerator creates a generator with default settings around noise.
// seed also drives tree placement inside a chunk.
func NewGenerator(seed int64, noise NoiseSource) *Generator {
	return &Generator{
		seed:  seed,
		noise: noise,
		scale: 1.0 / 24.0,
		amp:   8,
	}
}

// HeightAt computes the surface height (block Z) of world column (x, y).
// Three octaves: amp at scale, amp/2 at 2*scale, amp/4 at 4*scale.
func (g *Generator) HeightAt(worldX, worldY int) int {
	x := float64(worldX)
	y := float64(worldY)
	s := g.scale
	h := g.amp*g.noise.Noise(x*s, y*s, 0) +
		g.amp/2*g.noise.Noise(x*2*s, y*2*s, 0) +
		g.amp/4*g.noise.Noise(x*4*s, y*4*s, 0)
	return int(math.Floor(h))
}

// ShouldPlaceTree decides at chunk granularity whether (cx, cy) gets a tree.
// The sample is shifted off the lattice, where gradient noise is always zero.
func (g *Generator) ShouldPlaceTree(cx, cy int) bool {
	n := g.noise.Noise(float64(cx)*treeScale+treeOffset, float64(cy)*treeScale+treeOffset, 0)
	return n > TreeThreshold
}

// TreePositionInChunk picks the one local column of chunk (cx, cy) that may
// hold a tree.
func (g *Generator) TreePositionInChunk(cx, cy, size int) (int, int) {
	s := float64(cx*7919+cy*104729) + float64(g.seed)
	x := int(math.Floor(seededRandom(s) * float64(size)))
	y := int(math.Floor(seededRandom(s+1) * float64(size)))
	return min(x, size-1), min(y, size-1)
}

// Generate builds chunk (cx, cy): one surface cube per column, water up to
// the sea line over low columns, and at most one tree.
func (g *Generator) Generate(cx, cy, size int) *Chunk {
	c := NewChunk(cx, cy, size)
	for xb := range size {
		for yb := range size {
			worldX := cx*size + xb
			worldY := cy*size + yb
			height := g.HeightAt(worldX, worldY)
			c.Add(BlockPos{worldX, worldY, height}, BlockAt(height))

			for z := height + 1; z <= WaterLevel; z++ {
				c.Add(BlockPos{worldX, worldY, z}, BlockTypeWater)
			}
		}
	}

	if g.ShouldPlaceTree(cx, cy) {
		tx, ty := g.TreePositionInChunk(cx, cy, size)
		worldX := cx*size + tx
		worldY := cy*size + ty
		height := g.HeightAt(worldX, worldY)
		if BlockAt(height) == BlockTypeGrass {
			placeTree(c, BlockPos{worldX, worldY, height + 1})
		}
	}
	return c
}

// placeTree stacks the trunk from base and puts the canopy one unit above it.
func placeTree(c *Chunk, base BlockPos) {
	for i := range TrunkHeight {
		c.Add(BlockPos{base.X, base.Y, base.Z + i}, BlockTypeWood)
	}
	canopy := BlockPos{base.X, base.Y, base.Z + TrunkHeight}
	for _, off := range leafOffsets {
		c.Add(canopy.Add(off), BlockTypeLeaves)
	}
}

// FlatGenerator produces a plain at a single height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat world at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

// HeightAt returns the fixed plain height.
func (g *FlatGenerator) HeightAt(worldX, worldY int) int {
	return g.height
}

// Generate fills every column of the chunk with one surface cube.
func (g *FlatGenerator) Generate(cx, cy, size int) *Chunk {
	c := NewChunk(cx, cy, size)
	block := BlockAt(g.height)
	for xb := range size {
		for yb := range size {
			c.Add(BlockPos{cx*size + xb, cy*size + yb, g.height}, block)
		}
	}
	return c
}
