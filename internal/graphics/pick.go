package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/profiling"
	"voxview/internal/world"
)

const (
	pickStep        = 0.02
	MaxPickDistance = 8.0
)

// PickResult is the first cube hit by a ray.
type PickResult struct {
	Cube     *world.Cube
	Adjacent world.BlockPos // last empty cell before the hit
	Distance float64
	Hit      bool
}

// Pick marches a ray from start along dir and returns the first indexed
// cube it enters. Water is looked through.
func (o *OcclusionIndex) Pick(start, dir mgl64.Vec3, maxDist float64) PickResult {
	defer profiling.Track("graphics.Pick")()

	steps := int(maxDist / pickStep)
	last := cellOf(start)
	for i := 0; i <= steps; i++ {
		dist := float64(i) * pickStep
		pos := cellOf(start.Add(dir.Mul(dist)))
		if c := o.cubes[pos]; c != nil && c.Block != world.BlockTypeWater {
			return PickResult{Cube: c, Adjacent: last, Distance: dist, Hit: true}
		}
		last = pos
	}
	return PickResult{}
}

func cellOf(p mgl64.Vec3) world.BlockPos {
	return world.BlockPos{
		X: int(math.Floor(p[0])),
		Y: int(math.Floor(p[1])),
		Z: int(math.Floor(p[2])),
	}
}
