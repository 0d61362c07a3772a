package world

import "image/color"

type BlockType uint8

const (
	BlockTypeGrass BlockType = iota
	BlockTypeDirt
	BlockTypeStone
	BlockTypeSand
	BlockTypeWater
	BlockTypeWood
	BlockTypeLeaves
)

// Terrain bands and sea level. The beach band starts exactly at the water
// line, so SandLevel is tied to WaterLevel.
const (
	WaterLevel = -3
	GrassLevel = -2
	SandLevel  = WaterLevel
	DirtLevel  = -5
)

var blockNames = [...]string{
	BlockTypeGrass:  "grass",
	BlockTypeDirt:   "dirt",
	BlockTypeStone:  "stone",
	BlockTypeSand:   "sand",
	BlockTypeWater:  "water",
	BlockTypeWood:   "wood",
	BlockTypeLeaves: "leaves",
}

func (b BlockType) String() string {
	if int(b) < len(blockNames) {
		return blockNames[b]
	}
	return "unknown"
}

// Color returns the non-premultiplied fill color for a block.
func (b BlockType) Color() color.NRGBA {
	switch b {
	case BlockTypeGrass:
		return color.NRGBA{34, 139, 34, 255}
	case BlockTypeDirt:
		return color.NRGBA{139, 69, 19, 255}
	case BlockTypeStone:
		return color.NRGBA{128, 128, 128, 255}
	case BlockTypeSand:
		return color.NRGBA{194, 178, 128, 255}
	case BlockTypeWater:
		return color.NRGBA{64, 128, 224, 140}
	case BlockTypeWood:
		return color.NRGBA{101, 67, 33, 255}
	case BlockTypeLeaves:
		return color.NRGBA{46, 110, 38, 255}
	default:
		return color.NRGBA{255, 255, 255, 255} // White (fallback)
	}
}

// IsOpaque reports whether the block fully hides what is behind it.
func (b BlockType) IsOpaque() bool {
	return b.Color().A == 255
}

// BlockAt classifies a terrain column by its surface height.
// Bands are inclusive on the lower bound and checked top down.
func BlockAt(height int) BlockType {
	switch {
	case height >= GrassLevel:
		return BlockTypeGrass
	case height >= SandLevel:
		return BlockTypeSand
	case height >= DirtLevel:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}
