package generation

// Block type bytes used by the builtin stages. These intentionally stay a small, stable numeric set
// rather than the full modern block-state palette, since block registration is out of this package's
// scope.
const (
	BlockAir        byte = 0
	BlockStone      byte = 1
	BlockGrass      byte = 2
	BlockDirt       byte = 3
	BlockSand       byte = 4
	BlockSandstone  byte = 5
	BlockWater      byte = 6
	BlockSnow       byte = 7
	BlockCoalOre    byte = 8
	BlockIronOre    byte = 9
	BlockGoldOre    byte = 10
	BlockDiamondOre byte = 11
	BlockFlower     byte = 12
	BlockIce        byte = 13
)
