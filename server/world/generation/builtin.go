package generation

import (
	"fmt"
	"strconv"

	"github.com/LGLsign/cuberite/server/internal"
)

// seaLevel is the highest y value up to which BiomeOcean columns are filled with water rather than left as air.
const seaLevel = 62

func init() {
	RegisterBiomeGen("constant", newConstantBiomeGen)
	RegisterBiomeGen("checkerboard", newCheckerboardBiomeGen)

	RegisterHeightGen("flat", newFlatHeightGen)
	RegisterHeightGen("hilly", newHillyHeightGen)

	RegisterCompositionGen("classic", newClassicCompositionGen)

	RegisterStructureGen("ore", newOreStructureGen)

	RegisterFinishGen("snow", newSnowFinishGen)
	RegisterFinishGen("single-flower", newSingleFlowerFinishGen)
}

// biomeNames maps the lower-case names selectors may use to the Biome they resolve to.
var biomeNames = map[string]Biome{
	"ocean":     BiomeOcean,
	"plains":    BiomePlains,
	"desert":    BiomeDesert,
	"forest":    BiomeForest,
	"taiga":     BiomeTaiga,
	"swamp":     BiomeSwamp,
	"mountains": BiomeMountains,
	"tundra":    BiomeTundra,
}

func parseBiome(name string) (Biome, error) {
	b, ok := biomeNames[normaliseSelector(name)]
	if !ok {
		return 0, fmt.Errorf("unknown biome %q", name)
	}
	return b, nil
}

// ConstantBiomeGen assigns the same Biome to every column of every chunk. Selector: "constant:<biome>".
type ConstantBiomeGen struct{ biome Biome }

func newConstantBiomeGen(_ int32, args []string) (BiomeGen, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("constant biome generator requires exactly one argument, e.g. constant:plains")
	}
	b, err := parseBiome(args[0])
	if err != nil {
		return nil, err
	}
	return ConstantBiomeGen{biome: b}, nil
}

// GenBiomes ...
func (g ConstantBiomeGen) GenBiomes(int32, int32) BiomeMap {
	var m BiomeMap
	for i := range m {
		m[i] = g.biome
	}
	return m
}

// CheckerboardBiomeGen alternates between two biomes by chunk parity: (chunkX+chunkZ) even picks the
// first, odd picks the second. Selector: "checkerboard:<biomeA>:<biomeB>".
type CheckerboardBiomeGen struct{ a, b Biome }

func newCheckerboardBiomeGen(_ int32, args []string) (BiomeGen, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("checkerboard biome generator requires exactly two arguments, e.g. checkerboard:plains:desert")
	}
	a, err := parseBiome(args[0])
	if err != nil {
		return nil, err
	}
	b, err := parseBiome(args[1])
	if err != nil {
		return nil, err
	}
	return CheckerboardBiomeGen{a: a, b: b}, nil
}

// GenBiomes ...
func (g CheckerboardBiomeGen) GenBiomes(chunkX, chunkZ int32) BiomeMap {
	biome := g.a
	if (chunkX+chunkZ)&1 != 0 {
		biome = g.b
	}
	var m BiomeMap
	for i := range m {
		m[i] = biome
	}
	return m
}

// FlatHeightGen returns the same height for every column. Selector: "flat:<height>".
type FlatHeightGen struct{ height int16 }

func newFlatHeightGen(_ int32, args []string, _ BiomeGen) (TerrainHeightGen, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("flat height generator requires exactly one argument, e.g. flat:64")
	}
	h, err := strconv.Atoi(args[0])
	if err != nil || h < 0 || h >= ChunkHeight {
		return nil, fmt.Errorf("flat height generator: invalid height %q", args[0])
	}
	return FlatHeightGen{height: int16(h)}, nil
}

// GenHeightMap ...
func (g FlatHeightGen) GenHeightMap(int32, int32) HeightMap {
	var m HeightMap
	for i := range m {
		m[i] = g.height
	}
	return m
}

// HillyHeightGen derives a seeded per-column height from a base and amplitude that depend on the column's
// biome, smoothed by averaging each column with the same column of the eight surrounding chunks (a 3x3
// block of chunks centred on the target). Selector: "hilly".
//
// HillyHeightGen caches the (unaveraged) per-chunk height it previously computed, guarded by a
// RecursivePanicMutex. The lock is held only around cache reads and writes, never while a height map is
// being computed. The cache is purely an optimisation: GenHeightMap always returns the same values whether
// or not the cache is warm.
type HillyHeightGen struct {
	seed   int32
	biomes BiomeGen

	mu    internal.RecursivePanicMutex
	cache map[ChunkPos]HeightMap
}

func newHillyHeightGen(seed int32, _ []string, biomes BiomeGen) (TerrainHeightGen, error) {
	return &HillyHeightGen{seed: seed, biomes: biomes, cache: map[ChunkPos]HeightMap{}}, nil
}

// rawHeightMap computes this generator's height map for one chunk, without any neighbour averaging,
// consulting the cache first.
func (g *HillyHeightGen) rawHeightMap(chunkX, chunkZ int32) HeightMap {
	pos := ChunkPos{chunkX, chunkZ}

	g.mu.Lock()
	if m, ok := g.cache[pos]; ok {
		g.mu.Unlock()
		return m
	}
	g.mu.Unlock()

	biomes := g.biomes.GenBiomes(chunkX, chunkZ)
	r := chunkRand(g.seed, chunkX, chunkZ, 0x4845_4947)

	var m HeightMap
	for x := 0; x < ChunkWidth; x++ {
		for z := 0; z < ChunkWidth; z++ {
			base, amplitude := biomeHeightProfile(biomes.At(x, z))
			m.Set(x, z, int16(base+r.Intn(amplitude+1)))
		}
	}

	g.mu.Lock()
	g.cache[pos] = m
	g.mu.Unlock()
	return m
}

// GenHeightMap ...
func (g *HillyHeightGen) GenHeightMap(chunkX, chunkZ int32) HeightMap {
	var sum [ChunkWidth * ChunkWidth]int32
	var count [ChunkWidth * ChunkWidth]int32

	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			neighbour := g.rawHeightMap(chunkX+dx, chunkZ+dz)
			for i, h := range neighbour {
				sum[i] += int32(h)
				count[i]++
			}
		}
	}

	var m HeightMap
	for i := range m {
		m[i] = int16(sum[i] / count[i])
	}
	return m
}

// biomeHeightProfile returns the base height and additional random amplitude a biome should generate.
func biomeHeightProfile(b Biome) (base, amplitude int) {
	switch b {
	case BiomeOcean:
		return seaLevel - 12, 6
	case BiomeDesert:
		return 64, 5
	case BiomeMountains:
		return 80, 40
	case BiomeSwamp:
		return 60, 2
	case BiomeTaiga, BiomeTundra:
		return 68, 12
	case BiomeForest:
		return 66, 10
	default:
		return 64, 8
	}
}

// ClassicCompositionGen lays stone from bedrock up to the column's surface height, a single
// biome-appropriate surface block at the surface, and air above it (water instead, up to sea level, for
// ocean columns). Selector: "classic".
type ClassicCompositionGen struct {
	biomes BiomeGen
}

func newClassicCompositionGen(_ int32, _ []string, biomes BiomeGen, _ TerrainHeightGen) (TerrainCompositionGen, error) {
	return ClassicCompositionGen{biomes: biomes}, nil
}

// ComposeTerrain ...
func (g ClassicCompositionGen) ComposeTerrain(chunkX, chunkZ int32, heights HeightMap) (BlockTypes, BlockNibbles, EntityList, BlockEntityList) {
	biomes := g.biomes.GenBiomes(chunkX, chunkZ)

	var blocks BlockTypes
	var metas BlockNibbles

	for x := 0; x < ChunkWidth; x++ {
		for z := 0; z < ChunkWidth; z++ {
			h := int(heights.At(x, z))
			top := surfaceBlock(biomes.At(x, z))
			isOcean := biomes.At(x, z) == BiomeOcean

			for y := 0; y < ChunkHeight; y++ {
				switch {
				case y < h:
					blocks.Set(x, y, z, BlockStone)
				case y == h:
					blocks.Set(x, y, z, top)
				case isOcean && y <= seaLevel:
					blocks.Set(x, y, z, BlockWater)
				default:
					blocks.Set(x, y, z, BlockAir)
				}
			}
		}
	}
	return blocks, metas, nil, nil
}

// surfaceBlock returns the single block placed at the column's surface height for a biome.
func surfaceBlock(b Biome) byte {
	switch b {
	case BiomeDesert:
		return BlockSand
	case BiomeOcean:
		return BlockSand
	case BiomeSwamp:
		return BlockDirt
	default:
		return BlockGrass
	}
}

// OreStructureGen places seeded vein pockets of a single block type underground. Ores are modelled as
// structure generators, since they place a bounded, self-contained feature after terrain composition but
// before cosmetic finishers run. Selector: "ore:<block>:<veins-per-chunk>".
type OreStructureGen struct {
	seed          int32
	block         byte
	veinsPerChunk int
	salt          int64
}

// oreBlockNames maps the selector's block argument to the byte it places.
var oreBlockNames = map[string]byte{
	"coal":    BlockCoalOre,
	"iron":    BlockIronOre,
	"gold":    BlockGoldOre,
	"diamond": BlockDiamondOre,
}

func newOreStructureGen(seed int32, args []string, _ BiomeGen, _ TerrainHeightGen) (StructureGen, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("ore structure generator requires exactly two arguments, e.g. ore:coal:20")
	}
	block, ok := oreBlockNames[normaliseSelector(args[0])]
	if !ok {
		return nil, fmt.Errorf("ore structure generator: unknown ore %q", args[0])
	}
	veins, err := strconv.Atoi(args[1])
	if err != nil || veins < 0 {
		return nil, fmt.Errorf("ore structure generator: invalid vein count %q", args[1])
	}
	// Salt the per-chunk RNG distinctly for each ore type so that two ore generators in the same pipeline
	// never draw from the same stream of random numbers.
	salt := int64(0)
	for _, c := range args[0] {
		salt = salt*31 + int64(c)
	}
	return OreStructureGen{seed: seed, block: block, veinsPerChunk: veins, salt: salt}, nil
}

// GenStructures ...
func (g OreStructureGen) GenStructures(chunkX, chunkZ int32, blocks *BlockTypes, _ *BlockNibbles, heights *HeightMap, _ *EntityList, _ *BlockEntityList) {
	r := chunkRand(g.seed, chunkX, chunkZ, g.salt)
	for i := 0; i < g.veinsPerChunk; i++ {
		cx, cz := r.Intn(ChunkWidth), r.Intn(ChunkWidth)
		ceiling := int(heights.At(cx, cz))
		if ceiling <= 4 {
			continue
		}
		cy := 4 + r.Intn(ceiling-4)
		veinSize := 1 + r.Intn(6)
		x, y, z := cx, cy, cz
		for j := 0; j < veinSize; j++ {
			if x < 0 || x >= ChunkWidth || z < 0 || z >= ChunkWidth || y < 0 || y >= ChunkHeight {
				break
			}
			if blocks.At(x, y, z) == BlockStone {
				blocks.Set(x, y, z, g.block)
			}
			x += r.Intn(3) - 1
			y += r.Intn(3) - 1
			z += r.Intn(3) - 1
		}
	}
}

// SnowFinishGen caps the surface of cold biomes with a single layer of snow. Selector: "snow".
type SnowFinishGen struct{}

func newSnowFinishGen(int32, []string, BiomeGen, TerrainHeightGen) (FinishGen, error) {
	return SnowFinishGen{}, nil
}

// GenFinish ...
func (SnowFinishGen) GenFinish(_, _ int32, blocks *BlockTypes, _ *BlockNibbles, heights *HeightMap, biomes BiomeMap, _ *EntityList, _ *BlockEntityList) {
	for x := 0; x < ChunkWidth; x++ {
		for z := 0; z < ChunkWidth; z++ {
			switch biomes.At(x, z) {
			case BiomeTaiga, BiomeTundra, BiomeMountains:
			default:
				continue
			}
			h := int(heights.At(x, z))
			if h+1 >= ChunkHeight {
				continue
			}
			if blocks.At(x, h, z) == BlockAir || blocks.At(x, h, z) == BlockWater {
				continue
			}
			blocks.Set(x, h+1, z, BlockSnow)
			heights.Set(x, z, int16(h+1))
		}
	}
}

// SingleFlowerFinishGen sparsely places single flowers on grass columns. Selector:
// "single-flower:<chance-per-1000>".
type SingleFlowerFinishGen struct {
	seed          int32
	chancePer1000 int
}

func newSingleFlowerFinishGen(seed int32, args []string, _ BiomeGen, _ TerrainHeightGen) (FinishGen, error) {
	chance := 8
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 || v > 1000 {
			return nil, fmt.Errorf("single-flower finish generator: invalid chance %q", args[0])
		}
		chance = v
	}
	return SingleFlowerFinishGen{seed: seed, chancePer1000: chance}, nil
}

// GenFinish ...
func (g SingleFlowerFinishGen) GenFinish(chunkX, chunkZ int32, blocks *BlockTypes, _ *BlockNibbles, heights *HeightMap, biomes BiomeMap, _ *EntityList, _ *BlockEntityList) {
	r := chunkRand(g.seed, chunkX, chunkZ, 0x464C_4F57)
	for x := 0; x < ChunkWidth; x++ {
		for z := 0; z < ChunkWidth; z++ {
			if biomes.At(x, z) != BiomePlains && biomes.At(x, z) != BiomeForest {
				continue
			}
			if r.Intn(1000) >= g.chancePer1000 {
				continue
			}
			h := int(heights.At(x, z))
			if blocks.At(x, h, z) != BlockGrass || h+1 >= ChunkHeight {
				continue
			}
			blocks.Set(x, h+1, z, BlockFlower)
		}
	}
}
