package generation

// BiomeGen assigns a Biome tag to every column of a chunk. Implementations must be pure functions of
// (seed, chunk_x, chunk_z): no wall-clock, goroutine id, or global RNG state may influence the output.
// GenBiomes must be re-entrant — the pipeline may call it for different coordinates concurrently, from
// the worker goroutine and from GenerateBiomes/BiomeAt callers at the same time.
type BiomeGen interface {
	GenBiomes(chunkX, chunkZ int32) BiomeMap
}

// TerrainHeightGen produces a HeightMap for a chunk. It may consult its associated BiomeGen for the
// target chunk or neighbouring chunks, typically to average height across a biome boundary. Like
// BiomeGen, it must remain a pure function of (seed, coords); an implementation that caches neighbour
// biome lookups must produce identical output to an uncached one and must guard the cache itself (see
// internal.RecursivePanicMutex).
type TerrainHeightGen interface {
	GenHeightMap(chunkX, chunkZ int32) HeightMap
}

// TerrainCompositionGen turns a HeightMap into actual block data. It must initialise every cell of the
// returned BlockTypes and BlockNibbles, air included — no cell may be left undefined. It may query the
// HeightGen or BiomeGen for neighbouring chunks.
type TerrainCompositionGen interface {
	ComposeTerrain(chunkX, chunkZ int32, heights HeightMap) (BlockTypes, BlockNibbles, EntityList, BlockEntityList)
}

// StructureGen reads and mutates the block data, height map, and entity lists of a chunk after terrain
// composition has taken place. Ores are modelled as structure generators. A pipeline may hold several
// StructureGens; the configured order in which they run is part of the deterministic contract and must
// never be reordered at runtime.
type StructureGen interface {
	GenStructures(chunkX, chunkZ int32, blocks *BlockTypes, metas *BlockNibbles, heights *HeightMap, entities *EntityList, blockEntities *BlockEntityList)
}

// FinishGen runs after every StructureGen has run and adds small cosmetic touches (snow caps, flowers,
// grass tufts). It receives an immutable view of the BiomeMap so it can make biome-appropriate choices,
// but like StructureGen it may mutate blocks, metas, heights and the entity lists.
type FinishGen interface {
	GenFinish(chunkX, chunkZ int32, blocks *BlockTypes, metas *BlockNibbles, heights *HeightMap, biomes BiomeMap, entities *EntityList, blockEntities *BlockEntityList)
}

// NopBiomeGen is a BiomeGen that assigns BiomeOcean to every column. It is useful as a placeholder when
// assembling a partial pipeline, e.g. in tests that don't care about biomes.
type NopBiomeGen struct{}

// GenBiomes ...
func (NopBiomeGen) GenBiomes(int32, int32) BiomeMap { return BiomeMap{} }

// NopHeightGen is a TerrainHeightGen that returns a HeightMap of all zeroes.
type NopHeightGen struct{}

// GenHeightMap ...
func (NopHeightGen) GenHeightMap(int32, int32) HeightMap { return HeightMap{} }

// NopCompositionGen is a TerrainCompositionGen that leaves every block as air.
type NopCompositionGen struct{}

// ComposeTerrain ...
func (NopCompositionGen) ComposeTerrain(int32, int32, HeightMap) (BlockTypes, BlockNibbles, EntityList, BlockEntityList) {
	return BlockTypes{}, BlockNibbles{}, nil, nil
}

// Store is the contract the generator requires of its owning world: a read-only query of whether a chunk
// already exists in storage or has any interested client, and a sink to hand finished chunks off to.
// All three methods must be safe to call from the worker goroutine concurrently with any other goroutine
// the owning world runs.
type Store interface {
	// IsChunkAvailable reports whether the chunk at pos is already persisted or loaded, meaning the
	// generator should not regenerate it.
	IsChunkAvailable(pos ChunkPos) bool
	// AnyClientWithinView reports whether at least one client currently has pos within its view distance.
	AnyClientWithinView(pos ChunkPos) bool
	// DeliverChunk hands a completed Result off to the store. The call happens on the worker goroutine and
	// must not block for long; queuing for persistence is the store's own responsibility.
	DeliverChunk(pos ChunkPos, result Result)
}
