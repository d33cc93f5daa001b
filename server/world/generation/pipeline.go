package generation

import "fmt"

// Pipeline is the assembled, seed-bound composition Biome -> Height -> Composition -> Structures* ->
// Finishers*. A Pipeline is immutable once built: its stages are never reassigned while it is in use, and
// its seed never changes. A *Pipeline is safe for concurrent use — GenerateBiomes/BiomeAt may be called
// from any goroutine while the worker is running Generate on another.
type Pipeline struct {
	seed int32

	biomeGen       BiomeGen
	heightGen      TerrainHeightGen
	compositionGen TerrainCompositionGen
	structureGens  []StructureGen
	finishGens     []FinishGen
}

// NewPipeline parses conf and instantiates the named concrete stage implementations, wiring cross-stage
// dependencies at construction time: the HeightGen is constructed with a reference to the BiomeGen, and
// the CompositionGen with references to both. An unknown selector anywhere in conf aborts construction
// with an *InvalidConfigError.
func NewPipeline(conf PipelineConfig) (*Pipeline, error) {
	seed := conf.Seed

	biomeGen, err := resolveBiomeGen("biome_gen", conf.BiomeGen, seed)
	if err != nil {
		return nil, err
	}
	heightGen, err := resolveHeightGen("height_gen", conf.HeightGen, seed, biomeGen)
	if err != nil {
		return nil, err
	}
	compositionGen, err := resolveCompositionGen("composition_gen", conf.CompositionGen, seed, biomeGen, heightGen)
	if err != nil {
		return nil, err
	}

	structureGens := make([]StructureGen, 0, len(conf.Structures))
	for i, selector := range conf.Structures {
		g, err := resolveStructureGen(fmt.Sprintf("structures[%d]", i), selector, seed, biomeGen, heightGen)
		if err != nil {
			return nil, err
		}
		structureGens = append(structureGens, g)
	}

	finishGens := make([]FinishGen, 0, len(conf.Finishers))
	for i, selector := range conf.Finishers {
		g, err := resolveFinishGen(fmt.Sprintf("finishers[%d]", i), selector, seed, biomeGen, heightGen)
		if err != nil {
			return nil, err
		}
		finishGens = append(finishGens, g)
	}

	return &Pipeline{
		seed:           seed,
		biomeGen:       biomeGen,
		heightGen:      heightGen,
		compositionGen: compositionGen,
		structureGens:  structureGens,
		finishGens:     finishGens,
	}, nil
}

// Seed returns the seed the Pipeline was built with.
func (p *Pipeline) Seed() int32 { return p.seed }

// Generate runs every stage of the pipeline in the fixed order for the chunk at (chunkX, chunkZ) and
// returns the composed Result. If any stage faults — returns abnormally via panic, since the stage
// interfaces themselves carry no error return — Generate recovers it and returns a *StageFaultError
// instead of a partial Result.
func (p *Pipeline) Generate(chunkX, chunkZ int32) (result Result, err error) {
	pos := ChunkPos{chunkX, chunkZ}
	stage := "biome"
	defer func() {
		if r := recover(); r != nil {
			err = &StageFaultError{Stage: stage, Pos: pos, Cause: panicToError(r)}
		}
	}()

	biomes := p.biomeGen.GenBiomes(chunkX, chunkZ)
	stage = "height"
	heights := p.heightGen.GenHeightMap(chunkX, chunkZ)
	stage = "composition"
	blocks, metas, entities, blockEntities := p.compositionGen.ComposeTerrain(chunkX, chunkZ, heights)

	stage = "structures"
	for _, s := range p.structureGens {
		s.GenStructures(chunkX, chunkZ, &blocks, &metas, &heights, &entities, &blockEntities)
	}
	stage = "finishers"
	for _, f := range p.finishGens {
		f.GenFinish(chunkX, chunkZ, &blocks, &metas, &heights, biomes, &entities, &blockEntities)
	}

	return Result{
		Blocks:        blocks,
		Metas:         metas,
		Heights:       heights,
		Biomes:        biomes,
		Entities:      entities,
		BlockEntities: blockEntities,
	}, nil
}

// GenerateBiomes invokes the Pipeline's BiomeGen synchronously on the caller's goroutine, bypassing the
// request queue entirely. It is safe to call concurrently with itself and with the worker's own use of
// the same BiomeGen, provided the BiomeGen is itself safe for concurrent use.
func (p *Pipeline) GenerateBiomes(chunkX, chunkZ int32) BiomeMap {
	return p.biomeGen.GenBiomes(chunkX, chunkZ)
}

// BiomeAt converts a world-block column (blockX, blockZ) to its chunk position, generates that chunk's
// BiomeMap, and returns the biome of the specific column.
func (p *Pipeline) BiomeAt(blockX, blockZ int) Biome {
	chunkX, chunkZ := int32(blockX>>4), int32(blockZ>>4)
	localX, localZ := blockX&(ChunkWidth-1), blockZ&(ChunkWidth-1)
	biomes := p.GenerateBiomes(chunkX, chunkZ)
	return biomes.At(localX, localZ)
}

// panicToError normalises a recovered panic value into an error.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
