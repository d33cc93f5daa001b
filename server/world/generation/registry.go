package generation

import (
	"fmt"
	"strings"
)

// BiomeGenFactory builds a BiomeGen from the arguments that followed the selector's name, e.g. for
// "constant:plains" args is ["plains"].
type BiomeGenFactory func(seed int32, args []string) (BiomeGen, error)

// HeightGenFactory builds a TerrainHeightGen, wired to the BiomeGen the pipeline already constructed.
type HeightGenFactory func(seed int32, args []string, biomes BiomeGen) (TerrainHeightGen, error)

// CompositionGenFactory builds a TerrainCompositionGen, wired to the pipeline's BiomeGen and HeightGen.
type CompositionGenFactory func(seed int32, args []string, biomes BiomeGen, heights TerrainHeightGen) (TerrainCompositionGen, error)

// StructureGenFactory builds a StructureGen.
type StructureGenFactory func(seed int32, args []string, biomes BiomeGen, heights TerrainHeightGen) (StructureGen, error)

// FinishGenFactory builds a FinishGen.
type FinishGenFactory func(seed int32, args []string, biomes BiomeGen, heights TerrainHeightGen) (FinishGen, error)

var (
	biomeGens       = map[string]BiomeGenFactory{}
	heightGens      = map[string]HeightGenFactory{}
	compositionGens = map[string]CompositionGenFactory{}
	structureGens   = map[string]StructureGenFactory{}
	finishGens      = map[string]FinishGenFactory{}
)

// RegisterBiomeGen registers a BiomeGenFactory under name so that PipelineConfig.BiomeGen selectors of
// the form "name" or "name:arg:arg..." resolve to it. Registering under a name that is already
// registered replaces the previous factory.
func RegisterBiomeGen(name string, f BiomeGenFactory) { biomeGens[normaliseSelector(name)] = f }

// RegisterHeightGen registers a HeightGenFactory, see RegisterBiomeGen.
func RegisterHeightGen(name string, f HeightGenFactory) { heightGens[normaliseSelector(name)] = f }

// RegisterCompositionGen registers a CompositionGenFactory, see RegisterBiomeGen.
func RegisterCompositionGen(name string, f CompositionGenFactory) {
	compositionGens[normaliseSelector(name)] = f
}

// RegisterStructureGen registers a StructureGenFactory, see RegisterBiomeGen.
func RegisterStructureGen(name string, f StructureGenFactory) { structureGens[normaliseSelector(name)] = f }

// RegisterFinishGen registers a FinishGenFactory, see RegisterBiomeGen.
func RegisterFinishGen(name string, f FinishGenFactory) { finishGens[normaliseSelector(name)] = f }

// splitSelector splits a selector of the form "name:arg1:arg2" into its lower-cased name and the list of
// (not lower-cased) arguments.
func splitSelector(selector string) (name string, args []string) {
	parts := strings.Split(strings.TrimSpace(selector), ":")
	name = normaliseSelector(parts[0])
	if len(parts) > 1 {
		args = parts[1:]
	}
	return name, args
}

func resolveBiomeGen(option, selector string, seed int32) (BiomeGen, error) {
	name, args := splitSelector(selector)
	f, ok := biomeGens[name]
	if !ok {
		return nil, &InvalidConfigError{Option: option, Reason: fmt.Sprintf("unknown biome generator %q", name)}
	}
	g, err := f(seed, args)
	if err != nil {
		return nil, &InvalidConfigError{Option: option, Reason: err.Error()}
	}
	return g, nil
}

func resolveHeightGen(option, selector string, seed int32, biomes BiomeGen) (TerrainHeightGen, error) {
	name, args := splitSelector(selector)
	f, ok := heightGens[name]
	if !ok {
		return nil, &InvalidConfigError{Option: option, Reason: fmt.Sprintf("unknown height generator %q", name)}
	}
	g, err := f(seed, args, biomes)
	if err != nil {
		return nil, &InvalidConfigError{Option: option, Reason: err.Error()}
	}
	return g, nil
}

func resolveCompositionGen(option, selector string, seed int32, biomes BiomeGen, heights TerrainHeightGen) (TerrainCompositionGen, error) {
	name, args := splitSelector(selector)
	f, ok := compositionGens[name]
	if !ok {
		return nil, &InvalidConfigError{Option: option, Reason: fmt.Sprintf("unknown composition generator %q", name)}
	}
	g, err := f(seed, args, biomes, heights)
	if err != nil {
		return nil, &InvalidConfigError{Option: option, Reason: err.Error()}
	}
	return g, nil
}

func resolveStructureGen(option, selector string, seed int32, biomes BiomeGen, heights TerrainHeightGen) (StructureGen, error) {
	name, args := splitSelector(selector)
	f, ok := structureGens[name]
	if !ok {
		return nil, &InvalidConfigError{Option: option, Reason: fmt.Sprintf("unknown structure generator %q", name)}
	}
	g, err := f(seed, args, biomes, heights)
	if err != nil {
		return nil, &InvalidConfigError{Option: option, Reason: err.Error()}
	}
	return g, nil
}

func resolveFinishGen(option, selector string, seed int32, biomes BiomeGen, heights TerrainHeightGen) (FinishGen, error) {
	name, args := splitSelector(selector)
	f, ok := finishGens[name]
	if !ok {
		return nil, &InvalidConfigError{Option: option, Reason: fmt.Sprintf("unknown finish generator %q", name)}
	}
	g, err := f(seed, args, biomes, heights)
	if err != nil {
		return nil, &InvalidConfigError{Option: option, Reason: err.Error()}
	}
	return g, nil
}
