package world

import (
	"sync"

	"golang.org/x/exp/maps"

	"github.com/LGLsign/cuberite/server/world/generation"
)

// World is the minimal owner of a generation.ChunkGenerator: it tracks which chunks are already
// available (loaded or persisted) and which chunks currently have an interested client, and it receives
// finished chunks from the generator's worker. Everything else a full game server world would do —
// networking, persistence, entity simulation, the plugin host — is outside the scope of this package.
// World exists here only so the generation package's Store contract has a realistic, concrete
// implementation to be exercised against.
//
// A zero World is not ready to use; call NewWorld.
type World struct {
	mu sync.Mutex

	available map[generation.ChunkPos]struct{}
	viewers   map[generation.ChunkPos]int

	sink func(pos generation.ChunkPos, result generation.Result)

	gen *generation.ChunkGenerator
}

// NewWorld returns a World with nothing loaded and no viewers. sink is called once per chunk the
// generator finishes, on the generator's worker goroutine; it must not block for long.
func NewWorld(sink func(pos generation.ChunkPos, result generation.Result)) *World {
	return &World{
		available: map[generation.ChunkPos]struct{}{},
		viewers:   map[generation.ChunkPos]int{},
		sink:      sink,
	}
}

// Start assembles the generation pipeline described by conf and spawns its background worker, wiring the
// generator to this World as its Store. Start must be called at most once per World.
func (w *World) Start(conf generation.PipelineConfig, log generation.Logger) error {
	gen, err := generation.Start(w, conf, log)
	if err != nil {
		return err
	}
	w.gen = gen
	return nil
}

// Stop stops the background worker and discards any requests still pending. Safe to call more than
// once.
func (w *World) Stop() {
	if w.gen != nil {
		w.gen.Stop()
	}
}

// Generator returns the ChunkGenerator this World started, or nil if Start has not been called.
func (w *World) Generator() *generation.ChunkGenerator {
	return w.gen
}

// MarkAvailable records that the chunk at pos is already loaded or persisted, so that the generator will
// not attempt to regenerate it. It is typically called once by whatever loads a chunk from storage and
// finds it already exists.
func (w *World) MarkAvailable(pos generation.ChunkPos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.available[pos] = struct{}{}
}

// AddViewer registers one client as interested in the chunk at pos. RemoveViewer must be called an equal
// number of times to withdraw that interest.
func (w *World) AddViewer(pos generation.ChunkPos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.viewers[pos]++
}

// RemoveViewer withdraws one client's interest in the chunk at pos.
func (w *World) RemoveViewer(pos generation.ChunkPos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.viewers[pos] <= 1 {
		delete(w.viewers, pos)
		return
	}
	w.viewers[pos]--
}

// AddViewerAtBlock registers one client as interested in whichever chunk contains the block column (x,
// z), e.g. a player's current position. It is a convenience wrapper around AddViewer for callers that
// track positions in block space rather than chunk space.
func (w *World) AddViewerAtBlock(x, z int) {
	w.AddViewer(chunkPosFromBlockPos(x, z))
}

// RemoveViewerAtBlock withdraws one client's interest in whichever chunk contains the block column (x,
// z). See AddViewerAtBlock.
func (w *World) RemoveViewerAtBlock(x, z int) {
	w.RemoveViewer(chunkPosFromBlockPos(x, z))
}

// AvailableChunks returns the chunk positions currently marked available, in no particular order. The
// result is a snapshot; it does not alias the World's internal map.
func (w *World) AvailableChunks() []generation.ChunkPos {
	w.mu.Lock()
	defer w.mu.Unlock()
	return maps.Keys(w.available)
}

// IsChunkAvailable implements generation.Store.
func (w *World) IsChunkAvailable(pos generation.ChunkPos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.available[pos]
	return ok
}

// AnyClientWithinView implements generation.Store.
func (w *World) AnyClientWithinView(pos generation.ChunkPos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewers[pos] > 0
}

// DeliverChunk implements generation.Store. It marks the chunk available and forwards the result to the
// sink the World was constructed with.
func (w *World) DeliverChunk(pos generation.ChunkPos, result generation.Result) {
	w.mu.Lock()
	w.available[pos] = struct{}{}
	w.mu.Unlock()

	if w.sink != nil {
		w.sink(pos, result)
	}
}
