package generation

import (
	"sync"

	"github.com/df-mc/atomic"
)

// ChunkGenerator owns the request queue and the single background worker that drains it, composing the
// pluggable pipeline stages for every chunk it generates. It is created once per world via Start and
// destroyed via Stop; it must never be shared between two worlds, and there must never be more than one
// ChunkGenerator worker running against the same Store, or the same chunk could be generated twice
// concurrently.
//
// A nil *ChunkGenerator is not valid to use; ChunkGenerator must be created with Start.
type ChunkGenerator struct {
	store Store
	log   Logger

	queue *queue

	pipeline atomic.Value[*Pipeline]

	stopOnce sync.Once
	done     chan struct{}
}

// Start assembles a Pipeline from conf and seed, and spawns the background worker goroutine that will
// drain requests submitted through QueueGenerateChunk against store. If conf names an unknown selector,
// Start returns an *InvalidConfigError and the generator is not started.
func Start(store Store, conf PipelineConfig, log Logger) (*ChunkGenerator, error) {
	pipeline, err := NewPipeline(conf)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}

	g := &ChunkGenerator{
		store: store,
		log:   log,
		queue: newQueue(),
		done:  make(chan struct{}),
	}
	g.pipeline.Store(pipeline)

	go g.run(conf.highWater())
	return g, nil
}

// QueueGenerateChunk submits (x, z) for background generation. The y parameter is accepted for
// source-compatibility with older callers but is otherwise ignored: generation is columnar, and every
// block column in a chunk is produced regardless of where a caller happened to be looking. Duplicate
// submissions for a coordinate already pending are silently dropped. Submitting after Stop returns
// ErrQueueShutdown.
func (g *ChunkGenerator) QueueGenerateChunk(x, y, z int32) error {
	_ = y
	return g.queue.enqueue(ChunkPos{x, z})
}

// AbandonChunk withdraws a previously submitted request for (x, z), if it is still pending and has not
// already been dequeued by the worker. Useful when the only client that cared about a chunk disconnects
// before it was generated. It is a no-op if the chunk is not pending.
func (g *ChunkGenerator) AbandonChunk(x, z int32) {
	g.queue.abandon(ChunkPos{x, z})
}

// GenerateBiomes invokes the pipeline's BiomeGen synchronously on the caller's goroutine, bypassing the
// queue entirely. Safe to call concurrently with itself and with the worker.
func (g *ChunkGenerator) GenerateBiomes(chunkX, chunkZ int32) BiomeMap {
	return g.pipeline.Load().GenerateBiomes(chunkX, chunkZ)
}

// BiomeAt converts a world-block column to its chunk and returns the biome of that column.
func (g *ChunkGenerator) BiomeAt(blockX, blockZ int) Biome {
	return g.pipeline.Load().BiomeAt(blockX, blockZ)
}

// WaitForQueueEmpty blocks the caller until there are no requests pending and the worker has finished the
// chunk it last dequeued. It returns immediately if that is already so or Stop has been called.
func (g *ChunkGenerator) WaitForQueueEmpty() {
	g.queue.waitUntilEmpty()
}

// QueueLength returns the number of distinct chunk coordinates currently pending. The result may be
// stale by the time the caller observes it.
func (g *ChunkGenerator) QueueLength() int {
	return g.queue.length()
}

// Seed returns the seed the running pipeline was built with.
func (g *ChunkGenerator) Seed() int32 {
	return g.pipeline.Load().Seed()
}

// Stop requests the worker to terminate, discards every request still pending, and blocks until the
// worker goroutine has exited. Stop is idempotent and safe to call from any goroutine other than the
// worker itself.
func (g *ChunkGenerator) Stop() {
	g.stopOnce.Do(func() {
		g.queue.stop()
		<-g.done
	})
}

// run is the body of the single background worker goroutine. It drains the queue until told to stop,
// generating or skipping each request in turn.
func (g *ChunkGenerator) run(highWater int) {
	defer close(g.done)

	for {
		res := g.queue.dequeueBlocking()
		if res.stop {
			return
		}
		g.process(res.pos, highWater)
	}
}

// process handles a single dequeued chunk position: it checks availability and overload before
// generating, and always signals queue-item-removed exactly once when it's done, whether the chunk was
// generated, skipped for being already available, or skipped for overload.
func (g *ChunkGenerator) process(pos ChunkPos, highWater int) {
	defer g.queue.markRemoved()

	if g.store.IsChunkAvailable(pos) {
		return
	}
	if g.queue.length() > highWater && !g.store.AnyClientWithinView(pos) {
		g.log.Debugf("chunk generator: skipping overloaded unwatched chunk %v", pos)
		return
	}

	result, err := g.pipeline.Load().Generate(pos.X(), pos.Z())
	if err != nil {
		g.log.Errorf("chunk generator: %v", err)
		return
	}
	g.store.DeliverChunk(pos, result)
}
