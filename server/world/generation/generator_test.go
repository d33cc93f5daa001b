package generation

import (
	"sync"
	"testing"
	"time"
)

// fakeStore is a minimal, test-only Store implementation with a synchronous record of every chunk
// delivered to it, plus controllable availability/viewer state.
type fakeStore struct {
	mu        sync.Mutex
	available map[ChunkPos]bool
	viewers   map[ChunkPos]bool
	delivered []ChunkPos

	// lookupDelay simulates a slow availability check, giving a burst of producer enqueues time to build
	// up a backlog before the worker drains it. Zero by default.
	lookupDelay time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{available: map[ChunkPos]bool{}, viewers: map[ChunkPos]bool{}}
}

func (s *fakeStore) IsChunkAvailable(pos ChunkPos) bool {
	if s.lookupDelay > 0 {
		time.Sleep(s.lookupDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available[pos]
}

func (s *fakeStore) AnyClientWithinView(pos ChunkPos) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewers[pos]
}

func (s *fakeStore) DeliverChunk(pos ChunkPos, _ Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, pos)
}

func (s *fakeStore) deliveredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delivered)
}

func (s *fakeStore) setAvailable(pos ChunkPos)          { s.mu.Lock(); s.available[pos] = true; s.mu.Unlock() }
func (s *fakeStore) setViewerWithin(pos ChunkPos, v bool) { s.mu.Lock(); s.viewers[pos] = v; s.mu.Unlock() }

func testConfig() PipelineConfig {
	return PipelineConfig{
		BiomeGen:       "constant:plains",
		HeightGen:      "flat:64",
		CompositionGen: "classic",
		Seed:           1,
	}
}

// Rapid duplicate enqueues never grow the queue past 1, and exactly one delivery happens.
func TestGeneratorDeduplicatesRapidEnqueues(t *testing.T) {
	store := newFakeStore()
	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	for i := 0; i < 3; i++ {
		g.QueueGenerateChunk(5, 0, 5)
	}
	if l := g.QueueLength(); l > 1 {
		t.Fatalf("QueueLength = %d, want <= 1", l)
	}

	g.WaitForQueueEmpty()
	if got := store.deliveredCount(); got != 1 {
		t.Fatalf("deliveries = %d, want 1", got)
	}
}

// A chunk already available is never generated.
func TestGeneratorSkipsAlreadyAvailableChunks(t *testing.T) {
	store := newFakeStore()
	store.setAvailable(ChunkPos{0, 0})

	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	g.QueueGenerateChunk(0, 64, 0)
	g.WaitForQueueEmpty()

	if got := store.deliveredCount(); got != 0 {
		t.Fatalf("deliveries = %d, want 0 for an already-available chunk", got)
	}
}

// Once the queue exceeds the high-water mark, unwatched chunks are skipped rather than generated.
func TestGeneratorSkipsOverloadedUnwatchedChunks(t *testing.T) {
	store := newFakeStore()
	store.lookupDelay = 5 * time.Millisecond
	conf := testConfig()
	conf.QueueHighWater = 4

	g, err := Start(store, conf, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	for x := int32(0); x < 50; x++ {
		g.QueueGenerateChunk(x, 0, 0)
	}
	g.WaitForQueueEmpty()

	if got := store.deliveredCount(); got != 0 {
		t.Fatalf("deliveries = %d, want 0 when no chunk ever had a client within view", got)
	}
}

// A watched chunk submitted during overload is still generated.
func TestGeneratorDoesNotSkipWatchedChunksUnderOverload(t *testing.T) {
	store := newFakeStore()
	store.lookupDelay = 5 * time.Millisecond
	conf := testConfig()
	conf.QueueHighWater = 4
	watched := ChunkPos{999, 999}
	store.setViewerWithin(watched, true)

	g, err := Start(store, conf, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	for x := int32(0); x < 50; x++ {
		g.QueueGenerateChunk(x, 0, 0)
	}
	g.QueueGenerateChunk(watched.X(), 0, watched.Z())
	g.WaitForQueueEmpty()

	store.mu.Lock()
	found := false
	for _, d := range store.delivered {
		if d == watched {
			found = true
		}
	}
	store.mu.Unlock()
	if !found {
		t.Fatal("watched chunk was skipped despite having a client within view")
	}
}

// Stop joins the worker and abandons whatever is still pending, with no further sink calls after Stop
// returns.
func TestGeneratorStopAbandonsPendingAndJoinsWorker(t *testing.T) {
	store := newFakeStore()
	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	for x := int32(0); x < 10; x++ {
		g.QueueGenerateChunk(x, 0, 0)
	}
	g.Stop()

	deliveredAtStop := store.deliveredCount()
	time.Sleep(20 * time.Millisecond)
	if got := store.deliveredCount(); got != deliveredAtStop {
		t.Fatalf("deliveries increased after Stop returned: %d -> %d", deliveredAtStop, got)
	}
}

func TestGeneratorStopIsIdempotent(t *testing.T) {
	store := newFakeStore()
	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	g.Stop()
	g.Stop()
	g.Stop()
}

// QueueGenerateChunk's y parameter must be accepted but ignored.
func TestQueueGenerateChunkIgnoresY(t *testing.T) {
	store := newFakeStore()
	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	g.QueueGenerateChunk(1, 12345, 1)
	g.QueueGenerateChunk(1, -999, 1)
	g.WaitForQueueEmpty()

	if got := store.deliveredCount(); got != 1 {
		t.Fatalf("deliveries = %d, want 1 regardless of differing y values", got)
	}
}

func TestSeedAndQueueLength(t *testing.T) {
	store := newFakeStore()
	conf := testConfig()
	conf.Seed = 777
	g, err := Start(store, conf, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	if got := g.Seed(); got != 777 {
		t.Fatalf("Seed() = %d, want 777", got)
	}
	if got := g.QueueLength(); got != 0 {
		t.Fatalf("QueueLength() = %d, want 0 on a fresh generator", got)
	}
}

func TestQueueGenerateChunkReturnsErrAfterStop(t *testing.T) {
	store := newFakeStore()
	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	g.Stop()

	if err := g.QueueGenerateChunk(1, 0, 1); err != ErrQueueShutdown {
		t.Fatalf("QueueGenerateChunk after Stop = %v, want ErrQueueShutdown", err)
	}
}

func TestAbandonChunkRemovesPendingRequest(t *testing.T) {
	store := newFakeStore()
	store.lookupDelay = 20 * time.Millisecond
	g, err := Start(store, testConfig(), nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer g.Stop()

	// The first chunk occupies the worker (behind the lookup delay) while the second sits pending, where
	// AbandonChunk can still reach it.
	g.QueueGenerateChunk(0, 0, 0)
	g.QueueGenerateChunk(1, 0, 0)
	g.AbandonChunk(1, 0)
	g.WaitForQueueEmpty()

	store.mu.Lock()
	defer store.mu.Unlock()
	for _, d := range store.delivered {
		if d == (ChunkPos{1, 0}) {
			t.Fatal("abandoned chunk was still delivered")
		}
	}
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	store := newFakeStore()
	_, err := Start(store, PipelineConfig{BiomeGen: "nonexistent", HeightGen: "flat:64", CompositionGen: "classic"}, nil)
	if err == nil {
		t.Fatal("Start did not reject an unknown selector")
	}
}
