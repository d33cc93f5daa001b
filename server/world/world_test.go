package world

import (
	"testing"

	"github.com/LGLsign/cuberite/server/world/generation"
)

func TestWorldMarkAvailableAndQuery(t *testing.T) {
	w := NewWorld(nil)
	pos := generation.ChunkPos{1, 2}

	if w.IsChunkAvailable(pos) {
		t.Fatal("chunk reported available before MarkAvailable")
	}
	w.MarkAvailable(pos)
	if !w.IsChunkAvailable(pos) {
		t.Fatal("chunk not reported available after MarkAvailable")
	}
}

func TestWorldViewerRefcounting(t *testing.T) {
	w := NewWorld(nil)
	pos := generation.ChunkPos{0, 0}

	if w.AnyClientWithinView(pos) {
		t.Fatal("chunk reported viewed with no viewers added")
	}
	w.AddViewer(pos)
	w.AddViewer(pos)
	if !w.AnyClientWithinView(pos) {
		t.Fatal("chunk not reported viewed after AddViewer")
	}
	w.RemoveViewer(pos)
	if !w.AnyClientWithinView(pos) {
		t.Fatal("chunk no longer viewed after removing only one of two viewers")
	}
	w.RemoveViewer(pos)
	if w.AnyClientWithinView(pos) {
		t.Fatal("chunk still viewed after removing both viewers")
	}
}

func TestWorldViewerAtBlockResolvesToChunk(t *testing.T) {
	w := NewWorld(nil)
	// Block (20, 20) is in chunk (1, 1).
	w.AddViewerAtBlock(20, 20)
	if !w.AnyClientWithinView(generation.ChunkPos{1, 1}) {
		t.Fatal("AddViewerAtBlock(20, 20) did not register a viewer on chunk (1, 1)")
	}
	w.RemoveViewerAtBlock(20, 20)
	if w.AnyClientWithinView(generation.ChunkPos{1, 1}) {
		t.Fatal("RemoveViewerAtBlock(20, 20) did not withdraw the viewer on chunk (1, 1)")
	}
}

func TestWorldDeliverChunkMarksAvailableAndCallsSink(t *testing.T) {
	var delivered generation.ChunkPos
	var calls int
	w := NewWorld(func(pos generation.ChunkPos, _ generation.Result) {
		delivered = pos
		calls++
	})

	pos := generation.ChunkPos{5, -5}
	w.DeliverChunk(pos, generation.Result{})

	if calls != 1 {
		t.Fatalf("sink called %d times, want 1", calls)
	}
	if delivered != pos {
		t.Fatalf("sink received %v, want %v", delivered, pos)
	}
	if !w.IsChunkAvailable(pos) {
		t.Fatal("DeliverChunk did not mark the chunk available")
	}
}

func TestWorldAvailableChunksSnapshot(t *testing.T) {
	w := NewWorld(nil)
	want := []generation.ChunkPos{{0, 0}, {1, 1}, {2, 2}}
	for _, p := range want {
		w.MarkAvailable(p)
	}

	got := w.AvailableChunks()
	if len(got) != len(want) {
		t.Fatalf("AvailableChunks returned %d entries, want %d", len(got), len(want))
	}
	for _, p := range want {
		found := false
		for _, g := range got {
			if g == p {
				found = true
			}
		}
		if !found {
			t.Fatalf("AvailableChunks missing %v", p)
		}
	}
}

func TestWorldStartAndStop(t *testing.T) {
	w := NewWorld(nil)
	conf := generation.PipelineConfig{
		BiomeGen:       "constant:plains",
		HeightGen:      "flat:64",
		CompositionGen: "classic",
	}
	if err := w.Start(conf, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if w.Generator() == nil {
		t.Fatal("Generator() returned nil after Start")
	}
	w.Stop()
	w.Stop()
}
