package generation

import (
	"sync"

	"golang.org/x/exp/slices"
)

// queue is an ordered, deduplicated set of pending ChunkPos requests, guarded by a single mutex with two
// associated conditions — one signalled on enqueue, one on dequeue/abandonment — following the classic
// monitor pattern. added corresponds to "an item was added, or we were told to stop"; removed corresponds
// to "an item was removed, whether generated, abandoned, or skipped".
type queue struct {
	mu sync.Mutex

	added   sync.Cond // signalled when a coord is enqueued, or when Stop is called
	removed sync.Cond // signalled when a coord is dequeued or abandoned

	order   []ChunkPos
	pending map[ChunkPos]struct{}
	stopped bool

	// inFlight is set while the worker holds a coord it dequeued and has not yet called markRemoved for.
	inFlight bool
}

// newQueue returns an empty, ready-to-use queue.
func newQueue() *queue {
	q := &queue{pending: map[ChunkPos]struct{}{}}
	q.added.L = &q.mu
	q.removed.L = &q.mu
	return q
}

// enqueue appends pos to the tail of the queue and wakes a blocked dequeueBlocking caller, unless pos is
// already present, in which case enqueue does nothing. enqueue never blocks. If the queue has been
// stopped, enqueue does nothing and returns ErrQueueShutdown.
func (q *queue) enqueue(pos ChunkPos) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return ErrQueueShutdown
	}
	if _, ok := q.pending[pos]; ok {
		return nil
	}
	q.pending[pos] = struct{}{}
	q.order = append(q.order, pos)
	q.added.Signal()
	return nil
}

// dequeueResult is returned by dequeueBlocking.
type dequeueResult struct {
	pos  ChunkPos
	stop bool
}

// dequeueBlocking removes and returns the head of the queue. If the queue is empty, it blocks until an
// enqueue wakes it or the queue is stopped, in which case it returns a result with stop set to true and a
// zero ChunkPos.
func (q *queue) dequeueBlocking() dequeueResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.order) == 0 && !q.stopped {
		q.added.Wait()
	}
	if len(q.order) == 0 {
		// Woken by stop with nothing left to drain.
		return dequeueResult{stop: true}
	}

	pos := q.order[0]
	q.order = q.order[1:]
	delete(q.pending, pos)
	q.inFlight = true
	q.removed.Signal()
	return dequeueResult{pos: pos}
}

// abandon removes pos from the queue without it ever having been generated (used by Stop to discard
// pending requests) and wakes any waitUntilEmpty caller. It is a no-op if pos is not present.
func (q *queue) abandon(pos ChunkPos) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.abandonLocked(pos)
}

// abandonLocked is abandon without acquiring q.mu; callers must already hold it.
func (q *queue) abandonLocked(pos ChunkPos) {
	if _, ok := q.pending[pos]; !ok {
		return
	}
	delete(q.pending, pos)
	if i := slices.Index(q.order, pos); i != -1 {
		q.order = slices.Delete(q.order, i, i+1)
	}
	q.removed.Signal()
}

// markRemoved clears the in-flight mark set by dequeueBlocking and signals the "item removed" condition
// without removing anything. The worker calls it after a chunk it already dequeued finishes (successfully,
// by fault, or by skip), so that waitUntilEmpty returns only once that chunk is done.
func (q *queue) markRemoved() {
	q.mu.Lock()
	q.inFlight = false
	q.removed.Signal()
	q.mu.Unlock()
}

// length returns the number of distinct coordinates currently pending. The value may be stale by the
// time the caller observes it if other goroutines are concurrently enqueuing or dequeuing.
func (q *queue) length() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// waitUntilEmpty blocks the caller until the queue becomes empty and the last dequeued coord has been
// marked removed, or returns immediately if that is already so or the queue has been stopped.
func (q *queue) waitUntilEmpty() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for (len(q.order) != 0 || q.inFlight) && !q.stopped {
		q.removed.Wait()
	}
}

// stop marks the queue stopped, abandons every pending request, and wakes any goroutine blocked in
// dequeueBlocking or waitUntilEmpty. stop is idempotent.
func (q *queue) stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	q.stopped = true
	for _, pos := range append([]ChunkPos(nil), q.order...) {
		q.abandonLocked(pos)
	}
	q.added.Broadcast()
	q.removed.Broadcast()
}
