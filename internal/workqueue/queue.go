// Package workqueue holds the in-process FIFO of admitted order paths.
//
// The queue is local to one worker: sibling processes watching the same
// directory each keep their own, and entries claimed elsewhere simply
// fail at claim time. Entries are not deduplicated; a deferred claim
// re-enqueues the same path on purpose.
package workqueue

import "sync"

// Queue is an unbounded FIFO of file paths. The watcher goroutine
// appends while the driver goroutine drains, so operations are
// mutex-guarded. Dequeue never blocks.
type Queue struct {
	mu    sync.Mutex
	items []string
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends path to the tail.
func (q *Queue) Enqueue(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, path)
}

// Dequeue removes and returns the head. The second return is false when
// the queue is empty, which is a normal and frequent outcome.
func (q *Queue) Dequeue() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", false
	}
	head := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return head, true
}

// Len reports the current number of queued paths.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
