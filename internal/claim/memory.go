package claim

import "sync"

// Memory is an in-memory Claimer for tests. It reproduces the rename
// race deterministically: the first claim on a registered, non-empty
// path wins, every later claim on the same path fails.
type Memory struct {
	mu      sync.Mutex
	sizes   map[string]int64
	claimed map[string]struct{}
}

// NewMemory returns an empty in-memory claimer.
func NewMemory() *Memory {
	return &Memory{
		sizes:   make(map[string]int64),
		claimed: make(map[string]struct{}),
	}
}

// Add registers a path with the given content size.
func (m *Memory) Add(path string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[path] = size
}

// Claim mirrors FS.Claim against the registered paths.
func (m *Memory) Claim(path string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	size, ok := m.sizes[path]
	if !ok {
		return Failed
	}
	if size == 0 {
		return Deferred
	}
	delete(m.sizes, path)
	m.claimed[ClaimedPath(path)] = struct{}{}
	return Claimed
}

// IsClaimed reports whether a claimed marker exists for the path.
func (m *Memory) IsClaimed(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.claimed[ClaimedPath(path)]
	return ok
}
