// Package claim implements the cross-worker mutual-exclusion protocol.
//
// Ownership of a work order is taken by renaming the file in place with
// the Suffix marker. Rename is atomic at the file-system level, so when
// several workers race on the same source path exactly one rename
// succeeds. That atomicity is the sole coordination mechanism between
// sibling workers; there is no lock server and no shared state.
package claim

import "os"

// Suffix marks a claimed order on disk. Files carrying it belong to
// whichever worker renamed them and must not be touched by others.
const Suffix = ".inProgress"

// Result describes the outcome of a claim attempt.
type Result int

const (
	// Failed means the file is gone or the rename lost: some sibling
	// worker owns it now. Expected and benign in a multi-worker setup.
	Failed Result = iota
	// Deferred means the file exists but is still empty, likely mid-write.
	// The caller should re-enqueue the path and try again later.
	Deferred
	// Claimed means the rename succeeded and this process exclusively
	// owns the file at ClaimedPath(path).
	Claimed
)

func (r Result) String() string {
	switch r {
	case Claimed:
		return "claimed"
	case Deferred:
		return "deferred"
	default:
		return "failed"
	}
}

// Claimer attempts to take exclusive ownership of a path.
type Claimer interface {
	Claim(path string) Result
}

// ClaimedPath returns the on-disk location of path after a successful claim.
func ClaimedPath(path string) string {
	return path + Suffix
}

// FS claims orders on the real file system.
type FS struct{}

// Claim stats the path, defers on an empty file, and otherwise renames
// it to the claimed marker. It never retries; retry policy belongs to
// the caller.
func (FS) Claim(path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Failed
	}
	if info.Size() == 0 {
		return Deferred
	}
	if err := os.Rename(path, ClaimedPath(path)); err != nil {
		return Failed
	}
	return Claimed
}
