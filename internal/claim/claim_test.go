package claim_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"hopper/internal/claim"
)

func TestClaimMissingFileFails(t *testing.T) {
	claimer := claim.FS{}
	if got := claimer.Claim(filepath.Join(t.TempDir(), "2024_01_01_00_00.txt")); got != claim.Failed {
		t.Fatalf("expected Failed for missing file, got %v", got)
	}
}

func TestClaimEmptyFileDefersAndLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024_01_01_00_00.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	claimer := claim.FS{}
	if got := claimer.Claim(path); got != claim.Deferred {
		t.Fatalf("expected Deferred for empty file, got %v", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("original file must stay in place: %v", err)
	}
	if _, err := os.Stat(claim.ClaimedPath(path)); !os.IsNotExist(err) {
		t.Fatalf("no claimed marker expected, stat err=%v", err)
	}
}

func TestClaimRenamesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024_01_01_00_00.txt")
	if err := os.WriteFile(path, []byte("0.5"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	claimer := claim.FS{}
	if got := claimer.Claim(path); got != claim.Claimed {
		t.Fatalf("expected Claimed, got %v", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("original must be renamed away, stat err=%v", err)
	}
	content, err := os.ReadFile(claim.ClaimedPath(path))
	if err != nil {
		t.Fatalf("read claimed file: %v", err)
	}
	if string(content) != "0.5" {
		t.Fatalf("claimed content changed: %q", content)
	}
}

func TestSecondClaimOnSamePathFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2024_01_01_00_00.txt")
	if err := os.WriteFile(path, []byte("1"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	claimer := claim.FS{}
	if got := claimer.Claim(path); got != claim.Claimed {
		t.Fatalf("first claim: expected Claimed, got %v", got)
	}
	if got := claimer.Claim(path); got != claim.Failed {
		t.Fatalf("second claim: expected Failed, got %v", got)
	}
}

func TestMemoryClaimerSingleWinnerUnderContention(t *testing.T) {
	claimer := claim.NewMemory()
	claimer.Add("/orders/2024_01_01_00_00.txt", 4)

	const contenders = 16
	results := make([]claim.Result, contenders)
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func(slot int) {
			defer done.Done()
			start.Wait()
			results[slot] = claimer.Claim("/orders/2024_01_01_00_00.txt")
		}(i)
	}
	start.Done()
	done.Wait()

	winners := 0
	for _, result := range results {
		switch result {
		case claim.Claimed:
			winners++
		case claim.Failed:
		default:
			t.Fatalf("unexpected result %v", result)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
	if !claimer.IsClaimed("/orders/2024_01_01_00_00.txt") {
		t.Fatal("expected claimed marker")
	}
}

func TestMemoryClaimerDefersEmpty(t *testing.T) {
	claimer := claim.NewMemory()
	claimer.Add("/orders/2024_01_01_00_00.txt", 0)
	if got := claimer.Claim("/orders/2024_01_01_00_00.txt"); got != claim.Deferred {
		t.Fatalf("expected Deferred, got %v", got)
	}
	// A deferred claim leaves the path claimable once content arrives.
	claimer.Add("/orders/2024_01_01_00_00.txt", 3)
	if got := claimer.Claim("/orders/2024_01_01_00_00.txt"); got != claim.Claimed {
		t.Fatalf("expected Claimed after content arrived, got %v", got)
	}
}

func TestResultString(t *testing.T) {
	if claim.Claimed.String() != "claimed" || claim.Deferred.String() != "deferred" || claim.Failed.String() != "failed" {
		t.Fatal("unexpected Result string values")
	}
}
