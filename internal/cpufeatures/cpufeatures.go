// Package cpufeatures reports host CPU capabilities for diagnostic
// logging only. Unlike the teacher's v04/simd package, nothing here
// selects an alternate code path: codec and zpaq stay single-threaded
// and deterministic per spec.md §5, so the detected feature set is
// attached to the compress command's start-up log record and nothing
// else.
package cpufeatures

import "sync"

// Features reports which instruction-set extensions the host supports.
type Features struct {
	AMD64   bool
	ARM64   bool
	SSE2    bool
	SSE41   bool
	AVX2    bool
	AVX512  bool
	NEON    bool
}

var (
	detectOnce sync.Once
	detected   Features
)

// Detect returns the host's feature set, computed once and cached.
func Detect() Features {
	detectOnce.Do(func() {
		detected = detectImpl()
	})
	return detected
}
