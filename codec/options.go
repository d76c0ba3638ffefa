package codec

import "github.com/zparsgo/zparsgo/internal/zerr"

// CompressionOptions configures the ZPS1 block codec. Every field is
// serialized into the stream header (see framer.go) and re-validated
// on decode.
type CompressionOptions struct {
	// BlockSize is the maximum number of raw bytes per block. Must be > 0.
	BlockSize int
	// MinMatch is the shortest match length the encoder will emit, in [1,64].
	MinMatch int
	// SecondaryMatch is the length of an optional second hash table's key,
	// in [0,64]. 0 disables the secondary table.
	SecondaryMatch int
	// SearchLog controls bucket size: bucket = (1<<SearchLog)-1, in [0,10].
	SearchLog uint8
	// TableLog controls each hash table's size: 1<<TableLog slots, in [8,28].
	TableLog uint8
}

// DefaultCompressionOptions returns the L1 preset (min-match 4, no
// secondary hash, search-log 3, table-log 20, 1 MiB blocks).
func DefaultCompressionOptions() CompressionOptions {
	return CompressionOptions{
		BlockSize:      1 << 20,
		MinMatch:       4,
		SecondaryMatch: 0,
		SearchLog:      3,
		TableLog:       20,
	}
}

// PresetLevel is a named compression preset from spec.md §6.
type PresetLevel int

const (
	LevelL0 PresetLevel = iota // near store-only
	LevelL1                    // default
	LevelL2
	LevelL3
	LevelL4
	LevelL5
)

// Preset returns the CompressionOptions for a named level, keeping
// BlockSize at the default 1 MiB.
func Preset(level PresetLevel) CompressionOptions {
	opts := DefaultCompressionOptions()
	switch level {
	case LevelL0:
		opts.MinMatch, opts.SecondaryMatch, opts.SearchLog, opts.TableLog = 64, 0, 0, 8
	case LevelL1:
		opts.MinMatch, opts.SecondaryMatch, opts.SearchLog, opts.TableLog = 4, 0, 3, 20
	case LevelL2:
		opts.MinMatch, opts.SecondaryMatch, opts.SearchLog, opts.TableLog = 4, 6, 4, 22
	case LevelL3:
		opts.MinMatch, opts.SecondaryMatch, opts.SearchLog, opts.TableLog = 3, 6, 5, 23
	case LevelL4:
		opts.MinMatch, opts.SecondaryMatch, opts.SearchLog, opts.TableLog = 3, 8, 6, 24
	case LevelL5:
		opts.MinMatch, opts.SecondaryMatch, opts.SearchLog, opts.TableLog = 3, 12, 7, 25
	}
	return opts
}

// Validate checks every field against spec.md §3's bounds, returning
// an InvalidOption error naming the first violation found.
func (o CompressionOptions) Validate() error {
	if o.BlockSize <= 0 {
		return zerr.InvalidOption("block-size must be > 0")
	}
	if o.MinMatch < 1 || o.MinMatch > 64 {
		return zerr.InvalidOption("min-match must be 1..=64")
	}
	if o.SecondaryMatch < 0 || o.SecondaryMatch > 64 {
		return zerr.InvalidOption("secondary-match must be 0..=64")
	}
	if o.SearchLog > 10 {
		return zerr.InvalidOption("search-log must be <= 10")
	}
	if o.TableLog < 8 || o.TableLog > 28 {
		return zerr.InvalidOption("table-log must be 8..=28")
	}
	return nil
}

// tableSize returns 1<<TableLog.
func (o CompressionOptions) tableSize() int {
	return 1 << o.TableLog
}

// bucket returns (1<<SearchLog)-1, the number of alternate slots probed
// per hash.
func (o CompressionOptions) bucket() int {
	return (1 << o.SearchLog) - 1
}
