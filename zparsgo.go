// Package zparsgo is the public facade over the ZPS1 LZ77 codec
// (package codec) and the ZPAQ unmodeled-block reader (package zpaq).
// It mirrors the teacher's root-level facade package (goz4x.go),
// re-exporting the lower-level packages' API under one import path.
package zparsgo

import (
	"io"

	"go.uber.org/zap"

	"github.com/zparsgo/zparsgo/codec"
	"github.com/zparsgo/zparsgo/zpaq"
)

// CompressionOptions configures the ZPS1 codec; see codec.CompressionOptions.
type CompressionOptions = codec.CompressionOptions

// PresetLevel names one of the L0-L5 compression presets from spec.md §6.
type PresetLevel = codec.PresetLevel

const (
	LevelL0 = codec.LevelL0
	LevelL1 = codec.LevelL1
	LevelL2 = codec.LevelL2
	LevelL3 = codec.LevelL3
	LevelL4 = codec.LevelL4
	LevelL5 = codec.LevelL5
)

// DefaultCompressionOptions returns the L1 preset.
func DefaultCompressionOptions() CompressionOptions {
	return codec.DefaultCompressionOptions()
}

// Preset returns the CompressionOptions for a named level.
func Preset(level PresetLevel) CompressionOptions {
	return codec.Preset(level)
}

// Compress reads all of input and writes a ZPS1 stream to output.
// logger may be nil.
func Compress(input io.Reader, output io.Writer, opts CompressionOptions, logger *zap.Logger) error {
	return codec.Compress(input, output, opts, logger)
}

// Decompress reads a ZPS1 stream from input and writes the restored
// bytes to output. logger may be nil.
func Decompress(input io.Reader, output io.Writer, logger *zap.Logger) error {
	return codec.Decompress(input, output, logger)
}

// ZpaqBlockHeader describes one scanned ZPAQ block; see zpaq.BlockHeader.
type ZpaqBlockHeader = zpaq.BlockHeader

// ZpaqExtractedSegment is one decoded segment payload; see zpaq.ExtractedSegment.
type ZpaqExtractedSegment = zpaq.ExtractedSegment

// InspectZpaqFile scans the ZPAQ blocks present in the file at path.
func InspectZpaqFile(path string, logger *zap.Logger) ([]ZpaqBlockHeader, error) {
	return zpaq.InspectFile(path, logger)
}

// InspectZpaqBytes scans the ZPAQ blocks present in data.
func InspectZpaqBytes(data []byte, logger *zap.Logger) ([]ZpaqBlockHeader, error) {
	return zpaq.InspectBytes(data, logger)
}

// ExtractZpaqUnmodeledFile extracts segments from the unmodeled ZPAQ
// blocks in the file at path.
func ExtractZpaqUnmodeledFile(path string, logger *zap.Logger) ([]ZpaqExtractedSegment, error) {
	return zpaq.ExtractUnmodeledFile(path, logger)
}

// ExtractZpaqUnmodeledBytes extracts segments from the unmodeled ZPAQ
// blocks in data.
func ExtractZpaqUnmodeledBytes(data []byte, logger *zap.Logger) ([]ZpaqExtractedSegment, error) {
	return zpaq.ExtractUnmodeledBytes(data, logger)
}
