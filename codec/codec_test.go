package codec

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/zparsgo/zparsgo/internal/zerr"
)

func roundtripBlock(t *testing.T, input []byte, opts CompressionOptions) []byte {
	t.Helper()
	encoded := encodeLZ77Block(input, opts)
	decoded, err := decodeLZ77Block(encoded, len(input), opts)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(decoded, input) {
		t.Fatalf("roundtrip mismatch: got %q, want %q", decoded, input)
	}
	return encoded
}

func TestBlockRoundtripEmpty(t *testing.T) {
	roundtripBlock(t, nil, DefaultCompressionOptions())
}

func TestBlockRoundtripLiteralRunBoundaries(t *testing.T) {
	opts := DefaultCompressionOptions()
	for _, n := range []int{1, 63, 64, 65, 128, 129} {
		input := []byte(strings.Repeat("x", n))
		// Use distinct bytes so no accidental matches form.
		for i := range input {
			input[i] = byte(i)
		}
		roundtripBlock(t, input, opts)
	}
}

func TestBlockRoundtripMatchLengthBoundaries(t *testing.T) {
	opts := DefaultCompressionOptions()
	prefix := []byte("abcdefgh")
	for _, n := range []int{opts.MinMatch, opts.MinMatch + 63, opts.MinMatch + 64, opts.MinMatch*2 + 63, opts.MinMatch*2 + 64} {
		repeated := bytes.Repeat([]byte{'z'}, n)
		input := append(append([]byte{}, prefix...), repeated...)
		roundtripBlock(t, input, opts)
	}
}

func TestBlockMatchTieBreaksTowardSmallerOffset(t *testing.T) {
	opts := DefaultCompressionOptions()
	// A repeated motif round-trips through the full encoder.
	input := []byte("abcdWXYZabcdabcd")
	encoded := roundtripBlock(t, input, opts)
	if len(encoded) == 0 {
		t.Fatalf("expected non-empty encoding")
	}

	// Two equal-length (4) candidates for "abcd" at position 10 share a
	// bucket: position 0 (offset 10) is probed first at k=0, position 5
	// (offset 5) second at k=1. The smaller offset must win the tie.
	tie := []byte("abcdXabcdYabcd")
	table := newHashTable(opts.TableLog)
	h := hashSlice(tie[10:14])
	table.insert(h, 0)
	table.slots[(int(h)^1)&table.mask] = 5 + 1
	bestLen, bestOff := 0, 0
	searchCandidates(tie, 10, &bestLen, &bestOff, table, h, searchContext{minMatch: opts.MinMatch, bucket: opts.bucket()})
	if bestLen != 4 || bestOff != 5 {
		t.Fatalf("tie-break: got len=%d off=%d, want len=4 off=5", bestLen, bestOff)
	}
}

func TestStreamCompressDecompressRoundtrip(t *testing.T) {
	opts := DefaultCompressionOptions()
	opts.BlockSize = 16

	raw := []byte(strings.Repeat("abcd", 50000))

	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader(raw), &compressed, opts, nil); err != nil {
		t.Fatalf("compress: %v", err)
	}

	var restored bytes.Buffer
	if err := Decompress(bytes.NewReader(compressed.Bytes()), &restored, nil); err != nil {
		t.Fatalf("decompress: %v", err)
	}

	if !bytes.Equal(raw, restored.Bytes()) {
		t.Fatalf("stream roundtrip mismatch")
	}
}

func TestStreamCompressExactBlockSizeMultiple(t *testing.T) {
	opts := DefaultCompressionOptions()
	opts.BlockSize = 10

	for _, n := range []int{9, 10, 11, 20} {
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = byte(i)
		}

		var compressed bytes.Buffer
		if err := Compress(bytes.NewReader(raw), &compressed, opts, nil); err != nil {
			t.Fatalf("compress n=%d: %v", n, err)
		}
		var restored bytes.Buffer
		if err := Decompress(bytes.NewReader(compressed.Bytes()), &restored, nil); err != nil {
			t.Fatalf("decompress n=%d: %v", n, err)
		}
		if !bytes.Equal(raw, restored.Bytes()) {
			t.Fatalf("n=%d: roundtrip mismatch", n)
		}
	}
}

func TestStreamCompressRejectsBadOptions(t *testing.T) {
	var buf bytes.Buffer
	err := Compress(strings.NewReader("hi"), &buf, CompressionOptions{}, nil)
	if !zerr.Is(err, zerr.ErrInvalidOption) {
		t.Fatalf("expected InvalidOption, got %v", err)
	}
}

func TestDecodeRejectsCorruptOffset(t *testing.T) {
	opts := DefaultCompressionOptions()
	// A single match token whose offset (1) points before the start of
	// output, with no literals preceding it.
	bad := []byte{byte(1)<<6 | 0, 0x00, 0x00}
	_, err := decodeLZ77Block(bad, 10, opts)
	if !zerr.Is(err, zerr.ErrCorrupt) {
		t.Fatalf("expected Corrupt, got %v", err)
	}
}

func TestCompressedSizeUnderOnePercentForHighlyRepetitiveInput(t *testing.T) {
	opts := Preset(LevelL3)
	raw := []byte(strings.Repeat("abcd", 50000))

	var compressed bytes.Buffer
	if err := Compress(bytes.NewReader(raw), &compressed, opts, nil); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if float64(compressed.Len()) >= float64(len(raw))*0.01 {
		t.Fatalf("expected <1%% compressed size, got %d of %d bytes", compressed.Len(), len(raw))
	}
}

func TestBlockRoundtripRandomData(t *testing.T) {
	opts := CompressionOptions{
		BlockSize:      32 << 10,
		MinMatch:       4,
		SecondaryMatch: 6,
		SearchLog:      4,
		TableLog:       16,
	}
	rng := rand.New(rand.NewSource(42))
	raw := make([]byte, 128*1024)
	rng.Read(raw)

	roundtripBlock(t, raw, opts)
}
