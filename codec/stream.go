// Package codec implements the ZPS1 LZ77 block codec: stream framing
// (framer.go), the hash-table match finder (hashtable.go), and the
// encoder/decoder pair (encoder.go, decoder.go). It mirrors the
// structure of the teacher's compress package (compress/block.go,
// compress/hc.go, compress/stream.go) generalized from LZ4HC's token
// grammar to ZPS1's.
package codec

import (
	"io"

	"go.uber.org/zap"

	"github.com/zparsgo/zparsgo/internal/zerr"
)

// Compress reads all of input in BlockSize chunks, LZ77-encodes each
// block, and writes the ZPS1 stream to output. logger may be nil.
func Compress(input io.Reader, output io.Writer, opts CompressionOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := writeStreamHeader(output, opts); err != nil {
		return err
	}

	inBlock := make([]byte, opts.BlockSize)
	blockIndex := 0
	for {
		n, err := io.ReadFull(input, inBlock)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return zerr.Io(err)
		}
		if n == 0 {
			break
		}
		raw := inBlock[:n]
		encoded := encodeLZ77Block(raw, opts)

		hdr := blockHeader{uncompressedLen: uint32(n), compressedLen: uint32(len(encoded))}
		if err := writeBlockHeader(output, hdr); err != nil {
			return err
		}
		if _, err := output.Write(encoded); err != nil {
			return zerr.Io(err)
		}

		logger.Debug("compressed block",
			zap.Int("block", blockIndex),
			zap.Int("in_bytes", n),
			zap.Int("out_bytes", len(encoded)),
			zap.Float64("ratio", float64(len(encoded))/float64(n)),
		)
		blockIndex++

		if n < len(inBlock) {
			break
		}
	}

	return writeBlockHeader(output, blockHeader{})
}

// Decompress reads a ZPS1 stream from input and writes the restored
// bytes to output.
func Decompress(input io.Reader, output io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := readStreamHeader(input)
	if err != nil {
		return err
	}
	logger.Debug("read stream header",
		zap.Int("block_size", opts.BlockSize),
		zap.Int("min_match", opts.MinMatch),
		zap.Int("secondary_match", opts.SecondaryMatch),
	)

	blockIndex := 0
	for {
		hdr, err := readBlockHeader(input)
		if err != nil {
			return err
		}
		if hdr.isTerminator() {
			break
		}

		payload := make([]byte, hdr.compressedLen)
		if _, err := io.ReadFull(input, payload); err != nil {
			return zerr.Io(err)
		}

		decoded, err := decodeLZ77Block(payload, int(hdr.uncompressedLen), opts)
		if err != nil {
			return err
		}
		if _, err := output.Write(decoded); err != nil {
			return zerr.Io(err)
		}

		logger.Debug("decompressed block",
			zap.Int("block", blockIndex),
			zap.Int("in_bytes", len(payload)),
			zap.Int("out_bytes", len(decoded)),
		)
		blockIndex++
	}

	return nil
}
