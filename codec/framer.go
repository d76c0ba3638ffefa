package codec

import (
	"encoding/binary"
	"io"

	"github.com/zparsgo/zparsgo/internal/zerr"
)

const (
	magic   = "ZPS1"
	version = 1
)

// blockHeader is the two little-endian u32 fields preceding every
// block's compressed bytes. A header with both fields zero terminates
// the stream.
type blockHeader struct {
	uncompressedLen uint32
	compressedLen   uint32
}

func (h blockHeader) isTerminator() bool {
	return h.uncompressedLen == 0 && h.compressedLen == 0
}

// writeStreamHeader emits the 13-byte ZPS1 stream header: magic,
// version, block_size, min_match, secondary_match, search_log,
// table_log.
func writeStreamHeader(w io.Writer, opts CompressionOptions) error {
	buf := make([]byte, 13)
	copy(buf[0:4], magic)
	buf[4] = version
	binary.LittleEndian.PutUint32(buf[5:9], uint32(opts.BlockSize))
	buf[9] = byte(opts.MinMatch)
	buf[10] = byte(opts.SecondaryMatch)
	buf[11] = opts.SearchLog
	buf[12] = opts.TableLog
	if _, err := w.Write(buf); err != nil {
		return zerr.Io(err)
	}
	return nil
}

// readStreamHeader parses and validates the ZPS1 stream header. The
// 4-byte magic is read and checked on its own before the rest of the
// header, mirroring original_source/src/codec.rs's two-step read: a
// 4-byte input that simply isn't ZPS1 (e.g. "bad!") surfaces as
// InvalidFormat instead of an I/O error about a 13-byte header that
// was never going to be there.
func readStreamHeader(r io.Reader) (CompressionOptions, error) {
	var opts CompressionOptions

	magicBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, magicBuf); err != nil {
		return opts, zerr.Io(err)
	}
	if string(magicBuf) != magic {
		return opts, zerr.InvalidFormat("bad magic")
	}

	rest := make([]byte, 9)
	if _, err := io.ReadFull(r, rest); err != nil {
		return opts, zerr.Io(err)
	}

	if rest[0] != version {
		return opts, zerr.UnsupportedVersion(rest[0])
	}

	opts = CompressionOptions{
		BlockSize:      int(binary.LittleEndian.Uint32(rest[1:5])),
		MinMatch:       int(rest[5]),
		SecondaryMatch: int(rest[6]),
		SearchLog:      rest[7],
		TableLog:       rest[8],
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func writeBlockHeader(w io.Writer, h blockHeader) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], h.uncompressedLen)
	binary.LittleEndian.PutUint32(buf[4:8], h.compressedLen)
	if _, err := w.Write(buf); err != nil {
		return zerr.Io(err)
	}
	return nil
}

func readBlockHeader(r io.Reader) (blockHeader, error) {
	buf := make([]byte, 8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return blockHeader{}, zerr.Io(err)
	}
	return blockHeader{
		uncompressedLen: binary.LittleEndian.Uint32(buf[0:4]),
		compressedLen:   binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}
