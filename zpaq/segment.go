package zpaq

import (
	"bytes"
	"os"

	"go.uber.org/zap"

	"github.com/zparsgo/zparsgo/internal/zerr"
)

// chunkedReader decodes the big-endian chunked byte stream from
// spec.md §4.5: a sequence of big-endian u32 chunk lengths, each
// followed by that many bytes; a length of 0 signals end-of-stream.
type chunkedReader struct {
	data    []byte
	pos     *int
	current uint32
}

func (c *chunkedReader) next() (int, error) {
	if c.current == 0 {
		v, err := readU32BE(c.data, c.pos)
		if err != nil {
			return 0, err
		}
		c.current = v
		if c.current == 0 {
			return -1, nil
		}
	}
	c.current--
	b, err := getRequired(c.data, c.pos, "compressed payload")
	if err != nil {
		return 0, err
	}
	return int(b), nil
}

func readU32BE(data []byte, pos *int) (uint32, error) {
	var x uint32
	for i := 0; i < 4; i++ {
		b, err := getRequired(data, pos, "u32")
		if err != nil {
			return 0, err
		}
		x = (x << 8) | uint32(b)
	}
	return x, nil
}

func readCString(data []byte, pos *int) (string, error) {
	var out []byte
	for {
		b, err := getRequired(data, pos, "cstr")
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return lossyUTF8(out), nil
}

func getRequired(data []byte, pos *int, what string) (byte, error) {
	if *pos >= len(data) {
		return 0, zerr.Corrupt(what)
	}
	b := data[*pos]
	*pos++
	return b, nil
}

// ExtractUnmodeledFile reads path and extracts segments from its
// unmodeled ZPAQ blocks.
func ExtractUnmodeledFile(path string, logger *zap.Logger) ([]ExtractedSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Io(err)
	}
	return ExtractUnmodeledBytes(data, logger)
}

// ExtractUnmodeledBytes scans data and extracts segments from every
// unmodeled (n_components == 0) ZPAQ block it finds. A modeled block
// anywhere in the stream aborts extraction with InvalidFormat, per
// spec.md §4.5.
func ExtractUnmodeledBytes(data []byte, logger *zap.Logger) ([]ExtractedSegment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out []ExtractedSegment
	i := 0
	blockIndex := 0

	for i+len(magic16)+2 < len(data) {
		rel := bytes.Index(data[i:], magic16)
		if rel < 0 {
			break
		}
		at := i + rel

		header, consumed, err := parseBlockHeader(data, at)
		if err != nil {
			return nil, err
		}
		if header == nil {
			i = at + 1
			continue
		}

		if header.NComponents != 0 {
			return nil, zerr.InvalidFormat("modeled blocks are not supported yet; use zpaq -m0 for now")
		}

		logger.Debug("extracting unmodeled zpaq block",
			zap.Int("block", blockIndex),
			zap.Int("offset", header.StartOffset),
			zap.Int("segment_offset", header.SegmentOffset),
		)

		pos := header.SegmentOffset
		segments, newPos, err := extractBlockSegments(data, &pos, blockIndex, logger)
		if err != nil {
			return nil, err
		}
		out = append(out, segments...)

		blockIndex++
		if newPos > at+consumed {
			i = newPos
		} else {
			i = at + consumed
		}
	}

	return out, nil
}

// extractBlockSegments decodes every segment in one unmodeled block
// starting at *pos (header.SegmentOffset). header.Ph/Pm select the
// postprocessor's hash/mixer context in a modeled block; unmodeled
// blocks carry no model, so neither field affects decoding here.
func extractBlockSegments(data []byte, pos *int, blockIndex int, logger *zap.Logger) ([]ExtractedSegment, int, error) {
	var segments []ExtractedSegment
	pp := newPostprocessor()
	firstSegment := true
	chunk := chunkedReader{data: data, pos: pos}

	for {
		marker, err := getRequired(data, pos, "segment marker")
		if err != nil {
			return nil, *pos, err
		}
		if marker == 255 {
			break
		}
		if marker != 1 {
			return nil, *pos, zerr.Corrupt("missing segment or end-of-block marker")
		}

		filename, err := readCString(data, pos)
		if err != nil {
			return nil, *pos, err
		}
		comment, err := readCString(data, pos)
		if err != nil {
			return nil, *pos, err
		}
		reserved, err := getRequired(data, pos, "reserved byte")
		if err != nil {
			return nil, *pos, err
		}
		if reserved != 0 {
			return nil, *pos, zerr.Corrupt("missing reserved byte after comment")
		}

		var segmentData []byte

		if firstSegment {
			firstSegment = false
			for (pp.state & 3) != 1 {
				c, err := chunk.next()
				if err != nil {
					return nil, *pos, err
				}
				if err := pp.write(c, &segmentData); err != nil {
					return nil, *pos, err
				}
			}
		}

		for {
			c, err := chunk.next()
			if err != nil {
				return nil, *pos, err
			}
			if err := pp.write(c, &segmentData); err != nil {
				return nil, *pos, err
			}
			if c < 0 {
				break
			}
		}

		segEnd, err := getRequired(data, pos, "segment end marker")
		if err != nil {
			return nil, *pos, err
		}

		var sha1 *[20]byte
		switch segEnd {
		case 254:
			// no hash
		case 253:
			var sum [20]byte
			for k := range sum {
				b, err := getRequired(data, pos, "sha1 byte")
				if err != nil {
					return nil, *pos, err
				}
				sum[k] = b
			}
			sha1 = &sum
		default:
			return nil, *pos, zerr.Corrupt("missing end-of-segment marker")
		}

		logger.Debug("decoded segment",
			zap.Int("block", blockIndex),
			zap.String("file", filename),
			zap.Int("bytes", len(segmentData)),
			zap.Bool("verbose", true),
		)

		segments = append(segments, ExtractedSegment{
			BlockIndex: blockIndex,
			Filename:   filename,
			Comment:    comment,
			Data:       segmentData,
			SHA1:       sha1,
		})
	}

	return segments, *pos, nil
}
