package zpaq

import "bytes"

// testSegment describes one segment to embed in a hand-built archive.
type testSegment struct {
	filename string
	comment  string
	content  []byte
	sha1     *[20]byte

	// primingPrefix, when set, replaces the default single pass-through
	// type byte (0) written ahead of the first segment's payload in a
	// block. Use it to select the postprocessor's program branch
	// (type byte 1, followed by a little-endian size and that many
	// body bytes) instead of pass-through.
	primingPrefix []byte
}

// buildUnmodeledBlock hand-assembles one unmodeled (n_components == 0)
// ZPAQ block containing the given segments, mirroring the layout
// parseBlockHeader/extractBlockSegments expect.
func buildUnmodeledBlock(segments []testSegment) []byte {
	var buf bytes.Buffer

	buf.Write(shortStartTag[:])
	buf.WriteString("zPQ")

	buf.WriteByte(1) // level
	buf.WriteByte(1) // zpaql_type

	hcompEnd := []byte{0}
	header := []byte{0, 0, 0, 0, 0, 0} // hh, hm, ph, pm, n_components=0, COMP END
	header = append(header, hcompEnd...)
	hsize := uint16(len(header))
	buf.WriteByte(byte(hsize))
	buf.WriteByte(byte(hsize >> 8))
	buf.Write(header)

	for idx, seg := range segments {
		buf.WriteByte(1) // segment marker
		buf.WriteString(seg.filename)
		buf.WriteByte(0)
		buf.WriteString(seg.comment)
		buf.WriteByte(0)
		buf.WriteByte(0) // reserved

		var chunk bytes.Buffer
		if idx == 0 {
			if seg.primingPrefix != nil {
				chunk.Write(seg.primingPrefix)
			} else {
				chunk.WriteByte(0) // pp type: pass-through
			}
		}
		chunk.Write(seg.content)
		writeChunkedPayload(&buf, chunk.Bytes())

		if seg.sha1 != nil {
			buf.WriteByte(253)
			buf.Write(seg.sha1[:])
		} else {
			buf.WriteByte(254)
		}
	}

	buf.WriteByte(255) // end of block

	return buf.Bytes()
}

// buildModeledBlockHeader hand-assembles a minimal but structurally
// valid modeled block (n_components == 1, one type-1 COMP entry) with
// no segments, enough to exercise the NComponents != 0 rejection path
// in extractBlockSegments's caller without needing a real model.
func buildModeledBlockHeader() []byte {
	var buf bytes.Buffer

	buf.Write(shortStartTag[:])
	buf.WriteString("zPQ")

	buf.WriteByte(1) // level
	buf.WriteByte(1) // zpaql_type

	header := []byte{
		0, 0, 0, 0, // hh, hm, ph, pm
		1,    // n_components = 1
		1, 0, // COMP entry: type=1 (compSize[1] == 2), one extra byte
		0, // COMP END
		0, // HCOMP END
	}
	hsize := uint16(len(header))
	buf.WriteByte(byte(hsize))
	buf.WriteByte(byte(hsize >> 8))
	buf.Write(header)

	return buf.Bytes()
}

func writeChunkedPayload(buf *bytes.Buffer, payload []byte) {
	var lenBuf [4]byte
	n := uint32(len(payload))
	lenBuf[0] = byte(n >> 24)
	lenBuf[1] = byte(n >> 16)
	lenBuf[2] = byte(n >> 8)
	lenBuf[3] = byte(n)
	buf.Write(lenBuf[:])
	buf.Write(payload)
	buf.Write([]byte{0, 0, 0, 0})
}
