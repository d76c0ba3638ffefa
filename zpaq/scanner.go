package zpaq

import (
	"bytes"
	"os"

	"go.uber.org/zap"

	"github.com/zparsgo/zparsgo/internal/zerr"
)

// shortStartTag is the first 13 bytes of the 16-byte ZPAQ block magic.
var shortStartTag = [13]byte{
	0x37, 0x6b, 0x53, 0x74, 0xa0, 0x31, 0x83, 0xd3, 0x8c, 0xb2, 0x28, 0xb0, 0xd3,
}

// magic16 is the full 16-byte ZPAQ block tag: the short start tag
// followed by ASCII "zPQ".
var magic16 = append(append([]byte{}, shortStartTag[:]...), 'z', 'P', 'Q')

// compSize maps a COMP component type byte to its encoded size in
// bytes; type 0 is reserved (invalid), per spec.md §4.4 step 5.
var compSize = [10]int{0, 2, 3, 2, 3, 4, 6, 6, 3, 5}

// InspectFile reads path and scans it for ZPAQ block headers.
func InspectFile(path string, logger *zap.Logger) ([]BlockHeader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Io(err)
	}
	return InspectBytes(data, logger)
}

// InspectBytes scans data for ZPAQ block headers, tolerating arbitrary
// leading or interleaved noise. Per spec.md §4.4, a candidate whose
// first 13 bytes match the short tag is parsed strictly: structural
// defects there raise Corrupt rather than being skipped.
func InspectBytes(data []byte, logger *zap.Logger) ([]BlockHeader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var out []BlockHeader
	i := 0
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

		logger.Debug("zpaq block header",
			zap.Int("offset", header.StartOffset),
			zap.Uint8("level", header.Level),
			zap.Uint16("hsize", header.Hsize),
			zap.Uint8("n_components", header.NComponents),
		)

		out = append(out, *header)
		i = at + consumed
	}
	return out, nil
}

// parseBlockHeader validates the header candidate at at (already known
// to start with magic16); it returns (nil, 0, nil) when the candidate
// should be skipped rather than treated as a Corrupt error, per
// spec.md §4.4 steps 1-2.
func parseBlockHeader(data []byte, at int) (*BlockHeader, int, error) {
	if at+len(magic16)+2 > len(data) {
		return nil, 0, nil
	}
	if !bytes.Equal(data[at:at+len(shortStartTag)], shortStartTag[:]) {
		return nil, 0, nil
	}

	p := at + len(magic16)
	level := data[p]
	p++
	if level != 1 && level != 2 {
		return nil, 0, nil
	}

	zpaqlType := data[p]
	p++
	if zpaqlType != 1 {
		return nil, 0, nil
	}

	if p+7 > len(data) {
		return nil, 0, zerr.Corrupt("truncated ZPAQL header prefix")
	}

	hsize := uint16(data[p]) | uint16(data[p+1])<<8
	hh, hm, ph, pm, nComponents := data[p+2], data[p+3], data[p+4], data[p+5], data[p+6]

	headerStart := p
	headerTotal := int(hsize) + 2
	if headerStart+headerTotal > len(data) {
		return nil, 0, zerr.Corrupt("truncated ZPAQL header")
	}

	cp := headerStart + 7
	for c := 0; c < int(nComponents); c++ {
		if cp >= headerStart+headerTotal {
			return nil, 0, zerr.Corrupt("COMP overflows header")
		}
		t := int(data[cp])
		if t >= len(compSize) || compSize[t] == 0 {
			return nil, 0, zerr.Corrupt("invalid component type")
		}
		sz := compSize[t]
		if cp+sz > headerStart+headerTotal {
			return nil, 0, zerr.Corrupt("component overflows header")
		}
		cp += sz
	}

	if cp >= headerStart+headerTotal || data[cp] != 0 {
		return nil, 0, zerr.Corrupt("missing COMP END")
	}
	cp++

	compBytes := cp - (headerStart + 2)
	if compBytes > int(hsize) {
		return nil, 0, zerr.Corrupt("invalid hsize/COMP layout")
	}

	hcompBytes := int(hsize) - compBytes
	if hcompBytes == 0 {
		return nil, 0, zerr.Corrupt("missing HCOMP")
	}
	if data[headerStart+headerTotal-1] != 0 {
		return nil, 0, zerr.Corrupt("missing HCOMP END")
	}

	segmentOffset := headerStart + headerTotal
	consumed := segmentOffset - at
	if consumed < 1 {
		consumed = 1
	}

	return &BlockHeader{
		StartOffset:   at,
		Level:         level,
		ZpaqlType:     zpaqlType,
		Hsize:         hsize,
		Hh:            hh,
		Hm:            hm,
		Ph:            ph,
		Pm:            pm,
		NComponents:   nComponents,
		CompBytes:     compBytes,
		HcompBytes:    hcompBytes,
		SegmentOffset: segmentOffset,
	}, consumed, nil
}
