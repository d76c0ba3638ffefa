// Package zpaq locates ZPAQ archive blocks by their fixed 16-byte
// magic tag, parses the ZPAQL header, and extracts segment payloads
// for unmodeled (-m0) blocks. It is read-only and does not execute
// ZPAQL programs. See spec.md §4.4-4.5.
package zpaq

import "strings"

// BlockHeader is the parsed, validated header of one ZPAQ block.
type BlockHeader struct {
	StartOffset   int
	Level         uint8
	ZpaqlType     uint8
	Hsize         uint16
	Hh            uint8
	Hm            uint8
	Ph            uint8
	Pm            uint8
	NComponents   uint8
	CompBytes     int
	HcompBytes    int
	SegmentOffset int
}

// ExtractedSegment is one decoded segment payload from an unmodeled
// block.
type ExtractedSegment struct {
	BlockIndex int
	Filename   string
	Comment    string
	Data       []byte
	SHA1       *[20]byte
}

// lossyUTF8 decodes raw bytes as UTF-8, replacing invalid sequences
// with the Unicode replacement character, per spec.md §9's note that
// filenames/comments may not be valid UTF-8.
func lossyUTF8(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}
