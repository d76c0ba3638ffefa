package codec

import "github.com/zparsgo/zparsgo/internal/zerr"

// decodeLZ77Block reconstructs expectedLen raw bytes from an encoded
// token stream, per spec.md §4.3.
func decodeLZ77Block(input []byte, expectedLen int, opts CompressionOptions) ([]byte, error) {
	out := make([]byte, 0, expectedLen)

	i := 0
	for i < len(input) {
		code := input[i]
		i++
		kind := code >> 6
		low := int(code & 0x3f)

		if kind == 0 {
			litLen := low + 1
			if i+litLen > len(input) {
				return nil, zerr.Corrupt("literal run exceeds input")
			}
			out = append(out, input[i:i+litLen]...)
			i += litLen
			continue
		}

		offBytes := int(kind) + 1
		if i+offBytes > len(input) {
			return nil, zerr.Corrupt("offset exceeds input")
		}

		offM1 := 0
		for k := 0; k < offBytes; k++ {
			offM1 = (offM1 << 8) | int(input[i])
			i++
		}
		off := offM1 + 1
		length := low + opts.MinMatch

		if off == 0 || off > len(out) {
			return nil, zerr.Corrupt("invalid match offset")
		}

		start := len(out) - off
		for j := 0; j < length; j++ {
			out = append(out, out[start+j])
		}
	}

	if len(out) != expectedLen {
		return nil, zerr.Corrupt("decoded size mismatch")
	}

	return out, nil
}
