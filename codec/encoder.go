package codec

// encodeLZ77Block runs the match search over one raw block and
// returns the encoded token stream, per spec.md §4.2. The caller
// (Compress, in stream.go) logs one record per block once this
// returns, mirroring where codec.rs's debug! call sits relative to
// encode_lz77_block.
func encodeLZ77Block(input []byte, opts CompressionOptions) []byte {
	out := make([]byte, 0, len(input)/2+16)

	primary := newHashTable(opts.TableLog)
	var secondary *hashTable
	if opts.SecondaryMatch > 0 {
		secondary = newHashTable(opts.TableLog)
	}

	ctx := searchContext{minMatch: opts.MinMatch, bucket: opts.bucket()}

	i := 0
	litStart := 0
	for i < len(input) {
		bestLen, bestOff := 0, 0

		if i+opts.MinMatch <= len(input) {
			if secondary != nil && i+opts.SecondaryMatch <= len(input) {
				h := hashSlice(input[i : i+opts.SecondaryMatch])
				searchCandidates(input, i, &bestLen, &bestOff, secondary, h, ctx)
			}
			h := hashSlice(input[i : i+opts.MinMatch])
			searchCandidates(input, i, &bestLen, &bestOff, primary, h, ctx)
		}

		emitMatch := false
		if bestOff != 0 {
			extra := 0
			if bestOff >= (1 << 16) {
				extra++
			}
			if bestOff >= (1 << 24) {
				extra++
			}
			emitMatch = bestLen >= opts.MinMatch+extra
		}

		if emitMatch {
			emitLiterals(&out, input[litStart:i])
			emitMatchTokens(&out, bestLen, bestOff, opts.MinMatch)

			end := i + bestLen
			if end > len(input) {
				end = len(input)
			}
			for p := i; p < end; p++ {
				updateTables(input, p, opts, primary, secondary)
			}
			i += bestLen
			litStart = i
		} else {
			updateTables(input, i, opts, primary, secondary)
			i++
		}
	}

	if litStart < len(input) {
		emitLiterals(&out, input[litStart:])
	}

	return out
}

// emitLiterals flushes literals in chunks of at most 64 bytes, each
// preceded by a `00` lead byte whose low 6 bits encode len-1.
func emitLiterals(out *[]byte, literals []byte) {
	i := 0
	for i < len(literals) {
		chunk := len(literals) - i
		if chunk > 64 {
			chunk = 64
		}
		*out = append(*out, byte(chunk-1))
		*out = append(*out, literals[i:i+chunk]...)
		i += chunk
	}
}

// emitMatchTokens splits len into one or more tokens sharing the same
// offset, per spec.md §4.2's long-match tokenization rule, and encodes
// each as a lead byte (kind<<6 | (tokenLen-minMatch)) followed by
// kind+1 big-endian bytes of off-1.
func emitMatchTokens(out *[]byte, length, off, minMatch int) {
	offM1 := off - 1
	var offBytes int
	switch {
	case offM1 < (1 << 16):
		offBytes = 2
	case offM1 < (1 << 24):
		offBytes = 3
	default:
		offBytes = 4
	}

	for length > 0 {
		var tokenLen int
		switch {
		case length > minMatch*2+63:
			tokenLen = minMatch + 63
		case length > minMatch+63:
			tokenLen = length - minMatch
		default:
			tokenLen = length
		}

		code := byte(offBytes-1)<<6 | byte(tokenLen-minMatch)&0x3f
		*out = append(*out, code)

		for shift := offBytes - 1; shift >= 0; shift-- {
			*out = append(*out, byte(offM1>>(shift*8)))
		}

		length -= tokenLen
	}
}
