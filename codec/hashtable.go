package codec

// hashTable is a flat slot array keyed by a rolling hash. Each slot
// stores position+1 so that 0 unambiguously means "empty" (the
// teacher's HCMatcher.hashTable uses the same position+1 convention in
// compress/hc.go, there to distinguish "never inserted" from position
// 0; generalized here to the spec's XOR-bucket probing scheme instead
// of a hash-chain linked list).
type hashTable struct {
	slots []uint32
	mask  int
}

func newHashTable(tableLog uint8) *hashTable {
	size := 1 << tableLog
	return &hashTable{slots: make([]uint32, size), mask: size - 1}
}

func (t *hashTable) reset() {
	for i := range t.slots {
		t.slots[i] = 0
	}
}

func (t *hashTable) insert(hash uint32, pos int) {
	t.slots[int(hash)&t.mask] = uint32(pos) + 1
}

// probe returns the stored position at bucket index k for hash, and
// whether the slot was occupied.
func (t *hashTable) probe(hash uint32, k int) (pos int, ok bool) {
	v := t.slots[(int(hash)^k)&t.mask]
	if v == 0 {
		return 0, false
	}
	return int(v) - 1, true
}

// hashSlice computes the byte-wise multiply-xor-shift mix from
// spec.md §4.2: seed with the golden-ratio constant, then for each
// byte b: x ^= b; x = x * 0x85EBCA6B; x ^= x >> 13 (u32 wrapping).
func hashSlice(s []byte) uint32 {
	x := uint32(0x9E3779B9)
	for _, b := range s {
		x ^= uint32(b)
		x *= 0x85EBCA6B
		x ^= x >> 13
	}
	return x
}

// searchContext bundles the parameters every candidate probe needs.
type searchContext struct {
	minMatch int
	bucket   int
}

// searchCandidates probes bucket slots of table for hash, updating
// bestLen/bestOff with the longest match (ties broken toward the
// smaller offset), per spec.md §4.2 steps 2-4. Search stops early once
// bestLen reaches minMatch+63.
func searchCandidates(input []byte, i int, bestLen, bestOff *int, table *hashTable, hash uint32, ctx searchContext) {
	for k := 0; k <= ctx.bucket; k++ {
		p, ok := table.probe(hash, k)
		if !ok || p >= i {
			continue
		}

		off := i - p
		if off > (1<<24)-1 {
			continue
		}

		max := len(input) - i
		if capLen := 255 + ctx.minMatch; capLen < max {
			max = capLen
		}
		length := 0
		for length < max && input[p+length] == input[i+length] {
			length++
		}

		if length > *bestLen || (length == *bestLen && off < *bestOff) {
			*bestLen = length
			*bestOff = off
		}

		if *bestLen >= ctx.minMatch+63 {
			return
		}
	}
}

// updateTables records position pos in the primary table (and the
// secondary table, when enabled) per spec.md §4.2: "update hash tables
// for position i only" on skip, or for every covered position on emit.
func updateTables(input []byte, pos int, opts CompressionOptions, primary, secondary *hashTable) {
	if pos+opts.MinMatch <= len(input) {
		primary.insert(hashSlice(input[pos:pos+opts.MinMatch]), pos)
	}
	if secondary != nil && opts.SecondaryMatch > 0 && pos+opts.SecondaryMatch <= len(input) {
		secondary.insert(hashSlice(input[pos:pos+opts.SecondaryMatch]), pos)
	}
}
