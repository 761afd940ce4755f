package partition

import "strings"

// Format renders p in the canonical string grammar of spec.md §6:
//
//	partition := "[" [ block ("," block)* ] "]"
//	block     := "[" element ("," element)+ "]" | "[" element "]"
//
// Block and element ordering is unspecified; any order that round-trips
// through Parse is acceptable.
func Format[T comparable](p Partition[T], stringify func(T) string) string {
	blocks := p.Subsets().Blocks()
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		items := b.Items()
		tokens := make([]string, len(items))
		for i, t := range items {
			tokens[i] = stringify(t)
		}
		parts = append(parts, "["+strings.Join(tokens, ",")+"]")
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Parse reads the canonical partition grammar and returns an
// ImmutablePartition. Tokenisation is hand-rolled bracket/comma
// scanning (spec.md §9: "tokenise by scanning bracket and comma
// characters"); whitespace anywhere outside element tokens is stripped
// first and then ignored. deserialize converts each element token to a
// T; its error is propagated unchanged. Parse rejects with ArgInvalid on
// any structural anomaly: missing/unmatched brackets, an empty block, an
// empty element token, a duplicate element within a block, or a
// duplicate element across blocks.
func Parse[T comparable](s string, deserialize func(string) (T, error)) (*ImmutablePartition[T], error) {
	const op = "Parse"
	if deserialize == nil {
		return nil, newErr(NullArg, op, "deserialize is nil")
	}

	stripped := stripWhitespace(s)
	if len(stripped) < 2 || stripped[0] != '[' || stripped[len(stripped)-1] != ']' {
		return nil, newErr(ArgInvalid, op, "missing or unmatched outer brackets in %q", s)
	}
	inner := stripped[1 : len(stripped)-1]

	var blockTokens []string
	if len(inner) > 0 {
		var err error
		blockTokens, err = splitTopLevel(op, inner)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[T]struct{})
	blocks := make([][]T, 0, len(blockTokens))
	for _, bt := range blockTokens {
		if len(bt) < 2 || bt[0] != '[' || bt[len(bt)-1] != ']' {
			return nil, newErr(ArgInvalid, op, "malformed block %q", bt)
		}
		elemStr := bt[1 : len(bt)-1]
		if elemStr == "" {
			return nil, newErr(ArgInvalid, op, "empty block %q", bt)
		}

		tokens := strings.Split(elemStr, ",")
		blockSeen := make(map[T]struct{}, len(tokens))
		items := make([]T, 0, len(tokens))
		for _, tok := range tokens {
			if tok == "" {
				return nil, newErr(ArgInvalid, op, "empty element token in block %q", bt)
			}
			t, err := deserialize(tok)
			if err != nil {
				return nil, err
			}
			if _, ok := blockSeen[t]; ok {
				return nil, newErr(ArgInvalid, op, "duplicate element %v within a block", t)
			}
			blockSeen[t] = struct{}{}
			if _, ok := seen[t]; ok {
				return nil, newErr(ArgInvalid, op, "duplicate element %v across blocks", t)
			}
			seen[t] = struct{}{}
			items = append(items, t)
		}
		blocks = append(blocks, items)
	}

	return buildImmutableFromBlocks[T](blocks), nil
}

// stripWhitespace removes the ASCII whitespace characters (space, tab,
// newline, carriage return, vertical tab, form feed); other Unicode space
// characters are kept. Valid element
// tokens can never contain whitespace (spec.md §6), so this is always
// safe as a preprocessing step.
func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitTopLevel splits s into its top-level bracketed block substrings,
// rejecting unmatched brackets, stray characters outside any block, and
// malformed separators (leading/trailing/doubled commas) between blocks.
func splitTopLevel(op, s string) ([]string, error) {
	var tokens []string
	depth := 0
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '[':
			if depth == 0 {
				start = i
			}
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, newErr(ArgInvalid, op, "unmatched ']' in %q", s)
			}
			if depth == 0 {
				tokens = append(tokens, s[start:i+1])
			}
		case depth == 0 && c != ',':
			return nil, newErr(ArgInvalid, op, "stray character %q outside a block", string(c))
		}
	}
	if depth != 0 {
		return nil, newErr(ArgInvalid, op, "unmatched '[' in %q", s)
	}
	if strings.Join(tokens, ",") != s {
		return nil, newErr(ArgInvalid, op, "malformed block separators in %q", s)
	}
	return tokens, nil
}

// buildImmutableFromBlocks constructs an ImmutablePartition directly from
// already-grouped blocks, used by Parse once tokenisation has produced
// the element groups.
func buildImmutableFromBlocks[T comparable](blocks [][]T) *ImmutablePartition[T] {
	out := &ImmutablePartition[T]{
		blocks:  make([]*immBlock[T], 0, len(blocks)),
		blockOf: make(map[T]*immBlock[T]),
	}
	for _, items := range blocks {
		ib := newImmBlock(items)
		out.blocks = append(out.blocks, ib)
		for _, t := range items {
			out.blockOf[t] = ib
		}
	}
	return out
}
