package suggtypes

// CapFlags classifies the capitalization pattern of a word, computed from
// its original (non-folded) bytes. §3 "Bad-word context".
type CapFlags uint8

const (
	// CapNone is plain lowercase.
	CapNone CapFlags = iota
	// CapOne is "First letter capital, rest lowercase".
	CapOne
	// CapAll is "ALL CAPITALS".
	CapAll
	// CapKeep means the word must match a dictionary entry's exact stored
	// case (consulted via the keep-case trie).
	CapKeep
	// CapMix is an irregular pattern like "MacDonald" that doesn't fit any
	// of the above; no single "obviously correct" case exists, so ApplyCaps
	// leaves a word unchanged for it. The keep-case penalty (ScoreICase for
	// a KeepCase word) still applies to a CapMix bad word (§D.3).
	CapMix
)

// WordFlags packs the per-terminal-variant metadata the dictionary trie's
// idxs[] array stores for a NUL (terminal) child byte. §3.
type WordFlags struct {
	Rare         bool
	RegionMask   uint16
	KeepCase     bool
	NeedCompound bool
	Banned       bool
	NoSuggest    bool
	CompoundFlag byte // top octet of the packed flag word
	PrefixID     int  // prefix id bits
}

// CaptypeOf classifies word using the same rules the original affix-file
// case detector uses: first-letter-only, all-caps, or mixed. This is the
// default implementation of the "captype" external primitive (§6); hosts
// embedding this engine may supply a locale-aware one instead.
func CaptypeOf(word string) CapFlags {
	runes := []rune(word)
	if len(runes) == 0 {
		return CapNone
	}

	hasUpper, hasLower := false, false
	for _, r := range runes {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
		} else if r >= 'a' && r <= 'z' {
			hasLower = true
		}
	}

	switch {
	case hasUpper && !hasLower:
		return CapAll
	case !hasUpper:
		return CapNone
	}

	firstUpper := runes[0] >= 'A' && runes[0] <= 'Z'
	if !firstUpper {
		// Lowercase start with an uppercase letter later: irregular.
		return CapMix
	}
	for _, r := range runes[1:] {
		if r >= 'A' && r <= 'Z' {
			return CapMix
		}
	}
	return CapOne
}

// ApplyCaps re-applies a caps pattern to a folded (lowercase) word, mirroring
// the teacher's ApplyCapitalization but driven by CapFlags instead of a
// position bitmap, since the engine tracks whole-word case classes rather
// than per-position capitals (the per-position bitmap lives in the
// completion-only ambient layer, not this scorer).
func ApplyCaps(folded string, caps CapFlags) string {
	runes := []rune(folded)
	switch caps {
	case CapAll:
		for i, r := range runes {
			if r >= 'a' && r <= 'z' {
				runes[i] = r - 'a' + 'A'
			}
		}
	case CapOne:
		if len(runes) > 0 && runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] = runes[0] - 'a' + 'A'
		}
	}
	return string(runes)
}
