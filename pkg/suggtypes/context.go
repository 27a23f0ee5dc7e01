package suggtypes

import mapset "github.com/deckarep/golang-set/v2"

// BadWordContext is the per-request state §3 describes: the word being
// corrected, its derived forms, and the bookkeeping that tracks what has
// already been banned or suggested.
type BadWordContext struct {
	// Original holds the untouched bytes from the caller; ByteLen and
	// RuneLen record its length in bytes and in runes. The walker and the
	// scorers index Folded by byte and do not read RuneLen; ByteLen is the
	// OrgLen of every suggestion (SPEC_FULL.md §D.2).
	Original string
	ByteLen  int
	RuneLen  int

	Folded     string // case-folded copy used for all trie walking
	Caps       CapFlags
	SoundFold  string // sound-folded form in the default language

	Banned mapset.Set[string] // insertion-only for the life of this request

	MaxSuggestions int
	WordCeiling    int // dynamic score ceiling, tightened by SuggestionSet
	SoundCeiling   int // sound-fold score ceiling

	// RegionMask is the caller-supplied active region bitmask (§4.3.3 step
	// 4 / §6). Region/locale detection itself is out of scope for this
	// package; this field only lets a host that already knows its region
	// pass the bit through so a dictionary word's own WordFlags.RegionMask
	// can be compared against it. Zero disables the region penalty.
	RegionMask uint16
}

// NewBadWordContext builds a context from an already case-folded/caps-typed
// word; callers that own the Dictionary's casefold/captype/sound_fold
// primitives are expected to have produced folded/caps/soundFold already
// (§6 lists these as external collaborators, out of scope for this
// package).
func NewBadWordContext(original, folded string, caps CapFlags, soundFold string, maxSuggestions int) *BadWordContext {
	return &BadWordContext{
		Original:       original,
		ByteLen:        len(original),
		RuneLen:        len([]rune(original)),
		Folded:         folded,
		Caps:           caps,
		SoundFold:      soundFold,
		Banned:         mapset.NewSet[string](),
		MaxSuggestions: maxSuggestions,
		WordCeiling:    ScoreMaxInit,
		SoundCeiling:   ScoreSFMax3,
	}
}

// Ban adds word to the request-scoped banned set. A banned word never
// appears in the final output (§3 invariant).
func (b *BadWordContext) Ban(word string) {
	b.Banned.Add(word)
}

// IsBanned reports whether word has been banned during this request.
func (b *BadWordContext) IsBanned(word string) bool {
	return b.Banned.Contains(word)
}

// ErrWouldOverflow describes a construction that would need a byte offset
// beyond the tracked word bounds. No code path in this module returns it;
// the walker instead stops a search path once it reaches MaxWLen depth.
// See SPEC_FULL.md §D.2.
var ErrWouldOverflow = errOverflow{}

type errOverflow struct{}

func (errOverflow) Error() string { return "construction exceeds tracked word bounds" }
