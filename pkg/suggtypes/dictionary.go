package suggtypes

// RepRule is one REP (or REPSAL) replacement: "from" text, if found at the
// current search position, may be swapped for "to" at ScoreRep cost.
type RepRule struct {
	From string
	To   string
}

// RepTable is a REP/REPSAL list sorted so that rules sharing a first byte
// are adjacent, plus the 256-entry first-byte index §6 specifies.
type RepTable struct {
	Rules     []RepRule
	FirstByte [256]int // index of the first rule whose From starts with this byte, -1 if none
}

// NewRepTable builds the first-byte index from an already-sorted rule list.
// Callers (dictionary loaders, out of scope for this engine) are expected
// to have grouped rules by first byte before constructing this.
func NewRepTable(rules []RepRule) *RepTable {
	t := &RepTable{Rules: rules}
	for i := range t.FirstByte {
		t.FirstByte[i] = -1
	}
	for i, r := range rules {
		if len(r.From) == 0 {
			continue
		}
		b := r.From[0]
		if t.FirstByte[b] == -1 {
			t.FirstByte[b] = i
		}
	}
	return t
}

// MatchAt returns every rule whose From is a prefix of s starting at
// position pos, longest-prefix-first not guaranteed (callers try all).
func (t *RepTable) MatchAt(s string, pos int) []RepRule {
	if t == nil || pos >= len(s) {
		return nil
	}
	start := t.FirstByte[s[pos]]
	if start < 0 {
		return nil
	}
	var out []RepRule
	for i := start; i < len(t.Rules); i++ {
		r := t.Rules[i]
		if len(r.From) == 0 || r.From[0] != s[pos] {
			if i > start {
				break
			}
			continue
		}
		if pos+len(r.From) <= len(s) && s[pos:pos+len(r.From)] == r.From {
			out = append(out, r)
		}
	}
	return out
}

// MapClasses holds MAP equivalence classes: sets of characters declared
// "similar" for reduced substitution cost. classOfByte covers members below
// rune 256; classOfRune covers the rest via a hashtable, per §6's "per-byte
// array plus hashtable for multi-byte keys".
type MapClasses struct {
	classOfByte [256]int8 // -1 if not in any class
	classOfRune map[rune]int
	numClasses  int
}

// NewMapClasses builds the lookup tables from a list of equivalence
// classes, each a string of characters considered mutually similar.
func NewMapClasses(classes []string) *MapClasses {
	m := &MapClasses{classOfRune: make(map[rune]int)}
	for i := range m.classOfByte {
		m.classOfByte[i] = -1
	}
	for idx, class := range classes {
		for _, r := range class {
			if r < 256 {
				m.classOfByte[r] = int8(idx)
			} else {
				m.classOfRune[r] = idx
			}
		}
	}
	m.numClasses = len(classes)
	return m
}

// Similar reports whether a and b belong to the same MAP class.
func (m *MapClasses) Similar(a, b rune) bool {
	if m == nil || m.numClasses == 0 {
		return false
	}
	ca, oka := m.classIndex(a)
	cb, okb := m.classIndex(b)
	return oka && okb && ca == cb
}

func (m *MapClasses) classIndex(r rune) (int, bool) {
	if r < 256 {
		c := m.classOfByte[r]
		if c < 0 {
			return 0, false
		}
		return int(c), true
	}
	c, ok := m.classOfRune[r]
	return c, ok
}

// CompoundRules describes the compounding/splitting constraints for one
// language (§3 "compound rules and constraints").
type CompoundRules struct {
	MinLength     int
	MinSyllables  int
	MaxPieces     int
	StartFlags    map[byte]bool
	AllFlags      map[byte]bool
	NoBreak       bool
	NoSplitSugs   bool
	NoCompoundSugs bool

	// MatchRule reports whether the accumulated compound-flag string is
	// accepted by the language's COMPOUNDRULE pattern engine. A nil
	// MatchRule means "no rules defined", which accepts any flag
	// sequence that otherwise satisfies Start/All flags (§4.3.3).
	MatchRule func(accumFlags []byte) bool

	// CheckPattern vetoes an otherwise-legal join (CHECKCOMPOUNDPATTERN).
	// A nil CheckPattern never vetoes.
	CheckPattern func(left, right string) bool
}

// Accepts reports whether piece may start (isFirst) or continue a compound,
// and whether the accumulated flags satisfy MatchRule.
func (c *CompoundRules) Accepts(flag byte, isFirst bool, accumFlags []byte) bool {
	if c == nil {
		return false
	}
	if isFirst {
		if !c.StartFlags[flag] {
			return false
		}
	} else if !c.AllFlags[flag] {
		return false
	}
	if c.MatchRule != nil {
		return c.MatchRule(accumFlags)
	}
	return true
}

// Dictionary is the narrow, read-only interface the walker and sound-fold
// search consume (§6). Out of scope: how it gets built (affix/.spl
// parsing) — only how it is queried.
type Dictionary struct {
	Name string

	Fold   Trie // primary case-folded lookup
	Keep   Trie // exact-case words
	Prefix Trie // postponed prefixes
	Sound  Trie // sound-fold trie

	Rep    *RepTable
	RepSal *RepTable
	Map    *MapClasses
	Adjacency *MapClasses // optional keyboard-adjacency classes, SPEC_FULL.md §D.5

	Compound *CompoundRules

	// SugBuf returns the n-th phonetic sugbuf line as the original word
	// ordinals sharing that phonetic form, already decoded from the line's
	// delta encoding; callers pass each value straight to SpellWord (§3,
	// §4.4).
	SugBuf func(n int) ([]int, bool)

	// SoundFoldFind looks up the sugbuf line ordinal for an already
	// sound-folded string (§4.4 "soundfold_find(phonetic) -> ordinal").
	SoundFoldFind func(phonetic string) (int, bool)

	// WordCount returns the observed frequency of word, and whether it is
	// present at all (§6 "word_count(word) -> nonneg int or absent").
	WordCount func(word string) (int, bool)

	// SoundFold computes the phonetic form of word using this language's
	// SAL rules (§6 "sound_fold(lang, word) -> phonetic").
	SoundFold func(word string) string

	// SpellWord reconstructs the n-th word of the fold-case trie by
	// counting terminal words, used to expand a sound-fold match back to
	// spellings (§4.4).
	SpellWord func(ordinal int) (string, bool)
}
