package suggtypes

// Record is one suggestion candidate (§3 "Suggestion record").
type Record struct {
	Word    string
	OrgLen  int // length of bad-word text this suggestion replaces
	Score   int // primary score, lower is better
	AltScore int // secondary (sound-alike or phonetic-edit) score
	HasAlt  bool
	Lang    string
	Phonetic bool // true if this suggestion originated from SoundFoldSearch
}

// Key identifies a record for dedup purposes: same spelling with a
// different replacement length is a distinct suggestion (§9).
type Key struct {
	Word   string
	OrgLen int
}

// Key returns r's dedup key.
func (r Record) Key() Key {
	return Key{Word: r.Word, OrgLen: r.OrgLen}
}
