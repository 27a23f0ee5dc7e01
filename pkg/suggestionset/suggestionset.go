// Package suggestionset implements the deduplicating, bounded,
// score-ordered suggestion container described in spec.md §4.5.
package suggestionset

import (
	"sort"
	"strings"

	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// cleanCount mirrors SUG_CLEAN_COUNT(su): the target size after a soft-cap
// sort+truncate.
func cleanCount(maxCount int) int {
	if maxCount < 130 {
		return 150
	}
	return maxCount + 20
}

// maxCount mirrors SUG_MAX_COUNT(su): the size that triggers a soft cap.
func maxCount(userMax int) int {
	return cleanCount(userMax) + 50
}

// Set is the ordered, deduplicating suggestion container. It is not
// goroutine-safe; one Set belongs to one request.
type Set struct {
	records []suggtypes.Record
	index   map[suggtypes.Key]int // Key -> index into records
	banned  func(word string) bool
	userMax int
}

// New creates an empty Set. banned, if non-nil, is consulted on every
// insert; a banned word is dropped immediately (§3 invariant "a word in
// the banned set never appears in the final output").
func New(userMax int, banned func(word string) bool) *Set {
	return &Set{
		index:   make(map[suggtypes.Key]int),
		banned:  banned,
		userMax: userMax,
	}
}

// Add inserts or reconciles rec. If a record with the same (word, orglen)
// already exists, the lower score is kept and the alt-score is reconciled:
// if exactly one side has computed it, the missing half is filled in from
// the other (§4.5 rule 1). Add returns the (possibly tightened) score
// ceiling after an internal soft-cap truncation, or -1 if no truncation
// happened this call.
func (s *Set) Add(rec suggtypes.Record) int {
	if s.banned != nil && s.banned(rec.Word) {
		return -1
	}

	key := rec.Key()
	if i, ok := s.index[key]; ok {
		existing := &s.records[i]
		if rec.Score < existing.Score {
			existing.Score = rec.Score
		}
		switch {
		case rec.HasAlt && !existing.HasAlt:
			existing.AltScore = rec.AltScore
			existing.HasAlt = true
		case rec.HasAlt && existing.HasAlt && rec.AltScore < existing.AltScore:
			existing.AltScore = rec.AltScore
		}
		return -1
	}

	s.index[key] = len(s.records)
	s.records = append(s.records, rec)

	if len(s.records) > maxCount(s.userMax) {
		return s.softCap()
	}
	return -1
}

// softCap sorts and truncates to cleanCount, then returns the score of the
// last kept entry as the new, tighter ceiling callers should search
// against (§4.5 rule 2).
func (s *Set) softCap() int {
	s.sortRecords()
	target := cleanCount(s.userMax)
	if len(s.records) > target {
		s.records = s.records[:target]
	}
	s.reindex()
	if len(s.records) == 0 {
		return -1
	}
	return s.records[len(s.records)-1].Score
}

func (s *Set) reindex() {
	for k := range s.index {
		delete(s.index, k)
	}
	for i, r := range s.records {
		s.index[r.Key()] = i
	}
}

// less orders by (score, altscore, case-insensitive word), matching §3's
// invariant and §4.5 rule 3's final-cleanup order. A record with no
// alt-score yet sorts as if its alt-score were 0 (best case), matching the
// original's behaviour of treating an unset altscore as already-favorable
// until a later rescore pass fills it in.
func less(a, b suggtypes.Record) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	aAlt, bAlt := 0, 0
	if a.HasAlt {
		aAlt = a.AltScore
	}
	if b.HasAlt {
		bAlt = b.AltScore
	}
	if aAlt != bAlt {
		return aAlt < bAlt
	}
	return strings.ToLower(a.Word) < strings.ToLower(b.Word)
}

func (s *Set) sortRecords() {
	sort.SliceStable(s.records, func(i, j int) bool {
		return less(s.records[i], s.records[j])
	})
}

// Finish performs the final cleanup (§4.5 rule 3): sort and truncate to
// limit. limit <= 0 means "no truncation".
func (s *Set) Finish(limit int) []suggtypes.Record {
	s.sortRecords()
	if limit > 0 && len(s.records) > limit {
		return append([]suggtypes.Record(nil), s.records[:limit]...)
	}
	return append([]suggtypes.Record(nil), s.records...)
}

// Rescore directly overwrites the score/alt-score of an already-present
// record, unlike Add's dedup-by-minimum: a rescore pass (§4.6's best-mode
// SoundAlikeScorer pass) recomputes the authoritative combined score once
// and must replace it outright, not merge it with the pre-rescore value.
// It is a no-op if key isn't present.
func (s *Set) Rescore(key suggtypes.Key, score, altScore int) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.records[i].Score = score
	s.records[i].AltScore = altScore
	s.records[i].HasAlt = true
}

// Len reports the current number of distinct records.
func (s *Set) Len() int { return len(s.records) }

// Ceiling returns the current soft score ceiling a caller should search
// against: fallback if the set isn't full yet, or the score of the worst
// kept entry once it is.
func (s *Set) Ceiling(fallback int) int {
	if len(s.records) < cleanCount(s.userMax) {
		return fallback
	}
	worst := s.records[0].Score
	for _, r := range s.records {
		if r.Score > worst {
			worst = r.Score
		}
	}
	return worst
}
