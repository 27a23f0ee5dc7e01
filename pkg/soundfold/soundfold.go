// Package soundfold implements SoundFoldSearch (spec.md §4.4): a second
// pass over the dictionary's phonetic trie that catches corrections whose
// spelling is far from the bad word but whose pronunciation is close.
package soundfold

import (
	"context"

	"github.com/oldhand-spell/spellsuggest/pkg/editscore"
	"github.com/oldhand-spell/spellsuggest/pkg/suggestionset"
	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
	"github.com/oldhand-spell/spellsuggest/pkg/walker"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/oldhand-spell/spellsuggest/internal/fastdist"
)

// Searcher runs SoundFoldSearch against one dictionary.
type Searcher struct {
	dict   *suggtypes.Dictionary
	scorer *editscore.Scorer
}

// New builds a Searcher. scorer computes the precise weighted edit
// distance between a bad word's spelling and a phonetically-matched
// candidate's spelling, after fastdist's cheap pre-filter passes.
func New(dict *suggtypes.Dictionary, scorer *editscore.Scorer) *Searcher {
	return &Searcher{dict: dict, scorer: scorer}
}

// minWeightedCost is the cheapest possible weighted edit an edlib distance
// unit could represent, used to convert its uniform-cost lower bound into
// this engine's cost scale (see internal/fastdist).
const minWeightedCost = suggtypes.ScoreSimilar

// Search walks the sound-fold trie for phonetic matches to bw, expands
// each match to its real spellings via SugBuf/SpellWord, and pushes a
// rescored record for every spelling that survives the fastdist
// pre-filter and the exact bounded scorer. done tracks phonetic forms
// already explored across calls within one request (§4.3.5 / SPEC_FULL.md
// §D.1's sl_sounddone hashtable), so repeated prefixes from earlier
// ceiling tiers are not rescored.
func (s *Searcher) Search(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, done mapset.Set[string]) error {
	if s.dict == nil || s.dict.Sound == nil || s.dict.SoundFold == nil {
		return nil
	}

	soundDict := &suggtypes.Dictionary{
		Fold: s.dict.Sound,
		Map:  s.dict.Map,
		// REPSAL, not REP: §4.4 runs the phonetic walk with its own
		// soundfold-specific replacement table, since a spelling-level
		// REP rule rarely makes sense against a phonetic form.
		Rep: s.dict.RepSal,
	}
	sw := walker.New(soundDict)

	soundBW := suggtypes.NewBadWordContext(bw.Original, bw.SoundFold, bw.Caps, "", bw.MaxSuggestions)

	for _, ceiling := range []int{suggtypes.ScoreSFMax1, suggtypes.ScoreSFMax2, suggtypes.ScoreSFMax3} {
		if ceiling > bw.SoundCeiling {
			break
		}
		soundBW.WordCeiling = ceiling

		phoneticHits := suggestionset.New(bw.MaxSuggestions, nil)
		if err := sw.Search(ctx, soundBW, phoneticHits); err != nil {
			return err
		}

		for _, hit := range phoneticHits.Finish(0) {
			if done.Contains(hit.Word) {
				continue
			}
			done.Add(hit.Word)

			if err := s.expandAndScore(ctx, bw, set, hit); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookupFlags walks t from its root by word's bytes and returns the
// terminal's WordFlags, if word is actually a word in t.
func lookupFlags(t suggtypes.Trie, word string) (suggtypes.WordFlags, bool) {
	if t == nil {
		return suggtypes.WordFlags{}, false
	}
	node := t.Root()
	for i := 0; i < len(word); i++ {
		child, ok := t.Child(node, word[i])
		if !ok {
			return suggtypes.WordFlags{}, false
		}
		node = child
	}
	return t.Terminal(node)
}

// expandAndScore maps one phonetic hit back to its real spellings and
// scores each against the bad word's case-folded spelling (bw.Folded).
func (s *Searcher) expandAndScore(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, hit suggtypes.Record) error {
	if s.dict.SoundFoldFind == nil || s.dict.SugBuf == nil || s.dict.SpellWord == nil {
		return nil
	}
	lineNo, ok := s.dict.SoundFoldFind(hit.Word)
	if !ok {
		// §9 InternalInvariantViolation: a phonetic trie hit with no
		// sugbuf line is a dictionary-build bug, not a request error.
		// Log once elsewhere (the Dictionary's own loader), skip here.
		return nil
	}
	ordinals, ok := s.dict.SugBuf(lineNo)
	if !ok {
		return nil
	}
	for _, ord := range ordinals {
		if err := ctx.Err(); err != nil {
			return err
		}
		spelling, ok := s.dict.SpellWord(ord)
		if !ok {
			continue
		}
		if !fastdist.CouldBeat(bw.Folded, spelling, bw.WordCeiling, minWeightedCost) {
			continue
		}
		editCost := s.scorer.Bounded(bw.Folded, spelling, bw.WordCeiling)
		if editCost >= suggtypes.ScoreMaxMax {
			continue
		}

		// goodscore = region_penalty + case_penalty + EditScore(bad,
		// candidate) (§4.4), read off the spelling's own WordFlags.
		goodscore := editCost
		if flags, ok := lookupFlags(s.dict.Fold, spelling); ok {
			if flags.KeepCase && bw.Caps != suggtypes.CapKeep {
				goodscore += suggtypes.ScoreICase
			}
			if flags.Rare {
				goodscore += suggtypes.ScoreRare
			}
			if flags.RegionMask != 0 && bw.RegionMask != 0 && flags.RegionMask&bw.RegionMask == 0 {
				goodscore += suggtypes.ScoreRegion
			}
		}

		combined := suggtypes.RescoreWeight(goodscore, hit.Score)
		word := suggtypes.ApplyCaps(spelling, bw.Caps)
		set.Add(suggtypes.Record{
			Word:     word,
			OrgLen:   bw.ByteLen,
			Score:    combined,
			AltScore: hit.Score,
			HasAlt:   true,
			Phonetic: true,
		})
	}
	return nil
}
