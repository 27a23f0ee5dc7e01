// Package orchestrator ties the engine together (spec.md §4.6): it builds
// the per-request bad-word context, runs the internal method (special
// cases, TrieWalker, SoundFoldSearch), applies file:/expr: mode sources,
// and produces the final ranked suggestion list.
package orchestrator

import (
	"context"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/oldhand-spell/spellsuggest/pkg/editscore"
	"github.com/oldhand-spell/spellsuggest/pkg/external"
	"github.com/oldhand-spell/spellsuggest/pkg/soundfold"
	"github.com/oldhand-spell/spellsuggest/pkg/soundscore"
	"github.com/oldhand-spell/spellsuggest/pkg/suggestionset"
	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
	"github.com/oldhand-spell/spellsuggest/pkg/walker"
)

// Mode is the parsed 'spellsuggest' option grammar (§6).
type Mode struct {
	Strategy  string // "best" (default), "fast", "double"
	Expr      string
	FilePath  string
	TimeoutMS int
	MaxCount  int
}

// DefaultMode matches §6's defaults (best / 9999 / 5000ms).
func DefaultMode() Mode {
	return Mode{Strategy: "best", TimeoutMS: 5000, MaxCount: 9999}
}

// ParseMode parses the comma-separated 'spellsuggest' option grammar.
// Invalid grammar resets to defaults and reports the failure, per §6/§7's
// ConfigInvalid handling: the engine reverts and remains usable, it never
// panics on a bad option string.
func ParseMode(opt string) (Mode, error) {
	m := DefaultMode()
	if strings.TrimSpace(opt) == "" {
		return m, nil
	}
	sawStrategy := false
	for _, part := range strings.Split(opt, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "best" || part == "fast" || part == "double":
			if sawStrategy {
				return DefaultMode(), errConfigInvalid{"more than one method flag"}
			}
			m.Strategy = part
			sawStrategy = true
		case strings.HasPrefix(part, "expr:"):
			m.Expr = strings.TrimPrefix(part, "expr:")
		case strings.HasPrefix(part, "file:"):
			m.FilePath = strings.TrimPrefix(part, "file:")
		case strings.HasPrefix(part, "timeout:"):
			v := strings.TrimPrefix(part, "timeout:")
			neg := strings.HasPrefix(v, "-")
			v = strings.TrimPrefix(v, "-")
			ms, err := strconv.Atoi(v)
			if err != nil {
				return DefaultMode(), errConfigInvalid{"bad timeout:" + v}
			}
			if neg {
				ms = -ms
			}
			m.TimeoutMS = ms
		default:
			n, err := strconv.Atoi(part)
			if err != nil {
				return DefaultMode(), errConfigInvalid{"unrecognized option " + part}
			}
			m.MaxCount = n
		}
	}
	return m, nil
}

type errConfigInvalid struct{ reason string }

func (e errConfigInvalid) Error() string { return "spellsuggest option invalid: " + e.reason }

// Collaborators bundles the external hooks the Orchestrator may call,
// all optional (§6): a missing one just means that stage is skipped.
type Collaborators struct {
	CaseFold     func(word string) string
	CapType      func(word string) suggtypes.CapFlags
	SoundFold    func(word string) string
	IsMisspelled func(word string) bool // nil means "assume misspelled"
	Expr         external.ExprCollaborator
	FileSource   *external.FileSource
}

// Orchestrator runs the full suggestion pipeline for one or more
// languages (Dictionaries), per §4.6.
type Orchestrator struct {
	Dictionaries []*suggtypes.Dictionary
	Collab       Collaborators
}

// New builds an Orchestrator over dicts using collab for its external
// primitives.
func New(dicts []*suggtypes.Dictionary, collab Collaborators) *Orchestrator {
	return &Orchestrator{Dictionaries: dicts, Collab: collab}
}

// Suggest runs the full pipeline for badWord under mode and returns the
// final, sorted, truncated suggestion list.
func (o *Orchestrator) Suggest(ctx context.Context, badWord string, mode Mode) []suggtypes.Record {
	if strings.TrimSpace(badWord) == "" {
		return nil // InputInvalid (§7): trivial no-op, not an error
	}

	deadline := time.Duration(mode.TimeoutMS) * time.Millisecond
	if mode.TimeoutMS < 0 {
		deadline = time.Duration(-mode.TimeoutMS) * time.Millisecond
	}
	var cancel context.CancelFunc
	if deadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	folded := badWord
	if o.Collab.CaseFold != nil {
		folded = o.Collab.CaseFold(badWord)
	}
	caps := suggtypes.CapNone
	if o.Collab.CapType != nil {
		caps = o.Collab.CapType(badWord)
	}
	soundFolded := ""
	if o.Collab.SoundFold != nil {
		soundFolded = o.Collab.SoundFold(folded)
	}

	bw := suggtypes.NewBadWordContext(badWord, folded, caps, soundFolded, mode.MaxCount)
	banned := external.NewBannedWords()

	set := suggestionset.New(mode.MaxCount, banned.Contains)

	// Step 2: a lowercase, non-misspelled bad word still gets a
	// capitalized variant at SCORE_ICASE (§4.6 step 2).
	if caps == suggtypes.CapNone && o.Collab.IsMisspelled != nil && !o.Collab.IsMisspelled(badWord) {
		set.Add(suggtypes.Record{
			Word:   suggtypes.ApplyCaps(folded, suggtypes.CapOne),
			OrgLen: bw.ByteLen,
			Score:  suggtypes.ScoreICase,
		})
	}

	// Step 3: ban the bad word itself.
	banned.Ban(folded)

	// Step 4: expr:/file:/timeout: mode handling.
	if o.Collab.Expr != nil && mode.Expr != "" {
		if words, err := o.Collab.Expr(mode.Expr, badWord); err == nil {
			for _, w := range words {
				set.Add(suggtypes.Record{Word: w, OrgLen: bw.ByteLen, Score: 0})
			}
		}
	}
	if mode.FilePath != "" && o.Collab.FileSource != nil {
		if good, ok := o.Collab.FileSource.Lookup(folded); ok {
			word := good
			if suggtypes.CaptypeOf(good) == suggtypes.CapNone {
				word = suggtypes.ApplyCaps(good, caps)
			}
			set.Add(suggtypes.Record{Word: word, OrgLen: bw.ByteLen, Score: suggtypes.ScoreFile})
		}
	}

	// Step 5: the internal method, once (did_intern gate).
	o.internalMethod(ctx, bw, set, mode)

	return set.Finish(mode.MaxCount)
}

// internalMethod implements §4.6 step 5/6: doubled-word collapse, the
// TrieWalker, SoundFoldSearch (unless fast), and best/double rescoring.
// Per §7's Deadline/Interrupt handling, a cancelled context stops the loop
// early but never discards what was already collected.
func (o *Orchestrator) internalMethod(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, mode Mode) {
	if word, ok := suggestTrySpecial(bw.Folded); ok {
		set.Add(suggtypes.Record{
			Word:   suggtypes.ApplyCaps(word, bw.Caps),
			OrgLen: bw.ByteLen,
			Score:  suggtypes.RescoreWeight(suggtypes.ScoreRep, 0),
		})
	}

	doneSound := mapset.NewSet[string]()

	for _, dict := range o.Dictionaries {
		if dict == nil {
			continue
		}
		scorer := editscore.NewScorer(dict.Map, dict.Adjacency)

		if mode.Strategy == "double" {
			editSet := suggestionset.New(mode.MaxCount, nil)
			soundSet := suggestionset.New(mode.MaxCount, nil)

			if err := walker.New(dict).Search(ctx, bw, editSet); err != nil {
				mergeDistinct(set, editSet, soundSet)
				return
			}
			if err := soundfold.New(dict, scorer).Search(ctx, bw, soundSet, doneSound); err != nil {
				mergeDistinct(set, editSet, soundSet)
				return
			}
			mergeDistinct(set, editSet, soundSet)
			continue
		}

		if err := walker.New(dict).Search(ctx, bw, set); err != nil {
			return
		}
		if mode.Strategy != "fast" {
			if err := soundfold.New(dict, scorer).Search(ctx, bw, set, doneSound); err != nil {
				return
			}
		}
	}

	if mode.Strategy == "best" {
		o.rescoreWithSoundAlike(set, bw)
	}
}

// suggestTrySpecial implements the doubled-word collapse special case
// (§4.6 step 5): "the the" -> "the".
func suggestTrySpecial(folded string) (string, bool) {
	fields := strings.Fields(folded)
	if len(fields) == 2 && fields[0] == fields[1] {
		return fields[0], true
	}
	return "", false
}

// rescoreWithSoundAlike applies the SoundAlikeScorer to every record
// already collected that doesn't already carry a phonetic alt score, per
// §4.6's "if mode is best, rescose with SoundAlikeScorer" (§4.2). Records
// soundfold already rescored (Phonetic/HasAlt) are left untouched: §3's
// "never compound the frequency bonus twice" discipline extends to the
// phonetic rescore too.
func (o *Orchestrator) rescoreWithSoundAlike(set *suggestionset.Set, bw *suggtypes.BadWordContext) {
	if o.Collab.SoundFold == nil {
		return
	}
	for _, r := range set.Finish(0) {
		if r.HasAlt || r.Phonetic {
			continue
		}
		alt := soundscore.Score(o.Collab.SoundFold(r.Word), bw.SoundFold)
		if alt >= suggtypes.ScoreMaxMax {
			continue
		}
		set.Rescore(r.Key(), suggtypes.RescoreWeight(r.Score, alt), alt)
	}
}

// mergeDistinct implements §4.6's double-mode merge: keep the two lists
// (phonetic, edit-distance) distinct-ranked but union them into one final
// set, each rescored against the other metric where both exist.
func mergeDistinct(dst, editSet, soundSet *suggestionset.Set) {
	soundByWord := make(map[suggtypes.Key]suggtypes.Record)
	for _, r := range soundSet.Finish(0) {
		soundByWord[r.Key()] = r
	}
	for _, r := range editSet.Finish(0) {
		if sr, ok := soundByWord[r.Key()]; ok {
			r.AltScore = sr.Score
			r.HasAlt = true
			r.Score = suggtypes.RescoreWeight(r.Score, sr.Score)
			delete(soundByWord, r.Key())
		}
		dst.Add(r)
	}
	for _, r := range soundByWord {
		dst.Add(r)
	}
}
