// Package suggtypes holds the data model shared by every stage of the
// suggestion engine: score constants, caps flags, the bad-word context,
// suggestion records, and the narrow Dictionary interface the walker and
// sound-fold search consume.
package suggtypes

// Edit-operation scores. Lower is better; these are the weights the
// DP matrix and the bounded explorer both use. Values come straight from
// the affix-driven spell suggester this engine generalizes.
const (
	ScoreSplit    = 149 // split bad word with a space
	ScoreSplitNo  = 249 // split bad word, language has NOSPLITSUGS
	ScoreICase    = 52  // case-only difference
	ScoreRegion   = 200 // word belongs to a different region
	ScoreRare     = 180 // rare word
	ScoreSwap     = 75  // adjacent transposition
	ScoreSwap3    = 110 // transpose 1st/3rd of three, middle free
	ScoreRep      = 65  // REP-table replacement
	ScoreSubst    = 93  // substitute a character
	ScoreSimilar  = 33  // substitute a MAP-equivalent character
	ScoreSubComp  = 33  // substitute a composing character
	ScoreDel      = 94  // delete a character
	ScoreDelDup   = 66  // delete a duplicated character
	ScoreDelComp  = 28  // delete a composing character
	ScoreIns      = 96  // insert a character
	ScoreInsDup   = 67  // insert a duplicated character
	ScoreInsComp  = 30  // insert a composing character
	ScoreNonWord  = 103 // change a non-word char to a word char
	ScoreFile     = 30  // suggestion sourced from a file: mode
	ScoreMaxInit  = 350 // initial search ceiling; higher costs more
	ScoreCommon1  = 30  // frequency bonus: word seen before
	ScoreCommon2  = 40  // frequency bonus: word seen often
	ScoreCommon3  = 50  // frequency bonus: word seen very often
	ScoreThres2   = 10  // frequency threshold for ScoreCommon2
	ScoreThres3   = 100 // frequency threshold for ScoreCommon3
	ScoreSFMax1   = 200 // sound-fold ceiling, first tier
	ScoreSFMax2   = 300 // sound-fold ceiling, second tier
	ScoreSFMax3   = 400 // sound-fold ceiling, third tier
	ScoreBig      = ScoreIns * 3
	ScoreMaxMax   = 999999 // accept any score; "infinite"
	ScoreLimitMax = 350    // bounded edit-score limit; editscore.Bounded takes its limit as an argument instead
	ScoreEditMin  = ScoreSimilar
)

// MaxWLen bounds the depth of any trie walk or SearchStack frame array: the
// original's `depth < MAXWLEN` invariant (§3). The retrieved corpus does not
// carry the header this constant is defined in; 250 matches the word-length
// ceiling used throughout the wider affix-dictionary ecosystem this engine
// generalizes, and is large enough that no real dictionary word or
// compound of a few such words can exceed it.
const MaxWLen = 250

// RescoreWeight combines a primary word score with a secondary (sound-alike
// or phonetic-edit) score: (3*w + s) / 4, per §4.2/§4.4.
func RescoreWeight(w, s int) int {
	return (3*w + s) / 4
}
