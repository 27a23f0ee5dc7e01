// Package editscore implements the bounded and unbounded edit-distance
// scorers described in spec.md §4.1: a weighted Levenshtein-with-swap
// distance where insert/delete/substitute/case/similar-character/
// transposition each carry their own cost.
package editscore

import (
	"unicode"

	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// Scorer computes edit distances between a bad word and a candidate good
// word, using an optional MAP equivalence table (and an optional keyboard-
// adjacency table, SPEC_FULL.md §D.5) for reduced substitution cost.
type Scorer struct {
	Map       *suggtypes.MapClasses
	Adjacency *suggtypes.MapClasses
}

// NewScorer builds a Scorer. Either table may be nil.
func NewScorer(classes, adjacency *suggtypes.MapClasses) *Scorer {
	return &Scorer{Map: classes, Adjacency: adjacency}
}

func (s *Scorer) substCost(a, b rune) int {
	if a == b {
		return 0
	}
	if unicode.ToLower(a) == unicode.ToLower(b) {
		return suggtypes.ScoreICase
	}
	if s.Map.Similar(a, b) || s.Adjacency.Similar(a, b) {
		return suggtypes.ScoreSimilar
	}
	return suggtypes.ScoreSubst
}

// Unbounded computes the full dynamic-programming edit distance between bad
// and good, operating on decoded code points (not bytes), per §4.1.
func (s *Scorer) Unbounded(bad, good string) int {
	b := []rune(bad)
	g := []rune(good)
	nb, ng := len(b), len(g)

	dp := make([][]int, nb+1)
	for i := range dp {
		dp[i] = make([]int, ng+1)
	}
	for i := 1; i <= nb; i++ {
		dp[i][0] = dp[i-1][0] + suggtypes.ScoreDel
	}
	for j := 1; j <= ng; j++ {
		dp[0][j] = dp[0][j-1] + suggtypes.ScoreIns
	}

	for i := 1; i <= nb; i++ {
		for j := 1; j <= ng; j++ {
			best := dp[i-1][j] + suggtypes.ScoreDel
			if v := dp[i][j-1] + suggtypes.ScoreIns; v < best {
				best = v
			}
			if v := dp[i-1][j-1] + s.substCost(b[i-1], g[j-1]); v < best {
				best = v
			}
			// Transposition only when the two characters exactly cross.
			if i >= 2 && j >= 2 && b[i-1] == g[j-2] && b[i-2] == g[j-1] {
				if v := dp[i-2][j-2] + suggtypes.ScoreSwap; v < best {
					best = v
				}
			}
			dp[i][j] = best
		}
	}
	return dp[nb][ng]
}

// maxExploreDepth bounds the bounded explorer's recursion, standing in for
// the original's explicit ≤10-frame stack (§4.1). In practice a non-trivial
// limit keeps bestFound small enough that pruning stops well short of this;
// it exists purely as a runaway backstop for pathological inputs.
const maxExploreDepth = 64

// Bounded returns the edit distance between bad and good if it is at most
// limit, else ScoreMaxMax — without building the full (badlen+1)x(goodlen+1)
// matrix. It explores depth-first, skipping the longest equal prefix at
// every step, charging the remainder as pure inserts/deletes once either
// word is exhausted, and pruning whenever the running score can no longer
// beat the best one found so far.
func (s *Scorer) Bounded(bad, good string, limit int) int {
	if limit < 0 {
		return suggtypes.ScoreMaxMax
	}
	b := []rune(bad)
	g := []rune(good)
	best := limit + 1

	var explore func(bi, gi, score, depth int)
	explore = func(bi, gi, score, depth int) {
		if depth > maxExploreDepth || score >= best {
			return
		}
		for bi < len(b) && gi < len(g) && b[bi] == g[gi] {
			bi++
			gi++
		}
		if score >= best {
			return
		}
		switch {
		case bi >= len(b) && gi >= len(g):
			if score < best {
				best = score
			}
			return
		case bi >= len(b):
			if total := score + (len(g)-gi)*suggtypes.ScoreIns; total < best {
				best = total
			}
			return
		case gi >= len(g):
			if total := score + (len(b)-bi)*suggtypes.ScoreDel; total < best {
				best = total
			}
			return
		}

		// Near the limit, only an exact continuation could still beat the
		// best score found — and the prefix-skip above already proved
		// b[bi] != g[gi], so no such continuation exists here.
		if best-score <= suggtypes.ScoreEditMin {
			return
		}

		explore(bi+1, gi, score+suggtypes.ScoreDel, depth+1)
		explore(bi, gi+1, score+suggtypes.ScoreIns, depth+1)
		if bi+1 < len(b) && gi+1 < len(g) && b[bi] == g[gi+1] && b[bi+1] == g[gi] {
			explore(bi+2, gi+2, score+suggtypes.ScoreSwap, depth+1)
		}
		explore(bi+1, gi+1, score+s.substCost(b[bi], g[gi]), depth+1)
	}

	explore(0, 0, 0, 0)
	if best > limit {
		return suggtypes.ScoreMaxMax
	}
	return best
}
