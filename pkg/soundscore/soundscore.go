// Package soundscore implements the fixed-depth (at most two edits)
// sound-alike scorer described in spec.md §4.2: a hand-rolled case
// analysis over two already sound-folded strings, rather than a general
// dynamic-programming edit distance, since phonetic strings are short and
// the interesting cases (delete/insert/swap/substitute, at most two of
// them) are enumerable directly.
package soundscore

import "github.com/oldhand-spell/spellsuggest/pkg/suggtypes"

// skipEqual trims the longest common prefix shared by a and b.
func skipEqual(a, b string) (string, string) {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[i:], b[i:]
}

// Score computes the sound-alike score between an already sound-folded
// good candidate and an already sound-folded bad word. Length difference
// outside [-2, 2] can never be bridged by two edits and returns
// ScoreMaxMax immediately.
func Score(goodsound, badsound string) int {
	good, bad := goodsound, badsound
	score := 0

	badStar := len(bad) > 0 && bad[0] == '*'
	goodStar := len(good) > 0 && good[0] == '*'
	sameFirst := len(bad) > 0 && len(good) > 0 && bad[0] == good[0]

	// A leading '*' marks "word starts with a vowel". Losing or gaining
	// one at the very start is cheap (2/3 of a delete); vowels elsewhere
	// in the word aren't specially discounted.
	if (badStar || goodStar) && !sameFirst {
		badEmpty := len(bad) == 0
		goodEmpty := len(good) == 0
		if (badEmpty && len(good) == 1) || (goodEmpty && len(bad) == 1) {
			return suggtypes.ScoreDel
		}
		if badEmpty || goodEmpty {
			return suggtypes.ScoreMaxMax
		}

		sameSecond := (len(bad) > 1 && len(good) > 1 && bad[1] == good[1]) ||
			(len(bad) > 2 && len(good) > 2 && bad[2] == good[2])
		if !sameSecond {
			score = 2 * suggtypes.ScoreDel / 3
			if badStar {
				bad = bad[1:]
			} else {
				good = good[1:]
			}
		}
	}

	n := len(good) - len(bad)
	if n < -2 || n > 2 {
		return suggtypes.ScoreMaxMax
	}

	var pl, ps string
	if n > 0 {
		pl, ps = good, bad // pl is the longer string
	} else {
		pl, ps = bad, good
	}
	pl, ps = skipEqual(pl, ps)

	switch n {
	case -2, 2:
		if len(pl) < 1 {
			break
		}
		pl1 := pl[1:] // first delete
		pl1, ps = skipEqual(pl1, ps)
		if len(pl1) >= 1 && pl1[1:] == ps {
			return score + suggtypes.ScoreDel*2
		}

	case -1, 1:
		// 1: delete
		pl2 := pl
		if len(pl2) > 0 {
			pl2 = pl2[1:]
		}
		ps2 := ps
		r1, r2 := skipEqual(pl2, ps2)
		if len(r1) == 0 && len(r2) == 0 {
			return score + suggtypes.ScoreDel
		}

		// 2: delete then swap, then rest must be equal
		if len(r1) >= 2 && len(r2) >= 2 && r1[0] == r2[1] && r1[1] == r2[0] && r1[2:] == r2[2:] {
			return score + suggtypes.ScoreDel + suggtypes.ScoreSwap
		}
		// 3: delete then substitute, then the rest must be equal
		if len(r1) >= 1 && len(r2) >= 1 && r1[1:] == r2[1:] {
			return score + suggtypes.ScoreDel + suggtypes.ScoreSubst
		}
		// 4: first swap then delete
		if len(pl) >= 2 && len(ps) >= 2 && pl[0] == ps[1] && pl[1] == ps[0] {
			a, b := skipEqual(pl[2:], ps[2:])
			if len(a) >= 1 && a[1:] == b {
				return score + suggtypes.ScoreSwap + suggtypes.ScoreDel
			}
		}
		// 5: first substitute then delete
		pa := pl
		if len(pa) > 0 {
			pa = pa[1:]
		}
		pb := ps
		if len(pb) > 0 {
			pb = pb[1:]
		}
		a, b := skipEqual(pa, pb)
		if len(a) >= 1 && a[1:] == b {
			return score + suggtypes.ScoreSubst + suggtypes.ScoreDel
		}

	case 0:
		if len(pl) == 0 {
			return score
		}
		// 2: swap
		if len(pl) >= 2 && len(ps) >= 2 && pl[0] == ps[1] && pl[1] == ps[0] {
			a, b := skipEqual(pl[2:], ps[2:])
			if len(a) == 0 && len(b) == 0 {
				return score + suggtypes.ScoreSwap
			}
			// 3: swap and swap again
			if len(a) >= 2 && len(b) >= 2 && a[0] == b[1] && a[1] == b[0] && a[2:] == b[2:] {
				return score + suggtypes.ScoreSwap + suggtypes.ScoreSwap
			}
			// 4: swap and substitute
			if len(a) >= 1 && len(b) >= 1 && a[1:] == b[1:] {
				return score + suggtypes.ScoreSwap + suggtypes.ScoreSubst
			}
		}
		// 5: substitute
		a, b := skipEqual(pl[1:], ps[1:])
		if len(a) == 0 && len(b) == 0 {
			return score + suggtypes.ScoreSubst
		}
		// 6: substitute and swap
		if len(a) >= 2 && len(b) >= 2 && a[0] == b[1] && a[1] == b[0] && a[2:] == b[2:] {
			return score + suggtypes.ScoreSubst + suggtypes.ScoreSwap
		}
		// 7: substitute and substitute
		if len(a) >= 1 && len(b) >= 1 && a[1:] == b[1:] {
			return score + suggtypes.ScoreSubst + suggtypes.ScoreSubst
		}
		// 8: insert then delete
		c, d := skipEqual(pl, ps[1:])
		if len(c) >= 1 && c[1:] == d {
			return score + suggtypes.ScoreIns + suggtypes.ScoreDel
		}
		// 9: delete then insert
		e, f := skipEqual(pl[1:], ps)
		if len(f) >= 1 && e == f[1:] {
			return score + suggtypes.ScoreIns + suggtypes.ScoreDel
		}
	}

	return suggtypes.ScoreMaxMax
}
