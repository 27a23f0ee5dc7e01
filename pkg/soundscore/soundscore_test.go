package soundscore

import (
	"testing"

	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

func TestScoreIdentity(t *testing.T) {
	for _, w := range []string{"", "KT", "*KT", "ABCDE"} {
		if got := Score(w, w); got != 0 {
			t.Errorf("Score(%q, %q) = %d, want 0", w, w, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	cases := [][2]string{
		{"KAT", "KT"},
		{"KAT", "KTA"},
		{"ABC", "ACB"},
		{"ABCD", "ABDC"},
	}
	for _, c := range cases {
		a := Score(c[0], c[1])
		b := Score(c[1], c[0])
		if a != b {
			t.Errorf("Score(%q,%q)=%d but Score(%q,%q)=%d, want symmetric", c[0], c[1], a, c[1], c[0], b)
		}
	}
}

func TestScoreLengthGuard(t *testing.T) {
	if got := Score("ABCDEFG", "A"); got != suggtypes.ScoreMaxMax {
		t.Errorf("Score with length gap >2 = %d, want ScoreMaxMax", got)
	}
}

func TestScoreSingleSubstitute(t *testing.T) {
	if got := Score("KAT", "KIT"); got != suggtypes.ScoreSubst {
		t.Errorf("Score(KAT, KIT) = %d, want %d", got, suggtypes.ScoreSubst)
	}
}

func TestScoreSingleSwap(t *testing.T) {
	if got := Score("ABCD", "BACD"); got != suggtypes.ScoreSwap {
		t.Errorf("Score(ABCD, BACD) = %d, want %d", got, suggtypes.ScoreSwap)
	}
}

func TestScoreSingleDelete(t *testing.T) {
	if got := Score("KAT", "KAAT"); got != suggtypes.ScoreDel {
		t.Errorf("Score(KAT, KAAT) = %d, want %d", got, suggtypes.ScoreDel)
	}
}
