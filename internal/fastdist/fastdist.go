// Package fastdist wraps github.com/hbollon/go-edlib's uniform-cost edit
// distance as a cheap pre-filter gate, grounded on go-symspell's
// Distance(a, b string, algorithm edlib.Algorithm) wrapper shape.
//
// edlib's algorithms use uniform operation costs and cannot express the
// weighted, MAP-discounted scoring pkg/editscore computes, so this package
// is never used as the scorer itself — only to cheaply reject candidates
// that cannot possibly beat the current ceiling before the expensive
// weighted scorer runs (pkg/soundfold, where candidates are materialized
// as full strings rather than walked byte by byte).
package fastdist

import "github.com/hbollon/go-edlib"

// CouldBeat reports whether candidate could still score below ceiling
// once converted from edlib's uniform-cost distance to this engine's
// weighted scale. edlib's Damerau-Levenshtein distance d is a lower bound
// on the number of edits; even if every one of those edits were scored at
// the cheapest possible weighted cost (ScoreSimilar), the result could
// not beat ceiling if d*minCost > ceiling. Passing that cheap check lets
// the caller fall through to the exact bounded scorer; failing it lets
// the caller skip the expensive pass entirely.
func CouldBeat(bad, candidate string, ceiling, minCost int) bool {
	if ceiling <= 0 {
		return false
	}
	d := edlib.DamerauLevenshteinDistance(bad, candidate)
	return d*minCost <= ceiling
}

// Distance exposes the raw edlib distance for callers that want the bound
// itself (e.g. to log it, or to pick which of several candidates is worth
// scoring first).
func Distance(bad, candidate string) int {
	return edlib.DamerauLevenshteinDistance(bad, candidate)
}
