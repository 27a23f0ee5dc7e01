// Package walker implements the TrieWalker described in spec.md §4.3: a
// depth-first exploration of the fold-case dictionary trie where every
// depth accepts one byte of a candidate good word, driven by a small state
// machine that tries each edit operator in turn before backtracking.
//
// The search is recursive on the Go call stack: each edit operator builds a
// child frame from the parent's fields and calls walk on it, and
// backtracking is the return from that call. Frames are passed by value and
// depth is bounded by suggtypes.MaxWLen; there is no preallocated frame
// array, and the candidate word is built in one shared byte slice that each
// call truncates back to its entry length on return.
package walker

import (
	"context"

	"github.com/oldhand-spell/spellsuggest/pkg/suggestionset"
	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// state records which edit operator produced a frame. walk does not
// dispatch on it: the operators run in a fixed order in code (PLAIN, DEL,
// INS, SWAP, SWAP3, REP). stNoprefix, stEndnul, stInsPrep, stUnswap,
// stUnswap3, stUnrot3l, stUnrot3r, stRepIni, stRepUndo, stSplitUndo and
// stFinal are never assigned.
type state int

const (
	stStart state = iota
	stNoprefix
	stEndnul
	stPlain
	stDel
	stInsPrep
	stIns
	stSwap
	stUnswap
	stSwap3
	stUnswap3
	stUnrot3l
	stUnrot3r
	stRepIni
	stRep
	stRepUndo
	stSplitUndo
	stFinal
)

// frame is one SearchStack entry (§3). Only the fields this port actually
// sets or consults are carried; bookkeeping the original needs purely for its
// array-backed string buffer (twordlen et al.) is folded into built []byte
// below instead, since Go slices already give us that growth for free.
type frame struct {
	node   suggtypes.NodeRef
	state  state
	score  int
	fidx   int // index into the case-folded bad word
	depth  int

	prevByte    byte // last byte appended to built, for dup-insert/delete discounts
	deletedByte int  // byte most recently deleted; -1 if none, forbids immediate re-insertion

	caps suggtypes.CapFlags // may be overridden mid-walk by a prefix/split transition

	compoundPieces int
	compoundFlags  []byte
	pieceStart     int // byte offset in built where the current compound piece began
	splitDone      bool
	wasSplit       bool
}

// Walker runs TrieWalker searches against one dictionary.
type Walker struct {
	dict *suggtypes.Dictionary
}

// New builds a Walker over dict.
func New(dict *suggtypes.Dictionary) *Walker {
	return &Walker{dict: dict}
}

// checkEvery is how many explored frames pass between ctx.Err() checks
// (§4.3.5 "every 1000 iterations").
const checkEvery = 1000

// Search explores dict's fold-case trie (and, if present, its postponed
// prefix trie) for corrections to bw, pushing every terminal it reaches
// into set. It returns ctx.Err() if the search was cancelled partway
// through; a partial set of suggestions is still usable in that case.
func (w *Walker) Search(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set) error {
	if w.dict == nil || w.dict.Fold == nil {
		return nil
	}
	iterations := 0
	root := w.dict.Fold.Root()

	var built []byte
	f := frame{
		node:        root,
		state:       stStart,
		fidx:        0,
		caps:        bw.Caps,
		deletedByte: -1,
	}

	if w.dict.Prefix != nil {
		if err := w.walkPrefixes(ctx, bw, set, &iterations); err != nil {
			return err
		}
	}

	return w.walk(ctx, bw, set, f, &built, &iterations)
}

// walkPrefixes tries every postponed prefix before the plain root start
// (§4.3.4). The prefix trie is followed byte for byte along the bad word,
// with no edits; at each prefix terminator the stem walk restarts at the
// fold-case root with the prefix bytes already in the candidate. No prefix
// depth or prefix id is passed on, so a stem terminator does not check
// whether the stem accepts that prefix: a stem emits whenever its own flags
// pass the banned/nosuggest checks.
func (w *Walker) walkPrefixes(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, iterations *int) error {
	prefixRoot := w.dict.Prefix.Root()
	var collect func(node suggtypes.NodeRef, fidx int, score int, built []byte) error
	collect = func(node suggtypes.NodeRef, fidx int, score int, built []byte) error {
		*iterations++
		if *iterations%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if score >= bw.WordCeiling || fidx > len(bw.Folded) {
			return nil
		}
		if _, ok := w.dict.Prefix.Terminal(node); ok {
			stemFrame := frame{
				node:        w.dict.Fold.Root(),
				state:       stStart,
				fidx:        fidx,
				score:       score,
				caps:        bw.Caps,
				deletedByte: -1,
			}
			stemBuilt := append([]byte(nil), built...)
			if err := w.walk(ctx, bw, set, stemFrame, &stemBuilt, iterations); err != nil {
				return err
			}
		}
		if fidx >= len(bw.Folded) {
			return nil
		}
		b := bw.Folded[fidx]
		if child, ok := w.dict.Prefix.Child(node, b); ok {
			if err := collect(child, fidx+1, score, append(built, b)); err != nil {
				return err
			}
		}
		return nil
	}
	return collect(prefixRoot, 0, 0, nil)
}

// substCost mirrors editscore's substitution costing, duplicated here
// (rather than imported) because the walker costs a trie edge against a
// single candidate byte, not two whole strings (§4.1 vs §4.3 operate at
// different granularities over the same cost table).
func (w *Walker) substCost(candidate, bad byte) int {
	if candidate == bad {
		return 0
	}
	if toLowerASCII(candidate) == toLowerASCII(bad) {
		return suggtypes.ScoreICase
	}
	if w.dict.Map.Similar(rune(candidate), rune(bad)) {
		return suggtypes.ScoreSimilar
	}
	if w.dict.Adjacency.Similar(rune(candidate), rune(bad)) {
		return suggtypes.ScoreSimilar
	}
	return suggtypes.ScoreSubst
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// walk is the depth-first dispatch loop for one SearchStack position. built
// holds the candidate good-word bytes accumulated on the path from the
// trie root to f.node; it is restored to its entry length before returning
// so sibling branches at shallower depths see the right prefix (the
// copy-on-push / truncate-on-pop discipline the REDESIGN FLAGS call for).
func (w *Walker) walk(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, f frame, built *[]byte, iterations *int) error {
	*iterations++
	if *iterations%checkEvery == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if f.depth >= suggtypes.MaxWLen-1 || f.score >= bw.WordCeiling {
		return nil
	}

	entryLen := len(*built)
	defer func() { *built = (*built)[:entryLen] }()

	bad := bw.Folded

	// --- ENDNUL / emit: both words ended here. ---
	if flags, ok := w.dict.Fold.Terminal(f.node); ok {
		if !flags.Banned && !flags.NoSuggest {
			if f.fidx >= len(bad) {
				// The last compound piece is now spelled out, so CheckPattern
				// sees the real text on both sides of the last join (left is
				// everything before it); a vetoed join is not emitted.
				rules := w.dict.Compound
				vetoed := f.compoundPieces > 0 && rules != nil && rules.CheckPattern != nil &&
					rules.CheckPattern(string((*built)[:f.pieceStart]), string((*built)[f.pieceStart:]))
				if !vetoed {
					w.emit(bw, set, *built, f, flags)
				}
			} else if w.dict.Compound != nil && flags.CompoundFlag != 0 && !flags.NoSuggest {
				// Word ended but bad word hasn't: try split and compound
				// continuations from here (§4.3.3 step 6).
				if err := w.trySplitAndCompound(ctx, bw, set, f, built, flags, iterations); err != nil {
					return err
				}
			}
		}
	}

	if f.fidx >= len(bad) {
		// Bad word exhausted; only an INS (trailing trie suffix, e.g.
		// bad="wor" candidate "word") can still complete a match.
		return w.tryInsert(ctx, bw, set, f, built, iterations)
	}

	// --- PLAIN: consume one bad-word byte along a matching (or
	// substituted) trie edge. ---
	for _, cb := range w.dict.Fold.Children(f.node) {
		if cb == 0 {
			continue // terminal marker, handled above
		}
		cost := w.substCost(cb, bad[f.fidx])
		if f.score+cost >= bw.WordCeiling {
			continue
		}
		child, _ := w.dict.Fold.Child(f.node, cb)
		next := frame{
			node: child, state: stPlain, score: f.score + cost,
			fidx: f.fidx + 1, depth: f.depth + 1, prevByte: cb,
			deletedByte: -1, caps: f.caps,
			compoundPieces: f.compoundPieces, compoundFlags: f.compoundFlags,
			pieceStart: f.pieceStart, splitDone: f.splitDone, wasSplit: f.wasSplit,
		}
		*built = append((*built)[:entryLen], cb)
		if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
			return err
		}
	}

	// --- DEL: skip a bad-word byte without moving in the trie. ---
	delCost := suggtypes.ScoreDel
	if f.fidx > 0 && bad[f.fidx] == bad[f.fidx-1] {
		delCost = suggtypes.ScoreDelDup
	}
	if f.score+delCost < bw.WordCeiling {
		next := frame{
			node: f.node, state: stDel, score: f.score + delCost,
			fidx: f.fidx + 1, depth: f.depth + 1, prevByte: f.prevByte,
			deletedByte: int(bad[f.fidx]), caps: f.caps,
			compoundPieces: f.compoundPieces, compoundFlags: f.compoundFlags,
			pieceStart: f.pieceStart, splitDone: f.splitDone, wasSplit: f.wasSplit,
		}
		*built = (*built)[:entryLen]
		if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
			return err
		}
	}

	// --- INS: advance in the trie without consuming a bad-word byte. ---
	if err := w.tryInsert(ctx, bw, set, f, built, iterations); err != nil {
		return err
	}

	// --- SWAP: adjacent transposition. ---
	if f.fidx+1 < len(bad) && bad[f.fidx] != bad[f.fidx+1] && f.score+suggtypes.ScoreSwap < bw.WordCeiling {
		if n1, ok := w.dict.Fold.Child(f.node, bad[f.fidx+1]); ok {
			if n2, ok := w.dict.Fold.Child(n1, bad[f.fidx]); ok {
				next := frame{
					node: n2, state: stSwap, score: f.score + suggtypes.ScoreSwap,
					fidx: f.fidx + 2, depth: f.depth + 2, prevByte: bad[f.fidx],
					deletedByte: -1, caps: f.caps,
					compoundPieces: f.compoundPieces, compoundFlags: f.compoundFlags,
					pieceStart: f.pieceStart, splitDone: f.splitDone, wasSplit: f.wasSplit,
				}
				*built = append((*built)[:entryLen], bad[f.fidx+1], bad[f.fidx])
				if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
					return err
				}
			}
		}
	}

	// --- SWAP3: transpose the 1st/3rd of three, middle free. ---
	if f.fidx+2 < len(bad) && f.score+suggtypes.ScoreSwap3 < bw.WordCeiling {
		a, b, c := bad[f.fidx], bad[f.fidx+1], bad[f.fidx+2]
		if a != c {
			if n1, ok := w.dict.Fold.Child(f.node, c); ok {
				if n2, ok := w.dict.Fold.Child(n1, b); ok {
					if n3, ok := w.dict.Fold.Child(n2, a); ok {
						next := frame{
							node: n3, state: stSwap3, score: f.score + suggtypes.ScoreSwap3,
							fidx: f.fidx + 3, depth: f.depth + 3, prevByte: a,
							deletedByte: -1, caps: f.caps,
							compoundPieces: f.compoundPieces, compoundFlags: f.compoundFlags,
							pieceStart: f.pieceStart, splitDone: f.splitDone, wasSplit: f.wasSplit,
						}
						*built = append((*built)[:entryLen], c, b, a)
						if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
							return err
						}
					}
				}
			}
		}
	}

	// --- REP / REPSAL: table-driven multi-byte replacement. ---
	if w.dict.Rep != nil {
		for _, rule := range w.dict.Rep.MatchAt(bad, f.fidx) {
			if len(rule.To) == 0 {
				continue
			}
			if err := w.tryRep(ctx, bw, set, f, built, rule, iterations); err != nil {
				return err
			}
		}
	}

	return nil
}

// tryInsert advances the trie with every available child byte without
// consuming a bad-word byte (an INS edit, §4.3.2's INS_PREP/INS states).
func (w *Walker) tryInsert(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, f frame, built *[]byte, iterations *int) error {
	entryLen := len(*built)
	for _, cb := range w.dict.Fold.Children(f.node) {
		if cb == 0 {
			continue
		}
		if f.deletedByte == int(cb) {
			// Forbid immediately re-inserting a byte we just deleted
			// (§4.3.2's "no node re-entered after ts_fidx moved past
			// ts_fidxtry" discipline, specialized to DEL->INS).
			continue
		}
		cost := suggtypes.ScoreIns
		if cb == f.prevByte {
			cost = suggtypes.ScoreInsDup
		}
		if f.score+cost >= bw.WordCeiling {
			continue
		}
		child, _ := w.dict.Fold.Child(f.node, cb)
		next := frame{
			node: child, state: stIns, score: f.score + cost,
			fidx: f.fidx, depth: f.depth + 1, prevByte: cb,
			deletedByte: -1, caps: f.caps,
			compoundPieces: f.compoundPieces, compoundFlags: f.compoundFlags,
			pieceStart: f.pieceStart, splitDone: f.splitDone, wasSplit: f.wasSplit,
		}
		*built = append((*built)[:entryLen], cb)
		if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
			return err
		}
	}
	*built = (*built)[:entryLen]
	return nil
}

// tryRep applies one REP/REPSAL rule at the current position: the bad-word
// bytes rule.From are replaced with rule.To, which must then be walked
// byte-by-byte down the trie from f.node like any other candidate text.
func (w *Walker) tryRep(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, f frame, built *[]byte, rule suggtypes.RepRule, iterations *int) error {
	entryLen := len(*built)
	node := f.node
	for i := 0; i < len(rule.To); i++ {
		child, ok := w.dict.Fold.Child(node, rule.To[i])
		if !ok {
			*built = (*built)[:entryLen]
			return nil
		}
		node = child
		*built = append(*built, rule.To[i])
	}
	next := frame{
		node: node, state: stRep, score: f.score + suggtypes.ScoreRep,
		fidx: f.fidx + len(rule.From), depth: f.depth + len(rule.To),
		prevByte: rule.To[len(rule.To)-1], deletedByte: -1, caps: f.caps,
		compoundPieces: f.compoundPieces, compoundFlags: f.compoundFlags,
		pieceStart: f.pieceStart, splitDone: f.splitDone, wasSplit: f.wasSplit,
	}
	if next.score >= bw.WordCeiling {
		*built = (*built)[:entryLen]
		return nil
	}
	if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
		return err
	}
	*built = (*built)[:entryLen]
	return nil
}

// trySplitAndCompound handles §4.3.3 step 6: at a word boundary where the
// bad word hasn't ended, try inserting a space (split) and then try
// continuing without one (compound). Both continuations start with
// splitDone set, so no further split is tried below a split or below a
// compound join.
func (w *Walker) trySplitAndCompound(ctx context.Context, bw *suggtypes.BadWordContext, set *suggestionset.Set, f frame, built *[]byte, flags suggtypes.WordFlags, iterations *int) error {
	rules := w.dict.Compound
	entryLen := len(*built)

	if rules != nil && !rules.NoBreak && !f.splitDone {
		splitCost := suggtypes.ScoreSplit
		if rules.NoSplitSugs {
			splitCost = suggtypes.ScoreSplitNo
		}
		if f.score+splitCost < bw.WordCeiling {
			prefix := append([]byte(nil), *built...)
			sub := frame{
				node: w.dict.Fold.Root(), state: stStart,
				score: f.score + splitCost, fidx: f.fidx,
				depth: f.depth + 1, deletedByte: -1, caps: bw.Caps,
				splitDone: true, wasSplit: true,
			}
			tail := []byte{}
			collector := &splitCollector{dict: w.dict, prefix: prefix, set: set}
			if err := collector.walk(ctx, bw, sub, &tail, iterations); err != nil {
				return err
			}
		}
	}

	if rules != nil && !rules.NoCompoundSugs && rules.MaxPieces > 0 && f.compoundPieces < rules.MaxPieces {
		isFirst := f.compoundPieces == 0
		pieceLen := len(*built) - f.pieceStart
		longEnough := pieceLen >= rules.MinLength

		// CheckPattern (CHECKCOMPOUNDPATTERN) vetoes a join on the text
		// either side of the boundary. The right piece's final spelling
		// isn't known until its own walk terminates, so here the bad
		// word's own remaining text stands in for it; walk checks the join
		// again with the right piece's real spelling when that piece ends
		// the word.
		left := string((*built)[f.pieceStart:])
		right := bw.Folded[f.fidx:]
		veto := rules.CheckPattern != nil && rules.CheckPattern(left, right)

		if longEnough && !veto && rules.Accepts(flags.CompoundFlag, isFirst, f.compoundFlags) {
			next := frame{
				node: w.dict.Fold.Root(), state: stStart,
				score: f.score, fidx: f.fidx, depth: f.depth + 1,
				deletedByte: -1, caps: f.caps,
				compoundPieces: f.compoundPieces + 1,
				compoundFlags:  append(append([]byte(nil), f.compoundFlags...), flags.CompoundFlag),
				pieceStart:     len(*built),
				splitDone:      true, wasSplit: f.wasSplit,
			}
			*built = (*built)[:entryLen]
			if err := w.walk(ctx, bw, set, next, built, iterations); err != nil {
				return err
			}
		}
	}

	*built = (*built)[:entryLen]
	return nil
}

// splitCollector runs a nested walk for the text after a split point and,
// on every terminal it reaches where the bad word has also ended, emits
// prefix + " " + suffix as a whole
// suggestion directly into the shared set: splitting produces one
// combined word, not two independent suggestion streams (§4.3.3). The
// second piece is matched by substitution only (no DEL/INS/SWAP/REP, no
// further splitting); the common case this exists for is a single clean
// break in an otherwise correctly spelled compound, and that only needs
// PLAIN continuation to find the second stem.
type splitCollector struct {
	dict   *suggtypes.Dictionary
	prefix []byte
	set    *suggestionset.Set
}

func (c *splitCollector) walk(ctx context.Context, bw *suggtypes.BadWordContext, f frame, built *[]byte, iterations *int) error {
	w := &Walker{dict: c.dict}
	entryLen := len(*built)
	defer func() { *built = (*built)[:entryLen] }()

	*iterations++
	if *iterations%checkEvery == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if f.depth >= suggtypes.MaxWLen-1 || f.score >= bw.WordCeiling {
		return nil
	}

	bad := bw.Folded
	if flags, ok := c.dict.Fold.Terminal(f.node); ok && f.fidx >= len(bad) && !flags.Banned && !flags.NoSuggest {
		full := make([]byte, 0, len(c.prefix)+1+len(*built))
		full = append(full, c.prefix...)
		full = append(full, ' ')
		full = append(full, *built...)
		w.emit(bw, c.set, full, f, flags)
	}
	if f.fidx >= len(bad) {
		return nil
	}
	for _, cb := range c.dict.Fold.Children(f.node) {
		if cb == 0 {
			continue
		}
		cost := w.substCost(cb, bad[f.fidx])
		if f.score+cost >= bw.WordCeiling {
			continue
		}
		child, _ := c.dict.Fold.Child(f.node, cb)
		next := f
		next.node, next.score, next.fidx, next.depth = child, f.score+cost, f.fidx+1, f.depth+1
		*built = append((*built)[:entryLen], cb)
		if err := c.walk(ctx, bw, next, built, iterations); err != nil {
			return err
		}
	}
	*built = (*built)[:entryLen]
	return nil
}

// emit converts a completed trie path into a suggtypes.Record and pushes
// it into set, applying the case/region/rare penalties (§4.3.3 steps 3-4),
// the bad word's caps pattern, the frequency bonus (§4.3.3 step 7), and
// halving that bonus for split suggestions.
func (w *Walker) emit(bw *suggtypes.BadWordContext, set *suggestionset.Set, built []byte, f frame, flags suggtypes.WordFlags) {
	word := string(built)
	score := f.score

	if flags.KeepCase && bw.Caps != suggtypes.CapKeep {
		score += suggtypes.ScoreICase
	}
	if flags.Rare {
		score += suggtypes.ScoreRare
	}
	if flags.RegionMask != 0 && bw.RegionMask != 0 && flags.RegionMask&bw.RegionMask == 0 {
		score += suggtypes.ScoreRegion
	}

	if w.dict.WordCount != nil {
		if freq, ok := w.dict.WordCount(word); ok {
			bonus := 0
			switch {
			case freq >= suggtypes.ScoreThres3:
				bonus = suggtypes.ScoreCommon3
			case freq >= suggtypes.ScoreThres2:
				bonus = suggtypes.ScoreCommon2
			case freq > 0:
				bonus = suggtypes.ScoreCommon1
			}
			if f.wasSplit {
				bonus /= 2
			}
			score -= bonus
			if score < 0 {
				score = 0
			}
		}
	}

	caps := f.caps
	if caps == suggtypes.CapNone && bw.Caps != suggtypes.CapNone && bw.Caps != suggtypes.CapMix {
		caps = bw.Caps
	}
	word = suggtypes.ApplyCaps(word, caps)

	set.Add(suggtypes.Record{
		Word:   word,
		OrgLen: bw.ByteLen,
		Score:  score,
	})
}
