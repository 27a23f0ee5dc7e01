package walker

import (
	"context"
	"sort"
	"testing"

	"github.com/oldhand-spell/spellsuggest/pkg/suggestionset"
	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// fakeNode/fakeTrie give the walker a tiny in-memory dictionary without
// depending on internal/trie, so this package's tests exercise only the
// suggtypes.Trie contract the walker actually consumes.
type fakeNode struct {
	children map[byte]*fakeNode
	terminal *suggtypes.WordFlags
}

func newFakeNode() *fakeNode {
	return &fakeNode{children: make(map[byte]*fakeNode)}
}

type fakeTrie struct {
	root *fakeNode
}

func newFakeTrie() *fakeTrie {
	return &fakeTrie{root: newFakeNode()}
}

func (t *fakeTrie) insert(word string) {
	n := t.root
	for i := 0; i < len(word); i++ {
		b := word[i]
		child, ok := n.children[b]
		if !ok {
			child = newFakeNode()
			n.children[b] = child
		}
		n = child
	}
	flags := suggtypes.WordFlags{}
	n.terminal = &flags
}

func (t *fakeTrie) Root() suggtypes.NodeRef { return t.root }

func (t *fakeTrie) Child(n suggtypes.NodeRef, b byte) (suggtypes.NodeRef, bool) {
	node := n.(*fakeNode)
	child, ok := node.children[b]
	return child, ok
}

func (t *fakeTrie) Children(n suggtypes.NodeRef) []byte {
	node := n.(*fakeNode)
	out := make([]byte, 0, len(node.children))
	for b := range node.children {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *fakeTrie) Terminal(n suggtypes.NodeRef) (suggtypes.WordFlags, bool) {
	node := n.(*fakeNode)
	if node.terminal == nil {
		return suggtypes.WordFlags{}, false
	}
	return *node.terminal, true
}

func dictWith(words ...string) *suggtypes.Dictionary {
	trie := newFakeTrie()
	for _, w := range words {
		trie.insert(w)
	}
	return &suggtypes.Dictionary{
		Fold: trie,
		Map:  suggtypes.NewMapClasses(nil),
	}
}

func ctxBG() context.Context { return context.Background() }

func TestSearchFindsSingleSubstitution(t *testing.T) {
	dict := dictWith("hello", "world")
	w := New(dict)
	bw := suggtypes.NewBadWordContext("hallo", "hallo", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	if len(recs) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	found := false
	for _, r := range recs {
		if r.Word == "hello" {
			found = true
			if r.Score != suggtypes.ScoreSubst {
				t.Errorf("score = %d, want %d", r.Score, suggtypes.ScoreSubst)
			}
		}
	}
	if !found {
		t.Errorf("expected 'hello' among suggestions, got %+v", recs)
	}
}

func TestSearchFindsDeletion(t *testing.T) {
	dict := dictWith("cat")
	w := New(dict)
	bw := suggtypes.NewBadWordContext("caat", "caat", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	var got *suggtypes.Record
	for i := range recs {
		if recs[i].Word == "cat" {
			got = &recs[i]
		}
	}
	if got == nil {
		t.Fatalf("expected 'cat' among suggestions, got %+v", recs)
	}
	if got.Score != suggtypes.ScoreDelDup {
		t.Errorf("score = %d, want ScoreDelDup=%d (deleting a duplicated letter)", got.Score, suggtypes.ScoreDelDup)
	}
}

func TestSearchFindsInsertion(t *testing.T) {
	dict := dictWith("word")
	w := New(dict)
	bw := suggtypes.NewBadWordContext("wrd", "wrd", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	found := false
	for _, r := range recs {
		if r.Word == "word" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'word' among suggestions, got %+v", recs)
	}
}

func TestSearchFindsSwap(t *testing.T) {
	dict := dictWith("the")
	w := New(dict)
	bw := suggtypes.NewBadWordContext("hte", "hte", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	var got *suggtypes.Record
	for i := range recs {
		if recs[i].Word == "the" {
			got = &recs[i]
		}
	}
	if got == nil {
		t.Fatalf("expected 'the' among suggestions, got %+v", recs)
	}
	if got.Score != suggtypes.ScoreSwap {
		t.Errorf("score = %d, want %d", got.Score, suggtypes.ScoreSwap)
	}
}

func TestSearchRespectsBannedFlag(t *testing.T) {
	trie := newFakeTrie()
	trie.insert("curse")
	trie.root.children['c'].children['u'].children['r'].children['s'].children['e'].terminal.Banned = true

	dict := &suggtypes.Dictionary{Fold: trie, Map: suggtypes.NewMapClasses(nil)}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("curze", "curze", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range set.Finish(0) {
		if r.Word == "curse" {
			t.Errorf("banned word %q should never be emitted", r.Word)
		}
	}
}

func TestSearchExactMatchScoresZero(t *testing.T) {
	dict := dictWith("exact")
	w := New(dict)
	bw := suggtypes.NewBadWordContext("exact", "exact", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	if len(recs) != 1 || recs[0].Word != "exact" || recs[0].Score != 0 {
		t.Errorf("got %+v, want single zero-score exact match", recs)
	}
}

func TestEmitAppliesRarePenalty(t *testing.T) {
	trie := newFakeTrie()
	trie.insert("rare")
	trie.root.children['r'].children['a'].children['r'].children['e'].terminal.Rare = true

	dict := &suggtypes.Dictionary{Fold: trie, Map: suggtypes.NewMapClasses(nil)}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("rarw", "rarw", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	var got *suggtypes.Record
	for i := range recs {
		if recs[i].Word == "rare" {
			got = &recs[i]
		}
	}
	if got == nil {
		t.Fatalf("expected 'rare' among suggestions, got %+v", recs)
	}
	if want := suggtypes.ScoreSubst + suggtypes.ScoreRare; got.Score != want {
		t.Errorf("score = %d, want %d (subst + rare penalty)", got.Score, want)
	}
}

func TestEmitAppliesRegionPenalty(t *testing.T) {
	trie := newFakeTrie()
	trie.insert("rare")
	trie.root.children['r'].children['a'].children['r'].children['e'].terminal.RegionMask = 0x02

	dict := &suggtypes.Dictionary{Fold: trie, Map: suggtypes.NewMapClasses(nil)}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("rarw", "rarw", suggtypes.CapNone, "", 10)
	bw.RegionMask = 0x01 // disjoint from the dictionary word's region

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	var got *suggtypes.Record
	for i := range recs {
		if recs[i].Word == "rare" {
			got = &recs[i]
		}
	}
	if got == nil {
		t.Fatalf("expected 'rare' among suggestions, got %+v", recs)
	}
	if want := suggtypes.ScoreSubst + suggtypes.ScoreRegion; got.Score != want {
		t.Errorf("score = %d, want %d (subst + region penalty)", got.Score, want)
	}
}

func TestEmitAppliesKeepCasePenalty(t *testing.T) {
	trie := newFakeTrie()
	trie.insert("rare")
	trie.root.children['r'].children['a'].children['r'].children['e'].terminal.KeepCase = true

	dict := &suggtypes.Dictionary{Fold: trie, Map: suggtypes.NewMapClasses(nil)}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("rarw", "rarw", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	recs := set.Finish(0)
	var got *suggtypes.Record
	for i := range recs {
		if recs[i].Word == "rare" {
			got = &recs[i]
		}
	}
	if got == nil {
		t.Fatalf("expected 'rare' among suggestions, got %+v", recs)
	}
	if want := suggtypes.ScoreSubst + suggtypes.ScoreICase; got.Score != want {
		t.Errorf("score = %d, want %d (subst + keep-case penalty)", got.Score, want)
	}
}

func newCompoundDict() *suggtypes.Dictionary {
	trie := newFakeTrie()
	trie.insert("ab")
	trie.insert("cd")
	trie.root.children['a'].children['b'].terminal.CompoundFlag = 'A'
	trie.root.children['c'].children['d'].terminal.CompoundFlag = 'B'
	return &suggtypes.Dictionary{Fold: trie, Map: suggtypes.NewMapClasses(nil)}
}

func TestSearchCompoundJoinAllowed(t *testing.T) {
	dict := newCompoundDict()
	dict.Compound = &suggtypes.CompoundRules{
		MaxPieces:  2,
		MinLength:  1,
		StartFlags: map[byte]bool{'A': true},
		AllFlags:   map[byte]bool{'B': true},
	}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("abcd", "abcd", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	found := false
	for _, r := range set.Finish(0) {
		if r.Word == "abcd" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected compound 'abcd' among suggestions")
	}
}

func TestSearchCompoundRespectsNoCompoundSugs(t *testing.T) {
	dict := newCompoundDict()
	dict.Compound = &suggtypes.CompoundRules{
		MaxPieces:      2,
		MinLength:      1,
		StartFlags:     map[byte]bool{'A': true},
		AllFlags:       map[byte]bool{'B': true},
		NoCompoundSugs: true,
	}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("abcd", "abcd", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range set.Finish(0) {
		if r.Word == "abcd" {
			t.Errorf("NoCompoundSugs should have suppressed the %q compound", r.Word)
		}
	}
}

func TestSearchCompoundCheckPatternVetoesJoin(t *testing.T) {
	dict := newCompoundDict()
	dict.Compound = &suggtypes.CompoundRules{
		MaxPieces:  2,
		MinLength:  1,
		StartFlags: map[byte]bool{'A': true},
		AllFlags:   map[byte]bool{'B': true},
		CheckPattern: func(left, right string) bool {
			return left == "ab" && right == "cd"
		},
	}
	w := New(dict)
	bw := suggtypes.NewBadWordContext("abcd", "abcd", suggtypes.CapNone, "", 10)

	set := suggestionset.New(10, nil)
	if err := w.Search(ctxBG(), bw, set); err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range set.Finish(0) {
		if r.Word == "abcd" {
			t.Errorf("CheckPattern veto should have suppressed the %q join", r.Word)
		}
	}
}

func TestSearchRespectsContextCancellation(t *testing.T) {
	dict := dictWith("aaaaaaaaaa", "bbbbbbbbbb")
	w := New(dict)
	bw := suggtypes.NewBadWordContext("cccccccccc", "cccccccccc", suggtypes.CapNone, "", 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set := suggestionset.New(10, nil)
	// A pre-cancelled context may or may not be observed before the first
	// checkEvery boundary; this just confirms Search never panics and
	// that cancellation, if observed, surfaces as ctx.Err().
	err := w.Search(ctx, bw, set)
	if err != nil && err != context.Canceled {
		t.Errorf("unexpected error: %v", err)
	}
}
