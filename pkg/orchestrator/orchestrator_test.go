package orchestrator

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/oldhand-spell/spellsuggest/pkg/external"
	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// fakeNode/fakeTrie mirror pkg/walker's in-memory fixture: a tiny
// suggtypes.Trie implementation so these tests exercise only the public
// Dictionary/Trie contracts, not internal/trie.
type fakeNode struct {
	children map[byte]*fakeNode
	terminal *suggtypes.WordFlags
}

func newFakeNode() *fakeNode { return &fakeNode{children: make(map[byte]*fakeNode)} }

type fakeTrie struct{ root *fakeNode }

func newFakeTrie() *fakeTrie { return &fakeTrie{root: newFakeNode()} }

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
		Name: "test",
		Fold: trie,
		Map:  suggtypes.NewMapClasses(nil),
	}
}

func identityCollab() Collaborators {
	return Collaborators{
		CaseFold: strings.ToLower,
		CapType:  suggtypes.CaptypeOf,
	}
}

func TestParseModeDefaults(t *testing.T) {
	m, err := ParseMode("")
	if err != nil {
		t.Fatalf("ParseMode(\"\"): %v", err)
	}
	if m != DefaultMode() {
		t.Errorf("got %+v, want default %+v", m, DefaultMode())
	}
}

func TestParseModeStrategyAndOptions(t *testing.T) {
	m, err := ParseMode("fast,timeout:100,30")
	if err != nil {
		t.Fatalf("ParseMode: %v", err)
	}
	if m.Strategy != "fast" || m.TimeoutMS != 100 || m.MaxCount != 30 {
		t.Errorf("got %+v, want Strategy=fast TimeoutMS=100 MaxCount=30", m)
	}
}

func TestParseModeExprAndFile(t *testing.T) {
	m, err := ParseMode("double,expr:MySuggest(),file:/tmp/corrections.txt")
	if err != nil {
		t.Fatalf("ParseMode: %v", err)
	}
	if m.Strategy != "double" || m.Expr != "MySuggest()" || m.FilePath != "/tmp/corrections.txt" {
		t.Errorf("got %+v", m)
	}
}

func TestParseModeRejectsTwoStrategies(t *testing.T) {
	if _, err := ParseMode("best,fast"); err == nil {
		t.Error("expected error for conflicting method flags")
	}
}

func TestParseModeRejectsGarbage(t *testing.T) {
	if _, err := ParseMode("not-a-real-option"); err == nil {
		t.Error("expected error for unrecognized option")
	}
}

func TestParseModeNegativeTimeout(t *testing.T) {
	m, err := ParseMode("timeout:-1")
	if err != nil {
		t.Fatalf("ParseMode: %v", err)
	}
	if m.TimeoutMS != -1 {
		t.Errorf("TimeoutMS = %d, want -1", m.TimeoutMS)
	}
}

func TestSuggestEmptyInputIsNoop(t *testing.T) {
	o := New(nil, Collaborators{})
	got := o.Suggest(context.Background(), "   ", DefaultMode())
	if got != nil {
		t.Errorf("expected nil for blank input, got %+v", got)
	}
}

func TestSuggestFindsTrieWalkerMatch(t *testing.T) {
	dict := dictWith("hello", "world")
	o := New([]*suggtypes.Dictionary{dict}, identityCollab())

	recs := o.Suggest(context.Background(), "hallo", DefaultMode())
	found := false
	for _, r := range recs {
		if r.Word == "hello" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'hello' among suggestions, got %+v", recs)
	}
}

func TestSuggestCapitalizedVariantWhenNotMisspelled(t *testing.T) {
	dict := dictWith("anything")
	collab := identityCollab()
	collab.IsMisspelled = func(string) bool { return false }
	o := New([]*suggtypes.Dictionary{dict}, collab)

	recs := o.Suggest(context.Background(), "paris", DefaultMode())
	found := false
	for _, r := range recs {
		if r.Word == "Paris" && r.Score == suggtypes.ScoreICase {
			found = true
		}
	}
	if !found {
		t.Errorf("expected capitalized variant 'Paris' at ScoreICase, got %+v", recs)
	}
}

func TestSuggestBansInputWord(t *testing.T) {
	dict := dictWith("hello")
	o := New([]*suggtypes.Dictionary{dict}, identityCollab())

	recs := o.Suggest(context.Background(), "hallo", DefaultMode())
	for _, r := range recs {
		if r.Word == "hallo" {
			t.Errorf("the bad word itself should never be suggested: %+v", recs)
		}
	}
}

func TestSuggestFileSourceMatch(t *testing.T) {
	fs, err := external.LoadFileSource(strings.NewReader("hallo\thello\n"))
	if err != nil {
		t.Fatalf("LoadFileSource: %v", err)
	}
	collab := identityCollab()
	collab.FileSource = fs

	o := New(nil, collab)
	mode := DefaultMode()
	mode.FilePath = "/tmp/whatever.txt" // only gates whether FileSource is consulted

	recs := o.Suggest(context.Background(), "hallo", mode)
	found := false
	for _, r := range recs {
		if r.Word == "hello" && r.Score == suggtypes.ScoreFile {
			found = true
		}
	}
	if !found {
		t.Errorf("expected file-source match 'hello' at ScoreFile, got %+v", recs)
	}
}

func TestSuggestExprCollaborator(t *testing.T) {
	collab := identityCollab()
	collab.Expr = func(expr, bad string) ([]string, error) {
		return []string{"fromexpr"}, nil
	}
	o := New(nil, collab)
	mode := DefaultMode()
	mode.Expr = "AnyExpr()"

	recs := o.Suggest(context.Background(), "whatever", mode)
	found := false
	for _, r := range recs {
		if r.Word == "fromexpr" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected expr-sourced suggestion, got %+v", recs)
	}
}

func TestSuggestTrySpecialCollapsesDoubledWord(t *testing.T) {
	word, ok := suggestTrySpecial("the the")
	if !ok || word != "the" {
		t.Errorf("suggestTrySpecial(\"the the\") = (%q, %v), want (the, true)", word, ok)
	}
	if _, ok := suggestTrySpecial("the quick"); ok {
		t.Error("suggestTrySpecial should not fire on two distinct words")
	}
}

func TestSuggestDoubleStrategyRuns(t *testing.T) {
	dict := dictWith("hello", "world")
	o := New([]*suggtypes.Dictionary{dict}, identityCollab())
	mode := DefaultMode()
	mode.Strategy = "double"

	recs := o.Suggest(context.Background(), "hallo", mode)
	found := false
	for _, r := range recs {
		if r.Word == "hello" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'hello' among double-mode suggestions, got %+v", recs)
	}
}

func TestSuggestRespectsContextCancellation(t *testing.T) {
	dict := dictWith("hello", "world")
	o := New([]*suggtypes.Dictionary{dict}, identityCollab())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Must not panic even though the context is already dead.
	_ = o.Suggest(ctx, "hallo", DefaultMode())
}
