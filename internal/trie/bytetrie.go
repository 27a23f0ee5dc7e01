// Package trie provides the in-memory backing store for the fold-case,
// keep-case, postponed-prefix and sound-fold tries the walker consumes via
// suggtypes.Trie.
//
// It is a from-scratch byte trie rather than a patricia.Trie: go-patricia's
// public API (Insert/Get/Visit/VisitSubtree) intentionally hides its
// compressed internal nodes, but the state machine in pkg/walker needs to
// advance exactly one byte per search depth and push/pop frames mid-node —
// something only possible with direct child-by-byte navigation. The shape
// here (map-keyed children, a terminal marker holding flags) mirrors
// cockroachdb's fuzzystrmatch.FuzzyTrie, generalized from runes to raw
// bytes and from a single terminal bool to the full WordFlags §3 packs into
// a terminal idxs[] entry.
package trie

import (
	"sort"

	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

type node struct {
	children map[byte]*node
	terminal *suggtypes.WordFlags
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// byteTrie implements suggtypes.Trie over a node graph built by Builder.
type byteTrie struct {
	root *node
}

// Root implements suggtypes.Trie.
func (t *byteTrie) Root() suggtypes.NodeRef {
	return t.root
}

// Child implements suggtypes.Trie. b == 0 asks whether n is itself
// terminal, returning n unchanged so callers that "descend" into the NUL
// child land back on the node whose Terminal() they should consult — this
// is the dual interpretation of idxs[] the spec describes (§3, §9), made
// explicit here instead of overloading one array slot.
func (t *byteTrie) Child(n suggtypes.NodeRef, b byte) (suggtypes.NodeRef, bool) {
	cur, ok := n.(*node)
	if !ok || cur == nil {
		return nil, false
	}
	if b == 0 {
		if cur.terminal != nil {
			return cur, true
		}
		return nil, false
	}
	child, ok := cur.children[b]
	return child, ok
}

// Children implements suggtypes.Trie: NUL first (if n is terminal), then
// sorted non-NUL child bytes.
func (t *byteTrie) Children(n suggtypes.NodeRef) []byte {
	cur, ok := n.(*node)
	if !ok || cur == nil {
		return nil
	}
	out := make([]byte, 0, len(cur.children)+1)
	if cur.terminal != nil {
		out = append(out, 0)
	}
	bs := make([]byte, 0, len(cur.children))
	for b := range cur.children {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	return append(out, bs...)
}

// Terminal implements suggtypes.Trie.
func (t *byteTrie) Terminal(n suggtypes.NodeRef) (suggtypes.WordFlags, bool) {
	cur, ok := n.(*node)
	if !ok || cur == nil || cur.terminal == nil {
		return suggtypes.WordFlags{}, false
	}
	return *cur.terminal, true
}

// Builder constructs a byteTrie one word at a time. It is the load-time
// counterpart to byteTrie's read-only Trie interface — dictionary/affix
// parsing (out of scope per spec.md §1) is expected to drive this.
type Builder struct {
	root *node
}

// NewBuilder starts a new, empty trie under construction.
func NewBuilder() *Builder {
	return &Builder{root: newNode()}
}

// Insert adds word with the given terminal flags. Inserting the same word
// twice overwrites its flags.
func (b *Builder) Insert(word string, flags suggtypes.WordFlags) {
	cur := b.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		child, ok := cur.children[c]
		if !ok {
			child = newNode()
			cur.children[c] = child
		}
		cur = child
	}
	f := flags
	cur.terminal = &f
}

// Build finalizes the trie for read-only use.
func (b *Builder) Build() suggtypes.Trie {
	return &byteTrie{root: b.root}
}
