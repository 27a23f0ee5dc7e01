// Package external implements the ExternalInputs adapters spec.md §6 leaves
// as black-box collaborators: a frequency table, a file-backed correction
// source, and the request-scoped banned-word set.
package external

import (
	"bufio"
	"io"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// WordCountTable backs Dictionary.WordCount with a *patricia.Trie keyed by
// word, the same structure and idiom the teacher's Completer uses for its
// own frequency table (pkg/suggest/completion.go's AddWord/trie.Insert),
// generalized here from a completion index to a spelling frequency index.
type WordCountTable struct {
	trie *patricia.Trie
}

// NewWordCountTable builds an empty table.
func NewWordCountTable() *WordCountTable {
	return &WordCountTable{trie: patricia.NewTrie()}
}

// Add records word's frequency, overwriting any previous count.
func (t *WordCountTable) Add(word string, count int) {
	t.trie.Insert(patricia.Prefix(word), count)
}

// Lookup implements the Dictionary.WordCount signature.
func (t *WordCountTable) Lookup(word string) (int, bool) {
	item := t.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	switch v := item.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case uint32:
		return int(v), true
	default:
		return 0, false
	}
}

// FileRule is one "bad<TAB>good" line from a file: mode spec §6.
type FileRule struct {
	Bad  string
	Good string
}

// FileSource answers file:<path> mode lookups (§6): "on case-only match of
// bad, emit good ... at score 30".
type FileSource struct {
	rules map[string]string // casefolded bad -> good (exact case as read)
}

// LoadFileSource parses r as a sequence of non-blank "bad\tgood" lines.
func LoadFileSource(r io.Reader) (*FileSource, error) {
	fs := &FileSource{rules: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		fs.rules[strings.ToLower(parts[0])] = parts[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Lookup returns the replacement for a case-folded bad word and whether one
// exists. Callers apply the bad word's caps pattern to the result
// themselves when the result has no explicit case of its own, per §6.
func (fs *FileSource) Lookup(foldedBad string) (string, bool) {
	good, ok := fs.rules[foldedBad]
	return good, ok
}

// Record builds the Record a file-source match contributes, at
// SCORE_FILE=30 (§3, §6).
func (fs *FileSource) Record(good string, orgLen int) suggtypes.Record {
	return suggtypes.Record{Word: good, OrgLen: orgLen, Score: suggtypes.ScoreFile}
}

// ExprCollaborator invokes the host's expr:<vimlike-expression> collaborator
// (§6). The engine never evaluates expressions itself; this is a thin seam
// a host implementation plugs into.
type ExprCollaborator func(expr, badWord string) ([]string, error)

// BannedWords is the request-scoped banned-word set (§3, §5): insertion-only
// for the life of one request, backed by mapset.Set[string] the same way
// the phonetic dedup table in pkg/soundfold is.
type BannedWords struct {
	set mapset.Set[string]
}

// NewBannedWords creates an empty banned-word set.
func NewBannedWords() *BannedWords {
	return &BannedWords{set: mapset.NewSet[string]()}
}

// Ban adds word to the set.
func (b *BannedWords) Ban(word string) { b.set.Add(word) }

// Contains implements the suggestionset.Set banned-word predicate.
func (b *BannedWords) Contains(word string) bool { return b.set.Contains(word) }
