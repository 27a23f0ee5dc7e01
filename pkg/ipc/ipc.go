/*
Package ipc specifies the wire envelope a host process uses to talk to the
spellsuggest engine over msgpack, patterned on the teacher's
pkg/server/interface.go. The engine itself never does I/O (spec.md §6
treats the host as an external collaborator); this package only gives
that boundary a concrete, typed shape so a future adapter has something
to encode/decode against.
*/
package ipc

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

// SuggestRequest is one spell-suggestion call: the misspelled word, the
// 'spellsuggest' option string (spec.md §6 grammar, parsed by
// pkg/orchestrator.ParseMode), and the language(s) to search.
type SuggestRequest struct {
	ID        string   `msgpack:"id"`
	Word      string   `msgpack:"w"`
	Option    string   `msgpack:"opt,omitempty"`
	Languages []string `msgpack:"langs,omitempty"`
}

// SuggestionWire is one ranked suggestion as sent over the wire: just the
// word and its final score, the alt-score detail §3/§4.5 tracks internally
// stays server-side.
type SuggestionWire struct {
	Word  string `msgpack:"w"`
	Score int    `msgpack:"s"`
}

// SuggestResponse answers a SuggestRequest.
type SuggestResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []SuggestionWire `msgpack:"s"`
	Count       int              `msgpack:"c"`
	TimeTakenMS int64            `msgpack:"t"`
}

// SuggestError reports a failed SuggestRequest (§7's
// Deadline/Interrupt/InputInvalid/ConfigInvalid surfaced to a host as one
// of these codes rather than a language-specific error type).
type SuggestError struct {
	ID    string `msgpack:"id"`
	Code  string `msgpack:"code"` // "deadline", "interrupt", "input_invalid", "config_invalid"
	Error string `msgpack:"e"`
}

// ToWire converts engine Records into the wire suggestion list, dropping
// the internal alt-score/phonetic bookkeeping a host has no use for.
func ToWire(recs []suggtypes.Record) []SuggestionWire {
	out := make([]SuggestionWire, len(recs))
	for i, r := range recs {
		out[i] = SuggestionWire{Word: r.Word, Score: r.Score}
	}
	return out
}

// Encode marshals v (a *SuggestRequest, *SuggestResponse, or *SuggestError)
// to msgpack bytes.
func Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode unmarshals msgpack bytes into v.
func Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
