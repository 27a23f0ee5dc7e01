// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Command spellsuggest is a debug CLI for trying the suggestion engine
against a plain-text word list.

# Usage

	spellsuggest -words dict.txt hallo
	spellsuggest -words dict.txt -opt fast,timeout:200 -c

The word list is one word per line; lines are inserted into an in-memory
fold-case trie with no affix processing (dictionary/affix parsing is out
of scope, per spec.md §1) — this harness exists to exercise the walker,
sound-fold search, and orchestrator end to end, not to load a real
Hunspell-style dictionary.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/oldhand-spell/spellsuggest/internal/logger"
	"github.com/oldhand-spell/spellsuggest/internal/trie"
	"github.com/oldhand-spell/spellsuggest/pkg/orchestrator"
	"github.com/oldhand-spell/spellsuggest/pkg/suggtypes"
)

const (
	Version = "0.1.0-beta"
	AppName = "spellsuggest"
)

func main() {
	wordsPath := flag.String("words", "", "path to a newline-delimited word list")
	opt := flag.String("opt", "", "'spellsuggest' option string (e.g. fast,timeout:200)")
	interactive := flag.Bool("c", false, "read bad words from stdin, one per line")
	showVersion := flag.Bool("version", false, "show current version")
	debug := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return
	}

	log := logger.New("spellsuggest")
	if *debug {
		log.SetLevel(charmlog.DebugLevel)
	}

	if *wordsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: spellsuggest -words <wordlist.txt> [bad-word ...]")
		os.Exit(2)
	}

	dict, err := loadDictionary(*wordsPath)
	if err != nil {
		log.Errorf("loading word list: %v", err)
		os.Exit(1)
	}

	mode, err := orchestrator.ParseMode(*opt)
	if err != nil {
		log.Errorf("parsing -opt: %v", err)
		os.Exit(1)
	}

	o := orchestrator.New([]*suggtypes.Dictionary{dict}, orchestrator.Collaborators{
		CaseFold: strings.ToLower,
		CapType:  suggtypes.CaptypeOf,
	})

	if *interactive {
		runInteractive(o, mode)
		return
	}

	for _, word := range flag.Args() {
		printSuggestions(o, word, mode)
	}
}

// loadDictionary builds a minimal in-memory Dictionary from a plain word
// list, enough to drive the TrieWalker (soundfold/rep/map tables are left
// empty; this harness never exercises sound-alike scoring).
func loadDictionary(path string) (*suggtypes.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := trie.NewBuilder()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		b.Insert(strings.ToLower(word), suggtypes.WordFlags{})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &suggtypes.Dictionary{
		Name: path,
		Fold: b.Build(),
		Map:  suggtypes.NewMapClasses(nil),
	}, nil
}

func runInteractive(o *orchestrator.Orchestrator, mode orchestrator.Mode) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		printSuggestions(o, word, mode)
	}
}

func printSuggestions(o *orchestrator.Orchestrator, word string, mode orchestrator.Mode) {
	recs := o.Suggest(context.Background(), word, mode)
	if len(recs) == 0 {
		fmt.Printf("%s: no suggestions\n", word)
		return
	}
	fmt.Printf("%s:\n", word)
	for _, r := range recs {
		fmt.Printf("  %-20s score=%d\n", r.Word, r.Score)
	}
}
