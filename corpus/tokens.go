package corpus

import (
	"fmt"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/registry"
)

// TokenSet is the set of lowercase alphanumeric tokens extracted from an
// item's text and tags, with English stop words removed.
type TokenSet map[string]struct{}

// Contains reports whether tok is in the set.
func (t TokenSet) Contains(tok string) bool {
	_, ok := t[tok]
	return ok
}

// Tokenizer turns text into a TokenSet using bleve's standard analyzer
// (unicode tokenization, lowercasing, English stop-word removal).
// Tokenizer is safe for concurrent use.
type Tokenizer struct {
	analyzer analysis.Analyzer
}

// NewTokenizer builds a Tokenizer backed by the standard analyzer.
func NewTokenizer() (*Tokenizer, error) {
	cache := registry.NewCache()
	analyzer, err := cache.AnalyzerNamed(standard.Name)
	if err != nil {
		return nil, fmt.Errorf("build standard analyzer: %w", err)
	}
	return &Tokenizer{analyzer: analyzer}, nil
}

// Tokenize analyzes text into a TokenSet. Empty input yields an empty,
// non-nil set.
func (t *Tokenizer) Tokenize(text string) TokenSet {
	set := make(TokenSet)
	if text == "" {
		return set
	}
	for _, tok := range t.analyzer.Analyze([]byte(text)) {
		set[string(tok.Term)] = struct{}{}
	}
	return set
}
