package simulate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/jonwraymond/evalcorpus/corpus"
	"github.com/jonwraymond/evalcorpus/synth"
)

// ErrEmptyDataset is returned when a simulator is built over no records.
var ErrEmptyDataset = errors.New("simulate: dataset has no records")

// MatchTier is the best relevance tier a query's matches reached.
type MatchTier int

const (
	// TierNone means the query matched nothing in its record.
	TierNone MatchTier = iota
	// TierLowMatch means only low-relevance strings matched.
	TierLowMatch
	// TierMediumMatch means a medium-relevance string was the best match.
	TierMediumMatch
	// TierHighMatch means a high-relevance string was the best match.
	TierHighMatch
	// TierPerfect means the ground truth itself matched.
	TierPerfect
)

func (t MatchTier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierHighMatch:
		return "high"
	case TierMediumMatch:
		return "medium"
	case TierLowMatch:
		return "low"
	default:
		return "none"
	}
}

// MarshalJSON encodes the tier as its name.
func (t MatchTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Result is one replayed search.
type Result struct {
	Record  int       `json:"record"`
	Query   string    `json:"query"`
	Tier    MatchTier `json:"tier"`
	Matches []string  `json:"matches"`
}

// Simulator replays queries against a loaded dataset.
type Simulator struct {
	dataset synth.Dataset
	tok     *corpus.Tokenizer
	terms   []corpus.TokenSet
}

// New builds a Simulator over ds, pre-tokenizing every query.
func New(ds synth.Dataset) (*Simulator, error) {
	if len(ds) == 0 {
		return nil, ErrEmptyDataset
	}
	tok, err := corpus.NewTokenizer()
	if err != nil {
		return nil, err
	}

	terms := make([]corpus.TokenSet, len(ds))
	for i, rec := range ds {
		terms[i] = tok.Tokenize(rec.Query)
	}
	return &Simulator{dataset: ds, tok: tok, terms: terms}, nil
}

// Load reads a dataset file and builds a Simulator over it.
func Load(path string) (*Simulator, error) {
	ds, err := synth.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(ds)
}

// Len returns the record count.
func (s *Simulator) Len() int { return len(s.dataset) }

// Replay runs record i's query against its own answer strings and
// reports the best tier that matched.
func (s *Simulator) Replay(i int) (Result, error) {
	if i < 0 || i >= len(s.dataset) {
		return Result{}, fmt.Errorf("record %d out of range [0,%d)", i, len(s.dataset))
	}
	rec := s.dataset[i]
	query := s.terms[i]

	res := Result{Record: i, Query: rec.Query}

	if s.overlaps(query, rec.GroundTruth) {
		res.Tier = TierPerfect
		res.Matches = []string{rec.GroundTruth}
		return res, nil
	}

	bands := []struct {
		tier MatchTier
		vals []string
	}{
		{TierHighMatch, rec.HighRelevance},
		{TierMediumMatch, rec.MediumRelevance},
		{TierLowMatch, rec.LowRelevance},
	}
	for _, band := range bands {
		var matches []string
		for _, s2 := range band.vals {
			if s.overlaps(query, s2) {
				matches = append(matches, s2)
			}
		}
		if len(matches) > 0 {
			res.Tier = band.tier
			res.Matches = matches
			return res, nil
		}
	}

	res.Tier = TierNone
	return res, nil
}

// ReplayRandom replays a seeded random record.
func (s *Simulator) ReplayRandom(rng *rand.Rand) (Result, error) {
	return s.Replay(rng.Intn(len(s.dataset)))
}

// Stats summarizes tier outcomes across every record.
type Stats struct {
	Records int            `json:"records"`
	Tiers   map[string]int `json:"tiers"`
}

// Sweep replays every record and tallies the tiers reached.
func (s *Simulator) Sweep() (Stats, error) {
	stats := Stats{Records: len(s.dataset), Tiers: make(map[string]int)}
	for i := range s.dataset {
		res, err := s.Replay(i)
		if err != nil {
			return stats, err
		}
		stats.Tiers[res.Tier.String()]++
	}
	return stats, nil
}

// overlaps reports whether any query term appears in text's token set.
func (s *Simulator) overlaps(query corpus.TokenSet, text string) bool {
	for tok := range s.tok.Tokenize(text) {
		if query.Contains(tok) {
			return true
		}
	}
	return false
}
