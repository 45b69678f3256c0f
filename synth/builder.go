package synth

import (
	"fmt"
	"math/rand"

	"github.com/jonwraymond/evalcorpus/corpus"
	"github.com/jonwraymond/evalcorpus/relevance"
	"github.com/jonwraymond/evalcorpus/snippet"
)

// BuilderConfig sets the length bands for extracted strings. Zero-valued
// bands take the documented defaults.
type BuilderConfig struct {
	// QueryBand bounds the query snippet. Default 80–320.
	QueryBand snippet.Band

	// GroundTruthBand bounds the ground-truth snippet; a strictly longer
	// band than the query's. Default 150–600.
	GroundTruthBand snippet.Band

	// RelevanceBand bounds every band snippet. Default 80–320.
	RelevanceBand snippet.Band

	// ShuffleSentences shuffles a candidate item's sentence order before
	// relevance-snippet extraction, trading determinism of snippet choice
	// for diversity. Reproducible under a fixed seed either way.
	ShuffleSentences bool
}

func (c BuilderConfig) withDefaults() BuilderConfig {
	if c.QueryBand == (snippet.Band{}) {
		c.QueryBand = snippet.Band{Min: 80, Max: 320}
	}
	if c.GroundTruthBand == (snippet.Band{}) {
		c.GroundTruthBand = snippet.Band{Min: 150, Max: 600}
	}
	if c.RelevanceBand == (snippet.Band{}) {
		c.RelevanceBand = snippet.Band{Min: 80, Max: 320}
	}
	return c
}

// Builder constructs one Record per anchor item. Each build is a
// transaction against the run's Ledger: either every extracted string is
// committed together or the anchor is rejected and no reservation
// survives.
type Builder struct {
	classifier *relevance.Classifier
	ledger     *Ledger
	cfg        BuilderConfig
	rng        *rand.Rand
}

// NewBuilder wires a builder to a classifier and ledger. rng drives the
// optional sentence shuffling and must not be shared with concurrent
// users.
func NewBuilder(classifier *relevance.Classifier, ledger *Ledger, cfg BuilderConfig, rng *rand.Rand) *Builder {
	return &Builder{
		classifier: classifier,
		ledger:     ledger,
		cfg:        cfg.withDefaults(),
		rng:        rng,
	}
}

// Build assembles a record for the anchor, or returns an error wrapping
// ErrRecordRejected with no side effects on the ledger.
func (b *Builder) Build(anchor *corpus.Item) (Record, error) {
	tx := b.ledger.Begin()
	defer tx.Rollback()

	query := b.reserveAnchorSnippet(tx, anchor, b.cfg.QueryBand)
	if query == "" {
		return Record{}, rejectf(anchor, "no unique query in band %d-%d", b.cfg.QueryBand.Min, b.cfg.QueryBand.Max)
	}

	groundTruth := b.reserveGroundTruth(tx, anchor)
	if groundTruth == "" {
		return Record{}, rejectf(anchor, "no unique ground truth in band %d-%d", b.cfg.GroundTruthBand.Min, b.cfg.GroundTruthBand.Max)
	}

	// Items already consumed by this record; an item contributes to at
	// most one band so low never reuses a high/medium placement.
	usedItems := map[string]struct{}{anchor.ID: {}}

	high, err := b.fillBand(tx, anchor, relevance.TierHigh, usedItems)
	if err != nil {
		return Record{}, err
	}
	medium, err := b.fillBand(tx, anchor, relevance.TierMedium, usedItems)
	if err != nil {
		return Record{}, err
	}
	low, err := b.fillBand(tx, anchor, relevance.TierLow, usedItems)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Query:           query,
		Description:     anchor.NormalizedDescription(),
		GroundTruth:     groundTruth,
		HighRelevance:   high,
		MediumRelevance: medium,
		LowRelevance:    low,
	}
	tx.Commit()
	return rec, nil
}

// reserveAnchorSnippet extracts a query-class snippet from the anchor,
// preferring the description, and reserves the first candidate not yet
// used anywhere in the run.
func (b *Builder) reserveAnchorSnippet(tx *Tx, anchor *corpus.Item, band snippet.Band) string {
	for _, source := range []string{anchor.NormalizedDescription(), anchor.NormalizedBody()} {
		if s := b.reserveFromSource(tx, source, band, false); s != "" {
			return s
		}
	}
	return ""
}

// reserveGroundTruth extracts the longer ground-truth snippet from the
// anchor's combined text. The ledger guarantees it differs from the
// already-reserved query string.
func (b *Builder) reserveGroundTruth(tx *Tx, anchor *corpus.Item) string {
	for _, source := range []string{anchor.CombinedText(), anchor.NormalizedBody()} {
		if s := b.reserveFromSource(tx, source, b.cfg.GroundTruthBand, false); s != "" {
			return s
		}
	}
	return ""
}

// fillBand collects exactly PerBand unique snippets for the tier,
// walking the classifier's strict candidates first and widening stage by
// stage when the band runs short.
func (b *Builder) fillBand(tx *Tx, anchor *corpus.Item, tier relevance.Tier, usedItems map[string]struct{}) ([]string, error) {
	out := make([]string, 0, PerBand)

	for stage := relevance.StageStrict; stage <= relevance.MaxStage && len(out) < PerBand; stage++ {
		for _, cand := range b.classifier.Widened(anchor, tier, stage) {
			if len(out) == PerBand {
				break
			}
			if _, used := usedItems[cand.ID]; used {
				continue
			}
			// The item is consumed whether or not it yields a snippet;
			// later stages would only re-extract the same text.
			usedItems[cand.ID] = struct{}{}

			if s := b.reserveCandidateSnippet(tx, cand); s != "" {
				out = append(out, s)
			}
		}
	}

	if len(out) < PerBand {
		return nil, rejectf(anchor, "%s band filled %d of %d after widening", tier, len(out), PerBand)
	}
	return out, nil
}

// reserveCandidateSnippet tries the candidate's description, body, and
// combined text in turn until one yields a reservable snippet.
func (b *Builder) reserveCandidateSnippet(tx *Tx, cand *corpus.Item) string {
	sources := []string{cand.NormalizedDescription(), cand.NormalizedBody(), cand.CombinedText()}
	for _, source := range sources {
		if s := b.reserveFromSource(tx, source, b.cfg.RelevanceBand, b.cfg.ShuffleSentences); s != "" {
			return s
		}
	}
	return ""
}

// reserveFromSource walks the source's snippet candidates and reserves
// the first one not yet used anywhere in the run.
func (b *Builder) reserveFromSource(tx *Tx, source string, band snippet.Band, shuffle bool) string {
	if source == "" {
		return ""
	}
	sents := snippet.Sentences(source)
	if shuffle && len(sents) > 1 {
		b.rng.Shuffle(len(sents), func(i, j int) {
			sents[i], sents[j] = sents[j], sents[i]
		})
	}
	for _, s := range snippet.Candidates(sents, band) {
		if tx.Reserve(s) {
			return s
		}
	}
	return ""
}

func rejectf(anchor *corpus.Item, format string, args ...any) error {
	return fmt.Errorf("anchor %s: %s: %w", anchor.ID, fmt.Sprintf(format, args...), ErrRecordRejected)
}
