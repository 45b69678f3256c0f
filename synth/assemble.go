package synth

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/jonwraymond/evalcorpus/corpus"
)

// AssemblerConfig sets the run-level counts. Zero values take the
// documented defaults.
type AssemblerConfig struct {
	// TargetCount is the desired dataset size. Default 210.
	TargetCount int

	// MinimumAccept is the hard floor: a run finishing below it fails
	// rather than emitting an under-sized dataset. Default 200.
	MinimumAccept int
}

func (c AssemblerConfig) withDefaults() AssemblerConfig {
	if c.TargetCount <= 0 {
		c.TargetCount = 210
	}
	if c.MinimumAccept <= 0 {
		c.MinimumAccept = 200
	}
	return c
}

// Stats summarizes one assembly run.
type Stats struct {
	// Built is the number of committed records.
	Built int
	// Rejected counts anchors that failed to yield a record.
	Rejected int
	// AnchorsTried counts anchors visited before stopping.
	AnchorsTried int
}

// Assembler drives record building across the pool until the target
// count is reached or anchors are exhausted.
type Assembler struct {
	pool    *corpus.Pool
	builder *Builder
	cfg     AssemblerConfig
	rng     *rand.Rand
	log     *zap.Logger
}

// NewAssembler wires an assembler. rng orders the anchors; a nil logger
// disables logging.
func NewAssembler(pool *corpus.Pool, builder *Builder, cfg AssemblerConfig, rng *rand.Rand, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{
		pool:    pool,
		builder: builder,
		cfg:     cfg.withDefaults(),
		rng:     rng,
		log:     log,
	}
}

// Run iterates anchors in seeded-shuffled order, building one record per
// anchor. Per-anchor rejections are recovered locally; pool-exhaustion
// below the accept floor is surfaced as ErrBelowMinimumAccept. The
// partial dataset is returned alongside the error for inspection, but
// must not be persisted.
func (a *Assembler) Run(ctx context.Context) (Dataset, Stats, error) {
	var stats Stats

	// One anchor yields at most one record, so a pool smaller than the
	// accept floor can never reach it.
	if n := a.pool.Len(); n < a.cfg.MinimumAccept {
		return nil, stats, fmt.Errorf("usable pool has %d items, minimum accept is %d: %w",
			n, a.cfg.MinimumAccept, ErrInsufficientCorpus)
	}

	anchors := make([]*corpus.Item, len(a.pool.Items()))
	copy(anchors, a.pool.Items())
	a.rng.Shuffle(len(anchors), func(i, j int) {
		anchors[i], anchors[j] = anchors[j], anchors[i]
	})

	dataset := make(Dataset, 0, a.cfg.TargetCount)
	for _, anchor := range anchors {
		if err := ctx.Err(); err != nil {
			return dataset, stats, err
		}
		if len(dataset) >= a.cfg.TargetCount {
			break
		}

		stats.AnchorsTried++
		rec, err := a.builder.Build(anchor)
		if err != nil {
			if errors.Is(err, ErrRecordRejected) {
				stats.Rejected++
				a.log.Debug("anchor rejected", zap.String("anchor", anchor.ID), zap.Error(err))
				continue
			}
			return dataset, stats, err
		}

		dataset = append(dataset, rec)
		stats.Built++
	}

	a.log.Info("dataset assembled",
		zap.Int("built", stats.Built),
		zap.Int("rejected", stats.Rejected),
		zap.Int("target", a.cfg.TargetCount),
		zap.Int("minimum_accept", a.cfg.MinimumAccept),
	)

	if stats.Built < a.cfg.MinimumAccept {
		return dataset, stats, fmt.Errorf("built %d records, minimum accept is %d: %w",
			stats.Built, a.cfg.MinimumAccept, ErrBelowMinimumAccept)
	}
	return dataset, stats, nil
}
