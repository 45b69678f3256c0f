package synth

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/evalcorpus/corpus"
	"github.com/jonwraymond/evalcorpus/relevance"
)

// Options configures a Synthesizer.
type Options struct {
	// Pool is the usable item pool. Required.
	Pool *corpus.Pool

	// Thresholds for band classification. Zero fields take the
	// relevance package defaults.
	Thresholds relevance.Thresholds

	// Builder sets snippet length bands.
	Builder BuilderConfig

	// Assembler sets target and minimum-accept counts.
	Assembler AssemblerConfig

	// Seed makes anchor ordering and sentence shuffling reproducible.
	// Zero derives a seed from the clock.
	Seed int64

	// Logger receives run progress. Nil disables logging.
	Logger *zap.Logger
}

// Synthesizer is the facade tying pool, classifier, builder, and
// assembler into one run.
type Synthesizer struct {
	ledger    *Ledger
	assembler *Assembler
	seed      int64
}

// New wires a Synthesizer from the options.
func New(opts Options) (*Synthesizer, error) {
	if opts.Pool == nil {
		return nil, errors.New("synth: Options.Pool is required")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ledger := NewLedger()
	classifier := relevance.NewClassifier(opts.Pool, opts.Thresholds)
	builder := NewBuilder(classifier, ledger, opts.Builder, rng)
	assembler := NewAssembler(opts.Pool, builder, opts.Assembler, rng, opts.Logger)

	return &Synthesizer{
		ledger:    ledger,
		assembler: assembler,
		seed:      seed,
	}, nil
}

// Run executes one assembly pass. See Assembler.Run for error
// semantics.
func (s *Synthesizer) Run(ctx context.Context) (Dataset, Stats, error) {
	return s.assembler.Run(ctx)
}

// Seed returns the effective random seed for this run.
func (s *Synthesizer) Seed() int64 { return s.seed }

// Ledger exposes the run's uniqueness ledger, mainly for tests and
// post-run assertions.
func (s *Synthesizer) Ledger() *Ledger { return s.ledger }
