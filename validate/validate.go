package validate

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/evalcorpus/synth"
)

// ErrValidationFailed is returned by Result.Err when the dataset has at
// least one violation.
var ErrValidationFailed = errors.New("dataset validation failed")

// Config sets the length floors re-checked per record. Zero fields take
// the generation defaults.
type Config struct {
	// MinQueryLen is the minimum query length in bytes. Default 80.
	MinQueryLen int

	// MinGroundTruthLen is the minimum ground truth length in bytes.
	// Default 150.
	MinGroundTruthLen int
}

func (c Config) withDefaults() Config {
	if c.MinQueryLen <= 0 {
		c.MinQueryLen = 80
	}
	if c.MinGroundTruthLen <= 0 {
		c.MinGroundTruthLen = 150
	}
	return c
}

// Violation is one failed check, tied to the 1-based record index it was
// found in.
type Violation struct {
	Record  int
	Field   string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("[record %d] %s: %s", v.Record, v.Field, v.Message)
}

// Result is the outcome of one validation pass.
type Result struct {
	Records    int
	Violations []Violation
}

// OK reports whether the pass found no violations.
func (r Result) OK() bool { return len(r.Violations) == 0 }

// Err returns nil for a clean pass, or ErrValidationFailed wrapped with
// the violation count.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%d violation(s) in %d record(s): %w",
		len(r.Violations), r.Records, ErrValidationFailed)
}

// File loads the dataset at path and validates it.
func File(path string, cfg Config) (Result, error) {
	ds, err := synth.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Dataset(ds, cfg), nil
}

// Dataset runs every structural check over ds and returns all
// violations found.
func Dataset(ds synth.Dataset, cfg Config) Result {
	cfg = cfg.withDefaults()
	res := Result{Records: len(ds)}
	add := func(rec int, field, format string, args ...any) {
		res.Violations = append(res.Violations, Violation{
			Record:  rec,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	queries := map[string]int{}
	truths := map[string]int{}

	for i, rec := range ds {
		n := i + 1

		if len(rec.Query) < cfg.MinQueryLen {
			add(n, "query", "length %d below minimum %d", len(rec.Query), cfg.MinQueryLen)
		}
		if len(rec.GroundTruth) < cfg.MinGroundTruthLen {
			add(n, "ground_truth", "length %d below minimum %d", len(rec.GroundTruth), cfg.MinGroundTruthLen)
		}
		if rec.Query == rec.GroundTruth {
			add(n, "ground_truth", "identical to query")
		}

		if len(rec.HighRelevance) != synth.PerBand {
			add(n, "high_relevance", "count %d, want %d", len(rec.HighRelevance), synth.PerBand)
		}
		if len(rec.MediumRelevance) != synth.PerBand {
			add(n, "medium_relevance", "count %d, want %d", len(rec.MediumRelevance), synth.PerBand)
		}
		if len(rec.LowRelevance) != synth.PerBand {
			add(n, "low_relevance", "count %d, want %d", len(rec.LowRelevance), synth.PerBand)
		}

		if prev, dup := queries[rec.Query]; dup {
			add(n, "query", "duplicate of record %d", prev)
		} else {
			queries[rec.Query] = n
		}
		if prev, dup := truths[rec.GroundTruth]; dup {
			add(n, "ground_truth", "duplicate of record %d", prev)
		} else {
			truths[rec.GroundTruth] = n
		}
	}

	checkGlobal(ds, add, queries, truths)
	return res
}

// checkGlobal enforces dataset-wide string uniqueness across the three
// relevance bands, including collisions with any query or ground truth.
func checkGlobal(ds synth.Dataset, add func(int, string, string, ...any), queries, truths map[string]int) {
	type origin struct {
		record int
		field  string
	}
	seen := map[string]origin{}

	for i, rec := range ds {
		n := i + 1
		bands := []struct {
			field string
			vals  []string
		}{
			{"high_relevance", rec.HighRelevance},
			{"medium_relevance", rec.MediumRelevance},
			{"low_relevance", rec.LowRelevance},
		}
		for _, band := range bands {
			for _, s := range band.vals {
				if prev, dup := seen[s]; dup {
					add(n, band.field, "duplicate of %s in record %d", prev.field, prev.record)
					continue
				}
				seen[s] = origin{record: n, field: band.field}

				if qr, hit := queries[s]; hit {
					add(n, band.field, "collides with query of record %d", qr)
				}
				if tr, hit := truths[s]; hit {
					add(n, band.field, "collides with ground truth of record %d", tr)
				}
			}
		}
	}
}
