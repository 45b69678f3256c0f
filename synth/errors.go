package synth

import "errors"

// Sentinel errors for consistent error handling.
var (
	// ErrRecordRejected marks a per-anchor failure: the anchor could not
	// satisfy uniqueness, length, or band-cardinality constraints. The
	// assembler recovers by skipping the anchor.
	ErrRecordRejected = errors.New("record rejected")

	// ErrInsufficientCorpus is fatal: the usable pool is too small to
	// plausibly reach the minimum accepted dataset size.
	ErrInsufficientCorpus = errors.New("insufficient corpus")

	// ErrBelowMinimumAccept is fatal: every anchor was tried and the
	// dataset is still below the minimum accepted size.
	ErrBelowMinimumAccept = errors.New("dataset below minimum accept")
)
