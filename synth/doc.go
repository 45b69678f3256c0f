// Package synth builds the evaluation dataset: one record per anchor
// item, each pairing a query with a ground truth and exactly four
// high-, four medium-, and four low-relevance snippets drawn from other
// pool items.
//
// The package enforces the dataset-wide uniqueness contract: no string
// emitted in any field of any record repeats anywhere else in the
// dataset. A [Ledger] owns that state for one run; the [Builder]
// reserves strings against it transactionally and rolls every
// reservation back when an anchor cannot yield a complete record.
//
// [New] wires the pieces into a [Synthesizer]:
//
//	syn, err := synth.New(synth.Options{Pool: pool, Seed: 42})
//	dataset, stats, err := syn.Run(ctx)
//
// Run fails with [ErrInsufficientCorpus] when the usable pool cannot
// plausibly reach the minimum accepted count, and with
// [ErrBelowMinimumAccept] when, after exhausting every anchor, the
// dataset is still too small. It never silently emits an under-sized
// dataset.
package synth
