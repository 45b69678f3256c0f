// Package corpus models the source item pool the dataset is synthesized
// from.
//
// An [Item] is one corpus entry: an id, a short description, a longer
// body, a single category, and a set of tags. Items arrive from an
// external fetch step as a JSON array (see [Load]) and are immutable for
// the duration of a run.
//
// [NewPool] filters raw items down to the usable pool (items with
// enough text to extract snippets from), derives missing categories from
// qualified ids, attaches a token set to every item, and builds
// category/tag indexes for candidate retrieval:
//
//	items, _ := corpus.Load("corpus.json")
//	pool, err := corpus.NewPool(items, corpus.PoolOptions{})
//	same := pool.SameCategory(anchor)
//	overlapping := pool.TagOverlap(anchor)
//
// # Token sets
//
// Token sets are built with bleve's standard analyzer: unicode word
// tokenization, lowercasing, and English stop-word removal. They feed
// the Jaccard similarity scoring in the relevance package and are
// computed once per item when the pool is built.
package corpus
