// Package relevance scores item similarity and partitions candidates
// into high/medium/low relevance bands around an anchor item.
//
// Similarity is Jaccard overlap between item token sets: a lexical
// ranking signal, not a learned relevance judgment. [Classifier.Classify]
// applies the band rules:
//
//   - high: same category, two or more shared tags, or similarity at or
//     above Thresholds.High
//   - medium: different category with exactly one shared tag, or no
//     shared tags with similarity inside the medium band
//   - low: different category, no shared tags, similarity below
//     Thresholds.LowMax
//
// An item qualifying for more than one band is assigned to the highest.
// When strict rules leave a band short, [Classifier.Widened] yields
// progressively relaxed candidate pools: relaxed thresholds first, then
// ignoring the categorical constraint, finally the full pool ranked
// purely by similarity (descending for high and medium, ascending for
// low). Candidate lists are deterministically ordered, with item id as
// the tie-break, so a fixed corpus and fixed thresholds always classify
// the same way.
package relevance
