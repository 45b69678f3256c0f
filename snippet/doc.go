// Package snippet splits normalized text into sentences and assembles
// length-banded snippets from them.
//
// [Sentences] produces candidate sentences from normalized text,
// discarding near-empty fragments. [Extract] then builds a snippet whose
// character length falls inside a [Band]:
//
//	sents := snippet.Sentences(textnorm.Normalize(raw))
//	s := snippet.Extract(sents, snippet.Band{Min: 80, Max: 320})
//	if s == "" {
//	    // no combination of sentences reaches Band.Min
//	}
//
// Extract prefers a single sentence that already fits the band. When no
// single sentence qualifies it concatenates consecutive sentences until
// the accumulated length enters the band, truncating at Band.Max if the
// final sentence overshoots. Candidate order is the caller's order;
// callers wanting diversity can shuffle the slice first.
package snippet
