// Package textnorm cleans raw corpus text before snippet extraction
// and tokenization.
//
// Corpus items arrive with markdown markup, embedded URLs, and
// irregular whitespace (README bodies, repository descriptions).
// [Normalize] strips that noise and produces a single-line string
// suitable for sentence splitting:
//
//	clean := textnorm.Normalize("# My *Project*\nSee https://example.com now")
//	// "My Project See now"
//
// Normalize never fails and is idempotent: applying it to its own
// output returns the same string.
package textnorm
