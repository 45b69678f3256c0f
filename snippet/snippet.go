package snippet

import (
	"regexp"
	"strings"
)

// DefaultMinWords is the minimum word count for a sentence fragment to
// be kept by Sentences. Shorter fragments are markup leftovers and badge
// captions more often than prose.
const DefaultMinWords = 6

// sentenceEnd matches sentence-final punctuation followed by whitespace.
// Input is expected to be normalized, so newlines have already collapsed
// to single spaces.
var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// Band is an inclusive character-length range for extracted snippets.
type Band struct {
	Min int
	Max int
}

// Contains reports whether n falls inside the band.
func (b Band) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// Sentences splits text on sentence-final punctuation followed by
// whitespace and returns the fragments with at least DefaultMinWords
// words, in input order. Terminal punctuation is not retained.
func Sentences(text string) []string {
	return SentencesMinWords(text, DefaultMinWords)
}

// SentencesMinWords is Sentences with a caller-supplied minimum word
// count. minWords <= 0 keeps every non-empty fragment.
func SentencesMinWords(text string, minWords int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	for _, frag := range sentenceEnd.Split(text, -1) {
		frag = strings.TrimRight(strings.TrimSpace(frag), ".!?")
		if frag == "" {
			continue
		}
		if minWords > 0 && len(strings.Fields(frag)) < minWords {
			continue
		}
		out = append(out, frag)
	}
	return out
}

// Extract assembles a snippet from candidate sentences whose length in
// bytes falls inside band. It first looks for a single sentence already
// in the band; failing that, it greedily concatenates consecutive
// sentences (joined by ". ") starting from each candidate in turn until
// the accumulated length reaches band.Min, truncating at band.Max when
// the final sentence overshoots. Returns "" if no combination reaches
// band.Min.
func Extract(sentences []string, band Band) string {
	if c := Candidates(sentences, band); len(c) > 0 {
		return c[0]
	}
	return ""
}

// Candidates returns every distinct snippet Extract could produce from
// the sentences, in preference order: each single in-band sentence
// first, then the greedy concatenation from each starting position.
// Callers that find a preferred snippet unavailable (for example,
// already reserved elsewhere in a run) walk the list for an alternate.
func Candidates(sentences []string, band Band) []string {
	if band.Min <= 0 || band.Max < band.Min {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(s string) {
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, s := range sentences {
		if band.Contains(len(s)) {
			add(s)
		}
	}
	for i := range sentences {
		add(accumulate(sentences[i:], band))
	}
	return out
}

// accumulate joins consecutive sentences until the band is entered.
func accumulate(sentences []string, band Band) string {
	var sb strings.Builder
	for _, s := range sentences {
		if sb.Len() > 0 {
			sb.WriteString(". ")
		}
		sb.WriteString(s)
		if sb.Len() >= band.Min {
			t := truncate(sb.String(), band.Max)
			if len(t) >= band.Min {
				return t
			}
			return ""
		}
	}
	return ""
}

// truncate cuts s at max bytes without splitting a multi-byte rune,
// trimming any trailing space left behind.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], " ")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
