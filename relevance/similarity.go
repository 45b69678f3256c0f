package relevance

import "github.com/jonwraymond/evalcorpus/corpus"

// Jaccard returns |a ∩ b| / |a ∪ b| in [0,1]. Either set being empty
// yields 0. Symmetric; Jaccard(a,a) is 1 for non-empty a.
func Jaccard(a, b corpus.TokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	inter := 0
	for tok := range small {
		if large.Contains(tok) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
