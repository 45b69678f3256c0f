package snippet

import (
	"fmt"
	"strings"
	"testing"
)

func benchText(sentences int) string {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&sb,
			"Sentence number %03d describes one more facet of the service under test. ", i)
	}
	return sb.String()
}

func BenchmarkSentences(b *testing.B) {
	text := benchText(50)

	b.ResetTimer()
	for b.Loop() {
		_ = Sentences(text)
	}
}

func BenchmarkCandidates(b *testing.B) {
	sentences := Sentences(benchText(50))
	band := Band{Min: 80, Max: 320}

	b.ResetTimer()
	for b.Loop() {
		_ = Candidates(sentences, band)
	}
}
