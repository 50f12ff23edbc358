// Package similarity scores how alike two normalized labels are, in [0,1].
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer must be symmetric enough for name matching and return values in [0,1].
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(a, b string) float64

func (f ScorerFunc) Score(a, b string) float64 {
	return f(a, b)
}

// SequenceRatio is the Ratcliff/Obershelp ratio 2*M/T, where M is the number of
// runes in the longest matching blocks and T the total rune count of both inputs.
type SequenceRatio struct{}

func (SequenceRatio) Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
