// Package textnorm folds free-text team and player labels into a comparison-friendly form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// noiseWords are generic and sponsor tokens that never help tell two teams apart.
var noiseWords = map[string]struct{}{
	"club":       {},
	"baloncesto": {},
	"sad":        {},
	"cb":         {},
	"basket":     {},
	"basketball": {},
	"monbus":     {},
	"movistar":   {},
	"leyma":      {},
	"1":          {},
	"rio":        {},
	"sur":        {},
	"aspasia":    {},
}

// Team lower-cases s, strips diacritics and punctuation, turns hyphens into spaces
// and removes noise words. Team(Team(s)) == Team(s).
func Team(s string) string {
	return strings.Join(filterNoise(strings.Fields(fold(s))), " ")
}

// Folder turns a scraper folder label such as "Leyma_Coruna" into "Leyma Coruna".
func Folder(label string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(label, "_", " ")), " ")
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		stripped = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r == '-':
			b.WriteRune(' ')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func filterNoise(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if _, ok := noiseWords[w]; ok {
			continue
		}
		out = append(out, w)
	}
	return out
}
