package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque IDs suitable for tagging a pipeline run.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// MatchID builds the deterministic identity of a game: the digits of the ISO
// date followed by both team slugs in lexicographic order. Swapping the slugs
// yields the same id.
func MatchID(isoDate, slugA, slugB string) string {
	if slugB < slugA {
		slugA, slugB = slugB, slugA
	}

	var b strings.Builder
	b.Grow(len(isoDate) + len(slugA) + len(slugB) + 2)
	for _, r := range isoDate {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	b.WriteByte('_')
	b.WriteString(slugA)
	b.WriteByte('_')
	b.WriteString(slugB)
	return b.String()
}
