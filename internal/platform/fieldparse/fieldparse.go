// Package fieldparse decodes the loosely formatted fields found in scraped box-score logs.
// Every parser degrades to a zero value instead of failing.
package fieldparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNumbers = map[string]int{
	"ene":  1,
	"feb":  2,
	"mar":  3,
	"abr":  4,
	"may":  5,
	"jun":  6,
	"jul":  7,
	"ago":  8,
	"sep":  9,
	"sept": 9,
	"oct":  10,
	"nov":  11,
	"dic":  12,
}

var scorePattern = regexp.MustCompile(`(\d+)-(\d+)`)

// Date turns "15 mar. 2024" or "15 sept 24" into "2024-03-15".
// ok is false when the day, month or year cannot be read.
func Date(text string) (string, bool) {
	parts := strings.Fields(strings.ToLower(text))
	if len(parts) < 3 {
		return "", false
	}

	day, err := strconv.Atoi(strings.TrimSuffix(parts[0], "."))
	if err != nil {
		return "", false
	}
	month, ok := monthNumbers[strings.ReplaceAll(parts[1], ".", "")]
	if !ok {
		return "", false
	}
	year, err := strconv.Atoi(strings.Trim(parts[2], ".,"))
	if err != nil {
		return "", false
	}
	if year >= 0 && year < 100 {
		year += 2000
	}

	iso := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := time.Parse(time.DateOnly, iso); err != nil {
		return "", false
	}
	return iso, true
}

// Score is a final score seen from one team's side.
type Score struct {
	Own      int
	Opponent int
	Won      bool
}

// ParseScore reads "G 80-75" or "P 75-80". The larger number goes to the side
// the G/P marker names as winner.
func ParseScore(text string) (Score, bool) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return Score{}, false
	}
	a, errA := strconv.Atoi(m[1])
	b, errB := strconv.Atoi(m[2])
	if errA != nil || errB != nil {
		return Score{}, false
	}

	marker := ""
	if fields := strings.Fields(text); len(fields) > 0 {
		marker = fields[0]
	}
	won := strings.Contains(marker, "G")

	hi, lo := max(a, b), min(a, b)
	if won {
		return Score{Own: hi, Opponent: lo, Won: true}, true
	}
	return Score{Own: lo, Opponent: hi}, true
}

// MadeAttempted splits "5-8" into (5, 8). Anything else yields (0, 0).
func MadeAttempted(text string) (made, attempted int) {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "-") {
		return 0, 0
	}
	parts := strings.Split(text, "-")
	m, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
	a, errA := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errM != nil || errA != nil {
		return 0, 0
	}
	return m, a
}

// Decimal parses a locale decimal such as "12,5". "-", "" and junk yield 0.
func Decimal(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Minutes converts "20:30" to 20.5. Plain decimals pass through Decimal.
func Minutes(text string) float64 {
	text = strings.TrimSpace(text)
	mins, secs, found := strings.Cut(text, ":")
	if !found {
		return Decimal(text)
	}
	m, errM := strconv.Atoi(strings.TrimSpace(mins))
	s, errS := strconv.Atoi(strings.TrimSpace(secs))
	if errM != nil || errS != nil || m < 0 || s < 0 {
		return 0
	}
	return float64(m) + float64(s)/60
}

// SeasonStartYear reads 2015 out of "2015-2016".
func SeasonStartYear(season string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(season), "-")
	year, err := strconv.Atoi(head)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
