package team

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/riskibarqy/hoops-ledger/internal/platform/textnorm"
)

// UnknownID is returned by resolution when no team is a confident match.
// It is never a valid team and records carrying it are discarded.
const UnknownID = "equipo_desconocido"

var seasonSuffix = regexp.MustCompile(`/\d{4}/?$`)

// Reference is one team known to play in a season. ID is the stable team URL.
type Reference struct {
	Season         string
	StartYear      int
	ID             string
	Name           string
	NormalizedName string
	NormalizedSlug string
}

// NewReference builds a reference with precomputed comparison keys.
func NewReference(season string, startYear int, id, name string) Reference {
	id = StableID(id)
	return Reference{
		Season:         strings.TrimSpace(season),
		StartYear:      startYear,
		ID:             id,
		Name:           strings.TrimSpace(name),
		NormalizedName: textnorm.Team(name),
		NormalizedSlug: textnorm.Team(Slug(id)),
	}
}

func (r Reference) Validate() error {
	if r.Season == "" {
		return fmt.Errorf("team reference season is required")
	}
	if r.ID == "" {
		return fmt.Errorf("team reference id is required")
	}
	if r.ID == UnknownID {
		return fmt.Errorf("team reference id cannot be the unknown sentinel")
	}

	return nil
}

// StableID drops a trailing "/YYYY" season segment so every season of a club shares one id.
func StableID(url string) string {
	return seasonSuffix.ReplaceAllString(strings.TrimSpace(url), "")
}

// Slug is the final path segment of a team id.
func Slug(id string) string {
	id = strings.TrimRight(strings.TrimSpace(id), "/")
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
