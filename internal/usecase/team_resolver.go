package usecase

import (
	"strings"
	"sync/atomic"

	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/team"
	"github.com/riskibarqy/hoops-ledger/internal/platform/cache"
	"github.com/riskibarqy/hoops-ledger/internal/platform/similarity"
	"github.com/riskibarqy/hoops-ledger/internal/platform/textnorm"
)

// DefaultMatchThreshold is the lowest similarity accepted as a team match.
const DefaultMatchThreshold = 0.60

// DefaultTeamOverrides maps normalized labels the scraper is known to mangle to their team id.
var DefaultTeamOverrides = map[string]string{
	"ii":           "https://www.proballers.com/es/baloncesto/equipo/2244/fc-barcelona-ii",
	"rvb":          "https://www.proballers.com/es/baloncesto/equipo/146/real-valladolid",
	"manresa":      "https://www.proballers.com/es/baloncesto/equipo/214/manresa",
	"ourence":      "https://www.proballers.com/es/baloncesto/equipo/670/ourense",
	"leyma coruna": "https://www.proballers.com/es/baloncesto/equipo/2114/leyma-coruna",
}

type TeamResolverOption func(*TeamResolver)

// WithScorer swaps the similarity function. Threshold and tie-break rules stay the same.
func WithScorer(scorer similarity.Scorer) TeamResolverOption {
	return func(r *TeamResolver) {
		if scorer != nil {
			r.scorer = scorer
		}
	}
}

func WithThreshold(threshold float64) TeamResolverOption {
	return func(r *TeamResolver) {
		if threshold > 0 && threshold <= 1 {
			r.threshold = threshold
		}
	}
}

// WithOverrides adds or replaces manual overrides on top of DefaultTeamOverrides.
func WithOverrides(overrides map[string]string) TeamResolverOption {
	return func(r *TeamResolver) {
		for key, id := range overrides {
			key = strings.ToLower(strings.TrimSpace(key))
			id = strings.TrimSpace(id)
			if key == "" || id == "" {
				continue
			}
			r.overrides[key] = id
		}
	}
}

// TeamResolver maps a noisy team label within a season to a stable team id.
// It is safe for concurrent use once built.
type TeamResolver struct {
	bySeason  map[string][]team.Reference
	names     map[string]string
	overrides map[string]string
	scorer    similarity.Scorer
	threshold float64
	memo      *cache.Memo[string]

	overrideHits atomic.Int64
	matched      atomic.Int64
	unresolved   atomic.Int64
}

func NewTeamResolver(refs []team.Reference, opts ...TeamResolverOption) *TeamResolver {
	r := &TeamResolver{
		bySeason:  make(map[string][]team.Reference),
		names:     make(map[string]string),
		overrides: make(map[string]string, len(DefaultTeamOverrides)),
		scorer:    similarity.SequenceRatio{},
		threshold: DefaultMatchThreshold,
		memo:      cache.NewMemo[string](),
	}
	for key, id := range DefaultTeamOverrides {
		r.overrides[key] = id
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, ref := range refs {
		r.bySeason[ref.Season] = append(r.bySeason[ref.Season], ref)
		if _, ok := r.names[ref.ID]; !ok {
			r.names[ref.ID] = ref.Name
		}
	}
	return r
}

// Resolve returns the stable id of the team rawName refers to in season, never
// returning excludeID. It returns team.UnknownID when nothing scores at least
// the threshold.
func (r *TeamResolver) Resolve(rawName, season, excludeID string) string {
	query := textnorm.Team(rawName)
	if query == "" {
		r.unresolved.Add(1)
		return team.UnknownID
	}
	if id, ok := r.overrides[query]; ok {
		r.overrideHits.Add(1)
		return id
	}

	key := query + "\x00" + season + "\x00" + excludeID
	id, _ := r.memo.GetOrLoad(key, func() (string, error) {
		return r.scan(query, season, excludeID), nil
	})
	if id == team.UnknownID {
		r.unresolved.Add(1)
	} else {
		r.matched.Add(1)
	}
	return id
}

// Score reports the best candidate and its score, for diagnostics.
func (r *TeamResolver) Score(rawName, season, excludeID string) (string, float64) {
	query := textnorm.Team(rawName)
	if id, ok := r.overrides[query]; ok && query != "" {
		return id, 1
	}
	best, bestScore := team.UnknownID, 0.0
	for _, ref := range r.bySeason[season] {
		if excludeID != "" && ref.ID == excludeID {
			continue
		}
		if s := r.candidateScore(query, ref); s > bestScore {
			best, bestScore = ref.ID, s
		}
	}
	return best, bestScore
}

func (r *TeamResolver) scan(query, season, excludeID string) string {
	best, bestScore := team.UnknownID, 0.0
	for _, ref := range r.bySeason[season] {
		if excludeID != "" && ref.ID == excludeID {
			continue
		}
		score := r.candidateScore(query, ref)
		if score > bestScore && score >= r.threshold {
			best, bestScore = ref.ID, score
		}
	}
	return best
}

func (r *TeamResolver) candidateScore(query string, ref team.Reference) float64 {
	return max(r.scorer.Score(query, ref.NormalizedName), r.scorer.Score(query, ref.NormalizedSlug))
}

// TeamName returns the display name of a stable id, empty when unknown.
func (r *TeamResolver) TeamName(id string) string {
	return r.names[id]
}

func (r *TeamResolver) Seasons() int {
	return len(r.bySeason)
}

func (r *TeamResolver) Stats() ledger.ResolverStats {
	return ledger.ResolverStats{
		Overrides:  r.overrideHits.Load(),
		Matched:    r.matched.Load(),
		Unresolved: r.unresolved.Load(),
	}
}
