package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
)

// LedgerStore keeps the tables of the latest run in process. Each write replaces the previous one.
type LedgerStore struct {
	mu     sync.RWMutex
	tables ledger.Tables
	writes int
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{}
}

func (s *LedgerStore) Name() string {
	return "memory"
}

func (s *LedgerStore) Write(ctx context.Context, tables ledger.Tables) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = ledger.Tables{
		Matches:         append([]match.Match(nil), tables.Matches...),
		MatchStats:      append([]playerstats.MatchStat(nil), tables.MatchStats...),
		PlayerSummaries: append([]playerstats.SeasonSummary(nil), tables.PlayerSummaries...),
		TeamSummaries:   append([]teamstats.SeasonSummary(nil), tables.TeamSummaries...),
	}
	s.writes++
	return nil
}

// Tables returns a copy of the stored tables.
func (s *LedgerStore) Tables() ledger.Tables {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ledger.Tables{
		Matches:         append([]match.Match(nil), s.tables.Matches...),
		MatchStats:      append([]playerstats.MatchStat(nil), s.tables.MatchStats...),
		PlayerSummaries: append([]playerstats.SeasonSummary(nil), s.tables.PlayerSummaries...),
		TeamSummaries:   append([]teamstats.SeasonSummary(nil), s.tables.TeamSummaries...),
	}
}

func (s *LedgerStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.writes
}
