package csvio

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

func readBack(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return records
}

func TestTableWriter_Write(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	tables := ledger.Tables{
		Matches: []match.Match{{
			ID: "20160315_breogan_estudiantes", Date: "2016-03-15", Season: "2015-2016", StartYear: 2015, Round: 3,
			HomeTeamID: "h", AwayTeamID: "a", HomeScore: 75, AwayScore: 80, ScoreKnown: true,
			Home: match.SideBox{Coverage: 1, Rebounds: 30, ThreePointPct: 33.33},
		}},
		MatchStats: []playerstats.MatchStat{{
			PlayerID: "p1", MatchID: "20160315_breogan_estudiantes", TeamID: "h", OpponentTeamID: "a",
			Box:          playerstats.Box{Minutes: 20.5, Points: 12, PlusMinus: -3},
			Shooting:     playerstats.Shooting{TwoMade: 3, TwoAttempted: 5},
			DoubleDouble: true,
		}},
		PlayerSummaries: []playerstats.SeasonSummary{{
			PlayerID: "p1", PlayerName: "Juan", TeamID: "h", StartYear: 2015, Games: 1,
			Totals: playerstats.Box{Points: 12}, Averages: playerstats.Box{Points: 12},
			Advanced: playerstats.Advanced{TrueShootingPct: 54.55},
		}},
		TeamSummaries: []teamstats.SeasonSummary{{
			TeamID: "h", TeamName: "Breogán", StartYear: 2015, Games: 2, Wins: 1,
			Shooting:         playerstats.Shooting{TwoMade: 3, ThreeMade: 1},
			ShootingAverages: teamstats.ShootingAverages{TwoMade: 1.5, ThreeMade: 0.5},
			Advanced:         teamstats.Advanced{WinRate: 50},
		}},
	}

	w := NewTableWriter(dir, logging.NewNop())
	if w.Name() != "csv" {
		t.Fatalf("Name got %q", w.Name())
	}
	if err := w.Write(context.Background(), tables); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	matches := readBack(t, filepath.Join(dir, MatchesFile))
	if len(matches) != 2 || len(matches[1]) != len(matchHeader) {
		t.Fatalf("unexpected partidos.csv %v", matches)
	}
	if matches[1][0] != "20160315_breogan_estudiantes" || matches[1][9] != "1" || matches[1][15] != "33.33" {
		t.Fatalf("unexpected match row %v", matches[1])
	}

	stats := readBack(t, filepath.Join(dir, MatchStatsFile))
	row := stats[1]
	if row[7] != "20.5" || row[23] != "-3" || row[len(row)-1] != "1" {
		t.Fatalf("unexpected stat row %v", row)
	}

	players := readBack(t, filepath.Join(dir, PlayerSummariesFile))
	if got := players[1][len(players[1])-1]; got != "Juan" {
		t.Fatalf("player name column got %q", got)
	}
	if len(players[0]) != len(players[1]) {
		t.Fatalf("header/row width mismatch %d vs %d", len(players[0]), len(players[1]))
	}

	teams := readBack(t, filepath.Join(dir, TeamSummariesFile))
	if teams[0][2] != "victorias_total" || teams[1][2] != "1" {
		t.Fatalf("unexpected team table %v", teams)
	}
	if len(teams[0]) != len(teams[1]) {
		t.Fatalf("header/row width mismatch %d vs %d", len(teams[0]), len(teams[1]))
	}

	leftovers, err := filepath.Glob(filepath.Join(dir, ".*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestFtoa(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:         "0",
		-0.001:    "0",
		20.5:      "20.5",
		1.0 / 3.0: "0.33",
		0.1 + 0.2: "0.3",
	}
	for in, want := range cases {
		if got := ftoa(in); got != want {
			t.Fatalf("ftoa(%v)=%q, want %q", in, got, want)
		}
	}
}
