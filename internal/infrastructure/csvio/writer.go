package csvio

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/match"
	"github.com/riskibarqy/hoops-ledger/internal/domain/playerstats"
	"github.com/riskibarqy/hoops-ledger/internal/domain/teamstats"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const (
	MatchesFile         = "partidos.csv"
	MatchStatsFile      = "estadisticas_detalladas.csv"
	PlayerSummariesFile = "jugadores_avanzado.csv"
	TeamSummariesFile   = "equipos_avanzado.csv"
)

// TableWriter is a ledger.Sink that writes the four output tables as CSV files.
// Each file is rendered in memory and then moved into place.
type TableWriter struct {
	dir    string
	logger *logging.Logger
}

func NewTableWriter(dir string, logger *logging.Logger) *TableWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &TableWriter{dir: dir, logger: logger.Named("csvio")}
}

func (w *TableWriter) Name() string {
	return "csv"
}

func (w *TableWriter) Write(ctx context.Context, tables ledger.Tables) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create output dir %s", w.dir)
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{MatchesFile, matchHeader, matchRows(tables.Matches)},
		{MatchStatsFile, matchStatHeader, matchStatRows(tables.MatchStats)},
		{PlayerSummariesFile, playerSummaryHeader, playerSummaryRows(tables.PlayerSummaries)},
		{TeamSummariesFile, teamSummaryHeader, teamSummaryRows(tables.TeamSummaries)},
	}
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(w.dir, sheet.name)
		if err := writeSheet(path, sheet.header, sheet.rows); err != nil {
			return err
		}
		w.logger.InfoContext(ctx, "table written", "file", path, "rows", len(sheet.rows))
	}
	return nil
}

func writeSheet(path string, header []string, rows [][]string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	cw := csv.NewWriter(buf)
	if err := cw.Write(header); err != nil {
		return crerr.Wrapf(err, "encode header of %s", path)
	}
	if err := cw.WriteAll(rows); err != nil {
		return crerr.Wrapf(err, "encode %s", path)
	}
	return writeFileAtomic(path, buf.B)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "close %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "rename %s", path)
	}
	return nil
}

var matchHeader = []string{
	"id_partido", "fecha", "temporada", "ano_inicio", "jornada",
	"uri_local", "uri_visitante", "puntos_local", "puntos_visitante",
	"cobertura_local", "rebotes_local", "asistencias_local", "robos_local",
	"perdidas_local", "valoracion_local", "porc_t3_local",
	"cobertura_visitante", "rebotes_visitante", "asistencias_visitante", "robos_visitante",
	"perdidas_visitante", "valoracion_visitante", "porc_t3_visitante",
}

func matchRows(matches []match.Match) [][]string {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		row := []string{
			m.ID, m.Date, m.Season, itoa(m.StartYear), itoa(m.Round),
			m.HomeTeamID, m.AwayTeamID, itoa(m.HomeScore), itoa(m.AwayScore),
		}
		row = append(row, sideColumns(m.Home)...)
		row = append(row, sideColumns(m.Away)...)
		rows = append(rows, row)
	}
	return rows
}

func sideColumns(s match.SideBox) []string {
	return []string{
		ftoa(s.Coverage), itoa(s.Rebounds), itoa(s.Assists), itoa(s.Steals),
		itoa(s.Turnovers), itoa(s.Valuation), ftoa(s.ThreePointPct),
	}
}

var matchStatHeader = []string{
	"url_jugador", "id_partido", "uri_equipo", "uri_rival", "temporada", "ano_inicio", "jornada",
	"minutos", "puntos", "valoracion",
	"t2_metidos", "t2_intentados", "t3_metidos", "t3_intentados", "t1_metidos", "t1_intentados",
	"rebotes_ofensivos", "rebotes_defensivos", "rebotes_totales",
	"asistencias", "robos", "tapones", "perdidas", "mas_menos",
	"faltas_cometidas", "faltas_recibidas", "es_doble_doble",
}

func matchStatRows(stats []playerstats.MatchStat) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.PlayerID, s.MatchID, s.TeamID, s.OpponentTeamID, s.Season, itoa(s.StartYear), itoa(s.Round),
			ftoa(s.Minutes), ftoa(s.Points), ftoa(s.Valuation),
			itoa(s.TwoMade), itoa(s.TwoAttempted), itoa(s.ThreeMade), itoa(s.ThreeAttempted),
			itoa(s.FreeMade), itoa(s.FreeAttempted),
			ftoa(s.OffRebounds), ftoa(s.DefRebounds), ftoa(s.Rebounds),
			ftoa(s.Assists), ftoa(s.Steals), ftoa(s.Blocks), ftoa(s.Turnovers), ftoa(s.PlusMinus),
			ftoa(s.FoulsCommitted), ftoa(s.FoulsReceived), btoa(s.DoubleDouble),
		})
	}
	return rows
}

// boxColumns lists the counting stats in output order with their Spanish prefixes.
var boxColumns = []struct {
	name  string
	value func(playerstats.Box) float64
}{
	{"minutos", func(b playerstats.Box) float64 { return b.Minutes }},
	{"puntos", func(b playerstats.Box) float64 { return b.Points }},
	{"valoracion", func(b playerstats.Box) float64 { return b.Valuation }},
	{"asistencias", func(b playerstats.Box) float64 { return b.Assists }},
	{"robos", func(b playerstats.Box) float64 { return b.Steals }},
	{"perdidas", func(b playerstats.Box) float64 { return b.Turnovers }},
	{"tapones", func(b playerstats.Box) float64 { return b.Blocks }},
	{"rebotes_ofensivos", func(b playerstats.Box) float64 { return b.OffRebounds }},
	{"rebotes_defensivos", func(b playerstats.Box) float64 { return b.DefRebounds }},
	{"rebotes_totales", func(b playerstats.Box) float64 { return b.Rebounds }},
	{"faltas_cometidas", func(b playerstats.Box) float64 { return b.FoulsCommitted }},
	{"faltas_recibidas", func(b playerstats.Box) float64 { return b.FoulsReceived }},
	{"mas_menos", func(b playerstats.Box) float64 { return b.PlusMinus }},
}

var shootingColumns = []string{
	"t2_metidos", "t2_intentados", "t3_metidos", "t3_intentados",
	"t1_metidos", "t1_intentados", "tiros_campo_metidos", "tiros_campo_intentados",
}

func shootingValues(s playerstats.Shooting) []int {
	return []int{
		s.TwoMade, s.TwoAttempted, s.ThreeMade, s.ThreeAttempted,
		s.FreeMade, s.FreeAttempted, s.FieldGoalsMade(), s.FieldGoalsAttempted(),
	}
}

var playerSummaryHeader = func() []string {
	h := []string{"url_jugador", "uri_equipo", "ano_inicio", "partidos_jugados"}
	for _, c := range boxColumns {
		h = append(h, c.name+"_total", c.name+"_promedio")
	}
	h = append(h, "es_doble_doble_total")
	for _, c := range shootingColumns {
		h = append(h, c+"_total")
	}
	return append(h,
		"ts_porcentaje", "efg_porcentaje", "ratio_ast_to",
		"valoracion_por_minuto", "posesiones_terminadas", "ortg_individual",
		"nombre_jugador",
	)
}()

func playerSummaryRows(summaries []playerstats.SeasonSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		row := []string{s.PlayerID, s.TeamID, itoa(s.StartYear), itoa(s.Games)}
		for _, c := range boxColumns {
			row = append(row, ftoa(c.value(s.Totals)), ftoa(c.value(s.Averages)))
		}
		row = append(row, itoa(s.DoubleDoubles))
		for _, v := range shootingValues(s.Shooting) {
			row = append(row, itoa(v))
		}
		a := s.Advanced
		row = append(row,
			ftoa(a.TrueShootingPct), ftoa(a.EffectiveFGPct), ftoa(a.AssistTurnoverRatio),
			ftoa(a.ValuationPerMinute), ftoa(a.PossessionsEnded), ftoa(a.OffensiveRating),
			s.PlayerName,
		)
		rows = append(rows, row)
	}
	return rows
}

// Team tables carry no minutes column.
var teamBoxColumns = boxColumns[1:]

var teamSummaryHeader = func() []string {
	h := []string{"uri_equipo", "ano_inicio", "victorias_total", "partidos_jugados"}
	for _, c := range teamBoxColumns {
		h = append(h, c.name+"_total", c.name+"_promedio")
	}
	for _, c := range shootingColumns {
		h = append(h, c+"_total", c+"_promedio")
	}
	return append(h,
		"win_rate", "ts_porcentaje", "ast_ratio", "reb_ratio_ofensivo",
		"posesiones_totales", "posesiones_por_partido", "ortg_equipo",
		"nombre_equipo",
	)
}()

func teamSummaryRows(summaries []teamstats.SeasonSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		row := []string{s.TeamID, itoa(s.StartYear), itoa(s.Wins), itoa(s.Games)}
		for _, c := range teamBoxColumns {
			row = append(row, ftoa(c.value(s.Totals)), ftoa(c.value(s.Averages)))
		}
		avg := s.ShootingAverages
		means := []float64{
			avg.TwoMade, avg.TwoAttempted, avg.ThreeMade, avg.ThreeAttempted,
			avg.FreeMade, avg.FreeAttempted,
			avg.TwoMade + avg.ThreeMade, avg.TwoAttempted + avg.ThreeAttempted,
		}
		for i, v := range shootingValues(s.Shooting) {
			row = append(row, itoa(v), ftoa(means[i]))
		}
		a := s.Advanced
		row = append(row,
			ftoa(a.WinRate), ftoa(a.TrueShootingPct), ftoa(a.AssistRatio), ftoa(a.OffensiveReboundRatio),
			ftoa(a.Possessions), ftoa(a.Pace), ftoa(a.OffensiveRating),
			s.TeamName,
		)
		rows = append(rows, row)
	}
	return rows
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// ftoa renders at most two decimals and never "-0".
func ftoa(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func btoa(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
