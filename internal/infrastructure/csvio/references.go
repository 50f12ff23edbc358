package csvio

import (
	"context"
	"io/fs"
	"strconv"

	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/team"
	"github.com/riskibarqy/hoops-ledger/internal/platform/fieldparse"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

const (
	TeamSeasonFile = "capa1_equipos_temporada.csv"
	PlayersFile    = "capa1_jugadores.csv"
)

// TeamReferenceReader loads the per-season team master table.
type TeamReferenceReader struct {
	fsys   fs.FS
	name   string
	logger *logging.Logger
}

func NewTeamReferenceReader(fsys fs.FS, logger *logging.Logger) *TeamReferenceReader {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamReferenceReader{fsys: fsys, name: TeamSeasonFile, logger: logger.Named("csvio")}
}

func (r *TeamReferenceReader) ListReferences(ctx context.Context) ([]team.Reference, error) {
	t, err := readTable(r.fsys, r.name)
	if err != nil {
		return nil, err
	}
	if err := t.require(r.name, "temporada", "uri_equipo", "nombre_equipo"); err != nil {
		return nil, err
	}

	out := make([]team.Reference, 0, len(t.records))
	for i, record := range t.records {
		season := t.get(record, "temporada")
		startYear, ok := parseStartYear(t.get(record, "ano_inicio"))
		if !ok {
			startYear, _ = fieldparse.SeasonStartYear(season)
		}
		ref := team.NewReference(season, startYear, t.get(record, "uri_equipo"), t.get(record, "nombre_equipo"))
		if err := ref.Validate(); err != nil {
			r.logger.DebugContext(ctx, "skip team reference", "line", i+2, "error", err)
			continue
		}
		out = append(out, ref)
	}
	return out, nil
}

func parseStartYear(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(f), true
}

// PlayerIdentityReader loads the player master table. Malformed lines are skipped.
type PlayerIdentityReader struct {
	fsys   fs.FS
	name   string
	logger *logging.Logger
}

func NewPlayerIdentityReader(fsys fs.FS, logger *logging.Logger) *PlayerIdentityReader {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerIdentityReader{fsys: fsys, name: PlayersFile, logger: logger.Named("csvio")}
}

func (r *PlayerIdentityReader) ListIdentities(ctx context.Context) ([]player.Identity, error) {
	t, err := readTable(r.fsys, r.name)
	if err != nil {
		return nil, err
	}
	if err := t.require(r.name, "url_jugador"); err != nil {
		return nil, err
	}

	out := make([]player.Identity, 0, len(t.records))
	skipped := 0
	for _, record := range t.records {
		id := t.get(record, "url_jugador")
		if id == "" || len(record) > t.width {
			skipped++
			continue
		}
		out = append(out, player.Identity{ID: id, Name: t.get(record, "nombre_jugador")})
	}
	if skipped > 0 {
		r.logger.WarnContext(ctx, "skipped malformed player lines", "file", r.name, "count", skipped)
	}
	return out, nil
}
