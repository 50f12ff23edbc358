package csvio

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

func TestTeamReferenceReader_ListReferences(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		TeamSeasonFile: {Data: []byte(
			"uri_equipo,uri_equipo_temporada,temporada,ano_inicio,nombre_equipo,id_liga\n" +
				"https://x/equipo/1/rio-breogan/2015,https://x/equipo/1/rio-breogan/2015,2015-2016,2015,Río Breogán,1\n" +
				"https://x/equipo/2/estudiantes,https://x/equipo/2/estudiantes/2016,2016-2017,,Movistar Estudiantes,1\n" +
				",,2016-2017,2016,Nadie,1\n",
		)},
	}

	refs, err := NewTeamReferenceReader(fsys, logging.NewNop()).ListReferences(context.Background())
	if err != nil {
		t.Fatalf("ListReferences error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2: %+v", len(refs), refs)
	}
	if refs[0].ID != "https://x/equipo/1/rio-breogan" || refs[0].StartYear != 2015 {
		t.Fatalf("unexpected first ref %+v", refs[0])
	}
	if refs[0].NormalizedName != "breogan" {
		t.Fatalf("normalized name got %q, want breogan", refs[0].NormalizedName)
	}
	if refs[1].StartYear != 2016 {
		t.Fatalf("start year should fall back to season, got %d", refs[1].StartYear)
	}
}

func TestTeamReferenceReader_MissingColumn(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{TeamSeasonFile: {Data: []byte("uri_equipo,temporada\nx,2015-2016\n")}}
	if _, err := NewTeamReferenceReader(fsys, logging.NewNop()).ListReferences(context.Background()); err == nil {
		t.Fatalf("expected missing column error")
	}
}

func TestTeamReferenceReader_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewTeamReferenceReader(fstest.MapFS{}, logging.NewNop()).ListReferences(context.Background()); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestPlayerIdentityReader_SkipsBadLines(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		PlayersFile: {Data: []byte(
			"url_jugador,nombre_jugador\n" +
				"https://x/jugador/11/juan-perez/,Juan Pérez\n" +
				"https://x/jugador/12/ana/,Ana,extra\n" +
				",Sin url\n" +
				"https://x/jugador/13/leo/\n",
		)},
	}

	ids, err := NewPlayerIdentityReader(fsys, logging.NewNop()).ListIdentities(context.Background())
	if err != nil {
		t.Fatalf("ListIdentities error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d identities, want 2: %+v", len(ids), ids)
	}
	if ids[0].Name != "Juan Pérez" || ids[1].Name != "" {
		t.Fatalf("unexpected identities %+v", ids)
	}
}
