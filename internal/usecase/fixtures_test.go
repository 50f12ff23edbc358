package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/rawdata"
)

var errUnreadable = errors.New("unreadable file")

type fakeManifest struct {
	files []rawdata.File
	err   error
}

func (m fakeManifest) Files(context.Context) ([]rawdata.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]rawdata.File(nil), m.files...), nil
}

// fakeReader serves rows by path. Paths without rows fail to read.
type fakeReader struct {
	rows map[string][]rawdata.Row
}

func (r fakeReader) ReadRows(_ context.Context, file rawdata.File) ([]rawdata.Row, error) {
	rows, ok := r.rows[file.Path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", file.Path, errUnreadable)
	}
	return append([]rawdata.Row(nil), rows...), nil
}

func logRow(date, opponent, score, points string) rawdata.Row {
	return rawdata.Row{
		Date:       date,
		Opponent:   opponent,
		Score:      score,
		Minutes:    "20:30",
		Points:     points,
		Valuation:  "10",
		TwoPoint:   "3-5",
		ThreePoint: "1-4",
		FreeThrow:  "2-2",
		Rebounds:   "4",
		Assists:    "2",
		Steals:     "1",
		Turnovers:  "1",
	}
}

func playerFile(season, teamLabel, key string) rawdata.File {
	return rawdata.File{
		Season:    season,
		TeamLabel: teamLabel,
		PlayerKey: key,
		Path:      season + "/" + teamLabel + "/" + key + "_player.csv",
	}
}

func testDirectory(keys ...string) *player.Directory {
	identities := make([]player.Identity, 0, len(keys))
	for _, key := range keys {
		identities = append(identities, player.Identity{
			ID:   "https://www.proballers.com/es/baloncesto/jugador/" + key + "/p" + key,
			Name: "Player " + key,
		})
	}
	return player.NewDirectory(identities)
}

// fullMatchFixture builds five Breogán players and five Estudiantes players for one game.
// Breogán hosted and lost 75-80.
func fullMatchFixture() (fakeManifest, fakeReader) {
	var manifest fakeManifest
	reader := fakeReader{rows: map[string][]rawdata.Row{}}
	for i := 1; i <= 5; i++ {
		home := playerFile(testSeason, "Rio_Breogan", fmt.Sprintf("1%d", i))
		away := playerFile(testSeason, "Movistar_Estudiantes", fmt.Sprintf("2%d", i))
		manifest.files = append(manifest.files, home, away)
		reader.rows[home.Path] = []rawdata.Row{logRow("15 mar. 2024", "vs Estudiantes", "P 75-80", "15")}
		reader.rows[away.Path] = []rawdata.Row{logRow("15 mar. 2024", "@ Breogan", "G 80-75", "16")}
	}
	return manifest, reader
}
