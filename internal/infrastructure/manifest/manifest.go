// Package manifest lists raw player logs laid out as season/team/player-file.
package manifest

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/rawdata"
	"github.com/riskibarqy/hoops-ledger/internal/platform/fieldparse"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

// Tree walks a three-level tree rooted at fsys:
//
//	<YYYY-YYYY>/<Team_Folder>/<playerKey>_<Name>.csv
//
// Entries are returned sorted by season, team folder and file name.
type Tree struct {
	fsys   fs.FS
	logger *logging.Logger
}

func NewTree(fsys fs.FS, logger *logging.Logger) *Tree {
	if logger == nil {
		logger = logging.Default()
	}
	return &Tree{fsys: fsys, logger: logger.Named("manifest")}
}

func (t *Tree) Files(ctx context.Context) ([]rawdata.File, error) {
	seasons, err := fs.ReadDir(t.fsys, ".")
	if err != nil {
		return nil, crerr.Wrap(err, "read raw season directory")
	}

	var out []rawdata.File
	for _, season := range sortedDirs(seasons) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := fieldparse.SeasonStartYear(season); !ok {
			t.logger.WarnContext(ctx, "skip season folder: no start year", "season", season)
			continue
		}

		teams, err := fs.ReadDir(t.fsys, season)
		if err != nil {
			return nil, crerr.Wrapf(err, "read season %s", season)
		}
		for _, teamLabel := range sortedDirs(teams) {
			dir := path.Join(season, teamLabel)
			entries, err := fs.ReadDir(t.fsys, dir)
			if err != nil {
				t.logger.WarnContext(ctx, "skip team folder: unreadable", "dir", dir, "error", err)
				continue
			}
			for _, entry := range entries {
				name := entry.Name()
				if entry.IsDir() || strings.HasPrefix(name, ".") {
					continue
				}
				out = append(out, rawdata.File{
					Season:    season,
					TeamLabel: teamLabel,
					PlayerKey: player.KeyFromFilename(name),
					Path:      path.Join(dir, name),
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func sortedDirs(entries []fs.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
