package app

import (
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/hoops-ledger/internal/config"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

// MigrationVersion is the schema version recorded in the database.
type MigrationVersion struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	// None is set before the first migration ran.
	None bool `json:"none"`
}

// Migrator applies the ledger schema from db/migrations.
type Migrator struct {
	m      *migrate.Migrate
	source string
	logger *logging.Logger
}

func NewMigrator(cfg config.Config, logger *logging.Logger) (*Migrator, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, crerr.New("DB_URL is required")
	}

	dir, err := resolveMigrationsDir(cfg.MigrationsDir)
	if err != nil {
		return nil, err
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, crerr.Wrap(err, "create migrator")
	}
	return &Migrator{m: m, source: source, logger: logger.Named("migrate")}, nil
}

func (m *Migrator) Up() error {
	if err := ignoreNoChange(m.m.Up()); err != nil {
		return crerr.Wrap(err, "migrate up")
	}
	m.logger.Info("migrations applied", "source", m.source)
	return nil
}

func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return crerr.New("down steps must be > 0")
	}
	if err := ignoreNoChange(m.m.Steps(-steps)); err != nil {
		return crerr.Wrapf(err, "roll back %d migration(s)", steps)
	}
	m.logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func (m *Migrator) Goto(target uint) error {
	if err := ignoreNoChange(m.m.Migrate(target)); err != nil {
		return crerr.Wrapf(err, "migrate to version %d", target)
	}
	m.logger.Info("migrated", "version", target)
	return nil
}

func (m *Migrator) Force(version int) error {
	if version < 0 {
		return crerr.New("version must be >= 0")
	}
	if err := m.m.Force(version); err != nil {
		return crerr.Wrapf(err, "force version %d", version)
	}
	m.logger.Warn("forced migration version", "version", version)
	return nil
}

func (m *Migrator) Version() (MigrationVersion, error) {
	version, dirty, err := m.m.Version()
	if crerr.Is(err, migrate.ErrNilVersion) {
		return MigrationVersion{None: true}, nil
	}
	if err != nil {
		return MigrationVersion{}, crerr.Wrap(err, "read version")
	}
	return MigrationVersion{Version: version, Dirty: dirty}, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return crerr.Wrap(srcErr, "close migration source")
	}
	if dbErr != nil {
		return crerr.Wrap(dbErr, "close migration db")
	}
	return nil
}

func ignoreNoChange(err error) error {
	if crerr.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func resolveMigrationsDir(configured string) (string, error) {
	candidates := []string{
		strings.TrimSpace(configured),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", crerr.New("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}
