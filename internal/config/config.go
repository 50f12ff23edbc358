package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

// Config stores runtime configuration for the ledger.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	LogLevel                logging.Level
	RawDir                  string
	MasterDir               string
	OutputDir               string
	Workers                 int
	MinPlayersPerMatch      int
	TeamOverrides           map[string]string
	DryRun                  bool
	DBEnabled               bool
	DBURL                   string
	DBDisablePreparedBinary bool
	MigrationsDir           string
	UptraceEnabled          bool
	UptraceDSN              string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse LOG_LEVEL")
	}

	workers, err := getEnvAsInt("LEDGER_WORKERS", 8)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse LEDGER_WORKERS")
	}
	if workers < 1 || workers > 256 {
		return Config{}, crerr.New("LEDGER_WORKERS must be between 1 and 256")
	}

	minPlayers, err := getEnvAsInt("LEDGER_MIN_PLAYERS_PER_MATCH", 5)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse LEDGER_MIN_PLAYERS_PER_MATCH")
	}
	if minPlayers < 1 {
		return Config{}, crerr.New("LEDGER_MIN_PLAYERS_PER_MATCH must be >= 1")
	}

	overrides, err := parseOverrides(getEnv("LEDGER_TEAM_OVERRIDES", ""))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse LEDGER_TEAM_OVERRIDES")
	}

	dryRun, err := strconv.ParseBool(getEnv("LEDGER_DRY_RUN", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse LEDGER_DRY_RUN")
	}

	dbEnabled, err := strconv.ParseBool(getEnv("DB_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse DB_ENABLED")
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbEnabled && dbURL == "" {
		return Config{}, crerr.New("DB_URL is required when DB_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse DB_DISABLE_PREPARED_BINARY_RESULT")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPTRACE_ENABLED")
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, crerr.New("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PYROSCOPE_ENABLED")
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, crerr.New("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PYROSCOPE_UPLOAD_RATE")
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, crerr.New("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "hoops-ledger"),
		ServiceVersion:          getEnv("SERVICE_VERSION", "dev"),
		LogLevel:                logLevel,
		RawDir:                  strings.TrimSpace(getEnv("LEDGER_RAW_DIR", "datos/bruto/temporadas")),
		MasterDir:               strings.TrimSpace(getEnv("LEDGER_MASTER_DIR", "datos/procesados/capa1")),
		OutputDir:               strings.TrimSpace(getEnv("LEDGER_OUTPUT_DIR", "datos/procesados/ledger")),
		Workers:                 workers,
		MinPlayersPerMatch:      minPlayers,
		TeamOverrides:           overrides,
		DryRun:                  dryRun,
		DBEnabled:               dbEnabled,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		MigrationsDir:           strings.TrimSpace(getEnv("MIGRATIONS_DIR", "")),
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:     pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, crerr.New("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

// Validate checks the directories a run needs. It runs after flags are applied.
func (c Config) Validate() error {
	if c.RawDir == "" {
		return crerr.New("LEDGER_RAW_DIR is required")
	}
	if c.MasterDir == "" {
		return crerr.New("LEDGER_MASTER_DIR is required")
	}
	if c.OutputDir == "" {
		return crerr.New("LEDGER_OUTPUT_DIR is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// parseOverrides reads "key=url;key=url". Keys are matched against normalized team names.
func parseOverrides(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, crerr.Newf("invalid override %q, expected key=url", item)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			return nil, crerr.Newf("empty key or url in override %q", item)
		}

		out[key] = value
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", crerr.Newf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
