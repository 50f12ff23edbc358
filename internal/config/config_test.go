package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LEDGER_WORKERS", "")
	t.Setenv("LEDGER_MIN_PLAYERS_PER_MATCH", "")
	t.Setenv("LEDGER_TEAM_OVERRIDES", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Workers != 8 {
		t.Fatalf("unexpected default workers: %d", cfg.Workers)
	}
	if cfg.MinPlayersPerMatch != 5 {
		t.Fatalf("unexpected default min players: %d", cfg.MinPlayersPerMatch)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
	if len(cfg.TeamOverrides) != 0 {
		t.Fatalf("expected no overrides, got %+v", cfg.TeamOverrides)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_WorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	for _, raw := range []string{"0", "257", "many"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("LEDGER_WORKERS", raw)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for LEDGER_WORKERS=%s", raw)
			}
		})
	}
}

func TestLoad_LogLevelValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown LOG_LEVEL")
	}
}

func TestLoad_TeamOverridesParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("key value pairs", func(t *testing.T) {
		t.Setenv("LEDGER_TEAM_OVERRIDES", " gran canaria = https://x/equipo/9/gran-canaria ; ii=https://x/equipo/1/fc-barcelona-ii;")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.TeamOverrides) != 2 {
			t.Fatalf("unexpected overrides: %+v", cfg.TeamOverrides)
		}
		if cfg.TeamOverrides["gran canaria"] != "https://x/equipo/9/gran-canaria" {
			t.Fatalf("unexpected override value: %q", cfg.TeamOverrides["gran canaria"])
		}
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Setenv("LEDGER_TEAM_OVERRIDES", "gran canaria")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for malformed override")
		}
	})
}

func TestLoad_DBRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DB_ENABLED=true without DB_URL")
	}
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SERVICE_NAME", "hoops-ledger-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")
	t.Setenv("PYROSCOPE_UPLOAD_RATE", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "hoops-ledger-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
	if cfg.PyroscopeUploadRate != 30*time.Second {
		t.Fatalf("unexpected upload rate: %s", cfg.PyroscopeUploadRate)
	}
}

func TestConfig_ValidateRequiresDirs(t *testing.T) {
	cfg := Config{RawDir: "raw", MasterDir: "master"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty output dir")
	}
}
