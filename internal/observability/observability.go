// Package observability starts tracing and profiling for one CLI invocation.
package observability

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/hoops-ledger/internal/config"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Shutdown flushes pending spans and stops the profiler.
type Shutdown func(context.Context) error

var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Start enables Uptrace and Pyroscope as configured. Disabled backends are skipped.
func Start(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	tracingOn := startTracing(cfg, logger)

	profiler, err := startProfiling(cfg, logger)
	if err != nil {
		if tracingOn {
			_ = uptrace.Shutdown(context.Background())
		}
		return nil, err
	}

	return func(ctx context.Context) error {
		var errs error
		if profiler != nil {
			errs = crerr.CombineErrors(errs, crerr.Wrap(profiler.Stop(), "stop pyroscope"))
		}
		if tracingOn {
			errs = crerr.CombineErrors(errs, crerr.Wrap(uptrace.Shutdown(ctx), "shutdown uptrace"))
		}
		return errs
	}, nil
}

func startTracing(cfg config.Config, logger *logging.Logger) bool {
	if !cfg.UptraceEnabled {
		logger.Debug("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return false
	}
	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return false
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
	return true
}

func startProfiling(cfg config.Config, logger *logging.Logger) (*pyroscope.Profiler, error) {
	if !cfg.PyroscopeEnabled {
		logger.Debug("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags:            map[string]string{"env": cfg.AppEnv, "service": cfg.ServiceName},
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return profiler, nil
}
