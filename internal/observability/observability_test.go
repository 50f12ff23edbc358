package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/hoops-ledger/internal/config"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{ServiceName: "hoops-ledger", ServiceVersion: "dev", AppEnv: config.EnvDev}

	shutdown, err := Start(cfg, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSNIsSkipped(t *testing.T) {
	shutdown, err := Start(config.Config{UptraceEnabled: true, UptraceDSN: "  "}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
