package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hoops-ledger/internal/domain/ledger"
	"github.com/riskibarqy/hoops-ledger/internal/domain/player"
	"github.com/riskibarqy/hoops-ledger/internal/domain/team"
	"github.com/riskibarqy/hoops-ledger/internal/infrastructure/repository/memory"
	ledgermock "github.com/riskibarqy/hoops-ledger/internal/mocks/domain/ledger"
	playermock "github.com/riskibarqy/hoops-ledger/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/hoops-ledger/internal/mocks/domain/team"
	"github.com/riskibarqy/hoops-ledger/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	reports []ledger.Report
}

func (r *recordingReporter) WriteReport(_ context.Context, report ledger.Report) error {
	r.reports = append(r.reports, report)
	return nil
}

func TestLedgerService_Run_WritesTablesToSinks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sink := ledgermock.NewSink(t)
	reporter := &recordingReporter{}
	manifest, reader := fullMatchFixture()

	teamRepo.On("ListReferences", mock.Anything).Return(testReferences(), nil).Once()
	playerRepo.On("ListIdentities", mock.Anything).Return([]player.Identity{
		{ID: "https://www.proballers.com/es/baloncesto/jugador/11/p11", Name: "Player 11"},
	}, nil).Once()
	sink.On("Name").Return("memory")
	sink.On("Write", mock.Anything, mock.MatchedBy(func(tables ledger.Tables) bool {
		return len(tables.Matches) == 1 && len(tables.MatchStats) == 10 &&
			len(tables.PlayerSummaries) == 10 && len(tables.TeamSummaries) == 2
	})).Return(nil).Once()

	service := NewLedgerService(teamRepo, playerRepo, manifest, reader, []ledger.Sink{sink}, reporter, nil, logging.NewNop())
	got, err := service.Run(ctx, RunInput{RunID: "run1", Workers: 2})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if got.Report.RunID != "run1" || got.Report.Counters.MatchesValidated != 1 {
		t.Fatalf("unexpected report %+v", got.Report)
	}
	if len(got.Report.Sinks) != 1 || got.Report.Sinks[0] != "memory" {
		t.Fatalf("unexpected sinks %v", got.Report.Sinks)
	}
	if len(reporter.reports) != 1 {
		t.Fatalf("expected one report written, got %d", len(reporter.reports))
	}
}

func TestLedgerService_Run_RepeatedRunsStoreIdenticalTables(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	store := memory.NewLedgerStore()
	manifest, reader := fullMatchFixture()

	teamRepo.On("ListReferences", mock.Anything).Return(testReferences(), nil).Twice()
	playerRepo.On("ListIdentities", mock.Anything).Return([]player.Identity{}, nil).Twice()

	service := NewLedgerService(teamRepo, playerRepo, manifest, reader, []ledger.Sink{store}, nil, nil, logging.NewNop())

	_, err := service.Run(context.Background(), RunInput{Workers: 1})
	require.NoError(t, err)
	first := store.Tables()

	_, err = service.Run(context.Background(), RunInput{Workers: 4})
	require.NoError(t, err)
	second := store.Tables()

	assert.Equal(t, 2, store.Writes())
	assert.Equal(t, first, second)
	assert.Len(t, second.MatchStats, 10)
}

func TestLedgerService_Run_DryRunSkipsSinks(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sink := ledgermock.NewSink(t)
	reporter := &recordingReporter{}
	manifest, reader := fullMatchFixture()

	teamRepo.On("ListReferences", mock.Anything).Return(testReferences(), nil).Once()
	playerRepo.On("ListIdentities", mock.Anything).Return([]player.Identity{}, nil).Once()

	service := NewLedgerService(teamRepo, playerRepo, manifest, reader, []ledger.Sink{sink}, reporter, nil, logging.NewNop())
	got, err := service.Run(context.Background(), RunInput{DryRun: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(got.Tables.Matches) != 1 || len(got.Report.Sinks) != 0 || len(reporter.reports) != 0 {
		t.Fatalf("dry run must compute tables without writing: %+v", got.Report)
	}
	if len(got.Report.RunID) != 32 {
		t.Fatalf("expected generated run id, got %q", got.Report.RunID)
	}
}

func TestLedgerService_Run_MissingReferencesIsFatal(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sink := ledgermock.NewSink(t)
	manifest, reader := fullMatchFixture()

	teamRepo.On("ListReferences", mock.Anything).Return(nil, errors.New("open capa1_equipos_temporada.csv: no such file")).Once()

	service := NewLedgerService(teamRepo, playerRepo, manifest, reader, []ledger.Sink{sink}, nil, nil, logging.NewNop())
	_, err := service.Run(context.Background(), RunInput{})
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestLedgerService_Run_EmptyReferencesIsFatal(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	manifest, reader := fullMatchFixture()

	teamRepo.On("ListReferences", mock.Anything).Return([]team.Reference{}, nil).Once()

	service := NewLedgerService(teamRepo, playerRepo, manifest, reader, nil, nil, nil, logging.NewNop())
	if _, err := service.Run(context.Background(), RunInput{}); !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestLedgerService_Run_SinkFailure(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	sink := ledgermock.NewSink(t)
	manifest, reader := fullMatchFixture()
	errDB := errors.New("connection refused")

	teamRepo.On("ListReferences", mock.Anything).Return(testReferences(), nil).Once()
	playerRepo.On("ListIdentities", mock.Anything).Return([]player.Identity{}, nil).Once()
	sink.On("Name").Return("postgres")
	sink.On("Write", mock.Anything, mock.Anything).Return(errDB).Once()

	service := NewLedgerService(teamRepo, playerRepo, manifest, reader, []ledger.Sink{sink}, nil, nil, logging.NewNop())
	_, err := service.Run(context.Background(), RunInput{})
	if !errors.Is(err, ErrSinkFailed) || !errors.Is(err, errDB) {
		t.Fatalf("expected wrapped sink failure, got %v", err)
	}
}

func TestLedgerService_Run_InvalidInput(t *testing.T) {
	t.Parallel()

	service := NewLedgerService(teammock.NewRepository(t), playermock.NewRepository(t), fakeManifest{}, fakeReader{}, nil, nil, nil, logging.NewNop())
	if _, err := service.Run(context.Background(), RunInput{Workers: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Run(context.Background(), RunInput{RunID: "not/valid"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for run id, got %v", err)
	}
}

func TestLedgerService_ResolveTeam(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	teamRepo.On("ListReferences", mock.Anything).Return(testReferences(), nil).Twice()

	service := NewLedgerService(teamRepo, playermock.NewRepository(t), nil, nil, nil, nil, nil, logging.NewNop())

	got, err := service.ResolveTeam(context.Background(), "Movistar Estudiantes", testSeason, "")
	if err != nil {
		t.Fatalf("ResolveTeam error: %v", err)
	}
	if !got.Accepted || got.TeamID != estudiantesID || got.Score != 1 || got.TeamName != "Movistar Estudiantes" {
		t.Fatalf("unexpected resolution %+v", got)
	}

	miss, err := service.ResolveTeam(context.Background(), "Nobody", testSeason, "")
	if err != nil {
		t.Fatalf("ResolveTeam error: %v", err)
	}
	if miss.Accepted || miss.TeamID != team.UnknownID {
		t.Fatalf("unexpected resolution %+v", miss)
	}

	if _, err := service.ResolveTeam(context.Background(), "x", "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
