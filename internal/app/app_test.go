package app

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	"github.com/godilite/survey-stats/internal/config"
	"github.com/godilite/survey-stats/internal/loader"
	"github.com/godilite/survey-stats/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const scenarioCSV = "Nama,Q1,Q2,Q3\nA,SS,S,TS\nB,SS,CS,STS\n"

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "responses.csv")
	require.NoError(t, os.WriteFile(path, []byte(scenarioCSV), 0o600))
	return path
}

func testConfig(path string) *config.Config {
	return &config.Config{
		AppEnv:    "test",
		DataPath:  path,
		DataTable: "responses",
		Profile:   "answer",
		CacheTTL:  time.Minute,
		GRPCPort:  50051,
	}
}

// TestLoadReports tests dataset and profile resolution
func TestLoadReports(t *testing.T) {
	t.Run("csv with builtin profile", func(t *testing.T) {
		reports, err := LoadReports(context.Background(), testConfig(writeCSV(t)), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "SS|2|33.3", reports.Answer("q1"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReports(context.Background(), testConfig(filepath.Join(t.TempDir(), "none.csv")), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("unknown question column", func(t *testing.T) {
		cfg := testConfig(writeCSV(t))
		cfg.Questions = []string{"Q1", "Q17"}
		_, err := LoadReports(context.Background(), cfg, zap.NewNop())
		assert.ErrorIs(t, err, loader.ErrMissingQuestion)
	})

	t.Run("unknown profile", func(t *testing.T) {
		cfg := testConfig(writeCSV(t))
		cfg.Profile = "seven-point"
		_, err := LoadReports(context.Background(), cfg, zap.NewNop())
		assert.ErrorIs(t, err, survey.ErrInvalidProfile)
	})
}

// TestAppServesReports tests the wired server over a real connection
func TestAppServesReports(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig(writeCSV(t))
	cfg.GRPCRateLimit = 100

	application, err := NewApp(context.Background(), cfg, zap.NewNop(), WithListener(lis))
	require.NoError(t, err)
	application.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	}()

	conn, err := grpc.NewClient(application.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: pb.ServiceName}, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)

	resp, err := pb.NewSurveyReportsClient(conn).Answer(ctx, wrapperspb.String("q13"))
	require.NoError(t, err)
	assert.Equal(t, "positif=3:50.0|netral=1:16.7|negatif=2:33.3", resp.GetValue())
}
