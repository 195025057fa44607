//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	handler "github.com/godilite/survey-stats/internal/grpc"
	"github.com/godilite/survey-stats/internal/loader"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
	grpcsrv "github.com/godilite/survey-stats/pkg/grpc/server"
	"github.com/godilite/survey-stats/tests/e2e/mocks"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const questionCount = 17

// setupTestDB writes a four participant questionnaire to a SQLite file.
// Every answer is S except: P1 Q1=SS, P2 Q17=STS, P3 Q5 missing, P4 Q9=" cs ".
func setupTestDB(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "kuesioner.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	cols := make([]string, questionCount)
	for i := range cols {
		cols[i] = fmt.Sprintf("Q%d TEXT", i+1)
	}
	_, err = db.Exec(`CREATE TABLE responses (nama TEXT, ` + strings.Join(cols, ", ") + `)`)
	require.NoError(t, err)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", questionCount+1), ", ")
	insert := `INSERT INTO responses VALUES (` + placeholders + `)`
	for p := 1; p <= 4; p++ {
		values := []any{fmt.Sprintf("P%d", p)}
		for q := 1; q <= questionCount; q++ {
			var v any = "S"
			switch {
			case p == 1 && q == 1:
				v = "SS"
			case p == 2 && q == 17:
				v = "STS"
			case p == 3 && q == 5:
				v = nil
			case p == 4 && q == 9:
				v = " cs "
			}
			values = append(values, v)
		}
		_, err = db.Exec(insert, values...)
		require.NoError(t, err)
	}
	return path
}

type harness struct {
	client pb.SurveyReportsClient
	cache  *mocks.TrackingCache
	fp     string
}

func startServer(t *testing.T, profile survey.Profile) harness {
	path := setupTestDB(t)
	logger := zap.NewNop()

	res, err := loader.New(logger).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, res.Questions, questionCount)

	agg, err := survey.NewAggregator(profile)
	require.NoError(t, err)
	reports := service.NewReportService(res.Table, agg, logger)

	cache := mocks.NewTrackingCache()
	handlers := handler.NewGRPCHandlers(reports, cache, logger, 5*time.Minute)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv, err := grpcsrv.New(grpcsrv.WithListener(lis), grpcsrv.WithLogger(logger), grpcsrv.WithLogging(true))
	require.NoError(t, err)
	srv.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterSurveyReportsServer(s, handlers)
	})
	srv.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return harness{client: pb.NewSurveyReportsClient(conn), cache: cache, fp: reports.Fingerprint()}
}

func callCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestE2E_Answer(t *testing.T) {
	h := startServer(t, survey.AnswerProfile())

	expected := map[string]string{
		"q1":  "S|64|94.1",
		"q3":  "Q1|1|25.0",
		"q9":  "Q17:25.0",
		"q10": "4.94",
		"q11": "Q1:5.25",
		"q12": "Q17:4.00",
		"q13": "positif=65:95.6|netral=1:1.5|negatif=1:1.5",
		"q99": "",
		"Q1":  "",
	}

	for query, want := range expected {
		t.Run(query, func(t *testing.T) {
			resp, err := h.client.Answer(callCtx(t), wrapperspb.String(query), grpc.WaitForReady(true))
			require.NoError(t, err)
			assert.Equal(t, want, resp.GetValue())
		})
	}
}

func TestE2E_DashboardProfile(t *testing.T) {
	h := startServer(t, survey.DashboardProfile())

	resp, err := h.client.Answer(callCtx(t), wrapperspb.String("q13"), grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, "positif=66:97.1|netral=0:0.0|negatif=1:1.5", resp.GetValue())
}

func TestE2E_CachingBehavior(t *testing.T) {
	h := startServer(t, survey.AnswerProfile())
	ctx := callCtx(t)

	first, err := h.client.Answer(ctx, wrapperspb.String("q1"), grpc.WaitForReady(true))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, sets := h.cache.Calls()
		return sets == 1
	}, time.Second, 10*time.Millisecond, "cache should be populated after a miss")
	assert.Contains(t, h.cache.Keys(), "grpc:answer:"+h.fp+":q1")

	second, err := h.client.Answer(ctx, wrapperspb.String(" q1 "))
	require.NoError(t, err)
	assert.Equal(t, first.GetValue(), second.GetValue())

	gets, sets := h.cache.Calls()
	assert.Equal(t, 2, gets)
	assert.Equal(t, 1, sets, "second call should be served from cache")
}

func TestE2E_GetSummary(t *testing.T) {
	h := startServer(t, survey.AnswerProfile())

	resp, err := h.client.GetSummary(callCtx(t), &emptypb.Empty{}, grpc.WaitForReady(true))
	require.NoError(t, err)

	fields := resp.GetFields()
	assert.Equal(t, 4.0, fields["participants"].GetNumberValue())
	assert.Len(t, fields["questions"].GetListValue().GetValues(), questionCount)

	diag := fields["diagnostics"].GetStructValue().GetFields()
	assert.Equal(t, 68.0, diag["total_cells"].GetNumberValue())
	assert.Equal(t, 67.0, diag["parsed_cells"].GetNumberValue())
	assert.Equal(t, 1.0, diag["absent_cells"].GetNumberValue())
}

func TestE2E_RenderChart(t *testing.T) {
	h := startServer(t, survey.AnswerProfile())

	for _, kind := range []string{"distribution", "proportion", "stacked", "means", "categories", "radar"} {
		t.Run(kind, func(t *testing.T) {
			req, err := structpb.NewStruct(map[string]any{"kind": kind})
			require.NoError(t, err)

			resp, err := h.client.RenderChart(callCtx(t), req, grpc.WaitForReady(true))
			require.NoError(t, err)

			fields := resp.GetFields()
			assert.Equal(t, kind, fields["kind"].GetStringValue())
			assert.False(t, fields["fell_back"].GetBoolValue())
			img, err := base64.StdEncoding.DecodeString(fields["image"].GetStringValue())
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(img), "\x89PNG"))
		})
	}
}

func TestE2E_ErrorScenarios(t *testing.T) {
	h := startServer(t, survey.AnswerProfile())

	cases := []struct {
		name string
		req  map[string]any
		code codes.Code
	}{
		{"unknown kind", map[string]any{"kind": "heatmap"}, codes.InvalidArgument},
		{"unknown format", map[string]any{"kind": "means", "format": "gif"}, codes.InvalidArgument},
		{"unknown question", map[string]any{"kind": "means", "questions": []any{"Q18"}}, codes.InvalidArgument},
		{"missing kind", map[string]any{}, codes.InvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := structpb.NewStruct(tc.req)
			require.NoError(t, err)

			_, err = h.client.RenderChart(callCtx(t), req, grpc.WaitForReady(true))
			assert.Equal(t, tc.code, status.Code(err))
		})
	}

	t.Run("blank query answers empty", func(t *testing.T) {
		resp, err := h.client.Answer(callCtx(t), wrapperspb.String(" "), grpc.WaitForReady(true))
		require.NoError(t, err)
		assert.Empty(t, resp.GetValue())
	})
}

func TestE2E_FullWorkflow(t *testing.T) {
	h := startServer(t, survey.AnswerProfile())
	ctx := callCtx(t)

	list, err := h.client.ListQueries(ctx, &emptypb.Empty{}, grpc.WaitForReady(true))
	require.NoError(t, err)

	queries := list.GetFields()["queries"].GetListValue().GetValues()
	require.Len(t, queries, 13)

	for _, q := range queries {
		name := q.GetStructValue().GetFields()["name"].GetStringValue()
		resp, err := h.client.Answer(ctx, wrapperspb.String(name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, resp.GetValue(), name)
	}

	req, err := structpb.NewStruct(map[string]any{"kind": "radar", "questions": []any{"Q1", "Q17"}, "format": "svg"})
	require.NoError(t, err)
	chart, err := h.client.RenderChart(ctx, req)
	require.NoError(t, err)
	assert.True(t, chart.GetFields()["fell_back"].GetBoolValue())
	assert.Equal(t, "image/svg+xml", chart.GetFields()["content_type"].GetStringValue())
}
