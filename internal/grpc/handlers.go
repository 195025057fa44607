package grpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	"github.com/godilite/survey-stats/internal/chart"
	"github.com/godilite/survey-stats/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyAnswer  CacheKeyType = "grpc:answer"
	cacheKeySummary CacheKeyType = "grpc:summary"
	cacheKeyChart   CacheKeyType = "grpc:chart"
)

type GRPCHandlers struct {
	pb.UnimplementedSurveyReportsServer
	reports  ReportService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(reports ReportService, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if reports == nil {
		panic("nil ReportService provided to NewGRPCHandlers")
	}
	if cache == nil {
		panic("nil Cacher provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		reports:  reports,
		cache:    cache,
		logger:   logger.Named("grpc-handler"),
		cacheTTL: ttl,
	}
}

func (s *GRPCHandlers) key(prefix CacheKeyType, parts ...string) string {
	return strings.Join(append([]string{string(prefix), s.reports.Fingerprint()}, parts...), ":")
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrUnknownChart), errors.Is(err, service.ErrInvalidQuestion):
		s.logger.Info("invalid chart request", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, chart.ErrNoData):
		s.logger.Info("nothing to draw", zap.String("op", op))
		return status.Error(codes.FailedPrecondition, "selected questions have no parsed answers")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// Answer runs one canned query. Unknown queries answer with an empty string.
func (s *GRPCHandlers) Answer(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	query := strings.TrimSpace(req.GetValue())

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	line, err := FindAndCache(ctx, s.cache, &s.sfGroup, s.key(cacheKeyAnswer, query), s.cacheTTL, s.logger, func(context.Context) (string, error) {
		return s.reports.Answer(query), nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "Answer", err)
	}

	return wrapperspb.String(line), nil
}

func (s *GRPCHandlers) GetSummary(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	summary, err := FindAndCache(ctx, s.cache, &s.sfGroup, s.key(cacheKeySummary), s.cacheTTL, s.logger, func(context.Context) (service.Summary, error) {
		return s.reports.Summary(), nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetSummary", err)
	}

	out, err := toStruct(summary)
	if err != nil {
		return nil, s.handleError(ctx, "GetSummary", err)
	}
	return out, nil
}

func (s *GRPCHandlers) RenderChart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	chartReq, err := parseChartRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	key := s.key(cacheKeyChart, chartReq.Kind, chartReq.Format, strings.Join(chartReq.Questions, ","))
	rendered, err := FindAndCache(ctx, s.cache, &s.sfGroup, key, s.cacheTTL, s.logger, func(context.Context) (service.Chart, error) {
		return s.reports.RenderChart(chartReq)
	})
	if err != nil {
		return nil, s.handleError(ctx, "RenderChart", err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"kind":         rendered.Kind,
		"content_type": rendered.ContentType,
		"fell_back":    rendered.FellBack,
		"image":        base64.StdEncoding.EncodeToString(rendered.Image),
	})
	if err != nil {
		return nil, s.handleError(ctx, "RenderChart", err)
	}
	return out, nil
}

func (s *GRPCHandlers) ListQueries(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	qs := service.Queries()
	list := make([]any, len(qs))
	for i, q := range qs {
		list[i] = map[string]any{"name": q.Name, "description": q.Description}
	}
	out, err := structpb.NewStruct(map[string]any{"queries": list})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "ListQueries failed: %v", err)
	}
	return out, nil
}

func parseChartRequest(req *structpb.Struct) (service.ChartRequest, error) {
	fields := req.GetFields()
	out := service.ChartRequest{
		Kind:   strings.TrimSpace(fields["kind"].GetStringValue()),
		Format: strings.TrimSpace(fields["format"].GetStringValue()),
	}
	if out.Kind == "" {
		return out, errors.New("kind is required")
	}

	if v, ok := fields["questions"]; ok {
		list := v.GetListValue()
		if list == nil {
			return out, errors.New("questions must be a list of strings")
		}
		for _, item := range list.GetValues() {
			q, ok := item.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return out, errors.New("questions must be a list of strings")
			}
			out.Questions = append(out.Questions, strings.ToUpper(strings.TrimSpace(q.StringValue)))
		}
	}
	return out, nil
}

// toStruct converts a JSON-tagged value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return structpb.NewStruct(m)
}
