package grpc

import (
	"context"
	"time"

	"github.com/godilite/survey-stats/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type ReportService interface {
	Answer(query string) string
	Summary() service.Summary
	RenderChart(req service.ChartRequest) (service.Chart, error)
	Fingerprint() string
}
