package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pb "github.com/godilite/survey-stats/api/v1"
	"github.com/godilite/survey-stats/internal/config"
	handler "github.com/godilite/survey-stats/internal/grpc"
	"github.com/godilite/survey-stats/internal/loader"
	"github.com/godilite/survey-stats/internal/service"
	"github.com/godilite/survey-stats/internal/survey"
	"github.com/godilite/survey-stats/pkg/cache"
	grpcsrv "github.com/godilite/survey-stats/pkg/grpc/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger        *zap.Logger
	cache         handler.Cacher
	grpcServer    *grpcsrv.Server
	metricsServer *http.Server
}

type Option func(*options)

type options struct {
	listener net.Listener
}

// WithListener serves gRPC on an existing listener.
func WithListener(lis net.Listener) Option {
	return func(o *options) {
		o.listener = lis
	}
}

// LoadReports resolves the profile, loads the dataset and builds the report service.
func LoadReports(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*service.ReportService, error) {
	profile, err := config.ResolveProfile(cfg.Profile, cfg.ProfileFile)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	agg, err := survey.NewAggregator(profile)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	l := loader.New(logger,
		loader.WithQuestions(cfg.Questions...),
		loader.WithSheet(cfg.DataSheet),
		loader.WithTable(cfg.DataTable),
	)
	res, err := l.Load(ctx, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	return service.NewReportService(res.Table, agg, logger), nil
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	reports, err := LoadReports(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var cacheClient handler.Cacher = cache.Nop{}
	if cfg.RedisAddr != "" {
		c, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		cacheClient = c
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("REDIS_ADDR not set, response caching disabled")
	}

	grpcHandlers := handler.NewGRPCHandlers(reports, cacheClient, logger, cfg.CacheTTL)

	srvOpts := []grpcsrv.Option{
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
	}
	if o.listener != nil {
		srvOpts = append(srvOpts, grpcsrv.WithListener(o.listener))
	}
	if cfg.GRPCRateLimit > 0 {
		srvOpts = append(srvOpts, grpcsrv.WithRateLimit(cfg.GRPCRateLimit, int(cfg.GRPCRateLimit)+1))
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srvOpts = append(srvOpts, grpcsrv.WithMetrics(reg))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	grpcServer, err := grpcsrv.New(srvOpts...)
	if err != nil {
		_ = cacheClient.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.ServiceName, func(s *grpc.Server) {
		pb.RegisterSurveyReportsServer(s, grpcHandlers)
	})

	return &App{
		logger:        logger,
		cache:         cacheClient,
		grpcServer:    grpcServer,
		metricsServer: metricsServer,
	}, nil
}

// Addr is the gRPC listen address.
func (a *App) Addr() net.Addr {
	return a.grpcServer.Addr()
}

// Start launches the servers without blocking.
func (a *App) Start() {
	a.grpcServer.Start()

	if a.metricsServer != nil {
		go func() {
			a.logger.Info("metrics endpoint listening", zap.String("addr", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}
}

// Shutdown stops the servers and releases the cache.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.grpcServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("grpc: %w", err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics: %w", err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}

	return errors.Join(errs...)
}

// Run starts the application and blocks until a shutdown signal is received
// or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	a.Start()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("shutdown completed with errors", zap.Error(err))
		return err
	}

	a.logger.Info("graceful shutdown completed successfully")
	return nil
}
