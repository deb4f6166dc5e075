package cli

import (
	"context"
	"fmt"

	"github.com/emiliopalmerini/flexrun/internal/app"
	"github.com/emiliopalmerini/flexrun/internal/runner/adapters/backend"
	"github.com/emiliopalmerini/flexrun/internal/runner/adapters/logger"
	"github.com/emiliopalmerini/flexrun/internal/runner/adapters/otel"
	"github.com/emiliopalmerini/flexrun/internal/runner/adapters/recorder"
	"github.com/emiliopalmerini/flexrun/internal/runner/domain"
)

// deps is everything a command needs wired before it can run.
type deps struct {
	cfg     *app.Config
	logger  *logger.FileLogger
	client  *backend.Client
	metrics domain.Metrics
	service *domain.Service
}

// wire builds the adapter stack from the environment. close releases the
// logger and flushes metrics.
func wire(ctx context.Context) (*deps, func(), error) {
	cfg, err := app.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.NewFileLogger()

	client := backend.NewClient(backend.Config{
		BaseURL:      cfg.BackendURL,
		ShareBaseURL: cfg.ShareBaseURL,
		FetchTimeout: cfg.FetchTimeout,
		ListTimeout:  cfg.ListTimeout,
	}, log)

	var metrics domain.Metrics = otel.NewNoOpMetrics()
	if otelCfg := otel.LoadConfig(); otelCfg.Enabled {
		if m, err := otel.NewMetrics(ctx, otelCfg); err != nil {
			log.Error(fmt.Sprintf("metrics exporter unavailable, using no-op: %v", err))
		} else {
			metrics = m
		}
	}

	rec := recorder.New(cfg.RecorderCommand, log)
	service := domain.NewService(client, rec, metrics, log)

	cleanup := func() {
		if err := metrics.Close(context.Background()); err != nil {
			log.Error(fmt.Sprintf("metrics close: %v", err))
		}
		_ = log.Close()
	}
	return &deps{cfg: cfg, logger: log, client: client, metrics: metrics, service: service}, cleanup, nil
}
