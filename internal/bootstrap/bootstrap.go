package bootstrap

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/adapter/handler"
	"github.com/johnquangdev/assessment-records/internal/adapter/repository"
	"github.com/johnquangdev/assessment-records/internal/domain/repositories"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/cache"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/external/recordsapi"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/metrics"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/storage"
	"github.com/johnquangdev/assessment-records/internal/usecase/records"
	"github.com/johnquangdev/assessment-records/internal/usecase/report"
	"github.com/johnquangdev/assessment-records/pkg/config"
	"github.com/johnquangdev/assessment-records/pkg/payload"
)

// App is the wired records stack shared by the API server and recordsctl
type App struct {
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Service  *records.Service
	Watcher  *records.Watcher
	Checks   map[string]handler.HealthChecker

	closers []func() error
}

// New wires every component from configuration
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{
		Registry: prometheus.NewRegistry(),
		Checks:   make(map[string]handler.HealthChecker),
	}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Metrics = metrics.New(app.Registry)

	policy, err := report.ParsePolicy(cfg.Report.DecodeFailure)
	if err != nil {
		return nil, err
	}

	sanitizer := payload.NewSanitizer(cfg.Payload.WrapperTokens...)
	apiClient := recordsapi.NewClient(&cfg.Backend)
	fetcher := records.NewFetcher(apiClient, sanitizer, logger.Named("fetcher"), app.Metrics)
	inspector := report.NewInspector(report.NewParser(sanitizer), policy, logger.Named("report"), app.Metrics)

	snapshots, err := app.snapshotRepository(cfg, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	downloads, err := app.downloadResolver(cfg, apiClient, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Service = records.NewService(fetcher, snapshots, inspector, downloads, logger.Named("records"), app.Metrics)
	app.Watcher = records.NewWatcher(app.Service, cfg.Watch, logger.Named("watch"))

	return app, nil
}

func (app *App) snapshotRepository(cfg *config.Config, logger *zap.Logger) (repositories.SnapshotRepository, error) {
	switch cfg.Snapshot.Store {
	case "redis":
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
		app.Checks["redis"] = redisPinger{client: client}
		return repository.NewRedisSnapshotRepository(client, cfg.Snapshot.TTL), nil
	case "memory", "":
		store := cache.NewMemoryStore(cfg.Snapshot.TTL, 5*time.Minute)
		return repository.NewMemorySnapshotRepository(store), nil
	default:
		return nil, fmt.Errorf("unknown snapshot store %q", cfg.Snapshot.Store)
	}
}

func (app *App) downloadResolver(cfg *config.Config, apiClient *recordsapi.Client, logger *zap.Logger) (records.DownloadResolver, error) {
	switch cfg.Download.Mode {
	case "minio":
		logger.Info("🗄️  Using MinIO presigned downloads", zap.String("endpoint", cfg.Storage.Endpoint))
		client, err := storage.NewMinIOClient(&cfg.Storage, cfg.Download.Expiry)
		if err != nil {
			return nil, err
		}
		app.Checks["storage"] = client
		return client, nil
	case "api", "":
		return apiClient, nil
	default:
		return nil, fmt.Errorf("unknown download mode %q", cfg.Download.Mode)
	}
}

// Close releases external connections
func (app *App) Close() error {
	var firstErr error
	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app.closers = nil
	return firstErr
}
