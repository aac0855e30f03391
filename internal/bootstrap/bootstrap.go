// Package bootstrap wires config into services for both binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/ideacheck/internal/application"
	appai "github.com/bryanwahyu/ideacheck/internal/application/ai"
	appideas "github.com/bryanwahyu/ideacheck/internal/application/ideas"
	"github.com/bryanwahyu/ideacheck/internal/config"
	domai "github.com/bryanwahyu/ideacheck/internal/domain/ai"
	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
	"github.com/bryanwahyu/ideacheck/internal/infra/ai/openai"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/jsonfile"
	mysqlp "github.com/bryanwahyu/ideacheck/internal/infra/db/mysql"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/postgres"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/sqlite"
	"github.com/bryanwahyu/ideacheck/internal/infra/events"
	minioStore "github.com/bryanwahyu/ideacheck/internal/infra/storage"
	"github.com/bryanwahyu/ideacheck/internal/middleware"
)

// App holds the wired services and whatever must be closed on exit.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Ideas    *appideas.Service
	AI       *appai.Service
	Checkers map[string]middleware.HealthChecker

	closers []func()
}

// New builds the App. rng may be nil, in which case the scorer is time-seeded.
// Optional backends (NATS, MinIO, OpenAI) are only dialled when configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, rng *rand.Rand) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Checkers: map[string]middleware.HealthChecker{},
	}

	repo, err := a.openRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	pipeline := domain.NewPipeline(domain.DefaultAnalyzers(rng)...)
	a.Ideas = &appideas.Service{
		Pipeline: pipeline,
		Repo:     repo,
		Clock:    application.SystemClock{},
		Logger:   logger,
	}

	if cfg.NATSEnabled() {
		pub, err := events.Connect(events.Options{
			URL:            cfg.NATS.URL,
			Subject:        cfg.NATS.Subject,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectTimeout: 5 * time.Second,
		}, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Ideas.Events = pub
		a.Checkers["nats"] = pub
		a.closers = append(a.closers, pub.Close)
	}

	if cfg.MinioEnabled() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("minio init: %w", err)
		}
		a.Ideas.Archives = store
		a.Checkers["minio"] = store
	}

	var client domai.Client
	if cfg.OpenAIEnabled() {
		client = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	}
	a.AI = appai.NewService(client, pipeline)

	logger.Debug("services wired",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("nats", cfg.NATSEnabled()),
		zap.Bool("minio", cfg.MinioEnabled()),
		zap.Bool("advisor", a.AI.Enabled()))
	return a, nil
}

func (a *App) openRepository(ctx context.Context) (domain.Repository, error) {
	cfg := a.Config
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Store.Driver {
	case config.DriverFile:
		store := jsonfile.NewStore(cfg.Store.Path)
		a.Checkers["store"] = store
		return store, nil

	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		a.track(db)
		repo := sqlite.NewRecordRepository(db)
		return repo, migrate(ctx, repo)

	case config.DriverMySQL:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, fmt.Errorf("mysql connect: %w", err)
		}
		a.track(db)
		repo := mysqlp.NewRecordRepository(db)
		return repo, migrate(ctx, repo)

	case config.DriverPostgres:
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		a.track(db)
		repo := postgres.NewRecordRepository(db)
		return repo, migrate(ctx, repo)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func (a *App) track(db *sql.DB) {
	a.Checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	a.closers = append(a.closers, func() { _ = db.Close() })
}

type migrator interface {
	Migrate(ctx context.Context) error
}

func migrate(ctx context.Context, m migrator) error {
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
