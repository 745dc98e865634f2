package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"bcvrates/internal/application"
	"bcvrates/internal/config"
	"bcvrates/internal/domain"
	"bcvrates/internal/iconset"
	"bcvrates/internal/infrastructure/filestore"
	httpserver "bcvrates/internal/infrastructure/http"
	"bcvrates/internal/infrastructure/httpx"
	"bcvrates/internal/infrastructure/logx"
	"bcvrates/internal/infrastructure/pg"
	"bcvrates/internal/infrastructure/provider"
	redisstore "bcvrates/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const fakeRate = "36.50"

var ErrMissingDBURL = errors.New("DATABASE_URL is required for HISTORY_MIRROR=pg")

// ProvideLogger returns the process logger tagged with the binary's component name.
func ProvideLogger(component string) *zap.Logger { return logx.Named(component) }

func ProvideConfig() config.Config { return config.Load() }

func ProvideHTTPClient(cfg config.Config) *httpx.Client {
	return httpx.New(cfg.RequestTimeout, cfg.UserAgent, cfg.HTTPRetries)
}

// ProvideSources returns the BCV scraper and the fallbacks in priority order.
// PROVIDER=fake swaps every source for a fixed-rate stand-in.
func ProvideSources(cfg config.Config, client *httpx.Client) (application.RateSource, []application.RateSource) {
	if cfg.Provider == "fake" {
		return provider.NewFake(domain.SourceBCV, fakeRate), []application.RateSource{
			provider.NewFake(domain.SourceExchangeRateAPI, fakeRate),
			provider.NewFake(domain.SourceDolarToday, fakeRate),
		}
	}
	primary := &provider.BCVScraper{URL: cfg.BCVURL, Client: client}
	secondary := []application.RateSource{
		&provider.ExchangeRateAPI{URL: cfg.ExchangeRateAPIURL, Client: client},
		&provider.DolarToday{URL: cfg.DolarTodayURL, Client: client},
	}
	return primary, secondary
}

func ProvideStore(cfg config.Config) *filestore.Store { return filestore.New(cfg.DataDir) }

// ProvideHistoryMirror returns nil when HISTORY_MIRROR=none.
func ProvideHistoryMirror(ctx context.Context, log *zap.Logger, cfg config.Config) (application.HistoryMirror, func(), error) {
	repo, cleanup, err := openHistoryRepo(ctx, log, cfg)
	if err != nil || repo == nil {
		return nil, cleanup, err
	}
	return repo, cleanup, nil
}

func openHistoryRepo(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.HistoryRepo, func(), error) {
	switch cfg.HistoryMirror {
	case "", "none":
		return nil, func() {}, nil
	case "pg":
		if cfg.DatabaseURL == "" {
			return nil, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect pg: %w", err)
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return pg.NewHistoryRepo(db), cleanup, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported HISTORY_MIRROR=%q", cfg.HistoryMirror)
	}
}

func ProvideRunGuard(cfg config.Config) (application.RunGuard, func(), error) {
	switch cfg.RunGuard {
	case "", "none":
		return application.NoopRunGuard{}, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return redisstore.New(client, cfg.RunGuardTTL), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported RUN_GUARD=%q", cfg.RunGuard)
	}
}

// InitAPI serves the file store; with HISTORY_MIRROR=pg, /history reads the mirror.
func InitAPI(ctx context.Context, cfg config.Config, log *zap.Logger) (*httpserver.Server, func(), error) {
	srv := httpserver.NewServer(ProvideStore(cfg))
	repo, cleanup, err := openHistoryRepo(ctx, log, cfg)
	if err != nil {
		return nil, cleanup, err
	}
	if repo != nil {
		srv.SetHistoryReader(repo)
	}
	return srv, cleanup, nil
}

func ProvideIconGenerator(cfg config.Config, log *zap.Logger) *iconset.Generator {
	return &iconset.Generator{
		Source: filepath.Join(cfg.IconsDir, cfg.IconSource),
		OutDir: cfg.IconsDir,
		Log:    log,
	}
}
