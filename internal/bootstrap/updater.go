package bootstrap

import (
	"context"

	"bcvrates/internal/application"
	"bcvrates/internal/config"

	"go.uber.org/zap"
)

// InitUpdater wires a RateUpdater from cfg. The returned cleanup closes any
// optional backends and is safe to call on error.
func InitUpdater(ctx context.Context, cfg config.Config, log *zap.Logger) (*application.RateUpdater, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	mirror, closeMirror, err := ProvideHistoryMirror(ctx, log, cfg)
	cleanups = append(cleanups, closeMirror)
	if err != nil {
		return nil, cleanup, err
	}
	guard, closeGuard, err := ProvideRunGuard(cfg)
	cleanups = append(cleanups, closeGuard)
	if err != nil {
		return nil, cleanup, err
	}

	primary, secondary := ProvideSources(cfg, ProvideHTTPClient(cfg))
	opts := []application.Option{
		application.WithLogger(log),
		application.WithRunGuard(guard),
	}
	if mirror != nil {
		opts = append(opts, application.WithMirror(mirror))
	}
	return application.NewRateUpdater(primary, secondary, ProvideStore(cfg), opts...), cleanup, nil
}
