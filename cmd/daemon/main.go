package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/dailyblessing/internal/catalog"
	"github.com/genricoloni/dailyblessing/internal/config"
	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/genricoloni/dailyblessing/internal/favorites"
	"github.com/genricoloni/dailyblessing/internal/remote"
	"github.com/genricoloni/dailyblessing/internal/session"
	"github.com/genricoloni/dailyblessing/internal/store"
	"github.com/genricoloni/dailyblessing/internal/theme"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AppOptions is the complete application graph
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		fx.Annotate(config.NewAppConfig, fx.As(fx.Self()), fx.As(new(domain.Config))),
		newLogger,
		store.NewStore,
		fx.Annotate(catalog.NewLoader, fx.As(new(domain.CatalogLoader))),
		fx.Annotate(favorites.NewStore, fx.As(new(domain.FavoriteStore))),
		fx.Annotate(theme.NewStore, fx.As(new(domain.ThemeStore))),
		newClock,
		fx.Annotate(newSession, fx.As(fx.Self()), fx.As(new(remote.Controller))),
		remote.NewServer,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		os.Exit(1)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		os.Exit(1)
	}
}

func newClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

// newSession loads the catalog and preferences; auto-scroll starts immediately
func newSession(
	logger *zap.Logger,
	cfg domain.Config,
	loader domain.CatalogLoader,
	favStore domain.FavoriteStore,
	themeStore domain.ThemeStore,
	clock clockwork.Clock,
) *session.Session {
	return session.New(context.Background(), logger, cfg, loader, favStore, themeStore, clock)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg *config.AppConfig,
	sess *session.Session,
	srv *remote.Server,
	kv domain.KeyValueStore,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Configuration loaded", cfg.Fields()...)

			if err := srv.Start(ctx); err != nil {
				return err
			}

			if q, ok := sess.CurrentQuote(); ok {
				logger.Info("Daily Blessing daemon started",
					zap.String("author", q.Author),
					zap.String("category", q.Category),
					zap.Stringer("theme", sess.SelectedTheme()))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")

			// Detach the bus first so no signal references a closed session
			err := srv.Stop(ctx)
			sess.Close()
			err = multierr.Append(err, kv.Close())

			_ = logger.Sync()
			return err
		},
	})
}
