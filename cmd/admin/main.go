// Command admin serves the promptdesk admin UI and JSON API.
//
// Configuration comes from the environment; see internal/config. With
// MEMORY_MODE=true the server keeps everything in process and needs
// neither Postgres nor Redis.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/internal/config"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/internal/handlers"
	"github.com/dmitrymomot/promptdesk/internal/lookup"
	"github.com/dmitrymomot/promptdesk/middlewares"
	"github.com/dmitrymomot/promptdesk/migrations"
	"github.com/dmitrymomot/promptdesk/pkg/cache"
	"github.com/dmitrymomot/promptdesk/pkg/cookie"
	"github.com/dmitrymomot/promptdesk/pkg/db"
	"github.com/dmitrymomot/promptdesk/pkg/logger"
	"github.com/dmitrymomot/promptdesk/pkg/redis"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())

	reg := content.DefaultRegistry()
	if cfg.App.RegistryPath != "" {
		if reg, err = content.LoadRegistry(cfg.App.RegistryPath); err != nil {
			return err
		}
	}

	metrics, err := lookup.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	var (
		runOpts = []internal.RunOption{
			internal.Logger(log),
			internal.ShutdownTimeout(cfg.App.ShutdownTimeout),
		}
		checks  []internal.HealthOption
		svcOpts = []content.ServiceOption{content.WithLogger(log)}
		store   content.Store
		backend slugfield.Backend
	)

	if cfg.App.Memory {
		log.Warn("memory mode: content is lost on restart")
		index := lookup.NewMemory()
		store = content.NewMemoryStore(content.WithIndex(index))
		backend = lookup.Instrument(index, metrics)
	} else {
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return err
		}
		runOpts = append(runOpts, internal.ShutdownHook(db.Shutdown(pool)))
		checks = append(checks, internal.WithReadinessCheck("postgres", db.Healthcheck(pool)))

		if cfg.DB.AutoMigrate {
			runOpts = append(runOpts, internal.StartupHook(func(ctx context.Context) error {
				return db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log)
			}))
		}

		counts, values, rdb, err := lookupCaches(ctx, cfg)
		if err != nil {
			return err
		}
		runOpts = append(runOpts, internal.ShutdownHook(func(context.Context) error {
			return errors.Join(counts.Close(), values.Close())
		}))
		if rdb != nil {
			runOpts = append(runOpts, internal.ShutdownHook(redis.Shutdown(rdb)))
			checks = append(checks, internal.WithReadinessCheck("redis", redis.Healthcheck(rdb)))
		}

		cached := lookup.NewCached(
			lookup.Instrument(lookup.NewPostgres(pool, reg), metrics),
			counts, values,
			lookup.WithCacheTTL(cfg.App.CacheTTL),
		)
		store = content.NewRepository(pool)
		backend = cached
		svcOpts = append(svcOpts, content.WithInvalidator(cached))
	}

	svc := content.NewService(reg, store, backend, svcOpts...)

	notices, err := noticeCookies(cfg.App, log)
	if err != nil {
		return err
	}

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.App.RequestTimeout),
		),
		internal.WithErrorHandler(middlewares.ErrorHandler()),
		internal.WithHandlers(
			handlers.NewLookup(svc, cfg.App.LookupTimeout),
			handlers.NewRecords(svc),
			handlers.NewAdmin(svc, cfg.App.LookupTimeout, handlers.WithNotices(notices)),
		),
		internal.WithMount(cfg.App.MetricsPath, promhttp.Handler()),
		internal.WithHealthChecks(checks...),
	)

	// Registered last so buffered Sentry events go out after everything else.
	runOpts = append(runOpts, internal.ShutdownHook(logger.Flush(2*time.Second)))

	log.Info("starting admin",
		slog.String("addr", cfg.App.Addr),
		slog.Bool("memory", cfg.App.Memory),
		slog.Int("resources", len(reg.Resources())),
	)
	return app.Run(cfg.App.Addr, runOpts...)
}

// lookupCaches returns Redis caches when REDIS_URL is set and in-process
// ones otherwise. The client is nil without Redis.
func lookupCaches(ctx context.Context, cfg config.Config) (cache.Cache[int], cache.Cache[[]string], goredis.UniversalClient, error) {
	if !cfg.Redis.Enabled() {
		return cache.NewMemory[int](cache.WithMaxEntries(cfg.App.CacheSize)),
			cache.NewMemory[[]string](cache.WithMaxEntries(cfg.App.CacheSize)),
			nil, nil
	}

	rdb, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	return cache.NewRedis[int](rdb, nil, cache.WithPrefix(cfg.App.CachePrefix)),
		cache.NewRedis[[]string](rdb, nil, cache.WithPrefix(cfg.App.CachePrefix)),
		rdb, nil
}

// noticeCookies signs admin notices with NOTICE_SECRET, or with a random
// per-process secret when it is unset.
func noticeCookies(cfg config.App, log *slog.Logger) (*cookie.Manager, error) {
	secret := cfg.NoticeSecret
	if secret == "" {
		buf := make([]byte, cookie.MinSecretLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		secret = hex.EncodeToString(buf)
		log.Warn("NOTICE_SECRET is not set, using a random secret")
	}
	return cookie.New(secret, cookie.WithPath("/admin"), cookie.WithSecure(cfg.SecureCookies))
}
