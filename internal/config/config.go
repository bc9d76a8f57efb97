// Package config loads the admin server configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/promptdesk/pkg/db"
	"github.com/dmitrymomot/promptdesk/pkg/logger"
	"github.com/dmitrymomot/promptdesk/pkg/redis"
)

// ErrLoadConfig is returned when the environment cannot be parsed.
var ErrLoadConfig = errors.New("config: failed to load")

// App holds the server's own settings.
type App struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	RegistryPath    string        `env:"REGISTRY_PATH"`
	Memory          bool          `env:"MEMORY_MODE" envDefault:"false"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LookupTimeout   time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"2s"`
	CacheTTL        time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"5s"`
	CacheSize       int           `env:"LOOKUP_CACHE_SIZE" envDefault:"10000"`
	CachePrefix     string        `env:"LOOKUP_CACHE_PREFIX" envDefault:"promptdesk:lookup"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics"`
	// NoticeSecret signs admin notice cookies. A random one is generated
	// at startup when empty.
	NoticeSecret  string `env:"NOTICE_SECRET"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`
}

// Config is the full server configuration.
// DB is left empty in memory mode.
type Config struct {
	App   App
	DB    db.Config
	Redis redis.Config
	Log   logger.Config
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg.App, opts); err != nil {
		return Config{}, errors.Join(ErrLoadConfig, err)
	}
	if err := env.ParseWithOptions(&cfg.Log, opts); err != nil {
		return Config{}, errors.Join(ErrLoadConfig, err)
	}
	if err := env.ParseWithOptions(&cfg.Redis, opts); err != nil {
		return Config{}, errors.Join(ErrLoadConfig, err)
	}
	if !cfg.App.Memory {
		if err := env.ParseWithOptions(&cfg.DB, opts); err != nil {
			return Config{}, errors.Join(ErrLoadConfig, err)
		}
	}

	return cfg, nil
}
