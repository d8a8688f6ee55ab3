// Package config binds the gateway's environment variables via struct tags,
// parsed once at startup.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the gateway needs to reach the upstream store and
// the metadata providers. Every field maps to one env var; there is no
// config file format, matching the upstream project's env-only convention.
type Config struct {
	WebDAVURL string        `env:"RD_WEBDAV_URL" envDefault:"https://dav.real-debrid.com"`
	Username  string        `env:"RD_USERNAME"`
	Password  string        `env:"RD_PASSWORD"`
	OMDbKey   string        `env:"OMDB_API_KEY"`
	TMDbKey   string        `env:"TMDB_API_KEY"`
	Host      string        `env:"HOST" envDefault:"0.0.0.0"`
	Port      int           `env:"PORT" envDefault:"8080"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"300"`
	Verbose   bool          `env:"VERBOSE" envDefault:"false"`
}

// durationAsSeconds parses a time.Duration field from a bare integer seconds
// count (e.g. "300"), since CACHE_TTL is documented in seconds, not Go
// duration syntax.
func durationAsSeconds(v string) (interface{}, error) {
	seconds, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("expected a bare integer seconds count: %w", err)
	}
	return time.Duration(seconds) * time.Second, nil
}

// Load parses the environment into a Config and validates the fields that
// have no sane default — the upstream credentials.
func Load() (Config, error) {
	cfg := Config{}
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParseFunc{
			reflect.TypeOf(time.Duration(0)): durationAsSeconds,
		},
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if cfg.Username == "" || cfg.Password == "" {
		return cfg, fmt.Errorf("config: RD_USERNAME and RD_PASSWORD are required")
	}
	return cfg, nil
}
