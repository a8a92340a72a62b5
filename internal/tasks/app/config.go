package app

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

type Config struct {
	JWTSecret      string `env:"JWT_SECRET,required,notEmpty"` // Required: HS256 signing secret
	BootstrapToken string `env:"BOOTSTRAP_TOKEN"`              // Optional: token required to perform bootstrap

	DatabaseFile        string        `env:"DATABASE_FILE" envDefault:"tasks.db"`    // Path to SQLite database file
	PepperFile          string        `env:"PEPPER_FILE" envDefault:"pepper"`        // Path to password pepper, generated if missing
	Env                 string        `env:"ENV" envDefault:"dev"`                   // Environment (dev, staging, prod)
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`            // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`           // json, text
	Port                int           `env:"PORT" envDefault:"8080"`                 // HTTP server port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"` // Graceful shutdown timeout

	// CIDRs of reverse proxies whose X-Forwarded-For is believed, e.g. "10.0.0.0/8,127.0.0.1/32".
	TrustedProxies []netip.Prefix `env:"TRUSTED_PROXIES" envSeparator:","`

	RateLimits RateLimitProfiles `envPrefix:"RATELIMIT_"`
}

// RateLimitProfile is one RATELIMIT_<PROFILE>_* group.
type RateLimitProfile struct {
	Requests  int `env:"REQUESTS"`
	WindowSec int `env:"WINDOW_SEC"`
	Burst     int `env:"BURST"`
}

// RateLimitProfiles mirrors httpx.RateLimits. Unset variables keep the
// values the struct already holds, so LoadConfig pre-fills the defaults.
type RateLimitProfiles struct {
	Strict   RateLimitProfile `envPrefix:"STRICT_"`
	Moderate RateLimitProfile `envPrefix:"MODERATE_"`
	Lenient  RateLimitProfile `envPrefix:"LENIENT_"`
	Public   RateLimitProfile `envPrefix:"PUBLIC_"`
}

// DefaultRateLimitProfiles returns httpx.DefaultRateLimits in env form.
func DefaultRateLimitProfiles() RateLimitProfiles {
	d := httpx.DefaultRateLimits()
	return RateLimitProfiles{
		Strict:   profileOf(d.Strict),
		Moderate: profileOf(d.Moderate),
		Lenient:  profileOf(d.Lenient),
		Public:   profileOf(d.Public),
	}
}

func profileOf(c httpx.RateLimitConfig) RateLimitProfile {
	return RateLimitProfile{
		Requests:  c.RequestsPerWindow,
		WindowSec: int(c.Window / time.Second),
		Burst:     c.Burst,
	}
}

func (p RateLimitProfile) limit() httpx.RateLimitConfig {
	return httpx.RateLimitConfig{
		RequestsPerWindow: p.Requests,
		Window:            time.Duration(p.WindowSec) * time.Second,
		Burst:             p.Burst,
	}
}

// Limits converts the profiles for the router.
func (p RateLimitProfiles) Limits() httpx.RateLimits {
	return httpx.RateLimits{
		Strict:   p.Strict.limit(),
		Moderate: p.Moderate.limit(),
		Lenient:  p.Lenient.limit(),
		Public:   p.Public.limit(),
	}
}

// HTTPLimits is what the router needs for rate limiting.
func (c Config) HTTPLimits() httpx.RateLimits {
	limits := c.RateLimits.Limits()
	limits.TrustedProxies = c.TrustedProxies
	return limits
}

func (p RateLimitProfiles) validate() error {
	for name, prof := range map[string]RateLimitProfile{
		"STRICT":   p.Strict,
		"MODERATE": p.Moderate,
		"LENIENT":  p.Lenient,
		"PUBLIC":   p.Public,
	} {
		if prof.Requests <= 0 || prof.WindowSec <= 0 || prof.Burst <= 0 {
			return fmt.Errorf("invalid RATELIMIT_%s_* values: requests, window and burst must be positive", name)
		}
	}
	return nil
}

// LoadConfig reads the process environment. A missing JWT_SECRET is an
// error; the service must not start without it.
func LoadConfig() (Config, error) {
	cfg := Config{RateLimits: DefaultRateLimitProfiles()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_GRACE_PERIOD %s", cfg.ShutdownGracePeriod)
	}
	if err := cfg.RateLimits.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
