// Package appconf holds the dashboard's runtime configuration. Values come
// from defaults, then a .env file, then the process environment, then flags.
package appconf

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pathways.rf2lab.org/internal/dashboard"
)

// Environment is the operating environment of the process.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps a flag or variable value onto an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return Production
	case "test", "testing":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// Theme selects the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Environment variable names.
const (
	EnvHost           = "DASHBOARD_HOST"
	EnvPort           = "DASHBOARD_PORT"
	EnvEnvironment    = "DASHBOARD_ENV"
	EnvTheme          = "DASHBOARD_THEME"
	EnvLogLevel       = "DASHBOARD_LOG_LEVEL"
	EnvDataset        = "DASHBOARD_DATASET"
	EnvRateLimit      = "DASHBOARD_RATE_LIMIT"
	EnvSessionTTL     = "DASHBOARD_SESSION_TTL"
	EnvBudget         = "DASHBOARD_BUDGET"
	EnvSensitivityMin = "DASHBOARD_SENSITIVITY_MIN"
	EnvSensitivityMax = "DASHBOARD_SENSITIVITY_MAX"
)

// Config holds all the configuration settings for the dashboard.
type Config struct {
	Host        string
	Port        int
	Env         Environment
	Theme       Theme
	LogLevel    string
	DatasetPath string
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit   int
	SessionTTL  time.Duration
	Budget      float64
	Sensitivity dashboard.SensitivityRange
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        8501,
		Env:         Development,
		Theme:       ThemeLight,
		LogLevel:    "info",
		RateLimit:   20,
		SessionTTL:  30 * time.Minute,
		Budget:      dashboard.DefaultBudget,
		Sensitivity: dashboard.DefaultSensitivityRange(),
	}
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DashboardOptions converts the config into renderer options.
func (c Config) DashboardOptions() dashboard.Options {
	return dashboard.Options{
		Sensitivity: c.Sensitivity,
		Budget:      c.Budget,
	}
}

// RecenterSensitivity moves the slider default to the middle of a changed range.
func (c *Config) RecenterSensitivity() {
	c.Sensitivity.Default = c.Sensitivity.Min + (c.Sensitivity.Max-c.Sensitivity.Min)/2
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 1-65535", c.Port))
	}
	if c.Theme != ThemeLight && c.Theme != ThemeDark {
		errs = append(errs, fmt.Errorf("theme %q must be light or dark", c.Theme))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit %d must not be negative", c.RateLimit))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session ttl %v must be positive", c.SessionTTL))
	}
	if c.Budget < 0 {
		errs = append(errs, fmt.Errorf("budget %v must not be negative", c.Budget))
	}
	if err := c.Sensitivity.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// FromEnv overlays environment variables onto base. lookup is usually os.LookupEnv.
func FromEnv(base Config, lookup func(string) (string, bool)) (Config, error) {
	cfg := base
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}

	str(EnvHost, &cfg.Host)
	integer(EnvPort, &cfg.Port)
	if v, ok := lookup(EnvEnvironment); ok && v != "" {
		cfg.Env = EnvFlagToEnvironment(v)
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		cfg.Theme = Theme(strings.ToLower(v))
	}
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvDataset, &cfg.DatasetPath)
	integer(EnvRateLimit, &cfg.RateLimit)
	if v, ok := lookup(EnvSessionTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSessionTTL, err))
		} else {
			cfg.SessionTTL = d
		}
	}
	float(EnvBudget, &cfg.Budget)
	float(EnvSensitivityMin, &cfg.Sensitivity.Min)
	float(EnvSensitivityMax, &cfg.Sensitivity.Max)
	if cfg.Sensitivity.Min != base.Sensitivity.Min || cfg.Sensitivity.Max != base.Sensitivity.Max {
		cfg.RecenterSensitivity()
	}

	if len(errs) > 0 {
		return base, errors.Join(errs...)
	}
	return cfg, nil
}
