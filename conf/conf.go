package conf

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultCfAPIBaseURL   = "https://codeforces.com/api"
	DefaultProblemBaseURL = "https://codeforces.com/problemset/problem"
	DefaultSubmCount      = 10000
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultHTTPAddr       = ":8080"

	// DefaultHandleCooldown keeps one handle at 0.5 fetches per second,
	// with an extra factor of two on top of the judge's 2s guidance.
	DefaultHandleCooldown = 4 * time.Second
)

type Config struct {
	CfAPIBaseURL   string
	ProblemBaseURL string
	SubmCount      int
	HTTPTimeout    time.Duration

	HTTPAddr       string
	HandleCooldown time.Duration
	CorsOrigins    []string

	LogLevel slog.Level
	Env      string
}

func Default() Config {
	return Config{
		CfAPIBaseURL:   DefaultCfAPIBaseURL,
		ProblemBaseURL: DefaultProblemBaseURL,
		SubmCount:      DefaultSubmCount,
		HTTPTimeout:    DefaultHTTPTimeout,
		HTTPAddr:       DefaultHTTPAddr,
		HandleCooldown: DefaultHandleCooldown,
		CorsOrigins:    []string{"*"},
		LogLevel:       slog.LevelInfo,
		Env:            "dev",
	}
}

// Load reads configuration from defaults, the TOML file named by
// UNSOLVED_CONFIG (if set) and the environment, in increasing precedence.
// A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return LoadFrom(os.Getenv("UNSOLVED_CONFIG"), os.LookupEnv)
}

func LoadFrom(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type fileConfig struct {
	Codeforces struct {
		APIBaseURL      string `toml:"api_base_url"`
		ProblemBaseURL  string `toml:"problem_base_url"`
		SubmissionCount int    `toml:"submission_count"`
		Timeout         string `toml:"timeout"`
	} `toml:"codeforces"`
	Server struct {
		Addr           string   `toml:"addr"`
		HandleCooldown string   `toml:"handle_cooldown"`
		CorsOrigins    []string `toml:"cors_origins"`
	} `toml:"server"`
	Log struct {
		Level string `toml:"level"`
		Env   string `toml:"env"`
	} `toml:"log"`
}

func (c *Config) applyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setStr(&c.CfAPIBaseURL, fc.Codeforces.APIBaseURL)
	setStr(&c.ProblemBaseURL, fc.Codeforces.ProblemBaseURL)
	if fc.Codeforces.SubmissionCount != 0 {
		c.SubmCount = fc.Codeforces.SubmissionCount
	}
	if err := setDuration(&c.HTTPTimeout, fc.Codeforces.Timeout, "codeforces.timeout"); err != nil {
		return err
	}
	setStr(&c.HTTPAddr, fc.Server.Addr)
	if err := setDuration(&c.HandleCooldown, fc.Server.HandleCooldown, "server.handle_cooldown"); err != nil {
		return err
	}
	if len(fc.Server.CorsOrigins) > 0 {
		c.CorsOrigins = fc.Server.CorsOrigins
	}
	if err := setLevel(&c.LogLevel, fc.Log.Level); err != nil {
		return err
	}
	setStr(&c.Env, fc.Log.Env)
	return nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	get := func(key string) string {
		v, _ := lookupEnv(key)
		return strings.TrimSpace(v)
	}

	setStr(&c.CfAPIBaseURL, get("CF_API_BASE_URL"))
	setStr(&c.ProblemBaseURL, get("CF_PROBLEM_BASE_URL"))
	if v := get("CF_SUBMISSION_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CF_SUBMISSION_COUNT %q: %w", v, err)
		}
		c.SubmCount = n
	}
	if err := setDuration(&c.HTTPTimeout, get("CF_HTTP_TIMEOUT"), "CF_HTTP_TIMEOUT"); err != nil {
		return err
	}
	setStr(&c.HTTPAddr, get("HTTP_ADDR"))
	if err := setDuration(&c.HandleCooldown, get("HANDLE_COOLDOWN"), "HANDLE_COOLDOWN"); err != nil {
		return err
	}
	if v := get("CORS_ORIGINS"); v != "" {
		c.CorsOrigins = splitList(v)
	}
	if err := setLevel(&c.LogLevel, get("LOG_LEVEL")); err != nil {
		return err
	}
	setStr(&c.Env, get("ENV"))
	return nil
}

func (c *Config) validate() error {
	var errs []error
	if c.SubmCount <= 0 {
		errs = append(errs, fmt.Errorf("submission count must be positive, got %d", c.SubmCount))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout))
	}
	if c.HandleCooldown < 0 {
		errs = append(errs, fmt.Errorf("handle cooldown must not be negative, got %s", c.HandleCooldown))
	}
	return errors.Join(errs...)
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string, name string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	*dst = d
	return nil
}

func setLevel(dst *slog.Level, v string) error {
	if v == "" {
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", v, err)
	}
	*dst = lvl
	return nil
}

func splitList(v string) []string {
	var res []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}
