package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LinkSecret     string // Required for /token and /verify: HMAC signing secret
	LinkSecretFile string // Optional: file holding the signing secret, used when LinkSecret is empty
	CallbackSecret string // Optional: bearer secret the bot must send to /pair-claim

	TokenTTL            time.Duration // Default token lifetime (default: 10m, min: 1m)
	ClaimTTL            time.Duration // How long a claim stays visible (default: 5m)
	SweepInterval       time.Duration // Expired-claim sweep interval (default: 1m)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// fileConfig is the YAML shape of PAIRLINK_CONFIG_FILE. Durations are
// strings ("90s", "5m") or bare seconds.
type fileConfig struct {
	LinkSecret          string `yaml:"link_secret"`
	LinkSecretFile      string `yaml:"link_secret_file"`
	CallbackSecret      string `yaml:"pair_callback_auth"`
	TokenTTL            string `yaml:"token_ttl"`
	ClaimTTL            string `yaml:"claim_ttl"`
	SweepInterval       string `yaml:"sweep_interval"`
	Env                 string `yaml:"env"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	Port                int    `yaml:"port"`
	ShutdownGracePeriod string `yaml:"shutdown_grace_period"`
}

func defaultConfig() Config {
	return Config{
		TokenTTL:            linktoken.DefaultTTL,
		ClaimTTL:            5 * time.Minute,
		SweepInterval:       time.Minute,
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by PAIRLINK_CONFIG_FILE (if any), then environment variables.
func LoadConfig() (Config, error) {
	base := defaultConfig()

	if path := os.Getenv("PAIRLINK_CONFIG_FILE"); path != "" {
		if err := loadConfigFile(path, &base); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		LinkSecret:          getEnvOrDefault("LINK_SECRET", base.LinkSecret),
		LinkSecretFile:      getEnvOrDefault("LINK_SECRET_FILE", base.LinkSecretFile),
		CallbackSecret:      getEnvOrDefault("PAIR_CALLBACK_AUTH", base.CallbackSecret),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", base.TokenTTL),
		ClaimTTL:            getEnvDurationOrDefault("CLAIM_TTL", base.ClaimTTL),
		SweepInterval:       getEnvDurationOrDefault("SWEEP_INTERVAL", base.SweepInterval),
		Env:                 getEnvOrDefault("ENV", base.Env),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", base.LogLevel),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", base.LogFormat),
		Port:                getEnvIntOrDefault("PORT", base.Port),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", base.ShutdownGracePeriod),
	}

	if cfg.LinkSecret == "" && cfg.LinkSecretFile != "" {
		data, err := os.ReadFile(cfg.LinkSecretFile)
		if err != nil {
			return Config{}, fmt.Errorf("read link secret file: %w", err)
		}
		cfg.LinkSecret = strings.TrimSpace(string(data))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with. A missing signing
// secret is not an error here: the service starts and reports it.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.TokenTTL < linktoken.MinTTL {
		errs = append(errs, fmt.Errorf("token ttl %s is below the %s minimum", c.TokenTTL, linktoken.MinTTL))
	}
	if c.ClaimTTL <= 0 {
		errs = append(errs, errors.New("claim ttl must be positive"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("sweep interval must be positive"))
	}
	if c.ShutdownGracePeriod < 0 {
		errs = append(errs, errors.New("shutdown grace period must not be negative"))
	}
	return errors.Join(errs...)
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&cfg.LinkSecret, fc.LinkSecret)
	setString(&cfg.LinkSecretFile, fc.LinkSecretFile)
	setString(&cfg.CallbackSecret, fc.CallbackSecret)
	setString(&cfg.Env, fc.Env)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"token_ttl", fc.TokenTTL, &cfg.TokenTTL},
		{"claim_ttl", fc.ClaimTTL, &cfg.ClaimTTL},
		{"sweep_interval", fc.SweepInterval, &cfg.SweepInterval},
		{"shutdown_grace_period", fc.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, ok := parseDuration(d.raw)
		if !ok {
			return fmt.Errorf("parse config file %s: %s: invalid duration %q", path, d.key, d.raw)
		}
		*d.dst = v
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, ok := parseDuration(value); ok {
		return d
	}

	return defaultValue
}

// parseDuration accepts Go durations ("1h", "30m", "90s") and bare integers,
// which are seconds.
func parseDuration(value string) (time.Duration, bool) {
	if duration, err := time.ParseDuration(value); err == nil {
		return duration, true
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, true
	}

	return 0, false
}
