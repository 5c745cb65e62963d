package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend variants selectable at startup.
const (
	VariantDriver   = "driver"
	VariantEmbedded = "embedded"
)

// Config is the top-level gateway configuration.
type Config struct {
	ListenAddr string        `yaml:"listen_addr"`
	MasterKey  string        `yaml:"master_key"`
	RedisURL   string        `yaml:"redis_url"`
	Backend    BackendConfig `yaml:"backend"`
	Limits     LimitsConfig  `yaml:"limits"`
}

// BackendConfig selects and parameterizes the backend driver.
type BackendConfig struct {
	// Variant is either "driver" (remote driver-call API) or "embedded"
	// (in-process OpenAI-compatible client).
	Variant      string   `yaml:"variant"`
	Origin       string   `yaml:"origin"`
	AuthToken    string   `yaml:"auth_token"`
	DefaultModel string   `yaml:"default_model"`
	Timeout      Duration `yaml:"timeout"`
	// EmbeddingsHack enables the best-effort text approximation on
	// /v1/embeddings instead of the default 501.
	EmbeddingsHack bool `yaml:"embeddings_hack"`
}

// LimitsConfig caps request intake.
type LimitsConfig struct {
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Duration wraps time.Duration so YAML values like "120s" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(dur)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns a configuration suitable for local development.
func Default() *Config {
	return &Config{
		ListenAddr: ":3000",
		MasterKey:  "master_key_here",
		RedisURL:   "redis://localhost:6379",
		Backend: BackendConfig{
			Variant:      VariantDriver,
			Origin:       "https://api.puter.com",
			DefaultModel: "claude-sonnet-4",
			Timeout:      Duration(120 * time.Second),
		},
		Limits: LimitsConfig{
			MaxBodyBytes: 5 << 20,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Backend.Variant != VariantDriver && cfg.Backend.Variant != VariantEmbedded {
		return nil, fmt.Errorf("unknown backend variant %q", cfg.Backend.Variant)
	}
	return cfg, nil
}

// applyEnv layers the env vars the original deployment used on top of the
// file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("MASTER_KEY"); v != "" {
		c.MasterKey = v
	}
	if v := os.Getenv("BACKEND_ORIGIN"); v != "" {
		c.Backend.Origin = v
	}
	if v := os.Getenv("BACKEND_AUTH_TOKEN"); v != "" {
		c.Backend.AuthToken = v
	}
	if v := os.Getenv("BACKEND_VARIANT"); v != "" {
		c.Backend.Variant = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + v
	}
}
