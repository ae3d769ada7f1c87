// Package config loads the rotation daemon configuration from YAML
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-rotation/internal/entities"
	"github.com/KirkDiggler/rpg-rotation/internal/errors"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/dispatch"
	"github.com/KirkDiggler/rpg-rotation/internal/orchestrators/rotation"
)

// DefaultPath is where the daemon looks for its config
const DefaultPath = "rotation.yaml"

// Config holds all configuration for the rotation daemon
type Config struct {
	LogLevel   string `yaml:"log_level" env:"ROTATION_LOG_LEVEL"`
	HealthPort int    `yaml:"health_port" env:"ROTATION_HEALTH_PORT"`
	// DryRun logs commands instead of queueing them for the injection layer
	DryRun bool `yaml:"dry_run" env:"ROTATION_DRY_RUN"`

	Redis RedisConfig `yaml:"redis"`

	// SessionTTL is how long the dispatch journal outlives its last write
	SessionTTL     time.Duration `yaml:"session_ttl"`
	JournalEntries int64         `yaml:"journal_entries"`

	Timing     TimingConfig     `yaml:"timing"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`

	// CatalogFile optionally replaces ability variant lists
	CatalogFile string `yaml:"catalog_file" env:"ROTATION_CATALOG_FILE"`

	Characters []CharacterConfig `yaml:"characters"`
}

// RedisConfig holds the connection to the redis the sidecars share
type RedisConfig struct {
	Endpoint        string        `yaml:"endpoint" env:"ROTATION_REDIS_ENDPOINT"`
	DB              int           `yaml:"db" env:"ROTATION_REDIS_DB"`
	PoolSize        int           `yaml:"pool_size"`
	MinIdleConns    int           `yaml:"min_idle_conns"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	MaxRetries      int           `yaml:"max_retries"`
	UseTLS          bool          `yaml:"use_tls" env:"ROTATION_REDIS_TLS"`
	// MaxPending caps each character's command queue
	MaxPending int64 `yaml:"max_pending"`
}

// TimingConfig is the pacing applied to every flow
type TimingConfig struct {
	DefaultSpacing time.Duration `yaml:"default_spacing"`
	MeleeSpacing   time.Duration `yaml:"melee_spacing"`
	HostileRefresh time.Duration `yaml:"hostile_refresh"`
	TickInterval   time.Duration `yaml:"tick_interval"`
}

// ThresholdsConfig holds the resource percentages the dispatcher gates on
type ThresholdsConfig struct {
	MinVitaPercent      float64 `yaml:"min_vita_percent"`
	ManaTransferCeiling float64 `yaml:"mana_transfer_ceiling"`
	InvokeManaPercent   float64 `yaml:"invoke_mana_percent"`
	HealVitaPercent     float64 `yaml:"heal_vita_percent"`
}

// CharacterConfig is one driven character
type CharacterConfig struct {
	Name      string   `yaml:"name"`
	Ref       string   `yaml:"ref"`
	Archetype string   `yaml:"archetype"`
	Plan      []string `yaml:"plan"`
}

// Default returns the config with stock values and no characters
func Default() Config {
	timing := rotation.DefaultTiming()
	thresholds := dispatch.DefaultThresholds()

	return Config{
		LogLevel:       "info",
		HealthPort:     50061,
		Redis:          RedisConfig{Endpoint: "localhost:6379", PoolSize: 10},
		SessionTTL:     6 * time.Hour,
		JournalEntries: 1000,
		Timing: TimingConfig{
			DefaultSpacing: timing.DefaultSpacing,
			MeleeSpacing:   timing.MeleeSpacing,
			HostileRefresh: timing.HostileRefresh,
			TickInterval:   timing.TickInterval,
		},
		Thresholds: ThresholdsConfig{
			MinVitaPercent:      thresholds.MinVitaPercent,
			ManaTransferCeiling: thresholds.ManaTransferCeiling,
			InvokeManaPercent:   thresholds.InvokeManaPercent,
			HealVitaPercent:     thresholds.HealVitaPercent,
		},
	}
}

// Load reads the config file at path over the defaults, then applies the
// ROTATION_* environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse config %s", path)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment overrides")
	}

	return cfg, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}
	if c.HealthPort < 0 || c.HealthPort > 65535 {
		vb.Fieldf("health_port", "must be a port number, got %d", c.HealthPort)
	}
	errors.ValidateRequired("redis.endpoint", c.Redis.Endpoint, vb)
	errors.ValidatePositive("redis.pool_size", c.Redis.PoolSize, vb)
	if c.SessionTTL < 0 {
		vb.Field("session_ttl", "must not be negative")
	}
	if c.JournalEntries < 0 {
		vb.Field("journal_entries", "must not be negative")
	}

	if err := c.Timing.Rotation().Validate(); err != nil {
		vb.Field("timing", err.Error())
	}
	if err := c.Thresholds.Dispatch().Validate(); err != nil {
		vb.Field("thresholds", err.Error())
	}

	if len(c.Characters) == 0 {
		vb.RequiredField("characters")
	}
	seen := make(map[string]bool, len(c.Characters))
	for i, ch := range c.Characters {
		if ch.Name == "" {
			vb.Fieldf("characters", "entry %d has no name", i)
		}
		if ch.Ref == "" {
			vb.Fieldf("characters", "entry %d has no ref", i)
		}
		if ch.Archetype != "" && entities.ParsePath(ch.Archetype) == entities.PathNone {
			vb.Fieldf("characters", "%s has unknown archetype %q", ch.Name, ch.Archetype)
		}
		for _, step := range ch.Plan {
			if _, err := rotation.LookupStep(step); err != nil {
				vb.Fieldf("characters", "%s: %s", ch.Name, err.Error())
			}
		}
		if seen[ch.Ref] {
			vb.Fieldf("characters", "ref %q is listed twice", ch.Ref)
		}
		seen[ch.Ref] = true
	}

	return vb.Build()
}

// Rotation converts the timing section
func (t TimingConfig) Rotation() rotation.Timing {
	return rotation.Timing{
		DefaultSpacing: t.DefaultSpacing,
		MeleeSpacing:   t.MeleeSpacing,
		HostileRefresh: t.HostileRefresh,
		TickInterval:   t.TickInterval,
	}
}

// Dispatch converts the thresholds section
func (t ThresholdsConfig) Dispatch() dispatch.Thresholds {
	return dispatch.Thresholds{
		MinVitaPercent:      t.MinVitaPercent,
		ManaTransferCeiling: t.ManaTransferCeiling,
		InvokeManaPercent:   t.InvokeManaPercent,
		HealVitaPercent:     t.HealVitaPercent,
	}
}

// SessionCharacters converts the characters section
func (c *Config) SessionCharacters() []rotation.Character {
	out := make([]rotation.Character, len(c.Characters))
	for i, ch := range c.Characters {
		out[i] = rotation.Character{
			Name:      ch.Name,
			Ref:       ch.Ref,
			Archetype: ch.Archetype,
			Plan:      ch.Plan,
		}
	}
	return out
}

// Level returns the slog level named by log_level
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
