package ecs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultMaxEntities is the default identifier ceiling. Identifiers are issued from [1, DefaultMaxEntities).
const DefaultMaxEntities = 8192

// Config holds the tunables of a Storage.
type Config struct {
	// MaxEntities is the identifier ceiling; at most MaxEntities-1 entities are live at once.
	MaxEntities int `toml:"max_entities" yaml:"max_entities"`

	// TrustMode skips the range check in GetComponent. Out-of-range input then
	// panics with a bounds error instead of returning nil.
	TrustMode bool `toml:"trust_mode" yaml:"trust_mode"`

	// Verbosity enables tracing: 1 traces allocation, creation, destruction and
	// attach; 2 also traces removal.
	Verbosity int `toml:"verbosity" yaml:"verbosity"`

	// Strict turns assertions into panics. Use it in development and tests.
	Strict bool `toml:"strict" yaml:"strict"`

	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// LoggingConfig selects the level and encoding of the logger built by NewLogger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		MaxEntities: DefaultMaxEntities,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports configuration values a Storage cannot run with.
func (c Config) Validate() error {
	if c.MaxEntities < 2 {
		return eris.Errorf("max_entities must be at least 2, got %d", c.MaxEntities)
	}
	if c.Verbosity < 0 {
		return eris.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return eris.Errorf("unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// LoadConfig reads a TOML or YAML file, chosen by extension, over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, eris.Errorf("config %s: unsupported extension", path)
	}
	if err != nil {
		return cfg, eris.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// NewLogger builds a zap logger from cfg. Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
