package reqcache

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the cache client configuration.
type Config struct {
	// CacheDir is the root directory for record files.
	CacheDir string `yaml:"cache_dir"`

	// DefaultTTLSeconds is the ttl applied by DefaultTTL-using callers.
	DefaultTTLSeconds int `yaml:"default_ttl_seconds"`

	Memory    MemoryConfig    `yaml:"memory"`
	Transport TransportConfig `yaml:"transport"`

	// ListenAddr is the admin daemon's listen address.
	ListenAddr string `yaml:"listen_addr"`
}

// MemoryConfig configures the optional in-process hot tier.
type MemoryConfig struct {
	Enabled bool `yaml:"enabled"`
	SizeMB  int  `yaml:"size_mb"`
}

// TransportConfig configures the default HTTP transport.
type TransportConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from a YAML file and applies defaults
// for anything left unset.
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.DefaultTTLSeconds == 0 {
		c.DefaultTTLSeconds = TTLDefault
	}
	if c.Memory.SizeMB == 0 {
		c.Memory.SizeMB = 64
	}
	if c.Transport.TimeoutSeconds == 0 {
		c.Transport.TimeoutSeconds = 30
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8480"
	}
}

// transportTimeout returns the configured timeout as a duration.
func (c *Config) transportTimeout() time.Duration {
	return time.Duration(c.Transport.TimeoutSeconds) * time.Second
}
