package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Version is overridden at build time with -ldflags "-X ...config.Version=..."
var Version = "dev"

// ServerConfig represents HTTP listener configuration
type ServerConfig struct {
	Address      string   `json:"address" mapstructure:"address"`
	Port         int      `json:"port" mapstructure:"port"`
	EnableH2C    bool     `json:"enable_h2c" mapstructure:"enable_h2c"`
	EnableGzip   bool     `json:"enable_gzip" mapstructure:"enable_gzip"`
	ReadTimeout  int      `json:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int      `json:"write_timeout" mapstructure:"write_timeout"` // seconds
	MaxBodyBytes int64    `json:"max_body_bytes" mapstructure:"max_body_bytes"`
	CORSOrigins  []string `json:"cors_origins" mapstructure:"cors_origins"`
}

// CacheConfig represents result cache configuration
type CacheConfig struct {
	Enable     bool `json:"enable" mapstructure:"enable"`
	Expiration int  `json:"expiration" mapstructure:"expiration"` // minutes
	MaxEntries int  `json:"max_entries" mapstructure:"max_entries"`
}

// AuthConfig represents bearer token configuration. Auth is off while
// JWTSecret is empty.
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret" mapstructure:"jwt_secret"`
	JWTExpire int    `json:"jwt_expire" mapstructure:"jwt_expire"` // hours
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // console, json
}

// CipherConfig represents cipher defaults and named presets
type CipherConfig struct {
	DefaultFiller    string            `json:"default_filler" mapstructure:"default_filler"`
	BatchConcurrency int               `json:"batch_concurrency" mapstructure:"batch_concurrency"`
	MaxBatchJobs     int               `json:"max_batch_jobs" mapstructure:"max_batch_jobs"`
	Presets          map[string]Preset `json:"-" mapstructure:"-"`
}

// Config represents the main configuration
type Config struct {
	Server ServerConfig `json:"server" mapstructure:"server"`
	Cache  CacheConfig  `json:"cache" mapstructure:"cache"`
	Auth   AuthConfig   `json:"auth" mapstructure:"auth"`
	Log    LogConfig    `json:"log" mapstructure:"log"`
	Cipher CipherConfig `json:"cipher" mapstructure:"cipher"`
}

var (
	cfg        *Config
	once       sync.Once
	configFile string
)

// SetConfigFile makes Load read path instead of searching for config.json.
// It has no effect once Load has run.
func SetConfigFile(path string) {
	configFile = path
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 5350)
	v.SetDefault("server.enable_h2c", false)
	v.SetDefault("server.enable_gzip", true)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors_origins", []string{"*"})

	// Cache defaults
	v.SetDefault("cache.enable", true)
	v.SetDefault("cache.expiration", 10)
	v.SetDefault("cache.max_entries", 4096)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expire", 24)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Cipher defaults
	v.SetDefault("cipher.default_filler", "X")
	v.SetDefault("cipher.batch_concurrency", 4)
	v.SetDefault("cipher.max_batch_jobs", 1000)
}

// Load reads the configuration once, from the file set with SetConfigFile or
// from config.json in ., ./configs or $HOME/.cipherloom, overlaid with
// CIPHERLOOM_* environment variables.
func Load() *Config {
	once.Do(func() {
		v := viper.GetViper()
		if configFile != "" {
			v.SetConfigFile(configFile)
		} else {
			v.SetConfigName("config")
			v.SetConfigType("json")
			v.AddConfigPath(".")
			v.AddConfigPath("./configs")
			v.AddConfigPath("$HOME/.cipherloom")
		}

		SetDefaults(v)

		// Environment variables
		v.SetEnvPrefix("CIPHERLOOM")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Warn().Msg("Config file not found, using defaults")
			} else {
				log.Error().Err(err).Msg("Error reading config file")
			}
		}

		c, err := Decode(v)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to unmarshal config")
		}
		cfg = c
	})
	return cfg
}

// Decode unmarshals v into a Config and parses the preset table
func Decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	c.Cipher.Presets = ParsePresets(v.Get("cipher.presets"))
	return c, nil
}

func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

// GetHTTPAddr returns the HTTP listen address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IsH2CEnabled returns whether cleartext HTTP/2 is enabled
func (c *Config) IsH2CEnabled() bool {
	return c.Server.EnableH2C
}

// IsAuthEnabled returns whether /api/v1 requires a bearer token
func (c *Config) IsAuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// Preset returns the named preset
func (c *Config) Preset(name string) (Preset, bool) {
	p, ok := c.Cipher.Presets[strings.ToLower(name)]
	return p, ok
}
