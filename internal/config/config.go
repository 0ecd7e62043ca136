// Package config provides configuration management for the academic profile service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/helixir/academic-profile-service/internal/docstore"
)

// Storage backend names.
const (
	// StorageBackendFile keeps each collection in <data_dir>/<collection>.json.
	StorageBackendFile = docstore.BackendFile
	// StorageBackendBolt keeps every collection in one bbolt database file.
	StorageBackendBolt = docstore.BackendBolt
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "ACADEMIC"

// minJWTSecretLength is the shortest accepted HS256 signing secret.
const minJWTSecretLength = 32

// Config holds all configuration for the academic profile service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Storage contains document store settings.
	Storage StorageConfig `mapstructure:"storage"`
	// Auth contains session and login settings.
	Auth AuthConfig `mapstructure:"auth"`
	// Directory contains public directory settings.
	Directory DirectoryConfig `mapstructure:"directory"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// IdleTimeout is the keep-alive idle timeout.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CORSAllowedOrigins lists origins allowed to call the API with credentials.
	// Empty disables CORS handling.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a reverse proxy that overwrites them.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// StorageConfig holds document store configuration.
type StorageConfig struct {
	// Backend is "file" or "bolt" (default: file).
	Backend string `mapstructure:"backend"`
	// DataDir holds the collection files of the file backend.
	DataDir string `mapstructure:"data_dir"`
	// BoltPath is the database file of the bolt backend.
	BoltPath string `mapstructure:"bolt_path"`
	// BoltTimeout bounds the wait for the bolt file lock.
	BoltTimeout time.Duration `mapstructure:"bolt_timeout"`
	// FileMode is the octal permission of collection files (default: 0644).
	FileMode string `mapstructure:"file_mode"`
}

// AuthConfig holds session configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens (loaded from ACADEMIC_AUTH_JWT_SECRET only).
	JWTSecret string `mapstructure:"-"`
	// TokenTTL is the session lifetime (default: 168h).
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// CookieName is the session cookie name (default: auth-token).
	CookieName string `mapstructure:"cookie_name"`
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool `mapstructure:"cookie_secure"`
	// LoginRateLimit is the sustained login attempts per second per client. 0 disables limiting.
	LoginRateLimit float64 `mapstructure:"login_rate_limit"`
	// LoginBurst is the number of login attempts allowed in a burst.
	LoginBurst int `mapstructure:"login_burst"`
	// BcryptCost is the password hashing cost.
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// DirectoryConfig holds public directory configuration.
type DirectoryConfig struct {
	// PlaceholderThreshold is the number of featured profiles below which
	// placeholder entries are mixed into the landing page.
	PlaceholderThreshold int `mapstructure:"placeholder_threshold"`
	// DefaultLimit is the publication list size when none is requested.
	DefaultLimit int `mapstructure:"default_limit"`
	// MaxLimit caps requested publication list sizes.
	MaxLimit int `mapstructure:"max_limit"`
	// FeaturedLimit is the number of entries per landing section.
	FeaturedLimit int `mapstructure:"featured_limit"`
	// PlaceholdersEnabled turns placeholder padding on.
	PlaceholdersEnabled bool `mapstructure:"placeholders_enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr, file path).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Mode parses FileMode as an octal permission.
func (c *StorageConfig) Mode() (fs.FileMode, error) {
	if c.FileMode == "" {
		return 0o644, nil
	}
	m, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid storage file mode %q: %w", c.FileMode, err)
	}
	if m > 0o777 {
		return 0, fmt.Errorf("invalid storage file mode %q: out of range", c.FileMode)
	}
	return fs.FileMode(m), nil
}

// StoreOptions converts the storage section into docstore options.
func (c *StorageConfig) StoreOptions() (docstore.Options, error) {
	mode, err := c.Mode()
	if err != nil {
		return docstore.Options{}, err
	}
	return docstore.Options{
		Backend:     c.Backend,
		DataDir:     c.DataDir,
		FileMode:    mode,
		BoltPath:    c.BoltPath,
		BoltTimeout: c.BoltTimeout,
	}, nil
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// default locations and tolerates a missing file.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

// LoadOffline loads configuration for tools that work on the store directly
// and never issue session tokens, so the JWT secret is not required.
func LoadOffline(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, requireSecrets bool) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/academic-profile-service")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Config file not found is OK, we'll use env vars and defaults
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Load secrets exclusively from environment variables.
	// These fields use mapstructure:"-" to prevent loading from config files.
	loadSecrets(&cfg)

	validate := cfg.Validate
	if !requireSecrets {
		validate = cfg.validateSettings
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadSecrets populates secret fields exclusively from environment variables.
func loadSecrets(cfg *Config) {
	cfg.Auth.JWTSecret = os.Getenv(EnvPrefix + "_AUTH_JWT_SECRET")
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.trust_proxy_headers", false)

	// Storage defaults
	v.SetDefault("storage.backend", StorageBackendFile)
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("storage.bolt_path", "data/academic.db")
	v.SetDefault("storage.bolt_timeout", "5s")
	v.SetDefault("storage.file_mode", "0644")

	// Auth defaults. The JWT secret has no default (see loadSecrets).
	v.SetDefault("auth.token_ttl", "168h")
	v.SetDefault("auth.cookie_name", "auth-token")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.login_rate_limit", 0.2)
	v.SetDefault("auth.login_burst", 5)
	v.SetDefault("auth.bcrypt_cost", 10)

	// Directory defaults
	v.SetDefault("directory.placeholder_threshold", 3)
	v.SetDefault("directory.default_limit", 10)
	v.SetDefault("directory.max_limit", 100)
	v.SetDefault("directory.featured_limit", 5)
	v.SetDefault("directory.placeholders_enabled", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration, including secrets.
func (c *Config) Validate() error {
	if err := c.validateSettings(); err != nil {
		return err
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("%s_AUTH_JWT_SECRET must be set to at least %d characters", EnvPrefix, minJWTSecretLength)
	}
	return nil
}

func (c *Config) validateSettings() error {
	// Validate server ports
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}
	if c.Metrics.Enabled && c.Server.MetricsPort == c.Server.HTTPPort {
		return fmt.Errorf("metrics port must differ from HTTP port: %d", c.Server.HTTPPort)
	}

	// Validate storage config
	switch c.Storage.Backend {
	case StorageBackendFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage data_dir is required for the file backend")
		}
	case StorageBackendBolt:
		if c.Storage.BoltPath == "" {
			return fmt.Errorf("storage bolt_path is required for the bolt backend")
		}
	default:
		return fmt.Errorf("invalid storage backend: %q", c.Storage.Backend)
	}
	if _, err := c.Storage.Mode(); err != nil {
		return err
	}

	// Validate auth config
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token_ttl must be positive")
	}
	if c.Auth.LoginRateLimit < 0 {
		return fmt.Errorf("auth login_rate_limit must not be negative")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth bcrypt_cost must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}

	// Validate directory config
	if c.Directory.DefaultLimit <= 0 {
		return fmt.Errorf("directory default_limit must be positive")
	}
	if c.Directory.MaxLimit < c.Directory.DefaultLimit {
		return fmt.Errorf("directory max_limit (%d) must be >= default_limit (%d)", c.Directory.MaxLimit, c.Directory.DefaultLimit)
	}
	if c.Directory.FeaturedLimit <= 0 {
		return fmt.Errorf("directory featured_limit must be positive")
	}
	if c.Directory.PlaceholderThreshold < 0 {
		return fmt.Errorf("directory placeholder_threshold must not be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
