package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Store    StoreConfig
	Identity IdentityConfig
	Log      LogConfig
	CORS     CORSConfig
	Swagger  SwaggerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in the production environment.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StoreConfig selects the user store backend.
type StoreConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// IdentityConfig holds identity provider settings.
type IdentityConfig struct {
	UserinfoURL    string        `mapstructure:"userinfo_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SwaggerConfig toggles the API documentation UI.
type SwaggerConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from environment variables with the IDSYNC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IDSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "idsync")
	v.SetDefault("db.password", "idsync_secret")
	v.SetDefault("db.name", "idsync_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Store defaults
	v.SetDefault("store.driver", StoreDriverPostgres)
	v.SetDefault("store.sqlite_path", "idsync.db")

	// Identity provider defaults
	v.SetDefault("identity.userinfo_url", "https://openidconnect.googleapis.com/v1/userinfo")
	v.SetDefault("identity.timeout", "10s")
	v.SetDefault("identity.connect_timeout", "5s")
	v.SetDefault("identity.max_body_bytes", 1<<20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "text")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("swagger.enabled", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "IDSYNC_SERVER_PORT",
		"server.read_timeout":      "IDSYNC_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "IDSYNC_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":  "IDSYNC_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":       "IDSYNC_SERVER_ENVIRONMENT",
		"db.host":                  "IDSYNC_DB_HOST",
		"db.port":                  "IDSYNC_DB_PORT",
		"db.user":                  "IDSYNC_DB_USER",
		"db.password":              "IDSYNC_DB_PASSWORD",
		"db.name":                  "IDSYNC_DB_NAME",
		"db.sslmode":               "IDSYNC_DB_SSLMODE",
		"db.max_open":              "IDSYNC_DB_MAX_OPEN",
		"db.max_idle":              "IDSYNC_DB_MAX_IDLE",
		"store.driver":             "IDSYNC_STORE_DRIVER",
		"store.sqlite_path":        "IDSYNC_STORE_SQLITE_PATH",
		"identity.userinfo_url":    "IDSYNC_IDENTITY_USERINFO_URL",
		"identity.timeout":         "IDSYNC_IDENTITY_TIMEOUT",
		"identity.connect_timeout": "IDSYNC_IDENTITY_CONNECT_TIMEOUT",
		"identity.max_body_bytes":  "IDSYNC_IDENTITY_MAX_BODY_BYTES",
		"log.level":                "IDSYNC_LOG_LEVEL",
		"log.format":               "IDSYNC_LOG_FORMAT",
		"cors.allowed_origins":     "IDSYNC_CORS_ALLOWED_ORIGINS",
		"swagger.enabled":          "IDSYNC_SWAGGER_ENABLED",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if IDSYNC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("IDSYNC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Store = StoreConfig{
		Driver:     strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
		SQLitePath: v.GetString("store.sqlite_path"),
	}
	cfg.Identity = IdentityConfig{
		UserinfoURL:    strings.TrimSpace(v.GetString("identity.userinfo_url")),
		Timeout:        v.GetDuration("identity.timeout"),
		ConnectTimeout: v.GetDuration("identity.connect_timeout"),
		MaxBodyBytes:   v.GetInt64("identity.max_body_bytes"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	// API docs stay off in production unless explicitly enabled.
	swaggerEnabled := v.GetBool("swagger.enabled")
	if cfg.Server.IsProduction() && os.Getenv("IDSYNC_SWAGGER_ENABLED") == "" {
		swaggerEnabled = false
	}
	cfg.Swagger = SwaggerConfig{Enabled: swaggerEnabled}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.Identity.UserinfoURL == "" {
		errs = append(errs, errors.New("identity.userinfo_url is required"))
	}
	if c.Identity.Timeout <= 0 {
		errs = append(errs, errors.New("identity.timeout must be positive"))
	}
	if c.Identity.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("identity.connect_timeout must be positive"))
	}
	if c.Identity.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("identity.max_body_bytes must be positive"))
	}
	switch c.Store.Driver {
	case StoreDriverPostgres:
	case StoreDriverSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
