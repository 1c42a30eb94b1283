// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAccessTokenKey  = "forum-access-key-change-in-production"
	defaultRefreshTokenKey = "forum-refresh-key-change-in-production"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                     string        `mapstructure:"PORT"`
	Env                      string        `mapstructure:"APP_ENV"`
	DBHost                   string        `mapstructure:"DB_HOST"`
	DBPort                   string        `mapstructure:"DB_PORT"`
	DBUser                   string        `mapstructure:"DB_USER"`
	DBPassword               string        `mapstructure:"DB_PASSWORD"`
	DBName                   string        `mapstructure:"DB_NAME"`
	DBSSLMode                string        `mapstructure:"DB_SSLMODE"`
	DBReadHost               string        `mapstructure:"DB_READ_HOST"`
	DBReadPort               string        `mapstructure:"DB_READ_PORT"`
	DBReadUser               string        `mapstructure:"DB_READ_USER"`
	DBReadPassword           string        `mapstructure:"DB_READ_PASSWORD"`
	DBMaxOpenConns           int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int           `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSchemaMode             string        `mapstructure:"DB_SCHEMA_MODE"`
	RedisURL                 string        `mapstructure:"REDIS_URL"`
	AccessTokenKey           string        `mapstructure:"ACCESS_TOKEN_KEY"`
	RefreshTokenKey          string        `mapstructure:"REFRESH_TOKEN_KEY"`
	AccessTokenAge           time.Duration `mapstructure:"ACCESS_TOKEN_AGE"`
	RefreshTokenAge          time.Duration `mapstructure:"REFRESH_TOKEN_AGE"`
	AllowedOrigins           string        `mapstructure:"ALLOWED_ORIGINS"`
	RateLimitMax             int           `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow          time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	// ProxyHeader names the header carrying the client IP behind a reverse
	// proxy, e.g. X-Forwarded-For. Empty uses the socket address.
	ProxyHeader              string        `mapstructure:"PROXY_HEADER"`
	TracingEnabled           bool          `mapstructure:"TRACING_ENABLED"`
	TracingExporter          string        `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint             string        `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio      float64       `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// Schema modes understood by the database bootstrap.
const (
	SchemaModeSQL  = "sql"
	SchemaModeAuto = "auto"
)

// LoadConfig loads application configuration from .env, config files and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	setDefaults(env)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(env string) {
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "forumapi")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_READ_HOST", "")
	viper.SetDefault("DB_READ_PORT", "5432")
	viper.SetDefault("DB_READ_USER", "postgres")
	viper.SetDefault("DB_READ_PASSWORD", "password")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	if env == "production" || env == "prod" {
		viper.SetDefault("DB_SCHEMA_MODE", SchemaModeSQL)
	} else {
		viper.SetDefault("DB_SCHEMA_MODE", SchemaModeAuto)
	}
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ACCESS_TOKEN_KEY", defaultAccessTokenKey)
	viper.SetDefault("REFRESH_TOKEN_KEY", defaultRefreshTokenKey)
	viper.SetDefault("ACCESS_TOKEN_AGE", "1h")
	viper.SetDefault("REFRESH_TOKEN_AGE", "168h")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("RATE_LIMIT_MAX", 90)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")
	viper.SetDefault("PROXY_HEADER", "")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
}

// IsProduction reports whether the config targets a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.AccessTokenKey == "" {
		return errors.New("ACCESS_TOKEN_KEY is required")
	}
	if c.RefreshTokenKey == "" {
		return errors.New("REFRESH_TOKEN_KEY is required")
	}
	if c.AccessTokenKey == c.RefreshTokenKey {
		return errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY must differ")
	}
	if c.AccessTokenAge <= 0 {
		return errors.New("ACCESS_TOKEN_AGE must be positive")
	}
	if c.RefreshTokenAge <= 0 {
		return errors.New("REFRESH_TOKEN_AGE must be positive")
	}
	if c.RateLimitMax <= 0 {
		return errors.New("RATE_LIMIT_MAX must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	if c.DBSchemaMode != "" && c.DBSchemaMode != SchemaModeSQL && c.DBSchemaMode != SchemaModeAuto {
		return fmt.Errorf("DB_SCHEMA_MODE must be %q or %q", SchemaModeSQL, SchemaModeAuto)
	}
	if c.TracingSamplerRatio < 0 || c.TracingSamplerRatio > 1 {
		return errors.New("TRACING_SAMPLER_RATIO must be between 0 and 1")
	}

	// Strict checks for production
	if c.IsProduction() {
		for name, key := range map[string]string{"ACCESS_TOKEN_KEY": c.AccessTokenKey, "REFRESH_TOKEN_KEY": c.RefreshTokenKey} {
			if key == defaultAccessTokenKey || key == defaultRefreshTokenKey {
				return fmt.Errorf("%s must be changed from the default value in production", name)
			}
			if len(key) < 32 {
				return fmt.Errorf("%s must be at least 32 characters in production", name)
			}
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else if len(c.AccessTokenKey) < 32 || len(c.RefreshTokenKey) < 32 {
		log.Println("WARNING: token keys are shorter than 32 characters. Consider using stronger keys for production.")
	}

	return nil
}
