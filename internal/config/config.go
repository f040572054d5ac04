// Package config carga la configuración desde variables de entorno.
// cmd/api llama a godotenv antes de Load, así que un .env local también cuenta.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const devJWTSecret = "change-me-in-production"

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type HTTPConfig struct {
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	DSN          string // vacío = store in-memory
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	BcryptCost     int
	ProtectWrites  bool
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "animal-registry"),
			Environment: getEnv("APP_ENV", "development"),
		},
		HTTP: HTTPConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:       getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			DSN:          getEnv("DB_DSN", ""),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
			AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
			BcryptCost:     getEnvInt("BCRYPT_COST", 10),
			ProtectWrites:  getEnvBool("AUTH_PROTECT_WRITES", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.Auth.JWTSecret == devJWTSecret || len(c.Auth.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be set to at least 32 characters in production")
		}
		if c.Database.DSN == "" {
			return errors.New("DB_DSN is required in production")
		}
	}

	if err := validation.ValidateStruct(&c.Auth,
		validation.Field(&c.Auth.JWTSecret, validation.Required),
		validation.Field(&c.Auth.AccessTokenTTL, validation.Min(time.Minute)),
		validation.Field(&c.Auth.BcryptCost, validation.Min(4), validation.Max(31)),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.MaxOpenConns, validation.Min(1)),
		validation.Field(&c.Database.MaxIdleConns, validation.Min(0)),
	)
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
