package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Uploads     UploadsConfig
	Frontend    FrontendConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	SeedAdmin   SeedAdminConfig
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	// URL selects PostgreSQL when non-empty; otherwise the server falls
	// back to a local SQLite file at SQLitePath.
	URL            string
	SQLitePath     string
	MaxConnections int
}

func (c DatabaseConfig) UsePostgres() bool {
	return c.URL != ""
}

type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
}

type UploadsConfig struct {
	Dir      string
	MaxBytes int64
}

type FrontendConfig struct {
	Dir string
}

type RateLimitConfig struct {
	PublicPerMinute int
	LoginPerMinute  int
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type SeedAdminConfig struct {
	Name     string
	Email    string
	Password string
}

// fileConfig is the optional YAML config file shape. Environment variables
// always win over file values.
type fileConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`
	FrontendDir string `yaml:"frontend_dir"`
	UploadDir   string `yaml:"upload_dir"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	Environment string `yaml:"environment"`
}

// Load builds the configuration from the optional YAML file at path and the
// process environment. It is called once at startup; the resulting value is
// passed into the construction of every component that needs it.
func Load(path string) (Config, error) {
	var file fileConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", fallback(file.Host, "0.0.0.0")),
			Port: getEnvInt("PORT", fallbackInt(file.Port, 8080)),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", file.DatabaseURL),
			SQLitePath:     getEnv("SQLITE_PATH", fallback(file.SQLitePath, "internlink.db")),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
			JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		},
		Uploads: UploadsConfig{
			Dir:      getEnv("UPLOAD_DIR", fallback(file.UploadDir, "web/uploads")),
			MaxBytes: getEnvInt64("MAX_UPLOAD_BYTES", 16<<20),
		},
		Frontend: FrontendConfig{
			Dir: getEnv("FRONTEND_DIR", fallback(file.FrontendDir, "web")),
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: getEnvInt("RATE_LIMIT_PUBLIC", 120),
			LoginPerMinute:  getEnvInt("RATE_LIMIT_LOGIN", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", fallback(file.LogLevel, "info")),
			Format: getEnv("LOG_FORMAT", fallback(file.LogFormat, "json")),
		},
		SeedAdmin: SeedAdminConfig{
			Name:     getEnv("ADMIN_NAME", "Admin User"),
			Email:    getEnv("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Environment: getEnv("ENVIRONMENT", fallback(file.Environment, "development")),
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "")
	if origins == "" {
		cfg.CORS.AllowAllOrigins = cfg.Environment != "production"
	} else {
		cfg.CORS.AllowedOrigins = splitAndTrim(origins)
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

func fallbackInt(value, def int) int {
	if value != 0 {
		return value
	}
	return def
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
