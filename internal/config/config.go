package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTPConfig
	Auth     AuthConfig
	Postgres PostgresConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Addr             string
	AllowedOrigins   []string
	AllowCredentials bool
}

// AuthConfig carries the raw auth settings; values are validated when the
// auth service is constructed.
type AuthConfig struct {
	JWTSecret        string
	JWTAlgorithm     string
	AccessTTLMinutes string
	RefreshTTLDays   string
	AccessTokenType  string
	RefreshTokenType string
	CookieDomain     string
	CookiePath       string
	CookieSecure     string
	CookieSameSite   string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTP: HTTPConfig{
			Addr:             getenv("HTTP_ADDR", ":8080"),
			AllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			AllowCredentials: os.Getenv("CORS_ALLOW_CREDENTIALS") != "false",
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("SECRET_KEY"),
			JWTAlgorithm:     getenv("JWT_ALGORITHM", "HS256"),
			AccessTTLMinutes: getenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"),
			RefreshTTLDays:   getenv("REFRESH_TOKEN_EXPIRE_DAYS", "30"),
			AccessTokenType:  getenv("ACCESS_TOKEN_TYPE", "access"),
			RefreshTokenType: getenv("REFRESH_TOKEN_TYPE", "refresh"),
			CookieDomain:     os.Getenv("AUTH_COOKIE_DOMAIN"),
			CookiePath:       getenv("AUTH_COOKIE_PATH", "/"),
			CookieSecure:     os.Getenv("AUTH_COOKIE_SECURE"),
			CookieSameSite:   os.Getenv("AUTH_COOKIE_SAMESITE"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
