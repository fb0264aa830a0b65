package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// SessionSecret signs the session cookie. Must be overridden when Env is "prod".
	SessionSecret string

	// SessionExpireHours is the session cookie lifetime in hours (default 24). Set via SESSION_EXPIRE_HOURS.
	SessionExpireHours int

	// Env is "dev" (default) or "prod".
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the server listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

const defaultSessionSecret = "supersecretkey"

func Load() Config {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "feedbackdb"),
		DBUser: getEnv("DB_USER", "feedbackuser"),
		DBPass: getEnv("DB_PASS", "feedbackpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		SessionSecret:      getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionExpireHours: getEnvInt("SESSION_EXPIRE_HOURS", 24),

		Env: getEnv("ENV", "dev"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Validate rejects configurations that must not reach production.
// Currently the only rule is that "prod" may not run with the default session secret.
func (c Config) Validate() error {
	if c.Env == "prod" && c.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set when ENV=prod")
	}
	return nil
}

// DSN returns the postgres connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass,
	)
}

// DatabaseURL returns the postgres URL form of the DSN, used by the migration runner.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
