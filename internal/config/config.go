package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	DB     DBConfig
	Logger LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// DBConfig holds database connection values. Defaults are suitable only for
// local development.
type DBConfig struct {
	Host          string
	Port          string
	Name          string
	User          string
	Password      string
	MaxConns      int32
	MinConns      int32
	RunMigrations bool
	MigrationsDir string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	maxConns := getEnvAsInt("DB_MAX_CONNS", 10)
	minConns := getEnvAsInt("DB_MIN_CONNS", 2)
	if minConns > maxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", minConns, maxConns)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "user-service"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("PORT", "3000"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		DB: DBConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			Name:          getEnv("DB_NAME", "cicd_app"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "password"),
			MaxConns:      int32(maxConns),
			MinConns:      int32(minConns),
			RunMigrations: getEnvAsBool("RUN_MIGRATIONS", true),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Development reports whether verbose error details may be exposed.
func (a AppConfig) Development() bool {
	return a.Env == "development"
}

// DSN returns the connection string for the target database.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		d.Host, d.Port, d.Name, d.User, d.Password)
}

// AdminDSN returns a connection string against the maintenance database,
// used only to create the target database when it does not exist yet.
func (d DBConfig) AdminDSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=postgres user=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
