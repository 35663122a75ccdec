package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries everything read from the environment. godotenv is loaded by
// main before this runs, so plain os.Getenv is enough here.
type Config struct {
	Port           string
	AllowedOrigins []string
	RetentionDays  int
	SweepInterval  time.Duration
	DBDriver       string
	DBDSN          string
	DoctorUsername string
	DoctorPassword string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "6767"),
		RetentionDays:  getEnvInt("RETENTION_DAYS", 1),
		SweepInterval:  time.Duration(getEnvInt("SWEEP_INTERVAL_HOURS", 24)) * time.Hour,
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "katta_helse.db"),
		DoctorUsername: os.Getenv("DOCTOR_USERNAME"),
		DoctorPassword: os.Getenv("DOCTOR_PASSWORD"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:8001")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg
}

// InitDB opens the configured database. MySQL in production, sqlite as the
// zero-setup default for local development.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
