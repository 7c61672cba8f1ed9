package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the tunables of the attendance event engine.
type AttendanceConfig struct {
	// Timezone is the fixed civil timezone every attendance decision
	// is made in, regardless of the server timezone.
	Timezone string

	// PermissionThresholdMinutes: an unattended OUT more than this many
	// minutes before the scheduled end of the first segment is read as
	// an early departure rather than a break start.
	PermissionThresholdMinutes int

	// OpenShiftLookbackDays bounds how far back the engine looks for a
	// prior day left without checkout.
	OpenShiftLookbackDays int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:     getEnv("JWT_SECRET_KEY", ""),
		Expiration: getEnv("JWT_EXPIRATION_TIME", "1h"),
	}

	// Attendance engine configuration
	threshold, err := strconv.Atoi(getEnv("ATTENDANCE_PERMISSION_THRESHOLD_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_PERMISSION_THRESHOLD_MINUTES: %w", err)
	}
	lookback, err := strconv.Atoi(getEnv("ATTENDANCE_OPEN_SHIFT_LOOKBACK_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_OPEN_SHIFT_LOOKBACK_DAYS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:                   getEnv("ATTENDANCE_TIMEZONE", "America/Lima"),
		PermissionThresholdMinutes: threshold,
		OpenShiftLookbackDays:      lookback,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.PermissionThresholdMinutes <= 0 {
		return fmt.Errorf("ATTENDANCE_PERMISSION_THRESHOLD_MINUTES must be positive")
	}
	if c.Attendance.OpenShiftLookbackDays <= 0 {
		return fmt.Errorf("ATTENDANCE_OPEN_SHIFT_LOOKBACK_DAYS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
