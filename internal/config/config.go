// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	DB       DatabaseConfig
	Port     string
	GinMode  string
	LogLevel string
	LogJSON  bool

	JWTSecret   string
	CORSOrigins []string

	Import ImportConfig
	Report ReportConfig
}

// DatabaseConfig holds the postgres connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ImportConfig pins the spreadsheet template the import pipeline accepts.
type ImportConfig struct {
	SheetName  string
	HeaderRows int
}

// ReportConfig is handed to the export writers at construction.
type ReportConfig struct {
	HeaderImage   string
	Institution   string
	ReceiverName  string
	ReceiverTitle string
}

const devJWTSecret = "default_super_secret_key"

// Load reads configs/.env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	cfg := &Config{
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Port:      getEnv("PORT", "8080"),
		GinMode:   os.Getenv("GIN_MODE"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogJSON:   os.Getenv("LOG_FORMAT") == "json",
		JWTSecret: os.Getenv("JWT_SECRET"),
		CORSOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		Import: ImportConfig{
			SheetName:  getEnv("IMPORT_SHEET_NAME", "Recibos"),
			HeaderRows: 1,
		},
		Report: ReportConfig{
			HeaderImage:   os.Getenv("REPORT_HEADER_IMAGE"),
			Institution:   getEnv("REPORT_INSTITUTION", "Sistema de Gestión de Recibos de Pago"),
			ReceiverName:  getEnv("REPORT_RECEIVER_NAME", "GERENCIA DE ADMINISTRACIÓN"),
			ReceiverTitle: getEnv("REPORT_RECEIVER_TITLE", "GERENTE DE ADMINISTRACIÓN Y SERVICIOS"),
		},
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for origin := range strings.SplitSeq(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if rows := os.Getenv("IMPORT_HEADER_ROWS"); rows != "" {
		n, err := strconv.Atoi(rows)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("IMPORT_HEADER_ROWS must be a positive integer, got %q", rows)
		}
		cfg.Import.HeaderRows = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []string

	if c.JWTSecret == "" {
		if c.GinMode == "release" {
			errs = append(errs, "JWT_SECRET is required in release mode")
		} else {
			c.JWTSecret = devJWTSecret // development fallback only
		}
	}
	if c.Import.SheetName == "" {
		errs = append(errs, "IMPORT_SHEET_NAME must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// DSN builds the postgres connection URL with the credentials escaped.
func (c *Config) DSN() string {
	d := c.DB
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
