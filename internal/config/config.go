package config

import (
	"os"
	"strconv"

	"ixscreen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Data      DataConfig
	Screening ScreeningConfig
}

// DatabaseConfig holds database connection settings. An empty URL
// disables persistence; the pipeline itself never requires it.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	APIPort string
	UIPort  string
	GinMode string
}

// DataConfig holds data source and output paths
type DataConfig struct {
	File           string // xlsx or csv design matrix + response
	ResponseColumn string // header name; empty means last column
	ChartFile      string
	ReportFile     string
}

// ScreeningConfig holds the pipeline parameters
type ScreeningConfig struct {
	Heredity string
	R1       int
	R2       int
	NSIS     int // <= 0 selects the n/log(n) default
	Sigma    *float64
	Pi1      float64
	Pi2      float64
	Pi3      float64
	Lambda   float64
	Q        float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			APIPort: getEnv("API_PORT", "8080"),
			UIPort:  getEnv("UI_PORT", "8081"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Data: DataConfig{
			File:           os.Getenv("IXS_DATA_FILE"),
			ResponseColumn: os.Getenv("IXS_RESPONSE_COLUMN"),
			ChartFile:      getEnv("IXS_CHART_FILE", "ranking.xlsx"),
			ReportFile:     getEnv("IXS_REPORT_FILE", "report.md"),
		},
		Screening: ScreeningConfig{
			Heredity: getEnv("IXS_HEREDITY", "strong"),
			R1:       getEnvInt("IXS_R1", 10),
			R2:       getEnvInt("IXS_R2", 10),
			NSIS:     getEnvInt("IXS_NSIS", 0),
			Pi1:      getEnvFloat("IXS_PI1", 0.5),
			Pi2:      getEnvFloat("IXS_PI2", 0.5),
			Pi3:      getEnvFloat("IXS_PI3", 0.5),
			Lambda:   getEnvFloat("IXS_LAMBDA", 1.0),
			Q:        getEnvFloat("IXS_Q", 5),
		},
	}

	if raw := os.Getenv("IXS_SIGMA"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("IXS_SIGMA must be numeric")
		}
		cfg.Screening.Sigma = &v
	}

	if cfg.Screening.R1 < 1 {
		return nil, errors.ConfigInvalid("IXS_R1 must be >= 1")
	}
	if cfg.Screening.R2 < 0 {
		return nil, errors.ConfigInvalid("IXS_R2 must be >= 0")
	}

	return cfg, nil
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
