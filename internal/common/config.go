package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig
	Advisor AdvisorConfig
	Extract ExtractConfig
	Report  ReportConfig
}

// CatalogConfig holds reference-catalog configuration
type CatalogConfig struct {
	Path string
}

// AdvisorConfig holds thresholds for the heuristic advisor.
// The similarity cutoff and anomaly handling are business heuristics,
// so they are tunable rather than baked in.
type AdvisorConfig struct {
	SimilarityCutoff float64
}

// ExtractConfig holds thresholds for the document extractor
type ExtractConfig struct {
	MinIDLength int
}

// ReportConfig holds report output configuration
type ReportConfig struct {
	OutputDir   string
	ArchivePath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/products.csv"),
		},
		Advisor: AdvisorConfig{
			SimilarityCutoff: getEnvAsFloat64("SIMILARITY_CUTOFF", 0.5),
		},
		Extract: ExtractConfig{
			MinIDLength: getEnvAsInt("MIN_ID_LENGTH", 3),
		},
		Report: ReportConfig{
			OutputDir:   getEnv("REPORT_DIR", "./reports"),
			ArchivePath: getEnv("ARCHIVE_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Advisor.SimilarityCutoff < 0 || c.Advisor.SimilarityCutoff > 1 {
		return NewAppError("CONFIG_ERROR", "SIMILARITY_CUTOFF must be in [0,1]", ErrInvalidInput)
	}
	if c.Extract.MinIDLength < 1 {
		return NewAppError("CONFIG_ERROR", "MIN_ID_LENGTH must be >= 1", ErrInvalidInput)
	}
	return nil
}
