// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Reorder ReorderConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type AppConfig struct {
	UploadDir string
	OutputDir string
}

// ReorderConfig holds the run-level defaults used when the caller does not
// supply explicit parameters (CLI flags or form fields).
type ReorderConfig struct {
	LeadTimeDays      int
	CoverageDays      int
	SafetyDays        int
	DefaultPeriodDays int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("APP_UPLOAD_DIR", "./data/uploads")
		viper.SetDefault("APP_OUTPUT_DIR", "./data/output")
		viper.SetDefault("REORDER_LEAD_TIME_DAYS", 10)
		viper.SetDefault("REORDER_COVERAGE_DAYS", 45)
		viper.SetDefault("REORDER_SAFETY_DAYS", 15)
		viper.SetDefault("REORDER_DEFAULT_PERIOD_DAYS", 30)

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure upload and output directories exist
		ensureDir(viper.GetString("APP_UPLOAD_DIR"))
		ensureDir(viper.GetString("APP_OUTPUT_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			App: AppConfig{
				UploadDir: viper.GetString("APP_UPLOAD_DIR"),
				OutputDir: viper.GetString("APP_OUTPUT_DIR"),
			},
			Reorder: ReorderConfig{
				LeadTimeDays:      viper.GetInt("REORDER_LEAD_TIME_DAYS"),
				CoverageDays:      viper.GetInt("REORDER_COVERAGE_DAYS"),
				SafetyDays:        viper.GetInt("REORDER_SAFETY_DAYS"),
				DefaultPeriodDays: viper.GetInt("REORDER_DEFAULT_PERIOD_DAYS"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
