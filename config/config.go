package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/index"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=marketpulse
//	POSTGRES_SSLMODE=disable
//	POSTGRES_AUTO_MIGRATE=false
//	INPUT_FILE=./data/input/market_data.ssv
//	INDEX_WEIGHTS_TABLE=market
//	INDEX_WEIGHTS_FILE=./config/weights.yaml
//	API_RATE_LIMIT=60
//	API_REQUEST_TIMEOUT=10s
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Input    InputConfig    // Market data input settings
	Index    IndexConfig    // Weighted index settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
//
// RateLimit is requests per minute per client IP (0 disables limiting);
// RequestTimeout bounds every API request.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RequestTimeout time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
// URL is the computed DSN used by database/sql to connect.
// AutoMigrate applies the embedded schema migrations on connect.
type PostgresConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	URL         string
	AutoMigrate bool
}

// InputConfig points at the default market data file for report and ingest modes.
type InputConfig struct {
	File string
}

// IndexConfig selects the weight table used by the index calculator.
//
// Fields:
//   - Table: name of the weight table (see index.NamedTables).
//   - WeightsFile: optional YAML file with extra named tables; its tables
//     take precedence over the built-in ones of the same name.
type IndexConfig struct {
	Table       string
	WeightsFile string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("API_RATE_LIMIT", 60)
	viper.SetDefault("API_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "marketpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_AUTO_MIGRATE", false)

	viper.SetDefault("INPUT_FILE", "./data/input/market_data.ssv")
	viper.SetDefault("INDEX_WEIGHTS_TABLE", index.DefaultTable)
	viper.SetDefault("INDEX_WEIGHTS_FILE", "")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RateLimit:      viper.GetInt("API_RATE_LIMIT"),
			RequestTimeout: viper.GetDuration("API_REQUEST_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:        viper.GetString("POSTGRES_HOST"),
			Port:        viper.GetInt("POSTGRES_PORT"),
			User:        viper.GetString("POSTGRES_USER"),
			Password:    viper.GetString("POSTGRES_PASSWORD"),
			DBName:      viper.GetString("POSTGRES_DB"),
			SSLMode:     viper.GetString("POSTGRES_SSLMODE"),
			AutoMigrate: viper.GetBool("POSTGRES_AUTO_MIGRATE"),
		},
		Input: InputConfig{
			File: viper.GetString("INPUT_FILE"),
		},
		Index: IndexConfig{
			Table:       viper.GetString("INDEX_WEIGHTS_TABLE"),
			WeightsFile: viper.GetString("INDEX_WEIGHTS_FILE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Server.RateLimit < 0 {
		missing = append(missing, "API_RATE_LIMIT (must be >= 0)")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Index.Table == "" {
		missing = append(missing, "INDEX_WEIGHTS_TABLE")
	}

	if len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}

// weightsFile is the YAML layout accepted by INDEX_WEIGHTS_FILE:
//
//	tables:
//	  market:
//	    ABC: 0.1
//	    MEGA: 0.3
//	  test:
//	    ABC: 0.1
//	    RST: 0.3
type weightsFile struct {
	Tables map[string]map[string]float64 `yaml:"tables"`
}

// ResolveWeights returns the weight table named by cfg.Index.Table.
//
// Lookup order: tables from cfg.Index.WeightsFile (if set), then index.NamedTables.
// Errors:
//   - the weights file cannot be read or parsed
//   - a table in the file is empty
//   - the requested table does not exist
func ResolveWeights(cfg Config) (models.WeightTable, error) {
	tables := make(map[string]models.WeightTable, len(index.NamedTables))
	for name, t := range index.NamedTables {
		tables[name] = t
	}

	if cfg.Index.WeightsFile != "" {
		raw, err := os.ReadFile(cfg.Index.WeightsFile)
		if err != nil {
			return nil, fmt.Errorf("read weights file: %w", err)
		}
		var wf weightsFile
		if err := yaml.Unmarshal(raw, &wf); err != nil {
			return nil, fmt.Errorf("parse weights file %s: %w", cfg.Index.WeightsFile, err)
		}
		for name, t := range wf.Tables {
			if len(t) == 0 {
				return nil, fmt.Errorf("weights file %s: table %q is empty", cfg.Index.WeightsFile, name)
			}
			tables[name] = models.WeightTable(t)
		}
	}

	t, ok := tables[cfg.Index.Table]
	if !ok {
		return nil, fmt.Errorf("unknown weight table %q", cfg.Index.Table)
	}
	return t.Clone(), nil
}
