// Package config loads runtime settings from an optional .env file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gorm.io/gorm/logger"
	"io/fs"
	"os"
	"strings"
	"time"
)

// Config holds every setting the program reads at start-up.
type Config struct {
	Env          string        // "dev" or "prod"; selects the log encoder
	DBPath       string        // SQLite file holding the snapshots
	LogPath      string        // where log lines go; kept off the terminal
	LogLevel     string        // zap level name
	GormLogLevel string        // silent, error, warn or info
	PaymentDelay time.Duration // simulated processing time per payment
	ExportPath   string        // default spreadsheet destination
}

// Load parses args (without the program name). The .env file named by
// --env-file is optional; a missing file is not an error.
func Load(args []string) (Config, error) {
	flags := pflag.NewFlagSet("hotel", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "optional dotenv file")
	db := flags.String("db", "", "SQLite database file (HOTEL_DB_PATH)")
	logPath := flags.String("log", "", "log file (HOTEL_LOG_PATH)")
	logLevel := flags.String("log-level", "", "log level (HOTEL_LOG_LEVEL)")
	delay := flags.Duration("payment-delay", -1, "simulated payment delay (HOTEL_PAYMENT_DELAY)")
	export := flags.String("export", "", "spreadsheet export path (HOTEL_EXPORT_PATH)")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadDotenv(*envFile); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:          getenv("APP_ENV", "prod"),
		DBPath:       getenv("HOTEL_DB_PATH", "hotel.db"),
		LogPath:      getenv("HOTEL_LOG_PATH", "hotel.log"),
		LogLevel:     getenv("HOTEL_LOG_LEVEL", "info"),
		GormLogLevel: getenv("HOTEL_GORM_LOG_LEVEL", "silent"),
		ExportPath:   getenv("HOTEL_EXPORT_PATH", "reservations.xlsx"),
	}

	d, err := time.ParseDuration(getenv("HOTEL_PAYMENT_DELAY", "1500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid HOTEL_PAYMENT_DELAY: %w", err)
	}
	cfg.PaymentDelay = d

	if *db != "" {
		cfg.DBPath = *db
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *delay >= 0 {
		cfg.PaymentDelay = *delay
	}
	if *export != "" {
		cfg.ExportPath = *export
	}

	if _, err := cfg.GormLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GormLevel maps GormLogLevel onto gorm's logger levels.
func (c Config) GormLevel() (logger.LogLevel, error) {
	switch strings.ToLower(c.GormLogLevel) {
	case "silent", "":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	}
	return logger.Silent, fmt.Errorf("invalid HOTEL_GORM_LOG_LEVEL %q", c.GormLogLevel)
}

// loadDotenv never overrides variables already set in the environment.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
