package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Database Database `mapstructure:"database"`
	Pricing  Pricing  `mapstructure:"pricing"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Export   Export   `mapstructure:"export"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Pricing holds the configuration for external price lookups.
type Pricing struct {
	CryptoQuote          string  `mapstructure:"crypto_quote"`
	RegionalSuffix       string  `mapstructure:"regional_suffix"`
	LookupTimeoutSeconds int     `mapstructure:"lookup_timeout_seconds"`
	Workers              int     `mapstructure:"workers"`
	RateLimit            float64 `mapstructure:"rate_limit"`
	RateLimitBurst       int     `mapstructure:"rate_limit_burst"`
}

// Server holds the configuration for the web dashboard.
type Server struct {
	Port int `mapstructure:"port"`
}

// Export holds the configuration for CSV exports.
type Export struct {
	Dir string `mapstructure:"dir"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error: the defaults below describe a
// working local setup.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("database.dsn", "data/portfolio.db")
	viper.SetDefault("pricing.crypto_quote", "USDT")
	viper.SetDefault("pricing.regional_suffix", ".MC")
	viper.SetDefault("pricing.lookup_timeout_seconds", 10)
	viper.SetDefault("pricing.workers", 4)
	viper.SetDefault("pricing.rate_limit", 20) // requests per second
	viper.SetDefault("pricing.rate_limit_burst", 5)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("export.dir", "data")

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
