package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// FX settings
	BaseCurrency      string
	AllowedCurrencies []string
	PriceDecimals     int32
	ProviderURL       string
	RefreshCronSpec   string

	// Rate limiting for the conversion endpoints, in ulule/limiter format (e.g. "60-M")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("FX_BASE_CURRENCY", "GBP")
	viper.SetDefault("FX_ALLOWED_CURRENCIES", "GBP,EUR,CAD,AED,INR")
	viper.SetDefault("FX_PRICE_DECIMALS", 2)
	viper.SetDefault("FX_PROVIDER_URL", "https://api.frankfurter.app")
	viper.SetDefault("FX_REFRESH_CRON", "0 3 * * *")
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("FX_BASE_CURRENCY")))
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = "GBP"
		log.Printf("Warning: FX_BASE_CURRENCY not set. Defaulting to %s.\n", cfg.BaseCurrency)
	}

	for _, code := range strings.Split(viper.GetString("FX_ALLOWED_CURRENCIES"), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			cfg.AllowedCurrencies = append(cfg.AllowedCurrencies, code)
		}
	}

	cfg.PriceDecimals = viper.GetInt32("FX_PRICE_DECIMALS")
	if cfg.PriceDecimals < 0 {
		log.Printf("Warning: Invalid FX_PRICE_DECIMALS (%d). Defaulting to 2.\n", cfg.PriceDecimals)
		cfg.PriceDecimals = 2
	}

	cfg.ProviderURL = viper.GetString("FX_PROVIDER_URL")
	cfg.RefreshCronSpec = viper.GetString("FX_REFRESH_CRON")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
