package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// Bank statement matching.
	MatchDayWindow     int
	MatchMaxCombine    int
	MatchMaxCandidates int

	// ACH origination identity. These come from the farm's bank enrollment
	// paperwork and are stamped into every generated NACHA file.
	ACHImmediateDestination string
	ACHImmediateOrigin      string
	ACHDestinationName      string
	ACHOriginName           string
	ACHCompanyName          string
	ACHCompanyID            string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "farmbooks")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MATCH_DAY_WINDOW", 5)
	viper.SetDefault("MATCH_MAX_COMBINE", 8)
	viper.SetDefault("MATCH_MAX_CANDIDATES", 24)
	viper.SetDefault("ACH_IMMEDIATE_DESTINATION", "")
	viper.SetDefault("ACH_IMMEDIATE_ORIGIN", "")
	viper.SetDefault("ACH_DESTINATION_NAME", "")
	viper.SetDefault("ACH_ORIGIN_NAME", "")
	viper.SetDefault("ACH_COMPANY_NAME", "")
	viper.SetDefault("ACH_COMPANY_ID", "")

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

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.MatchDayWindow = viper.GetInt("MATCH_DAY_WINDOW")
	cfg.MatchMaxCombine = viper.GetInt("MATCH_MAX_COMBINE")
	cfg.MatchMaxCandidates = viper.GetInt("MATCH_MAX_CANDIDATES")

	cfg.ACHImmediateDestination = viper.GetString("ACH_IMMEDIATE_DESTINATION")
	cfg.ACHImmediateOrigin = viper.GetString("ACH_IMMEDIATE_ORIGIN")
	cfg.ACHDestinationName = viper.GetString("ACH_DESTINATION_NAME")
	cfg.ACHOriginName = viper.GetString("ACH_ORIGIN_NAME")
	cfg.ACHCompanyName = viper.GetString("ACH_COMPANY_NAME")
	cfg.ACHCompanyID = viper.GetString("ACH_COMPANY_ID")
	if cfg.ACHImmediateOrigin == "" || cfg.ACHImmediateDestination == "" {
		log.Println("Warning: ACH origin settings not set. ACH batch generation will be rejected.")
	}

	return cfg, nil
}
