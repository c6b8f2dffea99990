package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// JWT config. Access and refresh tokens are signed with distinct secrets.
	JWTIssuer                string
	JWTAccessSecret          string
	JWTRefreshSecret         string
	JWTAccessExpiryDuration  time.Duration
	JWTRefreshExpiryDuration time.Duration

	// Refresh token delivery and maintenance.
	RefreshTokenCookieName  string
	RefreshTokenCookiePath  string `mapstructure:"REFRESH_TOKEN_COOKIE_PATH"`
	RefreshTokenCleanupDays int

	// External OAuth providers.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
//
// JWT secrets deliberately have no default: the token service reads them at
// call time and errors when they are empty, so a misconfigured deployment
// fails on first use instead of signing with a silent fallback.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_ISSUER", "inboxd-backend")
	viper.SetDefault("JWT_ACCESS_SECRET", "")
	viper.SetDefault("JWT_REFRESH_SECRET", "")
	viper.SetDefault("JWT_ACCESS_EXPIRY_DURATION", "15m")
	viper.SetDefault("JWT_REFRESH_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("REFRESH_TOKEN_CLEANUP_DAYS", 30)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.JWTAccessSecret = viper.GetString("JWT_ACCESS_SECRET")
	if cfg.JWTAccessSecret == "" {
		log.Println("Warning: JWT_ACCESS_SECRET not set. Token issuance will fail until it is configured.")
	}
	cfg.JWTRefreshSecret = viper.GetString("JWT_REFRESH_SECRET")
	if cfg.JWTRefreshSecret == "" {
		log.Println("Warning: JWT_REFRESH_SECRET not set. Token issuance will fail until it is configured.")
	}

	accessExpiryStr := viper.GetString("JWT_ACCESS_EXPIRY_DURATION")
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		accessExpiry = 15 * time.Minute
		log.Printf("Warning: Invalid value for JWT_ACCESS_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", accessExpiryStr, accessExpiry)
	}
	cfg.JWTAccessExpiryDuration = accessExpiry

	refreshExpiryStr := viper.GetString("JWT_REFRESH_EXPIRY_DURATION")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_REFRESH_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry)
	}
	cfg.JWTRefreshExpiryDuration = refreshExpiry

	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.RefreshTokenCleanupDays = viper.GetInt("REFRESH_TOKEN_CLEANUP_DAYS")
	if cfg.RefreshTokenCleanupDays <= 0 {
		cfg.RefreshTokenCleanupDays = 30
		log.Printf("Warning: REFRESH_TOKEN_CLEANUP_DAYS must be positive. Defaulting to %d.\n", cfg.RefreshTokenCleanupDays)
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google OAuth will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google OAuth will not function.")
	}
	if cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_REDIRECT_URL not set. Google OAuth will not function.")
	}

	return cfg, nil
}
