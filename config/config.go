package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`

	// MongoDB holds the protected assets (GridFS).
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	AssetBucket       string `mapstructure:"ASSET_BUCKET"`
	CoreAssetKey      string `mapstructure:"CORE_ASSET_KEY"`
	CoreAssetFallback string `mapstructure:"CORE_ASSET_FALLBACK_KEY"`

	// Whop license provider.
	WhopAPIURL    string `mapstructure:"WHOP_API_URL"`
	WhopAPIKey    string `mapstructure:"WHOP_API_KEY"`
	WhopCompanyID string `mapstructure:"WHOP_COMPANY_ID"`
	WhopProductID string `mapstructure:"WHOP_PRODUCT_ID"`

	// Resend transactional email.
	ResendAPIURL string `mapstructure:"RESEND_API_URL"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "metastar")
	viper.SetDefault("ASSET_BUCKET", "assets")
	viper.SetDefault("CORE_ASSET_KEY", "v2/core.js")
	viper.SetDefault("CORE_ASSET_FALLBACK_KEY", "core.js")
	viper.SetDefault("WHOP_API_URL", "https://api.whop.com")
	viper.SetDefault("WHOP_PRODUCT_ID", "")
	viper.SetDefault("RESEND_API_URL", "https://api.resend.com")
	viper.SetDefault("EMAIL_FROM", "MetaStar Security <auth@metastar.site>")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
