package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Tenant identity and widget defaults.
	TenantID        string `mapstructure:"TENANT_ID"`
	TenantName      string `mapstructure:"TENANT_NAME"`
	Language        string `mapstructure:"LANGUAGE"`
	PrimaryColor    string `mapstructure:"PRIMARY_COLOR"`
	GreetingMessage string `mapstructure:"GREETING_MESSAGE"`
	WidgetSecret    string `mapstructure:"WIDGET_SECRET"`

	// Dialogue engine selection: "local" runs the engine in-process,
	// "remote" talks to another reservo instance over HTTP. The contract
	// is identical either way.
	EngineMode string `mapstructure:"ENGINE_MODE"`
	APIBaseURL string `mapstructure:"API_BASE_URL"`

	// Session store.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// MongoDB.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Payments.
	StripeKey                 string `mapstructure:"STRIPE_KEY"`
	RequirePayment            bool   `mapstructure:"REQUIRE_PAYMENT"`
	PaymentReservationMinutes int    `mapstructure:"PAYMENT_RESERVATION_MINUTES"`
	Currency                  string `mapstructure:"CURRENCY"`
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
	viper.SetDefault("TENANT_ID", "demo")
	viper.SetDefault("TENANT_NAME", "Demo Tenant")
	viper.SetDefault("LANGUAGE", "es")
	viper.SetDefault("PRIMARY_COLOR", "#e91e63")
	viper.SetDefault("GREETING_MESSAGE", "")
	viper.SetDefault("WIDGET_SECRET", "")
	viper.SetDefault("ENGINE_MODE", "local")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("REQUIRE_PAYMENT", false)
	viper.SetDefault("PAYMENT_RESERVATION_MINUTES", 15)
	viper.SetDefault("CURRENCY", "clp")

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
