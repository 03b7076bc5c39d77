package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisWebhookDB       int    `mapstructure:"REDIS_WEBHOOK_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Stripe configuration.
	StripeKey           string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	CheckoutSuccessURL  string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL   string `mapstructure:"CHECKOUT_CANCEL_URL"`

	// Email provider configuration.
	EmailAPIKey   string `mapstructure:"EMAIL_API_KEY"`
	EmailEndpoint string `mapstructure:"EMAIL_ENDPOINT"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
	OperatorEmail string `mapstructure:"OPERATOR_EMAIL"`

	// Google Calendar configuration.
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleCredentialsJSON string `mapstructure:"GOOGLE_CREDENTIALS_JSON"`

	// Booking hold policy.
	HoldWindowHours    int    `mapstructure:"HOLD_WINDOW_HOURS"`
	ReminderLeadHours  int    `mapstructure:"REMINDER_LEAD_HOURS"`
	SweepSecret        string `mapstructure:"SWEEP_SECRET"`
	SweepIntervalMin   int    `mapstructure:"SWEEP_INTERVAL_MIN"`
	RateLimitWindowMin int    `mapstructure:"RATE_LIMIT_WINDOW_MIN"`
	RateLimitMax       int    `mapstructure:"RATE_LIMIT_MAX_ATTEMPTS"`
	VerificationTTLMin int    `mapstructure:"VERIFICATION_TTL_MIN"`
	RequireVerified    bool   `mapstructure:"REQUIRE_EMAIL_VERIFICATION"`
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
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "vibezone")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_WEBHOOK_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:3000/booking/success")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:3000/booking/cancelled")
	viper.SetDefault("EMAIL_ENDPOINT", "https://api.resend.com/emails")
	viper.SetDefault("EMAIL_FROM", "bookings@vibe-zone.com")
	viper.SetDefault("OPERATOR_EMAIL", "dj@vibe-zone.com")
	viper.SetDefault("HOLD_WINDOW_HOURS", 72)
	viper.SetDefault("REMINDER_LEAD_HOURS", 48)
	viper.SetDefault("SWEEP_INTERVAL_MIN", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW_MIN", 10)
	viper.SetDefault("RATE_LIMIT_MAX_ATTEMPTS", 3)
	viper.SetDefault("VERIFICATION_TTL_MIN", 10)
	viper.SetDefault("REQUIRE_EMAIL_VERIFICATION", false)

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
