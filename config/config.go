package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisMemoryDB int    `mapstructure:"REDIS_MEMORY_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling rules.
	MaxSameSubService      int `mapstructure:"MAX_SAME_SUB_SERVICE"`
	MaxTotalCapacity       int `mapstructure:"MAX_TOTAL_CAPACITY"`
	DefaultDurationMinutes int `mapstructure:"DEFAULT_DURATION_MINUTES"`

	// AI receptionist.
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string `mapstructure:"OPENAI_MODEL"`
	AITimeoutSecs   int    `mapstructure:"AI_TIMEOUT_SECS"`
	MemoryTTLMins   int    `mapstructure:"AI_MEMORY_TTL_MINS"`
	ReceptionistBiz string `mapstructure:"RECEPTIONIST_BUSINESS_NAME"`

	// Stripe.
	StripeKey           string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY"`
	FrontendSuccessURL  string `mapstructure:"FRONTEND_SUCCESS_URL"`
	FrontendCancelURL   string `mapstructure:"FRONTEND_CANCEL_URL"`

	// Owner notifications.
	OwnerAlertWebhookURL string `mapstructure:"OWNER_ALERT_WEBHOOK_URL"`
	ReminderLeadHours    int    `mapstructure:"REMINDER_LEAD_HOURS"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "belissimo")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_MEMORY_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("MAX_SAME_SUB_SERVICE", 1)
	viper.SetDefault("MAX_TOTAL_CAPACITY", 3)
	viper.SetDefault("DEFAULT_DURATION_MINUTES", 120)
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("AI_TIMEOUT_SECS", 20)
	viper.SetDefault("AI_MEMORY_TTL_MINS", 30)
	viper.SetDefault("RECEPTIONIST_BUSINESS_NAME", "Bellissimo Hair Studio")
	viper.SetDefault("PAYMENT_CURRENCY", "try")
	viper.SetDefault("FRONTEND_SUCCESS_URL", "http://localhost:3000/booking/success")
	viper.SetDefault("FRONTEND_CANCEL_URL", "http://localhost:3000/booking/cancelled")
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)

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
