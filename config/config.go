package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values. External collaborators (Redis,
// Mongo, Dialogflow, Gemini, Africa's Talking, Google STT) are optional; the
// assistant degrades to local implementations when they are not configured.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration. Empty REDIS_ADDR switches the session store and
	// reminder queue to in-process fallbacks.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Mongo configuration. Empty DATABASE_URL keeps bookings in memory.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Session lifecycle.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Google Gemini (open-domain fallback responses).
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Dialogflow (external NLU; the rule-based engine covers its absence).
	DialogflowProjectID    string `mapstructure:"DIALOGFLOW_PROJECT_ID"`
	DialogflowLanguageCode string `mapstructure:"DIALOGFLOW_LANGUAGE_CODE"`

	// Google service account used by speech-to-text and Dialogflow.
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Africa's Talking SMS gateway.
	ATUsername string `mapstructure:"AFRICASTALKING_USERNAME"`
	ATAPIKey   string `mapstructure:"AFRICASTALKING_API_KEY"`
	ATSenderID string `mapstructure:"AFRICASTALKING_SENDER_ID"`
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
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "rafiki")
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("DIALOGFLOW_LANGUAGE_CODE", "en")

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
