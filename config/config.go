package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Remote booking API.
	BookingAPIBaseURL string        `mapstructure:"BOOKING_API_BASE_URL"`
	BookingAPIKey     string        `mapstructure:"BOOKING_API_KEY"`
	BookingAPITimeout time.Duration `mapstructure:"BOOKING_API_TIMEOUT"`

	// Redis configuration. Each flow keeps its snapshots in its own DB.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisReservationDB int    `mapstructure:"REDIS_RESERVATION_DB"`
	RedisRefundDB      int    `mapstructure:"REDIS_REFUND_DB"`
	RedisRescheduleDB  int    `mapstructure:"REDIS_RESCHEDULE_DB"`

	// Payment status polling.
	PaymentPollInterval    time.Duration `mapstructure:"PAYMENT_POLL_INTERVAL"`
	PaymentPollMaxAttempts int           `mapstructure:"PAYMENT_POLL_MAX_ATTEMPTS"`

	// How long flow snapshots survive between visits.
	SnapshotTTL time.Duration `mapstructure:"SNAPSHOT_TTL"`
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
	viper.SetDefault("BOOKING_API_BASE_URL", "http://localhost:9000/api/v1")
	viper.SetDefault("BOOKING_API_KEY", "")
	viper.SetDefault("BOOKING_API_TIMEOUT", 15*time.Second)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_RESERVATION_DB", 0)
	viper.SetDefault("REDIS_REFUND_DB", 1)
	viper.SetDefault("REDIS_RESCHEDULE_DB", 2)
	viper.SetDefault("PAYMENT_POLL_INTERVAL", 5*time.Second)
	viper.SetDefault("PAYMENT_POLL_MAX_ATTEMPTS", 60)
	viper.SetDefault("SNAPSHOT_TTL", 72*time.Hour)

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
