package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string        `validate:"oneof=development production test"`
	DBPath                string        `validate:"omitempty"`
	DBDriver              string        `validate:"required"`
	RedisAddr             string        `validate:"required,hostname_port"`
	CacheTTL              time.Duration `validate:"gt=0"`
	GRPCPort              int           `validate:"min=1,max=65535"`
	GRPCReflectionEnabled bool
	MetricsPort           int `validate:"min=0,max=65535"`

	SurveySource      string `validate:"required"`
	TransactionSource string `validate:"required"`
	TrustpilotSource  string `validate:"required"`
	TwitterSource     string `validate:"required"`

	SelectionConfigPath string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", ""),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:              getDuration("CACHE_TTL", 10*time.Minute),
		GRPCPort:              getInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		MetricsPort:           getInt("METRICS_PORT", 9090),

		SurveySource:      getEnv("SURVEY_SOURCE", "datasets/dataset_sentiment_final.csv"),
		TransactionSource: getEnv("TRANSACTION_SOURCE", "datasets/nouvelle_date.csv"),
		TrustpilotSource:  getEnv("TRUSTPILOT_SOURCE", "datasets/trustpilot_sentiment_final.csv"),
		TwitterSource:     getEnv("TWITTER_SOURCE", "datasets/twitter_sentiment_final.csv"),

		SelectionConfigPath: getEnv("SELECTION_CONFIG", ""),
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Sources maps each feedback source to its table handle.
func (c *Config) Sources() map[feedback.Source]string {
	return map[feedback.Source]string{
		feedback.SourceSurvey:      c.SurveySource,
		feedback.SourceTransaction: c.TransactionSource,
		feedback.SourceTrustpilot:  c.TrustpilotSource,
		feedback.SourceTwitter:     c.TwitterSource,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}
