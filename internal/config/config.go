package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Host string
	Port string

	OpenAIKey     string
	OpenAIBaseURL string
	ChatModel     string

	TranscriptionModel    string
	TranscriptionLanguage string
	MaxRetries            int
	RetryDelay            time.Duration

	DBDriver string
	DBDSN    string

	RabbitMQURL   string
	RabbitMQQueue string

	LogLevel  string
	LogFormat string
	UploadDir string
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Host:                  getEnv("HOST", "127.0.0.1"),
		Port:                  getEnv("PORT", "5002"),
		OpenAIKey:             os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:         os.Getenv("OPENAI_BASE_URL"),
		ChatModel:             getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		TranscriptionModel:    getEnv("TRANSCRIPTION_MODEL", "whisper-1"),
		TranscriptionLanguage: getEnv("TRANSCRIPTION_LANGUAGE", "en"),
		DBDriver:              os.Getenv("DB_DRIVER"),
		DBDSN:                 os.Getenv("DB_DSN"),
		RabbitMQURL:           os.Getenv("RABBITMQ_URL"),
		RabbitMQQueue:         getEnv("RABBITMQ_QUEUE", "interview_evaluations"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "text"),
		UploadDir:             getEnv("UPLOAD_DIR", os.TempDir()),
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Please set it as environment variable or in .env")
	}

	retries, err := strconv.Atoi(getEnv("TRANSCRIPTION_MAX_RETRIES", "3"))
	if err != nil || retries < 1 {
		return nil, fmt.Errorf("TRANSCRIPTION_MAX_RETRIES must be a positive integer")
	}
	cfg.MaxRetries = retries

	delay, err := time.ParseDuration(getEnv("TRANSCRIPTION_RETRY_DELAY", "1s"))
	if err != nil || delay < 0 {
		return nil, fmt.Errorf("TRANSCRIPTION_RETRY_DELAY must be a non-negative duration (e.g. 1s, 500ms)")
	}
	cfg.RetryDelay = delay

	switch cfg.DBDriver {
	case "":
	case "sqlite":
		if cfg.DBDSN == "" {
			cfg.DBDSN = "interview.db"
		}
	case "mysql":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=mysql")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s. Supported: sqlite, mysql", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
