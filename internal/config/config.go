package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the chat relay service.
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	Database DatabaseConfig
	RedisURL string
	Session  SessionConfig
	Chatbot  ChatbotConfig
	Kafka    KafkaConfig
}

type DatabaseConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.Username, d.Password, d.Name, d.Port, d.SSLMode)
}

type SessionConfig struct {
	// Lifetime is the fixed, absolute session lifetime. Sessions are never
	// refreshed; expiry is always Lifetime after creation.
	Lifetime time.Duration
}

type ChatbotConfig struct {
	URL     string
	Timeout time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real environments inject variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Database: DatabaseConfig{
			Username: getEnv("DB_USERNAME", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "chat_relay"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		Session: SessionConfig{
			Lifetime: parseDuration(getEnv("SESSION_LIFETIME", "72h")),
		},
		Chatbot: ChatbotConfig{
			URL:     os.Getenv("CHATBOT_URL"),
			Timeout: parseDuration(getEnv("CHATBOT_TIMEOUT", "30s")),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "chat-relay.events"),
		},
	}

	if cfg.Session.Lifetime <= 0 {
		return nil, fmt.Errorf("invalid SESSION_LIFETIME")
	}
	if cfg.Chatbot.Timeout <= 0 {
		return nil, fmt.Errorf("invalid CHATBOT_TIMEOUT")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
