// Package config gathers environment-driven settings into a single
// AppConfig, loaded once at startup the way the reference service does it.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds the audit-trail PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// KafkaConfig holds the score-event audit stream configuration.
type KafkaConfig struct {
	Brokers       []string
	ScoresTopic   string
	ConsumerGroup string
	BatchSize     int
	BatchTimeout  int // seconds
}

// AppConfig holds the full application configuration.
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	// Profile is "development" or "production". Only in development is
	// DELETE /leaderboard/clear registered.
	Profile string
}

// IsDevelopment reports whether the process is running in the development
// profile.
func (c *AppConfig) IsDevelopment() bool {
	return c.Profile == "development"
}

// NewAppConfig builds an AppConfig from the environment, loading a .env
// file if present.
func NewAppConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	return &AppConfig{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "127.0.0.1"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "leaderboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ScoresTopic:   getEnv("KAFKA_SCORES_TOPIC", "leaderboard-score-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "leaderboard-audit"),
			BatchSize:     getEnvAsInt("KAFKA_BATCH_SIZE", 200),
			BatchTimeout:  getEnvAsInt("KAFKA_BATCH_TIMEOUT", 5),
		},
		Profile: getEnv("APP_PROFILE", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
		log.Printf("warning: environment variable %s is not a valid integer, using default", key)
	}
	return defaultValue
}
