package notifier

import (
	"fmt"
	"os"
	"strings"
)

// Config carries environment-driven settings for the notification process.
type Config struct {
	KafkaBrokers string
	GroupID      string
	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	RedisAddr    string
}

// LoadConfig reads environment variables and applies defaults. KAFKA_BROKERS
// is required: a notification service with no event source has nothing to do.
func LoadConfig() (Config, error) {
	cfg := Config{
		KafkaBrokers: strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		GroupID:      envDefault("KAFKA_GROUP_ID", "notification-service"),
		SMTPAddr:     envDefault("SMTP_ADDR", "localhost:1025"),
		SMTPUsername: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     strings.TrimSpace(os.Getenv("MAIL_FROM")),
		RedisAddr:    strings.TrimSpace(os.Getenv("REDIS_ADDR")),
	}
	if cfg.KafkaBrokers == "" {
		return Config{}, fmt.Errorf("KAFKA_BROKERS is required")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
