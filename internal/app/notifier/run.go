// Package notifier boots the notification consumer process.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	notificationskafka "github.com/IT21177828/CTSE-Project/internal/domains/notifications/adapters/kafka"
	notificationsredis "github.com/IT21177828/CTSE-Project/internal/domains/notifications/adapters/redis"
	notificationssmtp "github.com/IT21177828/CTSE-Project/internal/domains/notifications/adapters/smtp"
	notificationsapp "github.com/IT21177828/CTSE-Project/internal/domains/notifications/application"
	notificationsports "github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
	platformkafka "github.com/IT21177828/CTSE-Project/internal/platform/kafka"
	platformobservability "github.com/IT21177828/CTSE-Project/internal/platform/observability"
)

// Run consumes OrderPlaced events until ctx is cancelled, sending a
// confirmation mail per event.
func Run(ctx context.Context) error {
	const serviceName = "notification-service"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	mailer, err := notificationssmtp.NewMailer(cfg.SMTPAddr, cfg.SMTPUsername, cfg.SMTPPassword)
	if err != nil {
		return fmt.Errorf("failed to build mailer: %w", err)
	}
	service := notificationsapp.NewService(mailer, cfg.MailFrom, logger)

	dlq, cleanupDLQ := buildDeadLetterSink(cfg, logger)
	defer cleanupDLQ()

	group, err := platformkafka.NewConsumerGroup(platformkafka.Config{
		Brokers: platformkafka.ParseBrokers(cfg.KafkaBrokers),
		Topic:   platformkafka.TopicOrderPlaced,
		GroupID: cfg.GroupID,
	})
	if err != nil {
		return fmt.Errorf("failed to join consumer group: %w", err)
	}
	defer group.Close()

	go func() {
		for err := range group.Errors() {
			logger.ErrorContext(ctx, "consumer group error", slog.String("error", err.Error()))
		}
	}()

	consumer := notificationskafka.NewConsumer(service, dlq, logger)
	logger.Info("notification service consuming",
		slog.String("topic", platformkafka.TopicOrderPlaced),
		slog.String("group", cfg.GroupID))
	return notificationskafka.Run(ctx, group, []string{platformkafka.TopicOrderPlaced}, consumer, logger)
}

func buildDeadLetterSink(cfg Config, logger *slog.Logger) (notificationsports.DeadLetterSink, func()) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, poison messages will be dropped after logging")
		return nil, func() {}
	}
	client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	logger.Info("dead letter sink configured with redis", slog.String("key", notificationsredis.DefaultKey))
	return notificationsredis.NewDeadLetterSink(client, ""), func() { _ = client.Close() }
}
