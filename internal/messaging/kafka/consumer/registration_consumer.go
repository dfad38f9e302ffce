package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"customer-registry/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	welcomeQueueKey     = "notifications:welcome"
	welcomeDedupePrefix = "notifications:welcome:sent:"
	welcomeDedupeTTL    = 7 * 24 * time.Hour
)

// ConsumeCustomerLifecycle membaca event customer_registered dan memasukkan
// welcome notification ke queue redis. Duplicate delivery (at-least-once)
// diamankan dengan SETNX dedupe key per customer.
func ConsumeCustomerLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.customer_lifecycle")
	log.Info("customer lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("customer lifecycle consumer stopped")
				return
			}
			log.Error("fetch customer lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.CustomerRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode customer_registered event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		dedupeKey := welcomeDedupePrefix + event.CustomerID
		isNew, err := rdb.SetNX(ctx, dedupeKey, "1", welcomeDedupeTTL).Result()
		if err != nil {
			log.Error("welcome dedupe check failed",
				zap.String("customer_id", event.CustomerID),
				zap.Error(err),
			)
			continue
		}

		if !isNew {
			log.Warn("welcome notification already queued for customer, skipping",
				zap.String("customer_id", event.CustomerID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notification, err := json.Marshal(map[string]any{
			"type":        "welcome_email",
			"customer_id": event.CustomerID,
			"email":       event.Email,
			"queued_at":   time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			log.Error("encode welcome notification failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.LPush(ctx, welcomeQueueKey, notification).Err(); err != nil {
			// Lepas dedupe supaya event bisa diproses ulang
			_ = rdb.Del(ctx, dedupeKey).Err()
			log.Error("queue welcome notification failed",
				zap.String("customer_id", event.CustomerID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit customer lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("welcome notification queued from customer_registered event",
			zap.String("customer_id", event.CustomerID),
			zap.String("email", event.Email),
		)
	}
}

func NewCustomerLifecycleReader(broker, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          events.CustomerRegisteredTopic,
		GroupID:        groupID,
		CommitInterval: time.Second,
		StartOffset:    kafkago.FirstOffset,
	})
}

func WelcomeQueueKey() string {
	return welcomeQueueKey
}

func WelcomeDedupeKey(customerID string) string {
	return fmt.Sprintf("%s%s", welcomeDedupePrefix, customerID)
}
