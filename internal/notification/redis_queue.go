package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const DefaultQueueKey = "clinic:notifications"

// RedisQueue is a Sink that pushes events onto a redis list. A separate
// notifier process drains the list with Consume.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &RedisQueue{client: client, key: key}
}

func Encode(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func Decode(raw []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("decode notification: %w", err)
	}
	if ev.ID == "" || ev.RecipientID == 0 {
		return Event{}, errors.New("decode notification: missing id or recipient")
	}
	return ev, nil
}

func (q *RedisQueue) Deliver(ctx context.Context, ev Event) error {
	payload, err := Encode(ev)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

// Consume pops events (oldest first) and delivers them to sink until ctx is
// done. Undeliverable events are logged and dropped.
func (q *RedisQueue) Consume(ctx context.Context, sink Sink, logger *zap.Logger) error {
	logger.Info("notification consumer started", zap.String("queue", q.key))

	for {
		res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				logger.Info("notification consumer stopped")
				return nil
			}
			return fmt.Errorf("pop notification: %w", err)
		}

		// res = [key, value]
		ev, err := Decode([]byte(res[1]))
		if err != nil {
			logger.Error("dropping malformed notification", zap.Error(err))
			continue
		}

		if err := sink.Deliver(ctx, ev); err != nil {
			logger.Error("notification delivery failed",
				zap.String("event_id", ev.ID),
				zap.Uint("recipient_id", ev.RecipientID),
				zap.Error(err),
			)
		}
	}
}

var _ Sink = (*RedisQueue)(nil)
