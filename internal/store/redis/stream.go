// Package redis publishes lending lifecycle events to a Redis Stream so
// downstream consumers (notifications, analytics) can react without coupling
// to the service's database.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/service"
	"github.com/redis/go-redis/v9"
)

const defaultMaxLen = 100_000

// Stream is a Redis Streams backed publisher for lifecycle events.
type Stream struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *slog.Logger
}

func NewStream(url, stream string, logger *slog.Logger) (*Stream, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Stream{
		client: client,
		stream: stream,
		maxLen: defaultMaxLen,
		logger: logger.With("component", "event_stream"),
	}, nil
}

// Publish appends the event to the stream. The stream is capped approximately
// at maxLen entries; consumers that fall further behind lose history.
func (s *Stream) Publish(ctx context.Context, ev service.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"type":    ev.Type,
			"payload": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

// Client exposes the underlying connection for components that share it, such
// as the passport score cache.
func (s *Stream) Client() *redis.Client {
	return s.client
}

func (s *Stream) Close() error {
	return s.client.Close()
}
