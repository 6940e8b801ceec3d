package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/internal/model"
)

// Producer appends workspace events to a Redis stream.
type Producer interface {
	Publish(ctx context.Context, event model.WorkspaceEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, event model.WorkspaceEvent) error {
	values, err := eventValues(ctx, event)
	if err != nil {
		return err
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.DebugContext(ctx, "published workspace event",
		"event_type", event.Type,
		"workspace_id", event.WorkspaceID,
	)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func eventValues(ctx context.Context, event model.WorkspaceEvent) (map[string]any, error) {
	values := map[string]any{
		"event_type":   string(event.Type),
		"workspace_id": event.WorkspaceID,
		"actor_id":     event.ActorID,
		"attempt":      1,
	}
	if event.SubjectUserID != nil {
		values["subject_user_id"] = *event.SubjectUserID
	}
	if len(event.Metadata) > 0 {
		raw, err := json.Marshal(event.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding event metadata: %w", err)
		}
		values["metadata"] = string(raw)
	}
	if traceID := logger.TraceID(ctx); traceID != "" {
		values["trace_id"] = traceID
	}
	return values, nil
}
