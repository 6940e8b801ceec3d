package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/internal/model"
)

type ConsumerConfig struct {
	Stream       string        // Redis stream name
	Group        string        // Redis consumer group name
	Consumer     string        // Redis consumer name
	DLQStream    string        // Dead letter queue stream for failed messages
	BatchSize    int64         // Number of messages to process per batch
	Block        time.Duration // How long to block/poll for new messages
	MaxAttempts  int           // Maximum retry attempts before moving to DLQ
	RequeueDelay time.Duration // Delay before retrying failed messages
}

type Message struct {
	ID            string
	EventType     model.WorkspaceEventType
	WorkspaceID   int64
	ActorID       int64
	SubjectUserID *int64
	Metadata      string
	Attempt       int
	TraceID       string
	Raw           redis.XMessage
}

type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	consumer := &RedisConsumer{
		client: client,
		cfg:    cfg,
	}

	if err := consumer.ensureGroup(ctx); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *RedisConsumer) ensureGroup(ctx context.Context) error {
	// Start from "0" so a recreated group still sees what is already in the stream.
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "agile_task.queue.consumer",
	})

	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		// ">" reads only messages never delivered to this group.
		// Unacked ones are picked up by the reclaimer.
		Streams: []string{c.cfg.Stream, ">"},
		Count:   c.cfg.BatchSize,
		Block:   c.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			parsed, parseErr := ParseMessage(msg)
			if parseErr != nil {
				slog.ErrorContext(ctx, "failed to parse message",
					"error", parseErr,
					"raw_message_id", msg.ID,
					"stream", c.cfg.Stream)
				_ = c.Ack(ctx, Message{ID: msg.ID, Raw: msg})
				continue
			}
			messages = append(messages, parsed)
		}
	}

	if len(messages) > 0 {
		slog.DebugContext(ctx, "read messages from stream",
			"count", len(messages),
			"stream", c.cfg.Stream,
			"consumer", c.cfg.Consumer)
	}

	return messages, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}

	slog.DebugContext(ctx, "message acknowledged", "stream", c.cfg.Stream)
	return nil
}

// Requeue appends a copy of msg with the attempt counter bumped, then
// acks the original. If the append fails the original stays pending for
// the reclaimer.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, errMsg string) error {
	values := messageValues(msg, msg.Attempt+1)
	if errMsg != "" {
		values["last_error"] = errMsg
	}

	if c.cfg.RequeueDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.RequeueDelay):
		}
	}

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.Stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd requeue: %w", err)
	}

	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking requeued message: %w", err)
	}

	slog.InfoContext(ctx, "message requeued for retry",
		"next_attempt", msg.Attempt+1,
		"reason", errMsg)
	return nil
}

// SendDLQ copies msg to the dead letter stream, then acks the original.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, errMsg string) error {
	values := messageValues(msg, msg.Attempt)
	values["error"] = errMsg
	values["original_id"] = msg.ID

	if err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.DLQStream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd dlq (stream=%s): %w", c.cfg.DLQStream, err)
	}

	if err := c.Ack(ctx, msg); err != nil {
		return fmt.Errorf("acking dead-lettered message: %w", err)
	}

	slog.ErrorContext(ctx, "message sent to DLQ",
		"final_error", errMsg,
		"dlq_stream", c.cfg.DLQStream)
	return nil
}

func ParseMessage(msg redis.XMessage) (Message, error) {
	eventType, err := parseString(msg.Values, "event_type")
	if err != nil {
		return Message{}, err
	}
	if !model.WorkspaceEventType(eventType).IsValid() {
		return Message{}, fmt.Errorf("unknown event_type %q", eventType)
	}

	workspaceID, err := parseInt64(msg.Values, "workspace_id")
	if err != nil {
		return Message{}, err
	}
	actorID, err := parseInt64(msg.Values, "actor_id")
	if err != nil {
		return Message{}, err
	}
	subjectUserID, err := parseOptionalInt64(msg.Values, "subject_user_id")
	if err != nil {
		return Message{}, err
	}

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return Message{}, err
	}
	if attempt == 0 {
		attempt = 1
	}

	return Message{
		ID:            msg.ID,
		EventType:     model.WorkspaceEventType(eventType),
		WorkspaceID:   workspaceID,
		ActorID:       actorID,
		SubjectUserID: subjectUserID,
		Metadata:      parseOptionalString(msg.Values, "metadata"),
		Attempt:       attempt,
		TraceID:       parseOptionalString(msg.Values, "trace_id"),
		Raw:           msg,
	}, nil
}

func parseInt64(values map[string]any, key string) (int64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalInt64(values map[string]any, key string) (*int64, error) {
	raw, ok := values[key]
	if !ok {
		return nil, nil
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &num, nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	num, err := strconv.Atoi(fmt.Sprint(raw))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseOptionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}

func messageValues(msg Message, attempt int) map[string]any {
	values := map[string]any{
		"event_type":   string(msg.EventType),
		"workspace_id": msg.WorkspaceID,
		"actor_id":     msg.ActorID,
		"attempt":      attempt,
	}
	if msg.SubjectUserID != nil {
		values["subject_user_id"] = *msg.SubjectUserID
	}
	if msg.Metadata != "" {
		values["metadata"] = msg.Metadata
	}
	if msg.TraceID != "" {
		values["trace_id"] = msg.TraceID
	}
	return values
}
