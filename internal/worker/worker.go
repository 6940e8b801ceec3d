package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/idrsdev/agile-task/common/id"
	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/queue"
)

type Config struct {
	MaxAttempts  int
	ErrorBackoff time.Duration
}

// Worker records workspace events from the stream into the audit log.
type Worker struct {
	consumer Consumer
	logs     EventLogWriter
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, logs EventLogWriter, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		logs:      logs,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "agile_task.worker.audit",
	})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-w.stopCh:
					return nil
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		msgCtx := logger.WithLogFields(ctx, logger.LogFields{
			MessageID:   logger.Ptr(msg.ID),
			WorkspaceID: logger.Ptr(msg.WorkspaceID),
			EventType:   logger.Ptr(string(msg.EventType)),
		})
		if err := w.processMessageSafe(msgCtx, msg); err != nil {
			slog.ErrorContext(msgCtx, "message processing failed", "error", err)
			w.handleFailedMessage(msgCtx, msg, err)
		}
	}

	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage writes the audit record and acks. Redelivered messages
// hit the unique message ID and are acked without a second row.
// Exported so it can be reused by the reclaimer.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	span := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.record_workspace_event")
	defer span.End()
	ctx = span.Context()

	slog.DebugContext(ctx, "processing message", "attempt", msg.Attempt)

	entry := &model.WorkspaceEventLog{
		ID:            id.New(),
		WorkspaceID:   msg.WorkspaceID,
		ActorID:       msg.ActorID,
		SubjectUserID: msg.SubjectUserID,
		EventType:     msg.EventType,
		MessageID:     msg.ID,
	}
	if msg.Metadata != "" {
		if json.Valid([]byte(msg.Metadata)) {
			entry.Metadata = json.RawMessage(msg.Metadata)
		} else {
			slog.WarnContext(ctx, "dropping malformed event metadata")
		}
	}

	inserted, err := w.logs.Create(ctx, entry)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("recording workspace event: %w", err)
	}
	if !inserted {
		slog.InfoContext(ctx, "workspace event already recorded, skipping")
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The row exists, so a redelivery is harmless.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ", "attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
