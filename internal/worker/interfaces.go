package worker

import (
	"context"

	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// EventLogWriter persists audit records. Create reports false for a
// message that was already recorded.
type EventLogWriter interface {
	Create(ctx context.Context, log *model.WorkspaceEventLog) (bool, error)
}

// MessageProcessor processes a queue message.
type MessageProcessor func(ctx context.Context, msg queue.Message) error
