package service

import (
	"context"

	"github.com/idrsdev/agile-task/internal/model"
)

// EventPublisher ships workspace domain events to the audit pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, event model.WorkspaceEvent) error
}

// NoopPublisher drops events. Used when no event stream is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.WorkspaceEvent) error { return nil }
