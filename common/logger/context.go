package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every log record emitted with a context that carries them.
// Handlers and the worker enrich the context once; downstream code just logs.
type LogFields struct {
	UserID      *int64  // Authenticated caller
	WorkspaceID *int64  // Workspace the request or event targets
	MessageID   *string // Redis stream message ID
	EventType   *string // Workspace event type, e.g. "workspace.member_added"
	RequestID   *string // X-Request-ID of the inbound HTTP request
	Component   string  // OTel semantic convention style, e.g. "workspace.worker.audit"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields; newer non-nil/non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.WorkspaceID != nil {
		result.WorkspaceID = next.WorkspaceID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
