package store

import (
	"context"

	"github.com/idrsdev/agile-task/core/db/sqlc"
	"github.com/idrsdev/agile-task/internal/model"
)

type workspaceEventLogStore struct {
	queries *sqlc.Queries
}

func newWorkspaceEventLogStore(queries *sqlc.Queries) WorkspaceEventLogStore {
	return &workspaceEventLogStore{queries: queries}
}

func (s *workspaceEventLogStore) Create(ctx context.Context, log *model.WorkspaceEventLog) (bool, error) {
	n, err := s.queries.CreateWorkspaceEventLog(ctx, sqlc.CreateWorkspaceEventLogParams{
		ID:            log.ID,
		WorkspaceID:   log.WorkspaceID,
		ActorID:       log.ActorID,
		SubjectUserID: log.SubjectUserID,
		EventType:     string(log.EventType),
		MessageID:     log.MessageID,
		Metadata:      []byte(log.Metadata),
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *workspaceEventLogStore) ListByWorkspace(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceEventLog, error) {
	rows, err := s.queries.ListWorkspaceEventLogs(ctx, sqlc.ListWorkspaceEventLogsParams{
		WorkspaceID: workspaceID,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.WorkspaceEventLog, 0, len(rows))
	for _, row := range rows {
		result = append(result, toWorkspaceEventLogModel(row))
	}
	return result, nil
}

func toWorkspaceEventLogModel(row sqlc.WorkspaceEventLog) model.WorkspaceEventLog {
	return model.WorkspaceEventLog{
		ID:            row.ID,
		WorkspaceID:   row.WorkspaceID,
		ActorID:       row.ActorID,
		SubjectUserID: row.SubjectUserID,
		EventType:     model.WorkspaceEventType(row.EventType),
		MessageID:     row.MessageID,
		Metadata:      row.Metadata,
		CreatedAt:     row.CreatedAt.Time,
	}
}
