package store

import (
	"context"

	"github.com/idrsdev/agile-task/core/db/sqlc"
	"github.com/idrsdev/agile-task/internal/model"
)

type workspaceStore struct {
	queries *sqlc.Queries
}

func newWorkspaceStore(queries *sqlc.Queries) WorkspaceStore {
	return &workspaceStore{queries: queries}
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspace(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.CreateWorkspace(ctx, sqlc.CreateWorkspaceParams{
		ID:        ws.ID,
		Name:      ws.Name,
		CreatorID: ws.CreatorID,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) UpdateName(ctx context.Context, id int64, name string) (*model.Workspace, error) {
	row, err := s.queries.UpdateWorkspaceName(ctx, sqlc.UpdateWorkspaceNameParams{ID: id, Name: name})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteWorkspace(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *workspaceStore) List(ctx context.Context, page model.PageRequest) ([]model.Workspace, int64, error) {
	rows, err := s.queries.ListWorkspaces(ctx, sqlc.ListWorkspacesParams{
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountWorkspaces(ctx)
	if err != nil {
		return nil, 0, err
	}
	return toWorkspaceModels(rows), total, nil
}

func (s *workspaceStore) ListByCreator(ctx context.Context, creatorID int64, page model.PageRequest) ([]model.Workspace, int64, error) {
	rows, err := s.queries.ListWorkspacesByCreator(ctx, sqlc.ListWorkspacesByCreatorParams{
		CreatorID: creatorID,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountWorkspacesByCreator(ctx, creatorID)
	if err != nil {
		return nil, 0, err
	}
	return toWorkspaceModels(rows), total, nil
}

func (s *workspaceStore) ListByMember(ctx context.Context, userID int64, page model.PageRequest) ([]model.Workspace, int64, error) {
	rows, err := s.queries.ListWorkspacesByMember(ctx, sqlc.ListWorkspacesByMemberParams{
		UserID: userID,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountWorkspacesByMember(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return toWorkspaceModels(rows), total, nil
}

func (s *workspaceStore) AddMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	n, err := s.queries.AddWorkspaceMember(ctx, sqlc.AddWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return false, mapErr(err)
	}
	return n > 0, nil
}

func (s *workspaceStore) RemoveMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	n, err := s.queries.RemoveWorkspaceMember(ctx, sqlc.RemoveWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *workspaceStore) IsMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	return s.queries.IsWorkspaceMember(ctx, sqlc.IsWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
}

func (s *workspaceStore) ListMembers(ctx context.Context, workspaceID int64) ([]model.User, error) {
	rows, err := s.queries.ListWorkspaceMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toUserModels(rows), nil
}

func toWorkspaceModel(row sqlc.Workspace) *model.Workspace {
	return &model.Workspace{
		ID:        row.ID,
		Name:      row.Name,
		CreatorID: row.CreatorID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func toWorkspaceModels(rows []sqlc.Workspace) []model.Workspace {
	workspaces := make([]model.Workspace, len(rows))
	for i, row := range rows {
		workspaces[i] = *toWorkspaceModel(row)
	}
	return workspaces
}
