package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/idrsdev/agile-task/common/id"
	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/store"
)

const (
	defaultActivityLimit int32 = 20
	maxActivityLimit     int32 = 100
)

// WorkspaceService owns workspace lifecycle and membership.
// The creator is never stored as a member; every membership test is
// "creator or member".
type WorkspaceService interface {
	ListAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Workspace], error)
	ListCreatedBy(ctx context.Context, callerID int64, page model.PageRequest) (*model.Page[model.Workspace], error)
	ListMemberOf(ctx context.Context, callerID int64, page model.PageRequest) (*model.Page[model.Workspace], error)
	Get(ctx context.Context, workspaceID, callerID int64) (*model.WorkspaceDetail, error)
	Create(ctx context.Context, name string, callerID int64) (*model.Workspace, error)
	Update(ctx context.Context, workspaceID, callerID int64, update model.WorkspaceUpdate) (*model.Workspace, error)
	Delete(ctx context.Context, workspaceID, callerID int64) error
	ListMembers(ctx context.Context, workspaceID, callerID int64) ([]model.User, error)
	AddMember(ctx context.Context, workspaceID, memberID, callerID int64) (*model.MembershipChange, error)
	RemoveMember(ctx context.Context, workspaceID, memberID, callerID int64) (*model.MembershipChange, error)
	ListActivity(ctx context.Context, workspaceID, callerID int64, limit int32) ([]model.WorkspaceEventLog, error)
}

type workspaceService struct {
	workspaces store.WorkspaceStore
	users      store.UserStore
	eventLogs  store.WorkspaceEventLogStore
	events     EventPublisher
	paging     config.PagingConfig
}

func NewWorkspaceService(
	workspaces store.WorkspaceStore,
	users store.UserStore,
	eventLogs store.WorkspaceEventLogStore,
	events EventPublisher,
	paging config.PagingConfig,
) WorkspaceService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &workspaceService{
		workspaces: workspaces,
		users:      users,
		eventLogs:  eventLogs,
		events:     events,
		paging:     paging,
	}
}

func (s *workspaceService) ListAll(ctx context.Context, page model.PageRequest) (*model.Page[model.Workspace], error) {
	page, err := normalizePage(page, s.paging)
	if err != nil {
		return nil, err
	}

	items, total, err := s.workspaces.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	result := model.NewPage(items, total, page)
	return &result, nil
}

func (s *workspaceService) ListCreatedBy(ctx context.Context, callerID int64, page model.PageRequest) (*model.Page[model.Workspace], error) {
	page, err := normalizePage(page, s.paging)
	if err != nil {
		return nil, err
	}

	items, total, err := s.workspaces.ListByCreator(ctx, callerID, page)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces by creator: %w", err)
	}

	result := model.NewPage(items, total, page)
	return &result, nil
}

func (s *workspaceService) ListMemberOf(ctx context.Context, callerID int64, page model.PageRequest) (*model.Page[model.Workspace], error) {
	page, err := normalizePage(page, s.paging)
	if err != nil {
		return nil, err
	}

	items, total, err := s.workspaces.ListByMember(ctx, callerID, page)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces by member: %w", err)
	}

	result := model.NewPage(items, total, page)
	return &result, nil
}

func (s *workspaceService) Get(ctx context.Context, workspaceID, callerID int64) (*model.WorkspaceDetail, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID})

	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, ws, callerID); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ws.CreatorID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("getting workspace owner: %w", err)
		}
		slog.WarnContext(ctx, "workspace owner missing", "creator_id", ws.CreatorID)
		owner = nil
	}

	members, err := s.workspaces.ListMembers(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("listing workspace members: %w", err)
	}

	return &model.WorkspaceDetail{
		Workspace: *ws,
		Owner:     owner,
		Members:   members,
	}, nil
}

func (s *workspaceService) Create(ctx context.Context, name string, callerID int64) (*model.Workspace, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	ws := &model.Workspace{
		ID:        id.New(),
		Name:      name,
		CreatorID: callerID,
	}

	if err := s.workspaces.Create(ctx, ws); err != nil {
		slog.ErrorContext(ctx, "failed to create workspace", "error", err)
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &ws.ID})
	slog.InfoContext(ctx, "workspace created")

	s.publish(ctx, model.WorkspaceEvent{
		Type:        model.WorkspaceEventCreated,
		WorkspaceID: ws.ID,
		ActorID:     callerID,
		Metadata:    map[string]string{"name": ws.Name},
	})

	return ws, nil
}

func (s *workspaceService) Update(ctx context.Context, workspaceID, callerID int64, update model.WorkspaceUpdate) (*model.Workspace, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID})

	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsCreator(callerID) {
		return nil, ErrForbidden
	}

	name := ws.Name
	if update.Name != nil {
		name, err = validateName(*update.Name)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.workspaces.UpdateName(ctx, ws.ID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	s.publish(ctx, model.WorkspaceEvent{
		Type:        model.WorkspaceEventUpdated,
		WorkspaceID: ws.ID,
		ActorID:     callerID,
		Metadata:    map[string]string{"name": updated.Name},
	})

	return updated, nil
}

func (s *workspaceService) Delete(ctx context.Context, workspaceID, callerID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID})

	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !ws.IsCreator(callerID) {
		return ErrForbidden
	}

	if err := s.workspaces.Delete(ctx, ws.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWorkspaceNotFound
		}
		slog.ErrorContext(ctx, "failed to delete workspace", "error", err)
		return fmt.Errorf("deleting workspace: %w", err)
	}

	slog.InfoContext(ctx, "workspace deleted")

	s.publish(ctx, model.WorkspaceEvent{
		Type:        model.WorkspaceEventDeleted,
		WorkspaceID: ws.ID,
		ActorID:     callerID,
	})

	return nil
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID, callerID int64) ([]model.User, error) {
	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, ws, callerID); err != nil {
		return nil, err
	}

	members, err := s.workspaces.ListMembers(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("listing workspace members: %w", err)
	}
	return members, nil
}

func (s *workspaceService) AddMember(ctx context.Context, workspaceID, memberID, callerID int64) (*model.MembershipChange, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID})

	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsCreator(callerID) {
		return nil, ErrForbidden
	}
	if ws.IsCreator(memberID) {
		return nil, fmt.Errorf("%w: the creator cannot be added as a member", ErrValidation)
	}

	if _, err := s.users.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}

	added, err := s.workspaces.AddMember(ctx, ws.ID, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the load and the insert.
			return nil, ErrWorkspaceNotFound
		}
		slog.ErrorContext(ctx, "failed to add workspace member", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("adding workspace member: %w", err)
	}
	if !added {
		return nil, ErrAlreadyMember
	}

	slog.InfoContext(ctx, "workspace member added", "member_id", memberID)

	s.publish(ctx, model.WorkspaceEvent{
		Type:          model.WorkspaceEventMemberAdded,
		WorkspaceID:   ws.ID,
		ActorID:       callerID,
		SubjectUserID: &memberID,
	})

	return &model.MembershipChange{
		WorkspaceID: ws.ID,
		MemberID:    memberID,
		Message:     "member added to workspace",
	}, nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, memberID, callerID int64) (*model.MembershipChange, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{WorkspaceID: &workspaceID})

	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.IsCreator(callerID) {
		return nil, ErrForbidden
	}

	removed, err := s.workspaces.RemoveMember(ctx, ws.ID, memberID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to remove workspace member", "error", err, "member_id", memberID)
		return nil, fmt.Errorf("removing workspace member: %w", err)
	}
	if !removed {
		return nil, ErrNotMember
	}

	slog.InfoContext(ctx, "workspace member removed", "member_id", memberID)

	s.publish(ctx, model.WorkspaceEvent{
		Type:          model.WorkspaceEventMemberRemoved,
		WorkspaceID:   ws.ID,
		ActorID:       callerID,
		SubjectUserID: &memberID,
	})

	return &model.MembershipChange{
		WorkspaceID: ws.ID,
		MemberID:    memberID,
		Message:     "member removed from workspace",
	}, nil
}

func (s *workspaceService) ListActivity(ctx context.Context, workspaceID, callerID int64, limit int32) ([]model.WorkspaceEventLog, error) {
	ws, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, ws, callerID); err != nil {
		return nil, err
	}

	switch {
	case limit == 0:
		limit = defaultActivityLimit
	case limit < 0:
		return nil, fmt.Errorf("%w: limit must be at least 1", ErrValidation)
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}

	logs, err := s.eventLogs.ListByWorkspace(ctx, ws.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing workspace activity: %w", err)
	}
	return logs, nil
}

func (s *workspaceService) load(ctx context.Context, workspaceID int64) (*model.Workspace, error) {
	ws, err := s.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}
	return ws, nil
}

// requireAccess passes for the creator and for members.
func (s *workspaceService) requireAccess(ctx context.Context, ws *model.Workspace, callerID int64) error {
	if ws.IsCreator(callerID) {
		return nil
	}
	member, err := s.workspaces.IsMember(ctx, ws.ID, callerID)
	if err != nil {
		return fmt.Errorf("checking workspace membership: %w", err)
	}
	if !member {
		return ErrForbidden
	}
	return nil
}

func (s *workspaceService) publish(ctx context.Context, event model.WorkspaceEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish workspace event",
			"error", err,
			"event_type", event.Type,
		)
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be blank", ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrValidation, maxNameLength)
	}
	return name, nil
}
