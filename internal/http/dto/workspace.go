package dto

import (
	"encoding/json"
	"time"

	"github.com/idrsdev/agile-task/internal/model"
)

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,notblank,max=255"`
}

// UpdateWorkspaceRequest is a partial update; absent fields are left alone.
type UpdateWorkspaceRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank,max=255"`
}

type MembershipRequest struct {
	WorkspaceID FlexibleID `json:"workspaceId" binding:"required,gt=0"`
	MemberID    FlexibleID `json:"memberId" binding:"required,gt=0"`
}

type PageQuery struct {
	Page  int32 `form:"page,default=1" binding:"min=1,max=1000000"`
	Limit int32 `form:"limit,default=10" binding:"min=1"`
}

func (q PageQuery) ToPageRequest() model.PageRequest {
	return model.PageRequest{Page: q.Page, Limit: q.Limit}
}

type ActivityQuery struct {
	Limit int32 `form:"limit,default=20" binding:"min=1"`
}

type WorkspaceResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	CreatorID int64     `json:"creator_id,string"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToWorkspaceResponse(ws *model.Workspace) *WorkspaceResponse {
	return &WorkspaceResponse{
		ID:        ws.ID,
		Name:      ws.Name,
		CreatorID: ws.CreatorID,
		CreatedAt: ws.CreatedAt,
		UpdatedAt: ws.UpdatedAt,
	}
}

type WorkspacePageResponse struct {
	Items      []WorkspaceResponse `json:"items"`
	Total      int64               `json:"total"`
	Page       int32               `json:"page"`
	Limit      int32               `json:"limit"`
	TotalPages int64               `json:"total_pages"`
}

func ToWorkspacePageResponse(p *model.Page[model.Workspace]) WorkspacePageResponse {
	resp := WorkspacePageResponse{
		Items:      make([]WorkspaceResponse, len(p.Items)),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
	for i := range p.Items {
		resp.Items[i] = *ToWorkspaceResponse(&p.Items[i])
	}
	return resp
}

type WorkspaceDetailResponse struct {
	Workspace *WorkspaceResponse `json:"workspace"`
	Owner     *UserResponse      `json:"owner"`
	Members   []UserResponse     `json:"members"`
}

func ToWorkspaceDetailResponse(d *model.WorkspaceDetail) WorkspaceDetailResponse {
	resp := WorkspaceDetailResponse{
		Workspace: ToWorkspaceResponse(&d.Workspace),
		Members:   ToUserResponses(d.Members),
	}
	if d.Owner != nil {
		resp.Owner = ToUserResponse(d.Owner)
	}
	return resp
}

type MembersResponse struct {
	Members []UserResponse `json:"members"`
}

type MembershipResponse struct {
	WorkspaceID int64  `json:"workspace_id,string"`
	MemberID    int64  `json:"member_id,string"`
	Message     string `json:"message"`
}

func ToMembershipResponse(m *model.MembershipChange) MembershipResponse {
	return MembershipResponse{
		WorkspaceID: m.WorkspaceID,
		MemberID:    m.MemberID,
		Message:     m.Message,
	}
}

type WorkspaceEventResponse struct {
	ID            int64           `json:"id,string"`
	EventType     string          `json:"event_type"`
	ActorID       int64           `json:"actor_id,string"`
	SubjectUserID *int64          `json:"subject_user_id,omitempty,string"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ActivityResponse struct {
	Events []WorkspaceEventResponse `json:"events"`
}

func ToActivityResponse(logs []model.WorkspaceEventLog) ActivityResponse {
	resp := ActivityResponse{Events: make([]WorkspaceEventResponse, len(logs))}
	for i, l := range logs {
		resp.Events[i] = WorkspaceEventResponse{
			ID:            l.ID,
			EventType:     string(l.EventType),
			ActorID:       l.ActorID,
			SubjectUserID: l.SubjectUserID,
			Metadata:      l.Metadata,
			CreatedAt:     l.CreatedAt,
		}
	}
	return resp
}
