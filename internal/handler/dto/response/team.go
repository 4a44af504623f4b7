package response

import (
	"sitehub/internal/domain/team"
)

type MemberResponse struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

type TeamResponse struct {
	ID           string            `json:"id"`
	ProjectID    string            `json:"project_id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	OwnerID      string            `json:"owner_id"`
	Members      []*MemberResponse `json:"members"`
	Status       string            `json:"status"`
	StatusReason string            `json:"status_reason,omitempty"`
	ArchivedAt   *int64            `json:"archived_at,omitempty"`
	CreatedAt    int64             `json:"created_at"`
	UpdatedAt    int64             `json:"updated_at"`
}

func FromTeam(t *team.Team) *TeamResponse {
	members := make([]*MemberResponse, len(t.Members))
	for i, m := range t.Members {
		members[i] = &MemberResponse{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt.Unix(),
		}
	}
	return &TeamResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Name:         t.Name,
		Description:  t.Description,
		OwnerID:      t.OwnerID,
		Members:      members,
		Status:       string(t.Status),
		StatusReason: t.StatusReason,
		ArchivedAt:   unix(t.ArchivedAt),
		CreatedAt:    t.CreatedAt.Unix(),
		UpdatedAt:    t.UpdatedAt.Unix(),
	}
}

func FromTeams(items []*team.Team) []*TeamResponse {
	res := make([]*TeamResponse, len(items))
	for i, t := range items {
		res[i] = FromTeam(t)
	}
	return res
}
