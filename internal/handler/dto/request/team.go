package request

import (
	"sitehub/internal/domain/team"
	"sitehub/internal/usecase/commands"
)

type CreateTeamRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

func (r *CreateTeamRequest) ToCommand() commands.CreateTeamRequest {
	return commands.CreateTeamRequest{
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Description: r.Description,
	}
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

func (r *UpdateTeamRequest) ToPatch() team.Patch {
	return team.Patch{Name: r.Name, Description: r.Description}
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=lead member viewer"`
}
