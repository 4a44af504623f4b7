package request

import (
	"time"

	"sitehub/internal/domain/notification"
)

type CreateNotificationRequest struct {
	UserID    string     `json:"user_id" binding:"required"`
	ProjectID string     `json:"project_id"`
	Title     string     `json:"title" binding:"required,max=200"`
	Message   string     `json:"message" binding:"max=2000"`
	Type      string     `json:"type" binding:"required"`
	Priority  string     `json:"priority"`
	ActionURL string     `json:"action_url" binding:"omitempty,url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r *CreateNotificationRequest) ToParams() notification.NewParams {
	return notification.NewParams{
		UserID:    r.UserID,
		ProjectID: r.ProjectID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      r.Type,
		Priority:  r.Priority,
		ActionURL: r.ActionURL,
		ExpiresAt: r.ExpiresAt,
	}
}

type BatchCreateNotificationRequest struct {
	Items []CreateNotificationRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

func (r *BatchCreateNotificationRequest) ToParams() []notification.NewParams {
	params := make([]notification.NewParams, len(r.Items))
	for i := range r.Items {
		params[i] = r.Items[i].ToParams()
	}
	return params
}

type UpdateNotificationRequest struct {
	Title     *string    `json:"title" binding:"omitempty,max=200"`
	Message   *string    `json:"message" binding:"omitempty,max=2000"`
	Type      *string    `json:"type"`
	Priority  *string    `json:"priority"`
	ActionURL *string    `json:"action_url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (r *UpdateNotificationRequest) ToPatch() notification.Patch {
	return notification.Patch{
		Title:     r.Title,
		Message:   r.Message,
		Type:      r.Type,
		Priority:  r.Priority,
		ActionURL: r.ActionURL,
		ExpiresAt: r.ExpiresAt,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

type ChannelRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Address string `json:"address"`
}

type DispatchRequest struct {
	Channels []ChannelRequest `json:"channels" binding:"max=16,dive"`
}

// ToChannels keeps unknown kinds; the dispatcher reports them as failed results.
func (r *DispatchRequest) ToChannels() []notification.ChannelDescriptor {
	channels := make([]notification.ChannelDescriptor, len(r.Channels))
	for i, ch := range r.Channels {
		channels[i] = notification.ChannelDescriptor{
			Kind:    notification.ChannelKind(ch.Kind),
			Address: ch.Address,
		}
	}
	return channels
}

type ListNotificationsQuery struct {
	Unread   bool   `form:"unread"`
	Type     string `form:"type"`
	Priority string `form:"priority"`
	Status   string `form:"status"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
	After    string `form:"after"`
}

type ArchiveRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
