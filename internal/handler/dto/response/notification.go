package response

import (
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/usecase/queries"
)

type NotificationResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	ProjectID       string `json:"project_id,omitempty"`
	Title           string `json:"title"`
	Message         string `json:"message"`
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	StatusReason    string `json:"status_reason,omitempty"`
	Read            bool   `json:"read"`
	ActionURL       string `json:"action_url,omitempty"`
	ExpiresAt       *int64 `json:"expires_at,omitempty"`
	StatusChangedAt *int64 `json:"status_changed_at,omitempty"`
	DeliveredAt     *int64 `json:"delivered_at,omitempty"`
	ReadAt          *int64 `json:"read_at,omitempty"`
	ArchivedAt      *int64 `json:"archived_at,omitempty"`
	CreatedAt       int64  `json:"created_at"`
	UpdatedAt       int64  `json:"updated_at"`
}

func unix(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}

func FromNotification(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:              n.ID,
		UserID:          n.UserID,
		ProjectID:       n.ProjectID,
		Title:           n.Title,
		Message:         n.Message,
		Type:            string(n.Type),
		Priority:        string(n.Priority),
		Status:          string(n.Status),
		StatusReason:    n.StatusReason,
		Read:            n.Read,
		ActionURL:       n.ActionURL,
		ExpiresAt:       unix(n.ExpiresAt),
		StatusChangedAt: unix(n.StatusChangedAt),
		DeliveredAt:     unix(n.DeliveredAt),
		ReadAt:          unix(n.ReadAt),
		ArchivedAt:      unix(n.ArchivedAt),
		CreatedAt:       n.CreatedAt.Unix(),
		UpdatedAt:       n.UpdatedAt.Unix(),
	}
}

func FromNotifications(items []*notification.Notification) []*NotificationResponse {
	res := make([]*NotificationResponse, len(items))
	for i, n := range items {
		res[i] = FromNotification(n)
	}
	return res
}

type NotificationListResponse struct {
	Items       []*NotificationResponse `json:"items"`
	NextCursor  string                  `json:"next_cursor,omitempty"`
	UnreadCount int                     `json:"unread_count"`
}

func FromNotificationList(items []*notification.Notification, next *queries.Cursor, unread int) *NotificationListResponse {
	res := &NotificationListResponse{
		Items:       FromNotifications(items),
		UnreadCount: unread,
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}

type CountResponse struct {
	Count int `json:"count"`
}

type ChannelResultResponse struct {
	Kind        string `json:"kind"`
	Address     string `json:"address,omitempty"`
	Success     bool   `json:"success"`
	MessageID   string `json:"message_id,omitempty"`
	Error       string `json:"error,omitempty"`
	CompletedAt int64  `json:"completed_at"`
}

type DeliveryOutcomeResponse struct {
	NotificationID string                   `json:"notification_id"`
	TotalChannels  int                      `json:"total_channels"`
	SuccessCount   int                      `json:"success_count"`
	FailureCount   int                      `json:"failure_count"`
	Status         string                   `json:"status"`
	Results        []*ChannelResultResponse `json:"results"`
	CompletedAt    int64                    `json:"completed_at"`
}

func FromDeliveryOutcome(o *notification.DeliveryOutcome) *DeliveryOutcomeResponse {
	results := make([]*ChannelResultResponse, len(o.Results))
	for i, r := range o.Results {
		results[i] = &ChannelResultResponse{
			Kind:        string(r.Channel.Kind),
			Address:     r.Channel.Address,
			Success:     r.Success,
			MessageID:   r.MessageID,
			Error:       r.Error,
			CompletedAt: r.CompletedAt.Unix(),
		}
	}
	return &DeliveryOutcomeResponse{
		NotificationID: o.NotificationID,
		TotalChannels:  o.TotalChannels,
		SuccessCount:   o.SuccessCount,
		FailureCount:   o.FailureCount,
		Status:         string(o.Status),
		Results:        results,
		CompletedAt:    o.CompletedAt.Unix(),
	}
}

type StatisticsResponse struct {
	OwnerID    string         `json:"owner_id"`
	Total      int            `json:"total"`
	Unread     int            `json:"unread"`
	ByType     map[string]int `json:"by_type"`
	ByPriority map[string]int `json:"by_priority"`
	ComputedAt int64          `json:"computed_at"`
}

func FromStatistics(s *queries.NotificationStatistics) *StatisticsResponse {
	byType := make(map[string]int, len(s.ByType))
	for k, v := range s.ByType {
		byType[string(k)] = v
	}
	byPriority := make(map[string]int, len(s.ByPriority))
	for k, v := range s.ByPriority {
		byPriority[string(k)] = v
	}
	return &StatisticsResponse{
		OwnerID:    s.OwnerID,
		Total:      s.Total,
		Unread:     s.Unread,
		ByType:     byType,
		ByPriority: byPriority,
		ComputedAt: s.ComputedAt.Unix(),
	}
}

// SnapshotEvent is one Server-Sent Event of the watch stream.
type SnapshotEvent struct {
	Items []*NotificationResponse `json:"items"`
	At    int64                   `json:"at"`
}
