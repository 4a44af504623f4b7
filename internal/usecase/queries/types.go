package queries

import (
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/pkg/errs"
)

var (
	ErrInvalidCursor       = errs.Validation("invalid cursor")
	ErrNotificationAccess  = errs.New("notification access denied")
	ErrStatisticsForbidden = errs.New("statistics of other users are not visible")
)

// NotificationStatistics summarises one user's notifications. Buckets with a
// zero count are omitted from the maps.
type NotificationStatistics struct {
	OwnerID    string                        `json:"owner_id"`
	Total      int                           `json:"total"`
	Unread     int                           `json:"unread"`
	ByType     map[notification.Type]int     `json:"by_type"`
	ByPriority map[notification.Priority]int `json:"by_priority"`
	ComputedAt time.Time                     `json:"computed_at"`
}
