package channel

import (
	"encoding/json"
	"time"

	"sitehub/internal/domain/notification"
)

// deliveryMessage is the body published to the push and SMS gateway topics.
type deliveryMessage struct {
	NotificationID string    `json:"notificationId"`
	UserID         string    `json:"userId"`
	Address        string    `json:"address"`
	Title          string    `json:"title"`
	Message        string    `json:"message,omitempty"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	ActionURL      string    `json:"actionUrl,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}

func encodeDelivery(n *notification.Notification, ch notification.ChannelDescriptor, now time.Time) ([]byte, error) {
	return json.Marshal(deliveryMessage{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Address:        ch.Address,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		Priority:       string(n.Priority),
		ActionURL:      n.ActionURL,
		SentAt:         now.UTC(),
	})
}
