package channel

import (
	"context"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/errs"
)

const InboxCollection = "inbox"

// InAppSender records one inbox entry per delivery in the document store.
// The entry id is returned as the message id; nothing in this service reads the
// inbox back, it is a delivery log for in-app clients.
type InAppSender struct {
	store docstore.Store
	clock clock.Clock
}

func NewInAppSender(store docstore.Store, clk clock.Clock) *InAppSender {
	return &InAppSender{store: store, clock: clk}
}

func (s *InAppSender) Send(ctx context.Context, n *notification.Notification, _ notification.ChannelDescriptor) (string, error) {
	id := s.store.NewID(InboxCollection)
	_, err := s.store.Set(ctx, InboxCollection, id, docstore.Fields{
		"notificationId": n.ID,
		"userId":         n.UserID,
		"title":          n.Title,
		"message":        n.Message,
		"type":           string(n.Type),
		"priority":       string(n.Priority),
		"actionUrl":      n.ActionURL,
		"deliveredAt":    s.clock.Now().UTC(),
	})
	if err != nil {
		return "", errs.Wrap(err, "write inbox entry")
	}
	return id, nil
}
