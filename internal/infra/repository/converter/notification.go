package converter

import (
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/infra/docstore"
)

func NotificationToFields(n *notification.Notification) docstore.Fields {
	return docstore.Fields{
		FieldUserID:          n.UserID,
		FieldProjectID:       optional(n.ProjectID),
		FieldTitle:           n.Title,
		FieldMessage:         n.Message,
		FieldType:            string(n.Type),
		FieldPriority:        string(n.Priority),
		FieldStatus:          string(n.Status),
		FieldRead:            n.Read,
		FieldActionURL:       optional(n.ActionURL),
		FieldExpiresAt:       docstore.TimeValue(n.ExpiresAt),
		FieldStatusReason:    optional(n.StatusReason),
		FieldStatusChangedAt: docstore.TimeValue(n.StatusChangedAt),
		FieldDeliveredAt:     docstore.TimeValue(n.DeliveredAt),
		FieldReadAt:          docstore.TimeValue(n.ReadAt),
		FieldArchivedAt:      docstore.TimeValue(n.ArchivedAt),
	}
}

func NotificationFromDocument(doc docstore.Document) (*notification.Notification, error) {
	d := doc.Data
	n := &notification.Notification{
		ID:              doc.ID,
		UserID:          d.String(FieldUserID),
		ProjectID:       d.String(FieldProjectID),
		Title:           d.String(FieldTitle),
		Message:         d.String(FieldMessage),
		Type:            notification.Type(d.String(FieldType)),
		Priority:        notification.Priority(d.String(FieldPriority)),
		Status:          notification.Status(d.String(FieldStatus)),
		Read:            d.Bool(FieldRead),
		ActionURL:       d.String(FieldActionURL),
		ExpiresAt:       utcPtr(d.TimePtr(FieldExpiresAt)),
		StatusReason:    d.String(FieldStatusReason),
		StatusChangedAt: utcPtr(d.TimePtr(FieldStatusChangedAt)),
		DeliveredAt:     utcPtr(d.TimePtr(FieldDeliveredAt)),
		ReadAt:          utcPtr(d.TimePtr(FieldReadAt)),
		ArchivedAt:      utcPtr(d.TimePtr(FieldArchivedAt)),
		CreatedAt:       doc.CreateTime.UTC(),
		UpdatedAt:       doc.UpdateTime.UTC(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func NotificationPatchToFields(p notification.Patch) docstore.Fields {
	f := docstore.Fields{}
	if p.Title != nil {
		f[FieldTitle] = *p.Title
	}
	if p.Message != nil {
		f[FieldMessage] = *p.Message
	}
	if p.Type != nil {
		f[FieldType] = *p.Type
	}
	if p.Priority != nil {
		f[FieldPriority] = *p.Priority
	}
	if p.ActionURL != nil {
		f[FieldActionURL] = optional(*p.ActionURL)
	}
	if p.ExpiresAt != nil {
		f[FieldExpiresAt] = docstore.TimeValue(p.ExpiresAt)
	}
	return f
}

// NotificationStatusFields records the status change and the milestone
// timestamp that goes with the new status.
func NotificationStatusFields(status notification.Status, reason string, now time.Time) docstore.Fields {
	now = now.UTC()
	f := docstore.Fields{
		FieldStatus:          string(status),
		FieldStatusReason:    optional(reason),
		FieldStatusChangedAt: now,
	}
	switch status {
	case notification.StatusDelivered, notification.StatusPartiallyDelivered:
		f[FieldDeliveredAt] = now
	case notification.StatusRead:
		f[FieldRead] = true
		f[FieldReadAt] = now
	case notification.StatusArchived:
		f[FieldArchivedAt] = now
	}
	return f
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
