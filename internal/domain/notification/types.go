package notification

import "sitehub/internal/pkg/errs"

var (
	ErrEmptyTitle      = errs.Validation("title cannot be empty")
	ErrTitleTooLong    = errs.Validation("title exceeds maximum length")
	ErrMessageTooLong  = errs.Validation("message exceeds maximum length")
	ErrMissingUser     = errs.Validation("user id is required")
	ErrInvalidType     = errs.Validation("invalid notification type")
	ErrInvalidPriority = errs.Validation("invalid notification priority")
	ErrInvalidStatus   = errs.Validation("invalid notification status")
	ErrInvalidChannel  = errs.Validation("invalid channel kind")
	ErrInvalidAddress  = errs.Validation("invalid channel address")
	ErrExpiryInThePast = errs.Validation("expiry must be after creation")
	ErrEmptyPatch      = errs.Validation("patch has no fields")
)

type Type string

const (
	TypeSystem   Type = "system"
	TypeTask     Type = "task"
	TypeProject  Type = "project"
	TypeApproval Type = "approval"
	TypeSafety   Type = "safety"
	TypeReminder Type = "reminder"
)

var AllTypes = []Type{TypeSystem, TypeTask, TypeProject, TypeApproval, TypeSafety, TypeReminder}

func (t Type) IsValid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var AllPriorities = []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

type Status string

const (
	StatusPending            Status = "pending"
	StatusSending            Status = "sending"
	StatusDelivered          Status = "delivered"
	StatusPartiallyDelivered Status = "partially_delivered"
	StatusFailed             Status = "failed"
	StatusRead               Status = "read"
	StatusArchived           Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSending, StatusDelivered, StatusPartiallyDelivered,
		StatusFailed, StatusRead, StatusArchived:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// OutcomeStatus maps per-channel counts to the status written after a dispatch.
// Zero channels counts as delivered: nothing was asked for and nothing failed.
func OutcomeStatus(total, failures int) Status {
	switch {
	case failures == 0:
		return StatusDelivered
	case failures < total:
		return StatusPartiallyDelivered
	default:
		return StatusFailed
	}
}
