package notification

import (
	"regexp"
	"strings"
	"time"
)

type ChannelKind string

const (
	ChannelInApp ChannelKind = "in_app"
	ChannelEmail ChannelKind = "email"
	ChannelPush  ChannelKind = "push"
	ChannelSMS   ChannelKind = "sms"
)

func (k ChannelKind) IsKnown() bool {
	switch k {
	case ChannelInApp, ChannelEmail, ChannelPush, ChannelSMS:
		return true
	default:
		return false
	}
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
)

// ChannelDescriptor names a delivery medium plus its medium-specific address:
// an email address, a device token, an E.164 phone number, or nothing for in-app.
type ChannelDescriptor struct {
	Kind    ChannelKind
	Address string
}

// ValidateAddress checks the address shape for known kinds. Unknown kinds are not an
// error here; the dispatcher reports them as failed results instead.
func (d ChannelDescriptor) ValidateAddress() error {
	addr := strings.TrimSpace(d.Address)
	switch d.Kind {
	case ChannelEmail:
		if !emailRegex.MatchString(addr) {
			return ErrInvalidAddress
		}
	case ChannelSMS:
		if !phoneRegex.MatchString(addr) {
			return ErrInvalidAddress
		}
	case ChannelPush:
		if addr == "" {
			return ErrInvalidAddress
		}
	}
	return nil
}

// ChannelResult is the immutable outcome of one channel attempt.
type ChannelResult struct {
	Channel     ChannelDescriptor
	Success     bool
	MessageID   string
	Error       string
	CompletedAt time.Time
	// Cause keeps the marked error of a failed attempt; Error is its message.
	Cause error
}

// DeliveryOutcome aggregates every ChannelResult of a single dispatch.
type DeliveryOutcome struct {
	NotificationID string
	TotalChannels  int
	SuccessCount   int
	FailureCount   int
	Results        []ChannelResult
	Status         Status
	CompletedAt    time.Time
}

func NewDeliveryOutcome(id string, results []ChannelResult, completedAt time.Time) *DeliveryOutcome {
	o := &DeliveryOutcome{
		NotificationID: id,
		TotalChannels:  len(results),
		Results:        results,
		CompletedAt:    completedAt,
	}
	for _, r := range results {
		if r.Success {
			o.SuccessCount++
		} else {
			o.FailureCount++
		}
	}
	o.Status = OutcomeStatus(o.TotalChannels, o.FailureCount)
	return o
}

// FailureSummary renders failed channels as "kind: error; kind: error".
func (o *DeliveryOutcome) FailureSummary() string {
	parts := make([]string, 0, o.FailureCount)
	for _, r := range o.Results {
		if !r.Success {
			parts = append(parts, string(r.Channel.Kind)+": "+r.Error)
		}
	}
	return strings.Join(parts, "; ")
}
