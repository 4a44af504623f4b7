package notification

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Patch lists the user-editable fields; nil means unchanged.
type Patch struct {
	Title     *string
	Message   *string
	Type      *string
	Priority  *string
	ActionURL *string
	ExpiresAt *time.Time
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Message == nil && p.Type == nil &&
		p.Priority == nil && p.ActionURL == nil && p.ExpiresAt == nil
}

// Normalize trims and validates the patch, returning a copy safe to persist.
func (p Patch) Normalize() (Patch, error) {
	if p.IsEmpty() {
		return Patch{}, ErrEmptyPatch
	}
	out := p
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if err := validateTitle(t); err != nil {
			return Patch{}, err
		}
		out.Title = &t
	}
	if p.Message != nil {
		m := strings.TrimSpace(*p.Message)
		if utf8.RuneCountInString(m) > MaxMessageLength {
			return Patch{}, ErrMessageTooLong
		}
		out.Message = &m
	}
	if p.Type != nil {
		if _, err := ParseType(*p.Type); err != nil {
			return Patch{}, err
		}
	}
	if p.Priority != nil {
		if !Priority(*p.Priority).IsValid() {
			return Patch{}, ErrInvalidPriority
		}
	}
	if p.ActionURL != nil {
		u := strings.TrimSpace(*p.ActionURL)
		out.ActionURL = &u
	}
	return out, nil
}
