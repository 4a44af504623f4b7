package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Sentinels shared by the repository, dispatcher and handler layers
var (
	ErrNotFound           = cr.New("not found")
	ErrPersistence        = cr.New("persistence failure")
	ErrValidation         = cr.New("validation failed")
	ErrChannelDelivery    = cr.New("channel delivery failed")
	ErrUnsupportedChannel = cr.New("unsupported channel")
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Validation builds an error that matches ErrValidation
func Validation(format string, args ...any) error {
	return cr.Mark(cr.Newf(format, args...), ErrValidation)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
