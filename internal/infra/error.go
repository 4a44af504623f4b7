package infra

import (
	"errors"
	"log/slog"

	"sitehub/internal/infra/docstore"
	"sitehub/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Is lets callers match repository errors against the shared sentinels in errs.
func (e RepositoryError) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == errs.ErrNotFound
	case KindPersistence:
		return target == errs.ErrPersistence
	case KindValidation:
		return target == errs.ErrValidation
	default:
		return false
	}
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	if kind == KindPersistence {
		slogger.Error("Repository error: "+msg, logArgs...)
	} else {
		slogger.Debug("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// Classify maps a store failure onto a repository error kind; anything
// unrecognised, including rule rejections and timeouts, is a persistence failure.
func Classify(err error) RepositoryErrorKind {
	var repoErr RepositoryError
	switch {
	case errors.As(err, &repoErr):
		return repoErr.Kind
	case errs.Is(err, docstore.ErrNotFound):
		return KindNotFound
	case errs.Is(err, errs.ErrValidation), errs.Is(err, docstore.ErrInvalidQuery), errs.Is(err, docstore.ErrInvalidCursor):
		return KindValidation
	default:
		return KindPersistence
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

const (
	KindNotFound    RepositoryErrorKind = "NOT_FOUND"
	KindPersistence RepositoryErrorKind = "PERSISTENCE"
	KindValidation  RepositoryErrorKind = "VALIDATION"
)
