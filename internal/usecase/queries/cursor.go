package queries

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	MaxListLimit     = 200
	DefaultListLimit = 20
	CursorVersionV1  = "v1"
)

// EncodeAfterCursor wraps the id of the last returned document. The store
// resumes strictly after that document in the query's own order.
func EncodeAfterCursor(lastID string) string {
	return base64.URLEncoding.EncodeToString([]byte(CursorVersionV1 + ":" + lastID))
}

func DecodeAfterCursor(cursor string) (string, error) {
	if cursor == "" {
		return "", fmt.Errorf("cursor cannot be empty")
	}
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("invalid cursor encoding: %w", err)
	}
	id, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok || id == "" {
		return "", fmt.Errorf("invalid cursor format: expected '%s:<id>'", CursorVersionV1)
	}
	return id, nil
}

type Cursor struct {
	After string `json:"after,omitempty"`
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
