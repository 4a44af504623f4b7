package ptr

import "time"

func To[T any](v T) *T {
	return &v
}

// TimeOrNil treats the zero time as absent
func TimeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
