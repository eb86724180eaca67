package plans

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a plan does not exist or belongs to another session.
var ErrNotFound = errors.New("plan not found")

// ErrNoCourses is returned when a QR image is requested for a plan without
// course links.
var ErrNoCourses = errors.New("plan has no course links")

// BlockedError reports the prerequisites still missing before a plan can be
// generated. No generative call is made while any are missing.
type BlockedError struct {
	Missing []string
}

func (e *BlockedError) Error() string {
	return "plan generation blocked: missing " + strings.Join(e.Missing, ", ")
}
