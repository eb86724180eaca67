package sessions

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Repo stores sessions. Sessions are transient by design, so the memory
// implementation is the only one.
type Repo interface {
	Get(ctx context.Context, id string) (Session, error)
	Put(ctx context.Context, session Session) error
}
