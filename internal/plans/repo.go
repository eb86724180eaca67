package plans

import "context"

// Repo stores generated plans.
type Repo interface {
	Create(ctx context.Context, plan Plan) error
	GetByID(ctx context.Context, sessionID, planID string) (Plan, error)
	ListBySession(ctx context.Context, sessionID string, limit int) ([]Plan, error)
}
