package plans

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores plans in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu        sync.RWMutex
	byID      map[string]Plan
	bySession map[string][]Plan
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:      make(map[string]Plan),
		bySession: make(map[string][]Plan),
	}
}

// Create stores the plan.
func (r *MemoryRepo) Create(ctx context.Context, plan Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[plan.ID] = plan
	r.bySession[plan.SessionID] = append(r.bySession[plan.SessionID], plan)
	return nil
}

// GetByID returns a plan scoped to its session.
func (r *MemoryRepo) GetByID(ctx context.Context, sessionID, planID string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.byID[planID]
	if !ok || plan.SessionID != sessionID {
		return Plan{}, ErrNotFound
	}
	return plan, nil
}

// ListBySession returns plans for a session, newest first.
func (r *MemoryRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	sessionPlans := r.bySession[sessionID]
	r.mu.RUnlock()

	if len(sessionPlans) == 0 {
		return []Plan{}, nil
	}

	out := make([]Plan, len(sessionPlans))
	copy(out, sessionPlans)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
