package plans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"career-advisor/internal/advisor"
	"career-advisor/internal/qr"
	"career-advisor/internal/sessions"
	"career-advisor/internal/shared/metrics"
	"career-advisor/internal/shared/telemetry"
)

// Fallback copy for sections whose generative step produced nothing usable.
const (
	msgNoAdvice   = "No career advice received from the AI. Please try again."
	msgNoSkillGap = "Unable to perform skill gap analysis at this time."
	msgNoCourses  = "No course links were found. Try generating the plan again."
)

// SessionSource provides session state to the plan pipeline.
type SessionSource interface {
	Get(ctx context.Context, id string) (sessions.Session, error)
	RecordPlan(ctx context.Context, id, planID string) error
}

// Service contains business logic for plan generation and retrieval.
type Service struct {
	Repo     Repo
	Sessions SessionSource
	Advisor  *advisor.Service
}

// Generate runs the full pipeline for the session: gating, roadmap with
// retries, skill gap analysis, course recommendation. The three generative
// sections degrade independently; a plan is stored even when every section
// came back empty, with the problems listed in Warnings.
func (s *Service) Generate(ctx context.Context, sessionID string) (Plan, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return Plan{}, err
	}

	var missing []string
	if session.Name == "" {
		missing = append(missing, "name")
	}
	if session.Domain == "" {
		missing = append(missing, "domain")
	}
	if len(session.Skills) == 0 {
		missing = append(missing, "skills")
	}
	if len(missing) > 0 {
		metrics.IncPlanBlocked()
		telemetry.Info("plan.blocked", map[string]any{
			"session_id": sessionID,
			"missing":    missing,
		})
		return Plan{}, &BlockedError{Missing: missing}
	}

	metrics.IncPlanStarted()
	start := time.Now()

	profile := session.Profile()
	var warnings []string

	roadmap, err := s.Advisor.GenerateRoadmapWithRetry(ctx, profile, session.Skills)
	if err != nil {
		telemetry.Warn("plan.roadmap.failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		warnings = append(warnings, msgNoAdvice)
	}

	gap, err := s.Advisor.AnalyzeSkillGap(ctx, session.Domain, session.Skills)
	if err != nil {
		telemetry.Warn("plan.skillgap.failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		warnings = append(warnings, msgNoSkillGap)
	}

	courses, err := s.Advisor.RecommendCourses(ctx, session.Domain)
	if err != nil {
		telemetry.Warn("plan.courses.failed", map[string]any{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	if len(courses) == 0 {
		warnings = append(warnings, msgNoCourses)
	}

	plan := Plan{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Name:           session.Name,
		Age:            session.Age,
		Domain:         session.Domain,
		Skills:         session.Skills,
		Psychometric:   session.Psychometric,
		CareerAdvice:   roadmap.CareerAdvice,
		RoadmapSVG:     roadmap.RoadmapSVG,
		MissingSkills:  gap.MissingSkills,
		PrioritySkills: gap.PrioritySkills,
		Courses:        courses,
		Warnings:       warnings,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, plan); err != nil {
		return Plan{}, err
	}
	if err := s.Sessions.RecordPlan(ctx, sessionID, plan.ID); err != nil {
		return Plan{}, err
	}

	metrics.IncPlanCompleted()
	metrics.ObservePlanDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("plan.completed", map[string]any{
		"session_id":  sessionID,
		"plan_id":     plan.ID,
		"duration_ms": time.Since(start).Milliseconds(),
		"warnings":    len(warnings),
	})

	return plan, nil
}

// Get returns a plan scoped to the session.
func (s *Service) Get(ctx context.Context, sessionID, planID string) (Plan, error) {
	return s.Repo.GetByID(ctx, sessionID, planID)
}

// List returns the session's plan history, newest first.
func (s *Service) List(ctx context.Context, sessionID string, limit int) ([]Plan, error) {
	return s.Repo.ListBySession(ctx, sessionID, limit)
}

// CoursesQR renders the plan's course links as a single PNG QR image.
func (s *Service) CoursesQR(ctx context.Context, sessionID, planID string) ([]byte, error) {
	plan, err := s.Repo.GetByID(ctx, sessionID, planID)
	if err != nil {
		return nil, err
	}
	if len(plan.Courses) == 0 {
		return nil, ErrNoCourses
	}
	return qr.EncodeCourses(plan.Courses)
}
