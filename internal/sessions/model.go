package sessions

import (
	"time"

	"career-advisor/internal/advisor"
)

// Stage is the derived position in the advisory flow. It is recomputed from
// accumulated input on every read, never stored.
type Stage string

const (
	// StageIdle means nothing has been provided yet.
	StageIdle Stage = "idle"
	// StageUploadedIncomplete means a resume is present but name or domain is missing.
	StageUploadedIncomplete Stage = "uploaded_incomplete"
	// StageDegraded means the uploaded resume yielded no text; skills must be entered manually.
	StageDegraded Stage = "degraded"
	// StageAwaitingSkills means the resume parsed but no skills are resolved yet.
	StageAwaitingSkills Stage = "awaiting_skills"
	// StageSkillsResolved means skills are available and plan generation can be requested.
	StageSkillsResolved Stage = "skills_resolved"
	// StagePlanReady means a plan has been generated in this session.
	StagePlanReady Stage = "plan_ready"
)

// SkillSource records how the session's skills were obtained.
type SkillSource string

const (
	SkillSourceAI     SkillSource = "ai"
	SkillSourceManual SkillSource = "manual"
)

// Session is the explicit per-visitor state that replaces ambient UI globals.
// Everything here is transient; the memory repo is the only store.
type Session struct {
	ID             string
	Name           string
	Age            int
	Domain         string
	Psychometric   advisor.Psychometric
	ResumeFileName string
	ResumeText     string
	ResumeUploaded bool
	Skills         []string
	SkillSource    SkillSource
	LastPlanID     string
	UpdatedAt      time.Time
}

// Stage derives the flow state from input completeness.
func (s Session) Stage() Stage {
	if s.LastPlanID != "" {
		return StagePlanReady
	}
	if len(s.Skills) > 0 {
		return StageSkillsResolved
	}
	if !s.ResumeUploaded {
		return StageIdle
	}
	if s.Name == "" || s.Domain == "" {
		return StageUploadedIncomplete
	}
	if s.ResumeText == "" {
		return StageDegraded
	}
	return StageAwaitingSkills
}

// Profile returns the advisor-facing view of the session's user inputs.
func (s Session) Profile() advisor.UserProfile {
	return advisor.UserProfile{
		Name:         s.Name,
		Age:          s.Age,
		Domain:       s.Domain,
		Psychometric: s.Psychometric,
	}
}
