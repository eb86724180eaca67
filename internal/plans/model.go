package plans

import (
	"time"

	"career-advisor/internal/advisor"
)

// Plan is one generated career plan: the profile snapshot it was derived from
// plus the outputs of the generative steps. Sections that failed stay empty
// and their problems are recorded in Warnings.
type Plan struct {
	ID             string
	SessionID      string
	Name           string
	Age            int
	Domain         string
	Skills         []string
	Psychometric   advisor.Psychometric
	CareerAdvice   string
	RoadmapSVG     string
	MissingSkills  []string
	PrioritySkills []string
	Courses        []string
	Warnings       []string
	CreatedAt      time.Time
}
