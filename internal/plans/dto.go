package plans

import (
	"time"

	"career-advisor/internal/advisor"
)

// PlanResponse is the dashboard payload: one section per tab plus the
// warnings gathered while generating. Availability flags tell the client
// whether to render content or the section's placeholder.
type PlanResponse struct {
	PlanID    string          `json:"planId"`
	SessionID string          `json:"sessionId"`
	Profile   profileSection  `json:"profile"`
	Roadmap   roadmapSection  `json:"roadmap"`
	SkillGap  skillGapSection `json:"skillGap"`
	Courses   coursesSection  `json:"courses"`
	Warnings  []string        `json:"warnings"`
	CreatedAt time.Time       `json:"createdAt"`
}

type profileSection struct {
	Name         string               `json:"name"`
	Age          int                  `json:"age"`
	Domain       string               `json:"domain"`
	Skills       []string             `json:"skills"`
	Psychometric advisor.Psychometric `json:"psychometric"`
}

type roadmapSection struct {
	Available    bool   `json:"available"`
	CareerAdvice string `json:"careerAdvice"`
	RoadmapSVG   string `json:"roadmapSvg"`
}

type skillGapSection struct {
	Available      bool     `json:"available"`
	MissingSkills  []string `json:"missingSkills"`
	PrioritySkills []string `json:"prioritySkills"`
}

type coursesSection struct {
	Available bool     `json:"available"`
	URLs      []string `json:"urls"`
	QRImage   string   `json:"qrImage,omitempty"`
}

// PlanSummary is the list-view projection of a stored plan.
type PlanSummary struct {
	PlanID    string    `json:"planId"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name"`
	Warnings  int       `json:"warnings"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(plan Plan) PlanResponse {
	resp := PlanResponse{
		PlanID:    plan.ID,
		SessionID: plan.SessionID,
		Profile: profileSection{
			Name:         plan.Name,
			Age:          plan.Age,
			Domain:       plan.Domain,
			Skills:       emptyIfNil(plan.Skills),
			Psychometric: plan.Psychometric,
		},
		Roadmap: roadmapSection{
			Available:    plan.CareerAdvice != "",
			CareerAdvice: plan.CareerAdvice,
			RoadmapSVG:   plan.RoadmapSVG,
		},
		SkillGap: skillGapSection{
			Available:      len(plan.MissingSkills) > 0 || len(plan.PrioritySkills) > 0,
			MissingSkills:  emptyIfNil(plan.MissingSkills),
			PrioritySkills: emptyIfNil(plan.PrioritySkills),
		},
		Courses: coursesSection{
			Available: len(plan.Courses) > 0,
			URLs:      emptyIfNil(plan.Courses),
		},
		Warnings:  emptyIfNil(plan.Warnings),
		CreatedAt: plan.CreatedAt,
	}
	if resp.Courses.Available {
		resp.Courses.QRImage = "/api/v1/plans/" + plan.ID + "/qr.png"
	}
	return resp
}

func toSummary(plan Plan) PlanSummary {
	return PlanSummary{
		PlanID:    plan.ID,
		Domain:    plan.Domain,
		Name:      plan.Name,
		Warnings:  len(plan.Warnings),
		CreatedAt: plan.CreatedAt,
	}
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
