package advisor

// Psychometric is the fixed set of six self-rated traits, each on a 1-10 scale.
type Psychometric struct {
	Analytical     int `json:"analytical"`
	Creativity     int `json:"creativity"`
	Communication  int `json:"communication"`
	ProblemSolving int `json:"problem_solving"`
	Adaptability   int `json:"adaptability"`
	Leadership     int `json:"leadership"`
}

// UserProfile carries the inputs the roadmap prompt is personalized with.
type UserProfile struct {
	Name         string
	Age          int
	Domain       string
	Psychometric Psychometric
}

// CareerPlan is the roadmap call-site result. RoadmapSVG may be empty; the
// diagram is optional, the advice is not.
type CareerPlan struct {
	CareerAdvice string `json:"career_advice"`
	RoadmapSVG   string `json:"roadmap_svg"`
}

// SkillGapResult splits the delta between current skills and the target
// domain into missing and priority subsets.
type SkillGapResult struct {
	MissingSkills  []string `json:"missing_skills"`
	PrioritySkills []string `json:"priority_skills"`
}

// Empty reports whether the analysis produced nothing renderable.
func (r SkillGapResult) Empty() bool {
	return len(r.MissingSkills) == 0 && len(r.PrioritySkills) == 0
}
