package plans

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-advisor/internal/advisor"
	"career-advisor/internal/sessions"
)

type scriptedClient struct {
	responses []string
	calls     int
}

func (c *scriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	i := c.calls
	c.calls++
	if i >= len(c.responses) {
		i = len(c.responses) - 1
	}
	if i < 0 {
		return "", nil
	}
	return c.responses[i], nil
}

type fakeSessions struct {
	session  sessions.Session
	recorded string
}

func (f *fakeSessions) Get(ctx context.Context, id string) (sessions.Session, error) {
	s := f.session
	s.ID = id
	return s, nil
}

func (f *fakeSessions) RecordPlan(ctx context.Context, id, planID string) error {
	f.recorded = planID
	return nil
}

func readySession() sessions.Session {
	return sessions.Session{
		Name:   "Asha",
		Age:    25,
		Domain: "Data Science",
		Skills: []string{"Python", "SQL"},
		Psychometric: advisor.Psychometric{
			Analytical: 8, Creativity: 6, Communication: 7,
			ProblemSolving: 8, Adaptability: 7, Leadership: 5,
		},
	}
}

func newTestService(client *scriptedClient, session sessions.Session) (*Service, *fakeSessions) {
	src := &fakeSessions{session: session}
	svc := &Service{
		Repo:     NewMemoryRepo(),
		Sessions: src,
		Advisor:  advisor.NewService(client),
	}
	return svc, src
}

const (
	goodRoadmap = "```json\n{\"career_advice\": \"Focus on ML fundamentals.\", \"roadmap_svg\": \"<svg/>\"}\n```"
	goodGap     = `{"missing_skills": ["TensorFlow"], "priority_skills": ["Statistics"]}`
	goodCourses = "Try https://www.youtube.com/watch?v=abc123DEF45 and https://youtu.be/watch?v=xyz987"
)

func TestGenerate_BlockedWithoutPrerequisites(t *testing.T) {
	client := &scriptedClient{}
	svc, _ := newTestService(client, sessions.Session{})

	_, err := svc.Generate(context.Background(), "s1")

	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, []string{"name", "domain", "skills"}, blocked.Missing)
	assert.Zero(t, client.calls, "gating must reject before any model call")
}

func TestGenerate_BlockedOnMissingSkillsOnly(t *testing.T) {
	session := readySession()
	session.Skills = nil
	client := &scriptedClient{}
	svc, _ := newTestService(client, session)

	_, err := svc.Generate(context.Background(), "s1")

	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, []string{"skills"}, blocked.Missing)
	assert.Zero(t, client.calls)
}

func TestGenerate_AllSectionsSucceed(t *testing.T) {
	client := &scriptedClient{responses: []string{goodRoadmap, goodGap, goodCourses}}
	svc, src := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "Focus on ML fundamentals.", plan.CareerAdvice)
	assert.Equal(t, "<svg/>", plan.RoadmapSVG)
	assert.Equal(t, []string{"TensorFlow"}, plan.MissingSkills)
	assert.Equal(t, []string{"Statistics"}, plan.PrioritySkills)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=abc123DEF45",
		"https://youtu.be/watch?v=xyz987",
	}, plan.Courses)
	assert.Empty(t, plan.Warnings)
	assert.Equal(t, 3, client.calls, "one call per generative section")
	assert.Equal(t, plan.ID, src.recorded, "plan recorded on the session")

	stored, err := svc.Get(context.Background(), "s1", plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.CareerAdvice, stored.CareerAdvice)
}

func TestGenerate_SkillGapFailureDegradesSectionOnly(t *testing.T) {
	client := &scriptedClient{responses: []string{goodRoadmap, "not json at all", goodCourses}}
	svc, _ := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err, "a failed section never fails the plan")

	assert.Equal(t, "Focus on ML fundamentals.", plan.CareerAdvice)
	assert.Empty(t, plan.MissingSkills)
	assert.Empty(t, plan.PrioritySkills)
	assert.NotEmpty(t, plan.Courses)
	assert.Contains(t, plan.Warnings, msgNoSkillGap)
}

func TestGenerate_RoadmapExhaustsRetries(t *testing.T) {
	// Three empty-advice attempts, then the remaining sections.
	empty := `{"career_advice": "", "roadmap_svg": ""}`
	client := &scriptedClient{responses: []string{empty, empty, empty, goodGap, goodCourses}}
	svc, _ := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err)

	assert.Empty(t, plan.CareerAdvice)
	assert.Contains(t, plan.Warnings, msgNoAdvice)
	assert.Equal(t, []string{"TensorFlow"}, plan.MissingSkills)
	assert.Equal(t, 5, client.calls, "three roadmap attempts plus gap and courses")
}

func TestGenerate_NoCoursesFoundWarns(t *testing.T) {
	client := &scriptedClient{responses: []string{goodRoadmap, goodGap, "no links here"}}
	svc, _ := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err)

	assert.Empty(t, plan.Courses)
	assert.Contains(t, plan.Warnings, msgNoCourses)
}

func TestCoursesQR(t *testing.T) {
	client := &scriptedClient{responses: []string{goodRoadmap, goodGap, goodCourses}}
	svc, _ := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err)

	image, err := svc.CoursesQR(context.Background(), "s1", plan.ID)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(image))
	require.NoError(t, err, "QR payload must be a valid PNG")
}

func TestCoursesQR_NoCourses(t *testing.T) {
	client := &scriptedClient{responses: []string{goodRoadmap, goodGap, "nothing"}}
	svc, _ := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err)

	_, err = svc.CoursesQR(context.Background(), "s1", plan.ID)
	require.ErrorIs(t, err, ErrNoCourses)
}

func TestGet_ScopedToSession(t *testing.T) {
	client := &scriptedClient{responses: []string{goodRoadmap, goodGap, goodCourses}}
	svc, _ := newTestService(client, readySession())

	plan, err := svc.Generate(context.Background(), "s1")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "someone-else", plan.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
