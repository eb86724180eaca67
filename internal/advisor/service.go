package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"career-advisor/internal/llm"
	"career-advisor/internal/shared/metrics"
	"career-advisor/internal/shared/telemetry"
)

// DefaultRetries is the number of extra roadmap attempts after the first.
const DefaultRetries = 2

var youtubeURLRE = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com|youtu\.be)/(?:watch\?v=|playlist\?list=)[\w-]+`)

// Service runs the four generative call sites. Every method returns its
// documented fallback value alongside the error; callers surface the error as
// a warning and keep going, nothing propagates as a failure of the whole flow.
type Service struct {
	LLM     llm.Client
	Retries int
}

// NewService constructs a Service with the default retry budget.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client, Retries: DefaultRetries}
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	metrics.IncLLMCall()
	text, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("no response received: %w", err)
	}
	return text, nil
}

// ExtractSkills asks the model for a JSON array of skill strings found in the
// resume text. Any parse failure or shape mismatch yields an empty list, which
// callers treat as "fall back to manual entry".
func (s *Service) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	raw, err := s.generate(ctx, buildSkillExtractionPrompt(resumeText))
	if err != nil {
		return nil, fmt.Errorf("skill extraction: %w", err)
	}

	cleaned := StripFences(raw)
	var parsed []any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		metrics.IncLLMParseFailure()
		return nil, fmt.Errorf("skill extraction: parse failed: %w (raw: %s)", err, snippet(cleaned))
	}

	skills := make([]string, 0, len(parsed))
	for _, item := range parsed {
		str, ok := item.(string)
		if !ok {
			metrics.IncLLMParseFailure()
			return nil, fmt.Errorf("skill extraction: expected array of strings (raw: %s)", snippet(cleaned))
		}
		skills = append(skills, str)
	}
	return skills, nil
}

// GenerateRoadmap produces career advice plus an optional SVG roadmap for one
// attempt. The fallback is the zero CareerPlan.
func (s *Service) GenerateRoadmap(ctx context.Context, profile UserProfile, skills []string) (CareerPlan, error) {
	raw, err := s.generate(ctx, buildRoadmapPrompt(profile, skills))
	if err != nil {
		return CareerPlan{}, fmt.Errorf("roadmap generation: %w", err)
	}

	cleaned := StripFences(raw)
	var plan CareerPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		metrics.IncLLMParseFailure()
		return CareerPlan{}, fmt.Errorf("roadmap generation: parse failed: %w (raw: %s)", err, snippet(cleaned))
	}
	return plan, nil
}

// GenerateRoadmapWithRetry attempts roadmap generation up to Retries+1 times
// and accepts the first attempt with non-empty career advice. The SVG is taken
// as-is even when empty. Retries are immediate; the generative call is
// triggered by a human action, not a background job, so no backoff.
func (s *Service) GenerateRoadmapWithRetry(ctx context.Context, profile UserProfile, skills []string) (CareerPlan, error) {
	retries := s.Retries
	if retries < 0 {
		retries = DefaultRetries
	}
	attempts := retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		plan, err := s.GenerateRoadmap(ctx, profile, skills)
		if err != nil {
			lastErr = err
		}
		if plan.CareerAdvice != "" {
			return plan, nil
		}
		if attempt < attempts {
			telemetry.Info("advisor.roadmap.retry", map[string]any{
				"attempt":  attempt,
				"attempts": attempts,
			})
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("roadmap generation: career advice empty after %d attempts", attempts)
	}
	return CareerPlan{}, lastErr
}

// AnalyzeSkillGap identifies missing and priority skills for the target
// domain. The fallback is the zero SkillGapResult, which renders as the
// "unable to perform" placeholder.
func (s *Service) AnalyzeSkillGap(ctx context.Context, domain string, skills []string) (SkillGapResult, error) {
	raw, err := s.generate(ctx, buildSkillGapPrompt(domain, skills))
	if err != nil {
		return SkillGapResult{}, fmt.Errorf("skill gap analysis: %w", err)
	}

	cleaned := StripFences(raw)
	var result SkillGapResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		metrics.IncLLMParseFailure()
		return SkillGapResult{}, fmt.Errorf("skill gap analysis: parse failed: %w (raw: %s)", err, snippet(cleaned))
	}
	return result, nil
}

// RecommendCourses asks for YouTube course links and extracts recognized URLs
// from the free-text reply, deduplicated in first-seen order. No JSON parsing
// here; the reply is scanned by pattern alone.
func (s *Service) RecommendCourses(ctx context.Context, domain string) ([]string, error) {
	raw, err := s.generate(ctx, buildCoursesPrompt(domain))
	if err != nil {
		return nil, fmt.Errorf("course recommendation: %w", err)
	}

	matches := youtubeURLRE.FindAllString(raw, -1)
	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, u := range matches {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls, nil
}

func snippet(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
