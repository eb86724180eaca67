package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-advisor/internal/advisor"
	"career-advisor/internal/extract"
	"career-advisor/internal/shared/telemetry"
)

// Service contains business logic for session state.
type Service struct {
	Repo    Repo
	Advisor *advisor.Service
}

// ResumeResult is the outcome of attaching a resume. Extraction and skill
// extraction never fail the operation; their problems surface as warnings.
type ResumeResult struct {
	Session      Session
	ResumeText   string
	Skills       []string
	Warnings     []string
	ManualEntry  bool
	ParsedOK     bool
	SkillsFromAI bool
}

// getOrCreate loads the session, creating an empty one on first touch.
func (s *Service) getOrCreate(ctx context.Context, id string) (Session, error) {
	session, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{ID: id}, nil
		}
		return Session{}, err
	}
	return session, nil
}

// UpdateProfile stores the user's profile fields. A new plan request after a
// profile change re-derives everything from the stored values.
func (s *Service) UpdateProfile(ctx context.Context, id, name, domain string, age int, traits advisor.Psychometric) (Session, error) {
	session, err := s.getOrCreate(ctx, id)
	if err != nil {
		return Session{}, err
	}

	session.Name = strings.TrimSpace(name)
	session.Domain = strings.TrimSpace(domain)
	session.Age = age
	session.Psychometric = traits
	session.LastPlanID = ""
	session.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Put(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// AttachResume extracts text from the uploaded file and runs AI skill
// extraction on success. Extraction failures degrade to empty text plus a
// warning; AI failures degrade to manual skill entry. Nothing here returns a
// hard error except repo access itself.
func (s *Service) AttachResume(ctx context.Context, id, fileName, mimeType string, data []byte) (ResumeResult, error) {
	session, err := s.getOrCreate(ctx, id)
	if err != nil {
		return ResumeResult{}, err
	}

	result := ResumeResult{}

	text, extractErr := extract.Text(ctx, data, mimeType, fileName)
	if extractErr != nil {
		telemetry.Warn("resume.extract.failed", map[string]any{
			"session_id": id,
			"file_name":  fileName,
			"mime_type":  mimeType,
			"error":      extractErr.Error(),
		})
		result.Warnings = append(result.Warnings,
			"Resume parsing failed. Please check the file format or try another file.")
	}

	session.ResumeUploaded = true
	session.ResumeFileName = fileName
	session.ResumeText = text
	session.Skills = nil
	session.SkillSource = ""
	session.LastPlanID = ""
	session.UpdatedAt = time.Now().UTC()

	result.ResumeText = text
	result.ParsedOK = text != ""

	if text == "" {
		result.ManualEntry = true
		if extractErr == nil {
			result.Warnings = append(result.Warnings,
				"Could not parse the uploaded file. Please ensure it's a valid PDF or Word document.")
		}
	} else {
		skills, skillErr := s.Advisor.ExtractSkills(ctx, text)
		if skillErr != nil {
			telemetry.Warn("resume.skills.failed", map[string]any{
				"session_id": id,
				"error":      skillErr.Error(),
			})
			result.Warnings = append(result.Warnings,
				"AI could not reliably detect skills from your resume. Please enter your key skills manually.")
		}
		if len(skills) == 0 {
			result.ManualEntry = true
		} else {
			session.Skills = skills
			session.SkillSource = SkillSourceAI
			result.Skills = skills
			result.SkillsFromAI = true
		}
	}

	if err := s.Repo.Put(ctx, session); err != nil {
		return ResumeResult{}, err
	}
	result.Session = session
	return result, nil
}

// SetSkills stores manually entered skills: comma separated, trimmed, empty
// entries dropped.
func (s *Service) SetSkills(ctx context.Context, id, raw string) (Session, error) {
	session, err := s.getOrCreate(ctx, id)
	if err != nil {
		return Session{}, err
	}

	session.Skills = ParseSkillList(raw)
	session.SkillSource = SkillSourceManual
	session.LastPlanID = ""
	session.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Put(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Get returns the current session state.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.getOrCreate(ctx, id)
}

// RecordPlan marks the session as having generated a plan.
func (s *Service) RecordPlan(ctx context.Context, id, planID string) error {
	session, err := s.getOrCreate(ctx, id)
	if err != nil {
		return err
	}
	session.LastPlanID = planID
	session.UpdatedAt = time.Now().UTC()
	return s.Repo.Put(ctx, session)
}

// ParseSkillList splits a comma-separated skill string, trimming whitespace
// and dropping empty entries.
func ParseSkillList(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
