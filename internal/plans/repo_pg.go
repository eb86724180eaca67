package plans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const planColumns = `id, session_id, name, age, domain, skills, psychometric,
       career_advice, roadmap_svg, missing_skills, priority_skills, courses, warnings, created_at`

// Create inserts a new plan.
func (r *PGRepo) Create(ctx context.Context, plan Plan) error {
	const query = `
INSERT INTO plans (
	id, session_id, name, age, domain, skills, psychometric,
	career_advice, roadmap_svg, missing_skills, priority_skills, courses, warnings, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	skills, err := marshalList(plan.Skills)
	if err != nil {
		return err
	}
	psychometric, err := json.Marshal(plan.Psychometric)
	if err != nil {
		return err
	}
	missing, err := marshalList(plan.MissingSkills)
	if err != nil {
		return err
	}
	priority, err := marshalList(plan.PrioritySkills)
	if err != nil {
		return err
	}
	courses, err := marshalList(plan.Courses)
	if err != nil {
		return err
	}
	warnings, err := marshalList(plan.Warnings)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		plan.ID,
		plan.SessionID,
		plan.Name,
		plan.Age,
		plan.Domain,
		skills,
		psychometric,
		plan.CareerAdvice,
		plan.RoadmapSVG,
		missing,
		priority,
		courses,
		warnings,
		plan.CreatedAt,
	)
	return err
}

// GetByID returns a plan scoped to its session.
func (r *PGRepo) GetByID(ctx context.Context, sessionID, planID string) (Plan, error) {
	const query = `
SELECT ` + planColumns + `
FROM plans
WHERE id = $1 AND session_id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, planID, sessionID)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, err
	}
	return plan, nil
}

// ListBySession returns plans for a session, newest first.
func (r *PGRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]Plan, error) {
	const query = `
SELECT ` + planColumns + `
FROM plans
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2`

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.DB.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Plan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, plan)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var p Plan
	var skills, psychometric, missing, priority, courses, warnings []byte
	err := row.Scan(
		&p.ID,
		&p.SessionID,
		&p.Name,
		&p.Age,
		&p.Domain,
		&skills,
		&psychometric,
		&p.CareerAdvice,
		&p.RoadmapSVG,
		&missing,
		&priority,
		&courses,
		&warnings,
		&p.CreatedAt,
	)
	if err != nil {
		return Plan{}, err
	}

	if err := unmarshalList(skills, &p.Skills); err != nil {
		return Plan{}, err
	}
	if len(psychometric) > 0 {
		if err := json.Unmarshal(psychometric, &p.Psychometric); err != nil {
			return Plan{}, err
		}
	}
	if err := unmarshalList(missing, &p.MissingSkills); err != nil {
		return Plan{}, err
	}
	if err := unmarshalList(priority, &p.PrioritySkills); err != nil {
		return Plan{}, err
	}
	if err := unmarshalList(courses, &p.Courses); err != nil {
		return Plan{}, err
	}
	if err := unmarshalList(warnings, &p.Warnings); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func marshalList(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

func unmarshalList(data []byte, target *[]string) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
