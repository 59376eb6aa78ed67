package db

import (
	"context"

	"github.com/job-analysis/backend/internal/model"
)

func (db *Postgres) GetCompanyRef(ctx context.Context, id int64) (*model.CompanyRef, error) {
	var company model.CompanyRef
	err := db.Pool.QueryRow(ctx, `
		SELECT id, company_name FROM company WHERE id = $1
	`, id).Scan(&company.ID, &company.CompanyName)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (db *Postgres) GetRoleRef(ctx context.Context, id int64) (*model.RoleRef, error) {
	var role model.RoleRef
	err := db.Pool.QueryRow(ctx, `
		SELECT id, role_name FROM role WHERE id = $1
	`, id).Scan(&role.ID, &role.RoleName)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (db *Postgres) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, role_name, status FROM role ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Role
	for rows.Next() {
		var r model.Role
		if err := rows.Scan(&r.ID, &r.RoleName, &r.Status); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

func (db *Postgres) ListUserPrompts(ctx context.Context) ([]model.UserPrompt, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, prompt_name, prompt_description, user_id, status
		FROM user_prompts
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.UserPrompt
	for rows.Next() {
		var p model.UserPrompt
		if err := rows.Scan(&p.ID, &p.PromptName, &p.PromptDescription, &p.UserID, &p.Status); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (db *Postgres) ListProfileMatches(ctx context.Context) ([]model.ProfileMatch, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, job_id, match_score, total_token_used, total_cost
		FROM profile_match
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.ProfileMatch
	for rows.Next() {
		var m model.ProfileMatch
		if err := rows.Scan(&m.ID, &m.UserID, &m.JobID, &m.MatchScore, &m.TotalTokenUsed, &m.TotalCost); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
