package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/job-analysis/backend/internal/model"
)

const userColumns = "id, name, email, password, company_id, role_id, change_prompt, status"

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CompanyID,
		&user.RoleID,
		&user.ChangePrompt,
		&user.Status,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserWithPrompts inserts the user row and its prompt rows in one
// transaction so a failed prompt insert never leaves a prompt-less user
// behind.
func (db *Postgres) CreateUserWithPrompts(ctx context.Context, user *model.User, prompts []model.UserPrompt) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var userID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password, company_id, role_id, change_prompt, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, user.Name, user.Email, user.Password, user.CompanyID, user.RoleID, user.ChangePrompt, user.Status).Scan(&userID)
	if err != nil {
		return 0, err
	}

	for _, p := range prompts {
		if _, err = tx.Exec(ctx, `
			INSERT INTO user_prompts (prompt_name, prompt_description, user_id, status)
			VALUES ($1, $2, $3, $4)
		`, p.PromptName, p.PromptDescription, userID, p.Status); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return userID, nil
}

// UpdateUserWithPrompts applies the partial field update and replaces
// the user's prompt set (delete all, insert the supplied list) in one
// transaction. Only the allow-listed columns of UserUpdate can change.
func (db *Postgres) UpdateUserWithPrompts(ctx context.Context, id int64, upd model.UserUpdate, prompts []model.UserPrompt) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var set []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Password != nil {
		add("password", *upd.Password)
	}
	if upd.CompanyID != nil {
		add("company_id", *upd.CompanyID)
	}
	if upd.RoleID != nil {
		add("role_id", *upd.RoleID)
	}
	if upd.ChangePrompt != nil {
		add("change_prompt", *upd.ChangePrompt)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}

	if len(set) > 0 {
		args = append(args, id)
		query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
		if _, err = tx.Exec(ctx, query, args...); err != nil {
			return err
		}
	}

	if _, err = tx.Exec(ctx, `DELETE FROM user_prompts WHERE user_id = $1`, id); err != nil {
		return err
	}

	for _, p := range prompts {
		if _, err = tx.Exec(ctx, `
			INSERT INTO user_prompts (prompt_name, prompt_description, user_id, status)
			VALUES ($1, $2, $3, $4)
		`, p.PromptName, p.PromptDescription, id, p.Status); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (db *Postgres) SetUserStatus(ctx context.Context, id int64, status int) error {
	_, err := db.Pool.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (db *Postgres) ListUsersByCompany(ctx context.Context, companyID int64, status int) ([]model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE company_id = $1 AND status = $2
		ORDER BY id
	`
	return db.scanUsers(ctx, query, companyID, status)
}

func (db *Postgres) ListUsersByStatus(ctx context.Context, status int) ([]model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE status = $1
		ORDER BY id
	`
	return db.scanUsers(ctx, query, status)
}

func (db *Postgres) scanUsers(ctx context.Context, query string, args ...interface{}) ([]model.User, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.Password,
			&u.CompanyID,
			&u.RoleID,
			&u.ChangePrompt,
			&u.Status,
		); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.User{}
	}
	return list, nil
}
