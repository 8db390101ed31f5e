package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// TeamRepo persists teams. Deletes are soft: rows flip is_active and every
// default read filters on it.
type TeamRepo struct{ DB *sql.DB }

func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{DB: db} }

// Create inserts an active team and returns its ID.
func (r *TeamRepo) Create(ctx context.Context, name, description string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO teams (name, description, is_active) VALUES (?,?,1)",
		name, description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all active teams, newest first.
func (r *TeamRepo) List(ctx context.Context) ([]model.Team, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,is_active,created_at,updated_at FROM teams WHERE is_active=1 ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Team{}
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID fetches an active team.
func (r *TeamRepo) GetByID(ctx context.Context, id uint64) (model.Team, error) {
	var t model.Team
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,description,is_active,created_at,updated_at FROM teams WHERE id=? AND is_active=1 LIMIT 1",
		id).Scan(&t.ID, &t.Name, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Team{}, ErrNotFound
	}
	return t, err
}

// Update overwrites name and description of an active team.
func (r *TeamRepo) Update(ctx context.Context, id uint64, name, description string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE teams SET name=?, description=? WHERE id=? AND is_active=1",
		name, description, id)
	return err
}

// SoftDelete deactivates a team. Deleting an unknown or already-deleted team
// reports ErrNotFound.
func (r *TeamRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE teams SET is_active=0 WHERE id=? AND is_active=1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
