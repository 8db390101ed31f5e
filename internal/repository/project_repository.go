package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// ProjectRepo persists projects with the same soft-delete discipline as
// TeamRepo.
type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

// Create inserts an active project and returns its ID.
func (r *ProjectRepo) Create(ctx context.Context, name, description string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO projects (name, description, is_active) VALUES (?,?,1)",
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

// List returns all active projects, newest first.
func (r *ProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,is_active,created_at,updated_at FROM projects WHERE is_active=1 ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches an active project.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	var p model.Project
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,description,is_active,created_at,updated_at FROM projects WHERE id=? AND is_active=1 LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	return p, err
}

// Update overwrites name and description of an active project.
func (r *ProjectRepo) Update(ctx context.Context, id uint64, name, description string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET name=?, description=? WHERE id=? AND is_active=1",
		name, description, id)
	return err
}

// SoftDelete deactivates a project.
func (r *ProjectRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET is_active=0 WHERE id=? AND is_active=1", id)
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
