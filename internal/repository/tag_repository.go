package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// TagRepo persists tags. Tag names are stored lowercased; the unique index
// on name gives case-insensitive uniqueness.
type TagRepo struct{ DB *sql.DB }

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{DB: db} }

// Create inserts an active tag with a normalized name and returns its ID.
func (r *TagRepo) Create(ctx context.Context, name, color string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tags (name, color, is_active) VALUES (?,?,1)",
		model.NormalizeTagName(name), color)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicateTag
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all active tags in name order.
func (r *TagRepo) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,color,is_active,created_at,updated_at FROM tags WHERE is_active=1 ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID fetches an active tag.
func (r *TagRepo) GetByID(ctx context.Context, id uint64) (model.Tag, error) {
	var t model.Tag
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,color,is_active,created_at,updated_at FROM tags WHERE id=? AND is_active=1 LIMIT 1",
		id).Scan(&t.ID, &t.Name, &t.Color, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, ErrNotFound
	}
	return t, err
}

// Update overwrites name and color of an active tag, renormalizing the name.
func (r *TagRepo) Update(ctx context.Context, id uint64, name, color string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tags SET name=?, color=? WHERE id=? AND is_active=1",
		model.NormalizeTagName(name), color, id)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrDuplicateTag
	}
	return err
}

// SoftDelete deactivates a tag.
func (r *TagRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tags SET is_active=0 WHERE id=? AND is_active=1", id)
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
