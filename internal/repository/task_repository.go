package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// TaskRepo persists tasks together with their owner and tag join rows.
// Project, team, owners and tags are weak references: reads resolve them to
// names via joins, never the other way around, and deleting a referenced
// record leaves the task untouched.
type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

// taskSelect is the shared projection for detail reads. Joins are LEFT so a
// task with an absent or soft-deleted project/team still comes back, with an
// empty name for the missing reference.
const taskSelect = `SELECT
		t.id, t.name, t.project_id, t.team_id, t.status, t.priority,
		t.time_to_complete, t.completed_at, t.is_active, t.created_at, t.updated_at,
		COALESCE(p.name, '') AS project_name,
		COALESCE(tm.name, '') AS team_name
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id AND p.is_active = 1
	LEFT JOIN teams tm   ON tm.id = t.team_id   AND tm.is_active = 1`

// Create inserts a task plus its owner/tag join rows and returns the new ID.
// The completion timestamp rule is applied here so a task created directly in
// Completed state carries completed_at from the start.
func (r *TaskRepo) Create(ctx context.Context, t model.Task) (uint64, error) {
	completedAt := model.CompletionTimestamp(nil, t.Status, time.Now())
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO tasks (name, project_id, team_id, status, priority, time_to_complete, completed_at, is_active)
		 VALUES (?,?,?,?,?,?,?,1)`,
		t.Name, t.ProjectID, t.TeamID, t.Status, t.Priority, t.TimeToComplete, completedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	taskID := uint64(id)
	if err := r.setOwners(ctx, taskID, t.OwnerIDs); err != nil {
		return 0, err
	}
	if err := r.setTags(ctx, taskID, t.TagIDs); err != nil {
		return 0, err
	}
	return taskID, nil
}

// GetByID fetches an active task with references resolved.
func (r *TaskRepo) GetByID(ctx context.Context, id uint64) (model.TaskDetail, error) {
	row := r.DB.QueryRowContext(ctx, taskSelect+" WHERE t.id=? AND t.is_active=1 LIMIT 1", id)
	d, err := scanTaskDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaskDetail{}, ErrNotFound
	}
	if err != nil {
		return model.TaskDetail{}, err
	}
	out := []model.TaskDetail{d}
	if err := r.resolveMembers(ctx, out); err != nil {
		return model.TaskDetail{}, err
	}
	return out[0], nil
}

// Update overwrites a task's fields and replaces its owner/tag sets. The
// completed_at invariant is enforced against the previously stored value:
// staying Completed keeps the original timestamp, entering Completed stamps
// now, leaving Completed clears it.
func (r *TaskRepo) Update(ctx context.Context, t model.Task) error {
	var prev sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		"SELECT completed_at FROM tasks WHERE id=? AND is_active=1 LIMIT 1", t.ID).Scan(&prev)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	var prevAt *time.Time
	if prev.Valid {
		prevAt = &prev.Time
	}
	completedAt := model.CompletionTimestamp(prevAt, t.Status, time.Now())

	_, err = r.DB.ExecContext(ctx,
		`UPDATE tasks SET name=?, project_id=?, team_id=?, status=?, priority=?,
		 time_to_complete=?, completed_at=? WHERE id=? AND is_active=1`,
		t.Name, t.ProjectID, t.TeamID, t.Status, t.Priority, t.TimeToComplete, completedAt, t.ID)
	if err != nil {
		return err
	}
	if err := r.replaceOwners(ctx, t.ID, t.OwnerIDs); err != nil {
		return err
	}
	return r.replaceTags(ctx, t.ID, t.TagIDs)
}

// SoftDelete deactivates a task. The join rows are kept; inactive tasks are
// invisible to every default read anyway.
func (r *TaskRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET is_active=0 WHERE id=? AND is_active=1", id)
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

// CompletedBetween returns active completed tasks whose completion time falls
// inside [from, to], references resolved. Feeds the last-week histogram.
func (r *TaskRepo) CompletedBetween(ctx context.Context, from, to time.Time) ([]model.TaskDetail, error) {
	return r.queryDetails(ctx,
		taskSelect+" WHERE t.is_active=1 AND t.status=? AND t.completed_at BETWEEN ? AND ? ORDER BY t.completed_at ASC",
		model.StatusCompleted, from, to)
}

// Completed returns every active completed task, references resolved. Feeds
// the grouped-completion report.
func (r *TaskRepo) Completed(ctx context.Context) ([]model.TaskDetail, error) {
	return r.queryDetails(ctx,
		taskSelect+" WHERE t.is_active=1 AND t.status=? ORDER BY t.completed_at ASC",
		model.StatusCompleted)
}

// Pending returns every active task that is not completed. The pending
// rollup only needs status and time_to_complete, so no joins are done.
func (r *TaskRepo) Pending(ctx context.Context) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, status, priority, time_to_complete FROM tasks
		 WHERE is_active=1 AND status <> ? ORDER BY created_at DESC`,
		model.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.Priority, &t.TimeToComplete); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// queryDetails runs a detail query and resolves owner/tag members.
func (r *TaskRepo) queryDetails(ctx context.Context, query string, args ...any) ([]model.TaskDetail, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TaskDetail{}
	for rows.Next() {
		d, err := scanTaskDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.resolveMembers(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanTaskDetail(s scanner) (model.TaskDetail, error) {
	var (
		d         model.TaskDetail
		projectID sql.NullInt64
		teamID    sql.NullInt64
		completed sql.NullTime
	)
	err := s.Scan(&d.ID, &d.Name, &projectID, &teamID, &d.Status, &d.Priority,
		&d.TimeToComplete, &completed, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		&d.ProjectName, &d.TeamName)
	if err != nil {
		return model.TaskDetail{}, err
	}
	if projectID.Valid {
		v := uint64(projectID.Int64)
		d.ProjectID = &v
	}
	if teamID.Valid {
		v := uint64(teamID.Int64)
		d.TeamID = &v
	}
	if completed.Valid {
		t := completed.Time
		d.CompletedAt = &t
	}
	return d, nil
}

// resolveMembers fills OwnerIDs/OwnerNames and TagIDs/TagNames for a batch of
// tasks using two IN-queries instead of per-task lookups.
func (r *TaskRepo) resolveMembers(ctx context.Context, tasks []model.TaskDetail) error {
	if len(tasks) == 0 {
		return nil
	}
	idx := make(map[uint64]*model.TaskDetail, len(tasks))
	args := make([]any, 0, len(tasks))
	for i := range tasks {
		idx[tasks[i].ID] = &tasks[i]
		args = append(args, tasks[i].ID)
	}
	ph := placeholders(len(args))

	ownerRows, err := r.DB.QueryContext(ctx,
		`SELECT o.task_id, u.id, u.name FROM task_owners o
		 JOIN users u ON u.id = o.user_id
		 WHERE o.task_id IN (`+ph+`) ORDER BY o.task_id, u.name`, args...)
	if err != nil {
		return err
	}
	defer ownerRows.Close()
	for ownerRows.Next() {
		var taskID, userID uint64
		var name string
		if err := ownerRows.Scan(&taskID, &userID, &name); err != nil {
			return err
		}
		if d := idx[taskID]; d != nil {
			d.OwnerIDs = append(d.OwnerIDs, userID)
			d.OwnerNames = append(d.OwnerNames, name)
		}
	}
	if err := ownerRows.Err(); err != nil {
		return err
	}

	tagRows, err := r.DB.QueryContext(ctx,
		`SELECT tt.task_id, g.id, g.name FROM task_tags tt
		 JOIN tags g ON g.id = tt.tag_id AND g.is_active = 1
		 WHERE tt.task_id IN (`+ph+`) ORDER BY tt.task_id, g.name`, args...)
	if err != nil {
		return err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var taskID, tagID uint64
		var name string
		if err := tagRows.Scan(&taskID, &tagID, &name); err != nil {
			return err
		}
		if d := idx[taskID]; d != nil {
			d.TagIDs = append(d.TagIDs, tagID)
			d.TagNames = append(d.TagNames, name)
		}
	}
	return tagRows.Err()
}

func (r *TaskRepo) setOwners(ctx context.Context, taskID uint64, ownerIDs []uint64) error {
	for _, uid := range ownerIDs {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT INTO task_owners (task_id, user_id) VALUES (?,?)", taskID, uid); err != nil {
			return err
		}
	}
	return nil
}

func (r *TaskRepo) setTags(ctx context.Context, taskID uint64, tagIDs []uint64) error {
	for _, tid := range tagIDs {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT INTO task_tags (task_id, tag_id) VALUES (?,?)", taskID, tid); err != nil {
			return err
		}
	}
	return nil
}

func (r *TaskRepo) replaceOwners(ctx context.Context, taskID uint64, ownerIDs []uint64) error {
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM task_owners WHERE task_id=?", taskID); err != nil {
		return err
	}
	return r.setOwners(ctx, taskID, ownerIDs)
}

func (r *TaskRepo) replaceTags(ctx context.Context, taskID uint64, tagIDs []uint64) error {
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM task_tags WHERE task_id=?", taskID); err != nil {
		return err
	}
	return r.setTags(ctx, taskID, tagIDs)
}

// placeholders returns "?,?,...,?" with n slots.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
