package repository

import (
	"context"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// TaskQuery defines filters, sorting and pagination for listing tasks.
// Zero values mean "no filter".
type TaskQuery struct {
	Status    string
	Priority  string
	TeamID    uint64
	ProjectID uint64
	OwnerID   uint64
	TagID     uint64
	SortBy    string // created_at | priority | time_to_complete
	Order     string // asc | desc
	Page      int
	Limit     int
}

// sortColumns whitelists sortable columns; anything else falls back to
// created_at so user input never reaches the ORDER BY clause directly.
var sortColumns = map[string]string{
	"created_at":       "t.created_at",
	"priority":         "t.priority",
	"time_to_complete": "t.time_to_complete",
}

// Search returns one page of active tasks matching the query plus the total
// match count. References are resolved on the returned page only.
func (r *TaskRepo) Search(ctx context.Context, q TaskQuery) ([]model.TaskDetail, int64, error) {
	where := []string{"t.is_active = 1"}
	args := []any{}

	if q.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, q.Status)
	}
	if q.Priority != "" {
		where = append(where, "t.priority = ?")
		args = append(args, q.Priority)
	}
	if q.TeamID != 0 {
		where = append(where, "t.team_id = ?")
		args = append(args, q.TeamID)
	}
	if q.ProjectID != 0 {
		where = append(where, "t.project_id = ?")
		args = append(args, q.ProjectID)
	}
	if q.OwnerID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM task_owners o WHERE o.task_id = t.id AND o.user_id = ?)")
		args = append(args, q.OwnerID)
	}
	if q.TagID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM task_tags tt WHERE tt.task_id = t.id AND tt.tag_id = ?)")
		args = append(args, q.TagID)
	}

	cond := joinAnd(where)

	var total int64
	countSQL := "SELECT COUNT(*) FROM tasks t WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "t.created_at"
	}
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}

	dataSQL := taskSelect + " WHERE " + cond +
		" ORDER BY " + sortCol + " " + dir + " LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, (q.Page-1)*q.Limit)

	out, err := r.queryDetails(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func joinAnd(parts []string) string {
	s := parts[0]
	for _, p := range parts[1:] {
		s += " AND " + p
	}
	return s
}
