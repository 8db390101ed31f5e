package model

import "time"

// Task statuses. Every write path validates against this set.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusBlocked    = "Blocked"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ValidStatus reports whether s is one of the recognized task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the recognized priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task mirrors the `tasks` table. Project and Team are nullable weak
// references; owners and tags live in join tables and are attached by the
// repository. Tasks are soft-deleted via IsActive and default reads exclude
// inactive rows.
type Task struct {
	ID             uint64     // tasks.id
	Name           string     // tasks.name
	ProjectID      *uint64    // tasks.project_id (nullable)
	TeamID         *uint64    // tasks.team_id (nullable)
	Status         string     // tasks.status
	Priority       string     // tasks.priority
	TimeToComplete float64    // tasks.time_to_complete, estimated days, >= 0.1
	CompletedAt    *time.Time // tasks.completed_at (set iff Status == Completed)
	IsActive       bool       // tasks.is_active
	CreatedAt      time.Time  // tasks.created_at
	UpdatedAt      time.Time  // tasks.updated_at
	OwnerIDs       []uint64   // task_owners.user_id
	TagIDs         []uint64   // task_tags.tag_id
}

// TaskDetail is a task with its weak references resolved to display names at
// read time. Empty ProjectName/TeamName means the reference is absent.
type TaskDetail struct {
	Task
	ProjectName string
	TeamName    string
	OwnerNames  []string
	TagNames    []string
}

// CompletionTimestamp derives the completed_at value for a task write.
// Invariant: the timestamp is set iff the status is Completed. A task already
// carrying a timestamp keeps it while the status stays Completed, so repeated
// saves never overwrite the original completion time; any other status clears
// it.
func CompletionTimestamp(prev *time.Time, status string, now time.Time) *time.Time {
	if status != StatusCompleted {
		return nil
	}
	if prev != nil {
		return prev
	}
	t := now.UTC()
	return &t
}
