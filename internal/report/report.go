// Package report computes the derived read-side views over the task
// collection: the last-week completion histogram, the pending workload
// rollup, and grouped completion counts. All functions are pure; the
// repository supplies the (already soft-delete-filtered) rows.
package report

import (
	"time"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

// dayKey is the ISO date layout used for histogram buckets.
const dayKey = "2006-01-02"

// WeekWindow returns the inclusive 7-day reporting window ending today:
// start of day six days ago through end of day today, in UTC.
func WeekWindow(now time.Time) (from, to time.Time) {
	now = now.UTC()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	from = today.AddDate(0, 0, -6)
	to = today.Add(24*time.Hour - time.Nanosecond)
	return from, to
}

// WeeklyHistogram is the completed-last-7-days report body.
type WeeklyHistogram struct {
	TotalCompleted int            `json:"totalCompleted"`
	ByDay          map[string]int `json:"completionsByDay"`
	Days           []string       `json:"days"` // bucket keys, oldest first
}

// BuildWeeklyHistogram buckets completed tasks by completion date. The map
// is dense: all 7 day keys exist even when their count is zero. Tasks
// without a completion timestamp or outside the window are ignored; the
// query should not produce them, but the histogram never trusts that.
func BuildWeeklyHistogram(now time.Time, tasks []model.TaskDetail) WeeklyHistogram {
	from, to := WeekWindow(now)
	h := WeeklyHistogram{ByDay: make(map[string]int, 7), Days: make([]string, 0, 7)}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKey)
		h.ByDay[key] = 0
		h.Days = append(h.Days, key)
	}
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		at := t.CompletedAt.UTC()
		if at.Before(from) || at.After(to) {
			continue
		}
		h.ByDay[at.Format(dayKey)]++
		h.TotalCompleted++
	}
	return h
}

// StatusRollup aggregates one pending status bucket.
type StatusRollup struct {
	Count     int     `json:"count"`
	TotalDays float64 `json:"totalDays"`
}

// PendingRollup is the pending-workload report body.
type PendingRollup struct {
	TotalPending       int                     `json:"totalPending"`
	TotalPendingDays   float64                 `json:"totalPendingDays"`
	ByStatus           map[string]StatusRollup `json:"byStatus"`
	AverageDaysPerTask float64                 `json:"averageDaysPerTask"`
}

// BuildPendingRollup sums estimated days across pending tasks and breaks
// them down per status. With no pending tasks the average is defined as 0
// rather than dividing by zero.
func BuildPendingRollup(tasks []model.Task) PendingRollup {
	r := PendingRollup{ByStatus: make(map[string]StatusRollup)}
	for _, t := range tasks {
		r.TotalPending++
		r.TotalPendingDays += t.TimeToComplete
		b := r.ByStatus[t.Status]
		b.Count++
		b.TotalDays += t.TimeToComplete
		r.ByStatus[t.Status] = b
	}
	if r.TotalPending > 0 {
		r.AverageDaysPerTask = r.TotalPendingDays / float64(r.TotalPending)
	}
	return r
}

// Grouping dimensions for the closed-tasks report.
const (
	GroupByTeam    = "team"
	GroupByOwner   = "owner"
	GroupByProject = "project"
)

// UnassignedGroup is the bucket for tasks whose team/project reference is
// absent.
const UnassignedGroup = "Unassigned"

// GroupCompleted counts completed tasks per group. Team and project group by
// the resolved reference name, falling back to UnassignedGroup. Owner
// grouping fans out: a task contributes one count to every owner it has.
// An unsupported dimension yields an empty (not nil) map without error; the
// route has always behaved that way and clients depend on the 200.
func GroupCompleted(tasks []model.TaskDetail, groupBy string) map[string]int {
	groups := make(map[string]int)
	switch groupBy {
	case GroupByTeam:
		for _, t := range tasks {
			groups[orUnassigned(t.TeamName)]++
		}
	case GroupByProject:
		for _, t := range tasks {
			groups[orUnassigned(t.ProjectName)]++
		}
	case GroupByOwner:
		for _, t := range tasks {
			for _, name := range t.OwnerNames {
				groups[name]++
			}
		}
	}
	return groups
}

func orUnassigned(name string) string {
	if name == "" {
		return UnassignedGroup
	}
	return name
}
