package report

import (
	"testing"
	"time"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

func completedTask(t *testing.T, at time.Time) model.TaskDetail {
	t.Helper()
	return model.TaskDetail{
		Task: model.Task{Status: model.StatusCompleted, CompletedAt: &at},
	}
}

func TestWeekWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC)
	from, to := WeekWindow(now)

	if want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if !to.After(time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("to = %v, should cover the whole of today", to)
	}
	if !to.Before(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v, must not leak into tomorrow", to)
	}
}

func TestBuildWeeklyHistogram_DenseKeys(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	h := BuildWeeklyHistogram(now, nil)

	if len(h.ByDay) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(h.ByDay))
	}
	if len(h.Days) != 7 {
		t.Fatalf("expected 7 ordered keys, got %d", len(h.Days))
	}
	if h.Days[0] != "2026-03-09" || h.Days[6] != "2026-03-15" {
		t.Errorf("unexpected key range: %v", h.Days)
	}
	for _, day := range h.Days {
		if n, ok := h.ByDay[day]; !ok || n != 0 {
			t.Errorf("bucket %s should exist and be 0, got %d (present=%v)", day, n, ok)
		}
	}
	if h.TotalCompleted != 0 {
		t.Errorf("total = %d, want 0", h.TotalCompleted)
	}
}

func TestBuildWeeklyHistogram_Counts(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tasks := []model.TaskDetail{
		completedTask(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)),
		completedTask(t, time.Date(2026, 3, 15, 22, 30, 0, 0, time.UTC)),
		completedTask(t, time.Date(2026, 3, 9, 0, 0, 1, 0, time.UTC)),
		// Outside the window: must be ignored, not counted elsewhere.
		completedTask(t, time.Date(2026, 3, 8, 23, 59, 59, 0, time.UTC)),
	}
	h := BuildWeeklyHistogram(now, tasks)

	if h.TotalCompleted != 3 {
		t.Errorf("total = %d, want 3", h.TotalCompleted)
	}
	if h.ByDay["2026-03-15"] != 2 {
		t.Errorf("today = %d, want 2", h.ByDay["2026-03-15"])
	}
	if h.ByDay["2026-03-09"] != 1 {
		t.Errorf("oldest day = %d, want 1", h.ByDay["2026-03-09"])
	}
	if len(h.ByDay) != 7 {
		t.Errorf("expected 7 buckets, got %d", len(h.ByDay))
	}
}

func TestBuildPendingRollup(t *testing.T) {
	tasks := []model.Task{
		{Status: model.StatusToDo, TimeToComplete: 2},
		{Status: model.StatusInProgress, TimeToComplete: 3},
		{Status: model.StatusInProgress, TimeToComplete: 5},
	}
	r := BuildPendingRollup(tasks)

	if r.TotalPending != 3 {
		t.Errorf("totalPending = %d, want 3", r.TotalPending)
	}
	if r.TotalPendingDays != 10 {
		t.Errorf("totalPendingDays = %v, want 10", r.TotalPendingDays)
	}
	if want := 10.0 / 3.0; r.AverageDaysPerTask != want {
		t.Errorf("average = %v, want %v", r.AverageDaysPerTask, want)
	}
	if b := r.ByStatus[model.StatusInProgress]; b.Count != 2 || b.TotalDays != 8 {
		t.Errorf("In Progress bucket = %+v, want count 2 totalDays 8", b)
	}
	if b := r.ByStatus[model.StatusToDo]; b.Count != 1 || b.TotalDays != 2 {
		t.Errorf("To Do bucket = %+v, want count 1 totalDays 2", b)
	}
}

func TestBuildPendingRollup_Empty(t *testing.T) {
	r := BuildPendingRollup(nil)
	if r.AverageDaysPerTask != 0 {
		t.Errorf("average for zero tasks = %v, want 0", r.AverageDaysPerTask)
	}
	if r.TotalPending != 0 || r.TotalPendingDays != 0 {
		t.Errorf("unexpected totals: %+v", r)
	}
}

func TestGroupCompleted_ByTeam(t *testing.T) {
	tasks := []model.TaskDetail{
		{TeamName: "Platform"},
		{TeamName: "Platform"},
		{TeamName: ""},
	}
	g := GroupCompleted(tasks, GroupByTeam)

	if g["Platform"] != 2 {
		t.Errorf("Platform = %d, want 2", g["Platform"])
	}
	if g[UnassignedGroup] != 1 {
		t.Errorf("Unassigned = %d, want 1", g[UnassignedGroup])
	}
}

func TestGroupCompleted_OwnerFanOut(t *testing.T) {
	// One task with two owners counts once per owner.
	tasks := []model.TaskDetail{
		{OwnerNames: []string{"Asha", "Bram"}},
	}
	g := GroupCompleted(tasks, GroupByOwner)

	if g["Asha"] != 1 || g["Bram"] != 1 {
		t.Errorf("fan-out mismatch: %v", g)
	}
	if len(g) != 2 {
		t.Errorf("expected 2 owner buckets, got %d", len(g))
	}
}

func TestGroupCompleted_UnknownDimension(t *testing.T) {
	tasks := []model.TaskDetail{{TeamName: "Platform"}}
	g := GroupCompleted(tasks, "priority")

	if g == nil {
		t.Fatal("unknown dimension should yield an empty map, not nil")
	}
	if len(g) != 0 {
		t.Errorf("unknown dimension should yield no groups, got %v", g)
	}
}
