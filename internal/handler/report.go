package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/report"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/repository"
)

// ReportHandler serves the three derived report views. The heavy lifting is
// pure computation in the report package; this layer only fetches rows and
// shapes the envelope. Any store failure collapses into a single 500 — a
// report is never partial.
type ReportHandler struct {
	Tasks *repository.TaskRepo
}

func NewReportHandler(tasks *repository.TaskRepo) *ReportHandler {
	if tasks == nil {
		panic("nil repository passed to NewReportHandler")
	}
	return &ReportHandler{Tasks: tasks}
}

// LastWeek returns the completion histogram for the 7-day window ending
// today, together with the contributing tasks (references resolved).
func (h *ReportHandler) LastWeek(c echo.Context) error {
	now := time.Now().UTC()
	from, to := report.WeekWindow(now)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tasks, err := h.Tasks.CompletedBetween(ctx, from, to)
	if err != nil {
		return reportFailed(c)
	}
	hist := report.BuildWeeklyHistogram(now, tasks)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"totalCompleted":   hist.TotalCompleted,
			"completionsByDay": hist.ByDay,
			"days":             hist.Days,
			"tasks":            newTaskResps(tasks),
		},
	})
}

// Pending returns the pending-workload rollup.
func (h *ReportHandler) Pending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tasks, err := h.Tasks.Pending(ctx)
	if err != nil {
		return reportFailed(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    report.BuildPendingRollup(tasks),
	})
}

// ClosedTasks returns completed counts grouped by team, owner or project
// (?groupBy=, default team). An unsupported dimension is not an error; it
// produces an empty group map, which this surface has always done.
func (h *ReportHandler) ClosedTasks(c echo.Context) error {
	groupBy := c.QueryParam("groupBy")
	if groupBy == "" {
		groupBy = report.GroupByTeam
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tasks, err := h.Tasks.Completed(ctx)
	if err != nil {
		return reportFailed(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"groupBy":        groupBy,
			"totalCompleted": len(tasks),
			"groups":         report.GroupCompleted(tasks, groupBy),
		},
	})
}

func reportFailed(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false, "message": "Report generation failed",
	})
}
