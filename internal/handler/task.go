package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/queue"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/repository"
	queue_publisher "github.com/piyushgyl01/FSP1-Assignment-Backend/internal/service"
)

// TaskHandler implements the task CRUD surface.
type TaskHandler struct {
	Tasks *repository.TaskRepo
}

func NewTaskHandler(tasks *repository.TaskRepo) *TaskHandler {
	if tasks == nil {
		panic("nil repository passed to NewTaskHandler")
	}
	return &TaskHandler{Tasks: tasks}
}

// ----- DTOs -----

type taskReq struct {
	Name           string   `json:"name"`
	Project        *uint64  `json:"project"`
	Team           *uint64  `json:"team"`
	Owners         []uint64 `json:"owners"`
	Tags           []uint64 `json:"tags"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	TimeToComplete float64  `json:"timeToComplete"`
}

// validate normalizes defaults and returns field-level messages for a 400.
func (r *taskReq) validate() []string {
	var msgs []string
	if r.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if r.Status == "" {
		r.Status = model.StatusToDo
	} else if !model.ValidStatus(r.Status) {
		msgs = append(msgs, "status must be one of: To Do, In Progress, Completed, Blocked")
	}
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	} else if !model.ValidPriority(r.Priority) {
		msgs = append(msgs, "priority must be one of: Low, Medium, High")
	}
	if r.TimeToComplete < 0.1 {
		msgs = append(msgs, "timeToComplete must be at least 0.1 days")
	}
	return msgs
}

func (r *taskReq) toModel() model.Task {
	return model.Task{
		Name:           r.Name,
		ProjectID:      r.Project,
		TeamID:         r.Team,
		OwnerIDs:       r.Owners,
		TagIDs:         r.Tags,
		Status:         r.Status,
		Priority:       r.Priority,
		TimeToComplete: r.TimeToComplete,
	}
}

// refPart is a resolved weak reference in a task response.
type refPart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type taskResp struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Project        *refPart   `json:"project"`
	Team           *refPart   `json:"team"`
	Owners         []refPart  `json:"owners"`
	Tags           []refPart  `json:"tags"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	TimeToComplete float64    `json:"timeToComplete"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func newTaskResp(d model.TaskDetail) taskResp {
	r := taskResp{
		ID:             d.ID,
		Name:           d.Name,
		Owners:         []refPart{},
		Tags:           []refPart{},
		Status:         d.Status,
		Priority:       d.Priority,
		TimeToComplete: d.TimeToComplete,
		CompletedAt:    d.CompletedAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.ProjectID != nil {
		r.Project = &refPart{ID: *d.ProjectID, Name: d.ProjectName}
	}
	if d.TeamID != nil {
		r.Team = &refPart{ID: *d.TeamID, Name: d.TeamName}
	}
	for i, id := range d.OwnerIDs {
		r.Owners = append(r.Owners, refPart{ID: id, Name: d.OwnerNames[i]})
	}
	for i, id := range d.TagIDs {
		r.Tags = append(r.Tags, refPart{ID: id, Name: d.TagNames[i]})
	}
	return r
}

func newTaskResps(details []model.TaskDetail) []taskResp {
	out := make([]taskResp, 0, len(details))
	for _, d := range details {
		out = append(out, newTaskResp(d))
	}
	return out
}

// ----- Handlers -----

// Create inserts a task and returns it with references resolved.
func (h *TaskHandler) Create(c echo.Context) error {
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if msgs := req.validate(); len(msgs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msgs[0], "errors": msgs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Tasks.Create(ctx, req.toModel())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create task"})
	}
	d, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create task"})
	}
	if d.Status == model.StatusCompleted {
		h.announceCompletion(c, d)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Task created successfully",
		"data":    newTaskResp(d),
	})
}

// List returns one filtered, paginated page of tasks.
func (h *TaskHandler) List(c echo.Context) error {
	q := repository.TaskQuery{
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
		TeamID:    queryID(c, "team"),
		ProjectID: queryID(c, "project"),
		OwnerID:   queryID(c, "owner"),
		TagID:     queryID(c, "tag"),
		SortBy:    c.QueryParam("sortBy"),
		Order:     c.QueryParam("order"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 20),
	}
	if q.Status != "" && !model.ValidStatus(q.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Unknown status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, total, err := h.Tasks.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch tasks"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   total,
		"data":    newTaskResps(details),
	})
}

// GetOne returns a single task with references resolved.
func (h *TaskHandler) GetOne(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid task id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch task"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": newTaskResp(d)})
}

// Update overwrites a task. The repository re-applies the completion
// timestamp rule against the stored row.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid task id"})
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if msgs := req.validate(); len(msgs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msgs[0], "errors": msgs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prev, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update task"})
	}

	t := req.toModel()
	t.ID = id
	if err := h.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update task"})
	}
	d, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update task"})
	}
	if prev.Status != model.StatusCompleted && d.Status == model.StatusCompleted {
		h.announceCompletion(c, d)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Task updated successfully",
		"data":    newTaskResp(d),
	})
}

// Delete soft-deletes a task.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid task id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tasks.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete task"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Task deleted successfully"})
}

// announceCompletion publishes a task.completed event. Publishing is
// fire-and-forget: a broker outage is logged and the request succeeds
// anyway.
func (h *TaskHandler) announceCompletion(c echo.Context, d model.TaskDetail) {
	ev := queue.TaskCompletedEvent{
		TaskID:      d.ID,
		Name:        d.Name,
		ProjectName: d.ProjectName,
		TeamName:    d.TeamName,
		OwnerNames:  d.OwnerNames,
	}
	if d.CompletedAt != nil {
		ev.CompletedAt = d.CompletedAt.UTC().Format(time.RFC3339)
	}
	if err := queue_publisher.PublishTaskCompleted(context.Background(), ev); err != nil {
		c.Logger().Warnf("task %d: publish completion event failed: %v", d.ID, err)
	}
}

// ----- param helpers -----

func paramID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func queryID(c echo.Context, name string) uint64 {
	n, _ := strconv.ParseUint(c.QueryParam(name), 10, 64)
	return n
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
