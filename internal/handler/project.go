package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/repository"
)

// ProjectHandler implements the project CRUD surface.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
}

func NewProjectHandler(projects *repository.ProjectRepo) *ProjectHandler {
	if projects == nil {
		panic("nil repository passed to NewProjectHandler")
	}
	return &ProjectHandler{Projects: projects}
}

type projectReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type projectResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProjectResp(p model.Project) projectResp {
	return projectResp{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt}
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Projects.Create(ctx, req.Name, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create project"})
	}
	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create project"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true, "message": "Project created successfully", "data": newProjectResp(p),
	})
}

func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	projects, err := h.Projects.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch projects"})
	}
	out := make([]projectResp, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(out), "data": out})
}

func (h *ProjectHandler) GetOne(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid project id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch project"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": newProjectResp(p)})
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid project id"})
	}
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update project"})
	}
	if err := h.Projects.Update(ctx, id, req.Name, req.Description); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update project"})
	}
	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update project"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true, "message": "Project updated successfully", "data": newProjectResp(p),
	})
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid project id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Projects.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete project"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Project deleted successfully"})
}
