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

// TeamHandler implements the team CRUD surface.
type TeamHandler struct {
	Teams *repository.TeamRepo
}

func NewTeamHandler(teams *repository.TeamRepo) *TeamHandler {
	if teams == nil {
		panic("nil repository passed to NewTeamHandler")
	}
	return &TeamHandler{Teams: teams}
}

type teamReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type teamResp struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newTeamResp(t model.Team) teamResp {
	return teamResp{ID: t.ID, Name: t.Name, Description: t.Description, CreatedAt: t.CreatedAt}
}

func (h *TeamHandler) Create(c echo.Context) error {
	var req teamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Teams.Create(ctx, req.Name, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create team"})
	}
	t, err := h.Teams.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create team"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true, "message": "Team created successfully", "data": newTeamResp(t),
	})
}

func (h *TeamHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	teams, err := h.Teams.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch teams"})
	}
	out := make([]teamResp, 0, len(teams))
	for _, t := range teams {
		out = append(out, newTeamResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(out), "data": out})
}

func (h *TeamHandler) GetOne(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid team id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch team"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": newTeamResp(t)})
}

func (h *TeamHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid team id"})
	}
	var req teamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Teams.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update team"})
	}
	if err := h.Teams.Update(ctx, id, req.Name, req.Description); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update team"})
	}
	t, err := h.Teams.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update team"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true, "message": "Team updated successfully", "data": newTeamResp(t),
	})
}

func (h *TeamHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid team id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Teams.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete team"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Team deleted successfully"})
}
