package handler

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/repository"
)

// TagHandler implements the tag CRUD surface. The random source used for
// palette assignment is injected so tests can seed it; *rand.Rand is not
// safe for concurrent use, hence the mutex.
type TagHandler struct {
	Tags *repository.TagRepo

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTagHandler(tags *repository.TagRepo, rng *rand.Rand) *TagHandler {
	if tags == nil || rng == nil {
		panic("nil dependency passed to NewTagHandler")
	}
	return &TagHandler{Tags: tags, rng: rng}
}

func (h *TagHandler) pickColor() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return model.PickTagColor(h.rng)
}

type tagReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type tagResp struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func newTagResp(t model.Tag) tagResp {
	return tagResp{ID: t.ID, Name: t.Name, Color: t.Color}
}

// Create inserts a tag. An omitted color gets one of the 12 palette values;
// a provided color must be a well-formed hex value.
func (h *TagHandler) Create(c echo.Context) error {
	var req tagReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if model.NormalizeTagName(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}
	if req.Color == "" {
		req.Color = h.pickColor()
	} else if !model.ValidColor(req.Color) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "color must be a hex value like #22C55E"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Tags.Create(ctx, req.Name, req.Color)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTag) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Tag already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create tag"})
	}
	t, err := h.Tags.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to create tag"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true, "message": "Tag created successfully", "data": newTagResp(t),
	})
}

func (h *TagHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tags, err := h.Tags.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch tags"})
	}
	out := make([]tagResp, 0, len(tags))
	for _, t := range tags {
		out = append(out, newTagResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(out), "data": out})
}

func (h *TagHandler) GetOne(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid tag id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Tag not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to fetch tag"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": newTagResp(t)})
}

func (h *TagHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid tag id"})
	}
	var req tagReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}
	if model.NormalizeTagName(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name is required"})
	}
	if req.Color != "" && !model.ValidColor(req.Color) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "color must be a hex value like #22C55E"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Tag not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update tag"})
	}
	if req.Color == "" {
		req.Color = existing.Color
	}
	if err := h.Tags.Update(ctx, id, req.Name, req.Color); err != nil {
		if errors.Is(err, repository.ErrDuplicateTag) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Tag already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update tag"})
	}
	t, err := h.Tags.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to update tag"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true, "message": "Tag updated successfully", "data": newTagResp(t),
	})
}

func (h *TagHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid tag id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tags.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Tag not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to delete tag"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Tag deleted successfully"})
}
