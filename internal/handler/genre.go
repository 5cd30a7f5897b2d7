package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/model"
	"github.com/iliyamo/movie-rental/internal/repository"
)

// GenreHandler serves the genre CRUD surface. No cross-entity invariants
// live here: validate shape, persist, return.
type GenreHandler struct {
	Genres *repository.GenreRepo
}

func NewGenreHandler(g *repository.GenreRepo) *GenreHandler {
	return &GenreHandler{Genres: g}
}

type genreReq struct {
	Name string `json:"name"`
}

// List handles GET /genres. An empty collection is reported as 404.
func (h *GenreHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	genres, err := h.Genres.List(ctx)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(genres) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "genres not found"})
	}
	return c.JSON(http.StatusOK, genres)
}

// Count handles GET /genres/count and returns the total number of genres
// as plain text.
func (h *GenreHandler) Count(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	n, err := h.Genres.Count(ctx)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.String(http.StatusOK, strconv.FormatInt(n, 10))
}

// ListPage handles POST /genres/pfs: paged listing driven by a small JSON
// body instead of query params, mirroring the movies endpoint.
func (h *GenreHandler) ListPage(c echo.Context) error {
	var req struct {
		CurrentPage int `json:"currentPage"`
		PageSize    int `json:"pageSize"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	genres, err := h.Genres.ListPage(ctx, req.CurrentPage, req.PageSize)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, genres)
}

// Get handles GET /genres/:id.
func (h *GenreHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	g, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGenreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, g)
}

// Create handles POST /genres (token required).
func (h *GenreHandler) Create(c echo.Context) error {
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	g := model.Genre{Name: req.Name}
	if err := g.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Genres.Create(ctx, &g); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /genres/:id (token required). Existing movies keep
// their genre snapshot; only the master record changes.
func (h *GenreHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	var req genreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	g := model.Genre{ID: id, Name: req.Name}
	if err := g.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Genres.Update(ctx, g); err != nil {
		if err == repository.ErrGenreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update genre failed"})
	}
	return c.JSON(http.StatusOK, g)
}

// Delete handles DELETE /genres/:id (admin required).
func (h *GenreHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	g, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrGenreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Genres.Delete(ctx, id); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
	}
	return c.JSON(http.StatusOK, g)
}
