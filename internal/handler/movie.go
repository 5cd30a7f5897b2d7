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

// MovieHandler serves the movie CRUD surface. Create and update resolve
// the referenced genre and embed a snapshot of it; the stock counter is
// accepted here only at create/update time, every later stock change goes
// through the rental workflow.
type MovieHandler struct {
	Movies *repository.MovieRepo
	Genres *repository.GenreRepo
}

func NewMovieHandler(m *repository.MovieRepo, g *repository.GenreRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Genres: g}
}

type movieReq struct {
	Title           string  `json:"title"`
	GenreID         uint64  `json:"genreId"`
	DailyRentalRate float64 `json:"dailyRentalRate"`
	NumberInStock   uint32  `json:"numberInStock"`
	Liked           bool    `json:"liked"`
}

// buildMovie resolves the genre reference and assembles a validated movie.
// The returned status is 0 on success.
func (h *MovieHandler) buildMovie(ctx context.Context, c echo.Context, req movieReq, id uint64) (model.Movie, int) {
	genre, err := h.Genres.GetByID(ctx, req.GenreID)
	if err != nil {
		if err == repository.ErrGenreNotFound {
			return model.Movie{}, http.StatusNotFound
		}
		c.Logger().Error(err)
		return model.Movie{}, http.StatusInternalServerError
	}
	m := model.Movie{
		ID:              id,
		Title:           req.Title,
		Genre:           model.GenreSnapshot{ID: genre.ID, Name: genre.Name},
		DailyRentalRate: req.DailyRentalRate,
		NumberInStock:   req.NumberInStock,
		Liked:           req.Liked,
	}
	if err := m.Validate(); err != nil {
		return model.Movie{}, http.StatusBadRequest
	}
	return m, 0
}

// List handles GET /movies. An empty collection is reported as 404.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	movies, err := h.Movies.List(ctx)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(movies) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movies not found"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Count handles POST /movies/count: the body optionally narrows the count
// by title prefix and genre name. Returns the count as plain text.
func (h *MovieHandler) Count(c echo.Context) error {
	var req struct {
		Title     string `json:"title"`
		GenreName string `json:"genreName"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	n, err := h.Movies.Count(ctx, repository.MovieFilter{TitlePrefix: req.Title, GenreName: req.GenreName})
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.String(http.StatusOK, strconv.FormatInt(n, 10))
}

// ListPage handles POST /movies/pfs: paged, filtered, sorted listing.
func (h *MovieHandler) ListPage(c echo.Context) error {
	var req struct {
		PageSize    int    `json:"pageSize"`
		CurrentPage int    `json:"currentPage"`
		Title       string `json:"title"`
		GenreName   string `json:"genreName"`
		SortColumn  struct {
			Path  string `json:"path"`
			Order string `json:"order"`
		} `json:"sortColumn"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	movies, err := h.Movies.ListPage(ctx,
		repository.MovieFilter{TitlePrefix: req.Title, GenreName: req.GenreName},
		req.CurrentPage, req.PageSize, req.SortColumn.Path, req.SortColumn.Order)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /movies (token required). 404 when the referenced
// genre does not exist.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, status := h.buildMovie(ctx, c, req, 0)
	switch status {
	case 0:
	case http.StatusNotFound:
		return c.JSON(status, echo.Map{"error": "genre not found"})
	case http.StatusBadRequest:
		return c.JSON(status, echo.Map{"error": "invalid movie"})
	default:
		return c.JSON(status, echo.Map{"error": "database error"})
	}
	if err := h.Movies.Create(ctx, &m); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id (token required). The genre snapshot is
// re-resolved from the submitted genreId.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, status := h.buildMovie(ctx, c, req, id)
	switch status {
	case 0:
	case http.StatusNotFound:
		return c.JSON(status, echo.Map{"error": "genre not found"})
	case http.StatusBadRequest:
		return c.JSON(status, echo.Map{"error": "invalid movie"})
	default:
		return c.JSON(status, echo.Map{"error": "database error"})
	}
	if err := h.Movies.Update(ctx, m); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// ToggleLiked handles PATCH /movies/:id (token required): flips the liked
// flag and returns the updated movie.
func (h *MovieHandler) ToggleLiked(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, err := h.Movies.ToggleLiked(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id (admin required).
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Movies.Delete(ctx, id); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.JSON(http.StatusOK, m)
}
