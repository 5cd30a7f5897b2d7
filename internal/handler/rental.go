package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/model"
	"github.com/iliyamo/movie-rental/internal/queue"
	"github.com/iliyamo/movie-rental/internal/repository"
	publisher "github.com/iliyamo/movie-rental/internal/service"
)

// RentalHandler serves the rental workflow: opening a rental decrements the
// movie's stock and records customer/movie snapshots, closing it restores
// the stock and stamps the return time. Every stock mutation runs inside a
// transaction under the row lock taken on the movie, so two requests for
// the last copy cannot both succeed.
type RentalHandler struct {
	Rentals   *repository.RentalRepo
	Movies    *repository.MovieRepo
	Customers *repository.CustomerRepo
}

func NewRentalHandler(r *repository.RentalRepo, m *repository.MovieRepo, c *repository.CustomerRepo) *RentalHandler {
	return &RentalHandler{Rentals: r, Movies: m, Customers: c}
}

// List handles GET /rentals, newest checkout first. An empty collection is
// reported as 404.
func (h *RentalHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rentals, err := h.Rentals.List(ctx)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(rentals) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "rentals not found"})
	}
	return c.JSON(http.StatusOK, rentals)
}

// Get handles GET /rentals/:id.
func (h *RentalHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rec, err := h.Rentals.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRentalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rec)
}

// Open handles POST /rentals (token required). The movie row is locked for
// the duration of the transaction, then stock is checked, the rental is
// inserted with snapshots of the customer and the movie, and the stock is
// decremented. The movie snapshot records the post-decrement count.
func (h *RentalHandler) Open(c echo.Context) error {
	var req model.RentalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Movies.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	movie, err := h.Movies.GetForUpdateTx(ctx, tx, req.MovieID)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if movie.NumberInStock == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie is not in stock"})
	}

	now := time.Now().UTC()
	rec := model.Rental{
		Customer: model.CustomerSnapshot{ID: cust.ID, Name: cust.Name, Phone: cust.Phone},
		Movie: model.MovieSnapshot{
			ID:              movie.ID,
			Title:           movie.Title,
			DailyRentalRate: movie.DailyRentalRate,
			NumberInStock:   movie.NumberInStock - 1,
		},
		RentalFee: movie.DailyRentalRate * model.RentalFeeDays,
		DateOut:   now,
	}
	if err := h.Rentals.CreateTx(ctx, tx, &rec); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rental failed"})
	}
	if err := h.Movies.DecrementStockTx(ctx, tx, movie.ID); err != nil {
		if err == repository.ErrOutOfStock {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie is not in stock"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rental failed"})
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rental failed"})
	}
	committed = true

	h.publish(queue.RentalOpened, rec)
	return c.JSON(http.StatusCreated, rec)
}

// Close handles PATCH /rentals/:id (token required): sets the return
// date and puts the copy back in stock. Closing an already returned rental
// is a conflict.
func (h *RentalHandler) Close(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Movies.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec, err := h.Rentals.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrRentalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rec.DateIn != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrAlreadyReturned.Error()})
	}

	now := time.Now().UTC()
	if err := h.Rentals.CloseTx(ctx, tx, id, now); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close rental failed"})
	}
	if err := h.Movies.IncrementStockTx(ctx, tx, rec.Movie.ID); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close rental failed"})
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close rental failed"})
	}
	committed = true

	rec.DateIn = &now
	rec.Movie.NumberInStock++
	h.publish(queue.RentalClosed, rec)
	return c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE /rentals/:id (admin required). Deleting an open
// rental returns the copy to stock; deleting a closed one leaves the stock
// alone, since the close already restored it.
func (h *RentalHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rental id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Movies.DB().BeginTx(ctx, nil)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec, err := h.Rentals.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrRentalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rental not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if rec.DateIn == nil {
		if err := h.Movies.IncrementStockTx(ctx, tx, rec.Movie.ID); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rental failed"})
		}
	}
	if err := h.Rentals.DeleteTx(ctx, tx, id); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rental failed"})
	}
	if err := tx.Commit(); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete rental failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, rec)
}

// publish emits a rental event after commit. Failures are logged by the
// publisher and otherwise ignored; the rental itself already succeeded.
func (h *RentalHandler) publish(eventType string, rec model.Rental) {
	ev := queue.RentalEvent{
		Type:          eventType,
		RentalID:      rec.ID,
		CustomerID:    rec.Customer.ID,
		CustomerName:  rec.Customer.Name,
		MovieID:       rec.Movie.ID,
		MovieTitle:    rec.Movie.Title,
		RentalFee:     rec.RentalFee,
		NumberInStock: rec.Movie.NumberInStock,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = publisher.PublishRentalEvent(ctx, ev)
	}()
}
