package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/model"
	"github.com/iliyamo/movie-rental/internal/repository"
)

// CustomerHandler serves the customer CRUD surface.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(cr *repository.CustomerRepo) *CustomerHandler {
	return &CustomerHandler{Customers: cr}
}

type customerReq struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	IsGold bool   `json:"isGold"`
}

// List handles GET /customers. An empty collection is reported as 404.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	customers, err := h.Customers.List(ctx)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(customers) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customers not found"})
	}
	return c.JSON(http.StatusOK, customers)
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, cust)
}

// Create handles POST /customers (token required).
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cust := model.Customer{Name: req.Name, Phone: req.Phone, IsGold: req.IsGold}
	if err := cust.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Customers.Create(ctx, &cust); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	return c.JSON(http.StatusCreated, cust)
}

// Update handles PUT /customers/:id (token required). Historical rentals
// keep their customer snapshot.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cust := model.Customer{ID: id, Name: req.Name, Phone: req.Phone, IsGold: req.IsGold}
	if err := cust.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Customers.Update(ctx, cust); err != nil {
		if err == repository.ErrCustomerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update customer failed"})
	}
	return c.JSON(http.StatusOK, cust)
}

// Delete handles DELETE /customers/:id (admin required).
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Customers.Delete(ctx, id); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete customer failed"})
	}
	return c.JSON(http.StatusOK, cust)
}
