package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseID parses the :id path parameter. Zero or non-numeric values are
// invalid identifiers and callers respond with 400.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
