package utils

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// GetUserIDFromContext extracts the authenticated user id set by the JWT
// middleware's success handler.
func GetUserIDFromContext(c echo.Context) (int64, error) {
	id, ok := c.Get("userID").(int64)
	if !ok || id == 0 {
		return 0, errors.New("user id missing from request context")
	}
	return id, nil
}
