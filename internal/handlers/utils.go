package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getIntParam reads an integer query parameter. A missing parameter yields
// defaultValue; a malformed one is an error.
func getIntParam(c echo.Context, name string, defaultValue int) (int, error) {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

// getIDParam reads a positive receipt id from the path
func getIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid receipt id %q", c.Param("id"))
	}
	return id, nil
}
