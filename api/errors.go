package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/config"
	"warehouse.GO/service/allocation"
	"warehouse.GO/service/catalog"
	"warehouse.GO/service/inventory"
	"warehouse.GO/service/media"
)

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, allocation.ErrInsufficientStock),
		errors.Is(err, catalog.ErrDuplicateCode),
		errors.Is(err, inventory.ErrBarcodeInUse):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, media.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, media.ErrNotImage),
		errors.Is(err, media.ErrTooLarge):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error writes err as {"error": msg} with the mapped status. Server errors are
// logged and their detail hidden.
func Error(c echo.Context, module string, err error) error {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		config.LogError(config.GetLogger(), module, c.Path(), c.Request().Method, nil, err)
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
