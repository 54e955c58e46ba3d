package html

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/config"
	"warehouse.GO/core/cache"
	"warehouse.GO/html/parts"
	"warehouse.GO/service/inventory"
	"warehouse.GO/service/report"
)

func init() {
	api.RegisterHTMLModule(RegisterWarehouseHTMLRoutes)
}

func page(title string, data echo.Map) echo.Map {
	data["Title"] = title
	data["AppName"] = config.App().AppName
	data["CriticalCSS"] = parts.CriticalCSS()
	return data
}

// RegisterWarehouseHTMLRoutes registers the dashboard, scan, near-expiry and
// inventory pages. The echo instance needs a *Template renderer.
func RegisterWarehouseHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	reports := report.NewService(db, cache.Default())
	stock := inventory.NewService(db, cache.Default())

	e.GET("/", func(c echo.Context) error {
		ctx := c.Request().Context()
		d, err := reports.Dashboard(ctx)
		if err != nil {
			config.LogError(config.GetLogger(), "html", "dashboard", "", nil, err)
			return c.String(http.StatusInternalServerError, "Error loading dashboard")
		}
		popular, err := reports.PopularItems(ctx, 0)
		if err != nil {
			config.LogError(config.GetLogger(), "html", "dashboard", "popular", nil, err)
		}
		return c.Render(http.StatusOK, "dashboard.html", page("Dashboard", echo.Map{
			"Dashboard": d,
			"Threshold": reports.Threshold(),
			"Popular":   popular,
		}))
	})

	e.GET("/scan", func(c echo.Context) error {
		code := c.QueryParam("code")
		data := echo.Map{"Code": code}
		status := http.StatusOK
		if code != "" {
			res, err := stock.Scan(c.Request().Context(), code)
			switch {
			case errors.Is(err, inventory.ErrNotFound):
				status = http.StatusNotFound
				data["Error"] = "No batch or item matches " + code
			case err != nil:
				config.LogError(config.GetLogger(), "html", "scan", code, nil, err)
				return c.String(http.StatusInternalServerError, "Error scanning")
			default:
				data["Result"] = res
			}
		}
		return c.Render(status, "scan.html", page("Scan", data))
	})

	e.GET("/near-expiry", func(c echo.Context) error {
		days, err := strconv.Atoi(c.QueryParam("days"))
		if err != nil || days <= 0 {
			days = config.App().NearExpiryDays
		}
		batches, err := reports.NearExpiry(c.Request().Context(), days)
		if err != nil {
			config.LogError(config.GetLogger(), "html", "near-expiry", "", nil, err)
			return c.String(http.StatusInternalServerError, "Error loading batches")
		}
		return c.Render(http.StatusOK, "near_expiry.html", page("Near expiry", echo.Map{
			"Days":    days,
			"Batches": batches,
		}))
	})

	e.GET("/inventory", func(c echo.Context) error {
		sum, err := reports.InventorySummary(c.Request().Context())
		if err != nil {
			config.LogError(config.GetLogger(), "html", "inventory", "", nil, err)
			return c.String(http.StatusInternalServerError, "Error loading inventory")
		}
		return c.Render(http.StatusOK, "inventory.html", page("Inventory", echo.Map{"Summary": sum}))
	})
}
