package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	reportService "warehouse.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/reports", auth.Require(auth.PermViewReport))
	svc := reportService.NewService(db, cache.Default())

	g.GET("/dashboard", func(c echo.Context) error {
		d, err := svc.Dashboard(c.Request().Context())
		if err != nil {
			return api.Error(c, "report", err)
		}
		return c.JSON(http.StatusOK, d)
	})

	// GET /api/reports/near-expiry?days=<n>
	g.GET("/near-expiry", func(c echo.Context) error {
		days, _ := strconv.Atoi(c.QueryParam("days"))
		batches, err := svc.NearExpiry(c.Request().Context(), days)
		if err != nil {
			return api.Error(c, "report", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"batches": batches, "count": len(batches)})
	})

	// GET /api/reports/popular?limit=<n>
	g.GET("/popular", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		items, err := svc.PopularItems(c.Request().Context(), limit)
		if err != nil {
			return api.Error(c, "report", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	})

	g.GET("/inventory", func(c echo.Context) error {
		start := time.Now()
		sum, err := svc.InventorySummary(c.Request().Context())
		if err != nil {
			return api.Error(c, "report", err)
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, sum)
	})

	g.GET("/inventory.xlsx", func(c echo.Context) error {
		name := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102"))
		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		res.WriteHeader(http.StatusOK)
		return svc.ExportInventoryXLSX(c.Request().Context(), res)
	})
}
