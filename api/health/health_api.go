package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/config"
)

func init() {
	api.RegisterRoute(RegisterHealthRoute)
}

// RegisterHealthRoute adds GET /api/health. It reports "degraded" with 503
// when the database does not answer a ping.
func RegisterHealthRoute(e *echo.Echo, db *gorm.DB) {
	e.GET("/api/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := echo.Map{"database": "ok", "redis": "disabled"}
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = "down"
		}
		if config.RedisClient != nil {
			checks["redis"] = "ok"
			if err := config.RedisClient.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
			}
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		return c.JSON(status, echo.Map{"status": state, "checks": checks, "app": config.App().AppName})
	})
}
