package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/core/registry"
)

func TestModulesAndRoutes(t *testing.T) {
	RegisterModule(func(g *echo.Group, _ *gorm.DB) {
		g.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "module") })
	})
	RegisterGET("/registry/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e := echo.New()
	ApplyModules(e.Group("/api"), nil)
	ApplyRoutes(e, nil)

	for path, want := range map[string]int{
		"/api/ping":       http.StatusOK,
		"/registry/check": http.StatusOK,
		"/missing":        http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("GET %s = %d, want %d", path, rec.Code, want)
		}
	}

	defer func() {
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
		if recover() == nil {
			t.Error("RegisterRoute after ApplyRoutes: want panic")
		}
	}()
	RegisterRoute(func(*echo.Echo, *gorm.DB) {})
}
