package api

import (
	"sync"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/core/registry"
)

var mu sync.Mutex

// ModuleFunc mounts authenticated routes on the /api group.
type ModuleFunc func(g *echo.Group, db *gorm.DB)

// RouteFunc mounts routes on the root instance: health, GraphQL, HTML pages
// and public extension endpoints.
type RouteFunc func(e *echo.Echo, db *gorm.DB)

func queued[T any](key string) []T {
	if v, ok := registry.GlobalRegistry.GetGlobal(key); ok && v != nil {
		return v.([]T)
	}
	return nil
}

func enqueue[T any](key string, fn T) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(key) {
		panic("api/registry: " + key + " locked (register only during init)")
	}
	registry.GlobalRegistry.SetGlobal(key, append(queued[T](key), fn))
}

// RegisterModule queues an /api module. Call from init() in API packages.
func RegisterModule(fn ModuleFunc) {
	enqueue(registry.KeyRegistryAPI, fn)
}

// ApplyModules mounts every queued module on g, in registration order, and
// locks the module registry.
func ApplyModules(g *echo.Group, db *gorm.DB) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
	for _, fn := range queued[ModuleFunc](registry.KeyRegistryAPI) {
		fn(g, db)
	}
}

// RegisterRoute queues a root-level route module.
func RegisterRoute(fn RouteFunc) {
	enqueue(registry.KeyRegistryRoutes, fn)
}

// RegisterHTMLModule queues an HTML page module. Pages mount on the root.
func RegisterHTMLModule(fn RouteFunc) {
	RegisterRoute(fn)
}

// RegisterGET queues a single public GET handler that needs no database.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *gorm.DB) {
		e.GET(path, handler)
	})
}

// ApplyRoutes mounts every queued root module on e and locks the route registry.
func ApplyRoutes(e *echo.Echo, db *gorm.DB) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
	for _, fn := range queued[RouteFunc](registry.KeyRegistryRoutes) {
		fn(e, db)
	}
}
