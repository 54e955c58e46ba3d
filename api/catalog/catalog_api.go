package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/config"
	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	"warehouse.GO/core/validate"
	catalogService "warehouse.GO/service/catalog"
	"warehouse.GO/service/media"
	"warehouse.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err == nil && id > 0
}

func RegisterCatalogRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := catalogService.NewService(db, cache.Default())
	images := media.NewService(db, config.App().MediaDir)
	finder := search.NewFromEnv(db)

	apiGroup.GET("/categories", func(c echo.Context) error {
		cats, err := svc.Categories(c.Request().Context())
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"categories": cats})
	}, auth.Require(auth.PermViewItem))

	g := apiGroup.Group("/items")

	// GET /api/items/search?q=<keyword>&size=<n>
	g.GET("/search", func(c echo.Context) error {
		size, _ := strconv.Atoi(c.QueryParam("size"))
		res, err := finder.Items(c.Request().Context(), c.QueryParam("q"), size)
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.JSON(http.StatusOK, res)
	}, auth.Require(auth.PermViewItem))

	// GET /api/items/packaging?q=&category=
	g.GET("/packaging", func(c echo.Context) error {
		items, err := svc.Packaging(c.Request().Context(), c.QueryParam("q"), c.QueryParam("category"))
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
	}, auth.Require(auth.PermViewItem))

	g.PATCH("/:id/packaging", func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		var in catalogService.PackagingInput
		if err := validate.BindAndValidate(c, &in); err != nil {
			return err
		}
		item, err := svc.UpdatePackaging(c.Request().Context(), id, in)
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.JSON(http.StatusOK, item)
	}, auth.Require(auth.PermChangeItem))

	// POST /api/items/import – multipart "file" field holding item CSV
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		defer f.Close()

		res, err := catalogService.ImportItems(db.WithContext(c.Request().Context()), f, catalogService.ImportOptions{
			DefaultUnit: c.FormValue("default_unit"),
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		ctx := c.Request().Context()
		cache.Default().DeleteByTag(ctx, cache.TagReports)
		if finder.Enabled() {
			if _, err := finder.Reindex(ctx); err != nil {
				config.LogError(config.GetLogger(), "catalog", "import", "reindex", nil, err)
			}
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"total_rows":          res.TotalRows,
			"created":             res.Created,
			"updated":             res.Updated,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	}, auth.Require(auth.PermImportItem))

	g.GET("/:id/images", func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		list, err := images.Images(c.Request().Context(), id)
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"images": list})
	}, auth.Require(auth.PermViewItem))

	// POST /api/items/:id/images – multipart "image" field, optional "alt"
	g.POST("/:id/images", func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
		}
		fh, err := c.FormFile("image")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "image is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		defer f.Close()
		img, err := images.SaveItemImage(c.Request().Context(), id, fh.Filename, f, c.FormValue("alt"))
		if err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.JSON(http.StatusCreated, img)
	}, auth.Require(auth.PermChangeItem))

	apiGroup.DELETE("/images/:id", func(c echo.Context) error {
		id, ok := parseID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image id"})
		}
		if err := images.DeleteImage(c.Request().Context(), id); err != nil {
			return api.Error(c, "catalog", err)
		}
		return c.NoContent(http.StatusNoContent)
	}, auth.Require(auth.PermChangeItem))
}
