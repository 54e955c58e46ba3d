package location

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	"warehouse.GO/core/validate"
	"warehouse.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterLocationRoutes)
}

func RegisterLocationRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/locations")
	svc := catalog.NewService(db, cache.Default())

	// GET /api/locations – every location with used and available volume
	g.GET("", func(c echo.Context) error {
		locs, err := svc.Locations(c.Request().Context())
		if err != nil {
			return api.Error(c, "location", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"locations": locs, "count": len(locs)})
	}, auth.Require(auth.PermViewLocation))

	g.POST("", func(c echo.Context) error {
		var in catalog.LocationInput
		if err := validate.BindAndValidate(c, &in); err != nil {
			return err
		}
		loc, err := svc.CreateLocation(c.Request().Context(), in)
		if err != nil {
			return api.Error(c, "location", err)
		}
		return c.JSON(http.StatusCreated, loc)
	}, auth.Require(auth.PermAddLocation))

	// GET /api/locations/:code – batches shelved at the location
	g.GET("/:code", func(c echo.Context) error {
		loc, rows, err := svc.LocationContents(c.Request().Context(), c.Param("code"))
		if err != nil {
			return api.Error(c, "location", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"location": loc, "contents": rows})
	}, auth.Require(auth.PermViewBatchLocation))
}
