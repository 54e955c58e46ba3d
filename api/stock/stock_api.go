package stock

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	"warehouse.GO/core/validate"
	repo "warehouse.GO/model/repository/warehouse"
	"warehouse.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

type inboundRequest struct {
	BatchID        *uint  `json:"batch_id"`
	ItemID         uint   `json:"item_id" validate:"required_without=BatchID"`
	BatchNumber    string `json:"batch_number" validate:"required_without=BatchID,max=100"`
	ProductionDate string `json:"production_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate     string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Barcode        string `json:"barcode" validate:"required_without=BatchID,max=64"`
	Quantity       int    `json:"quantity_units" validate:"required,min=1"`
	LocationID     *uint  `json:"location_id"`
	Note           string `json:"note" validate:"max=255"`
}

type outboundRequest struct {
	BatchID    uint   `json:"batch_id" validate:"required"`
	Quantity   int    `json:"quantity_units" validate:"required,min=1"`
	LocationID *uint  `json:"location_id"`
	Note       string `json:"note" validate:"max=255"`
}

func operatorID(c echo.Context) *uint {
	if a := auth.ActorFrom(c); a != nil {
		return a.OperatorID
	}
	return nil
}

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stock")
	svc := inventory.NewService(db, cache.Default())
	movements := repo.NewMovementRepository(db)

	// POST /api/stock/inbound – receive units and shelve them
	g.POST("/inbound", func(c echo.Context) error {
		start := time.Now()
		var body inboundRequest
		if err := validate.BindAndValidate(c, &body); err != nil {
			return err
		}
		res, err := svc.Inbound(c.Request().Context(), inventory.InboundInput{
			BatchID:        body.BatchID,
			ItemID:         body.ItemID,
			BatchNumber:    body.BatchNumber,
			ProductionDate: body.ProductionDate,
			ExpiryDate:     body.ExpiryDate,
			Barcode:        body.Barcode,
			Quantity:       body.Quantity,
			LocationID:     body.LocationID,
			OperatorID:     operatorID(c),
			Note:           body.Note,
		})
		if err != nil {
			return api.Error(c, "stock", err)
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusCreated, res)
	}, auth.Require(auth.PermAddMovement))

	// POST /api/stock/outbound – remove units from shelves
	g.POST("/outbound", func(c echo.Context) error {
		start := time.Now()
		var body outboundRequest
		if err := validate.BindAndValidate(c, &body); err != nil {
			return err
		}
		res, err := svc.Outbound(c.Request().Context(), inventory.OutboundInput{
			BatchID:    body.BatchID,
			Quantity:   body.Quantity,
			LocationID: body.LocationID,
			OperatorID: operatorID(c),
			Note:       body.Note,
		})
		if err != nil {
			return api.Error(c, "stock", err)
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusCreated, res)
	}, auth.Require(auth.PermAddMovement))

	// GET /api/stock/scan?code=<barcode|sku>
	g.GET("/scan", func(c echo.Context) error {
		code := c.QueryParam("code")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
		}
		res, err := svc.Scan(c.Request().Context(), code)
		if err != nil {
			return api.Error(c, "stock", err)
		}
		return c.JSON(http.StatusOK, res)
	}, auth.Require(auth.PermViewBatch))

	// GET /api/stock/placeable?sku=<sku>&location=<code>
	g.GET("/placeable", func(c echo.Context) error {
		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku is required"})
		}
		locCode := c.QueryParam("location")
		n, err := svc.PlaceableUnitsBySKU(c.Request().Context(), sku, locCode)
		if err != nil {
			return api.Error(c, "stock", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"sku": sku, "location": locCode, "placeable_units": n})
	}, auth.Require(auth.PermViewItem))

	// GET /api/stock/batches/:id/movements
	g.GET("/batches/:id/movements", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid batch id"})
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		if limit <= 0 {
			limit = 50
		}
		list, err := movements.ListByBatch(uint(id), limit)
		if err != nil {
			return api.Error(c, "stock", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"movements": list})
	}, auth.Require(auth.PermViewMovement))
}
