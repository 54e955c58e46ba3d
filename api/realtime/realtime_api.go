package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"warehouse.GO/api"
	"warehouse.GO/config"
	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	repo "warehouse.GO/model/repository/warehouse"
	"warehouse.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// StockResponse is the scanner-facing stock snapshot for one SKU.
type StockResponse struct {
	SKU            string `json:"sku"`
	OnHandUnits    int64  `json:"on_hand_units"`
	PlaceableUnits int64  `json:"placeable_units"`
}

// getDeviceKey returns the shared key handheld scanners sign their ID with.
func getDeviceKey() string {
	return config.GetEnv("DEVICE_SIGNING_KEY", "")
}

// verifyDeviceSignature validates HMAC-SHA256 signature using constant-time comparison
func verifyDeviceSignature(deviceID, signature, key string) bool {
	if key == "" || deviceID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(deviceID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes sets up the low-latency stock lookup used by scanners.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")
	svc := inventory.NewService(db, cache.Default())

	// GET /api/realtime/stock?sku=XXX&location=A-01
	g.GET("/stock", func(c echo.Context) error {
		start := time.Now()

		key := getDeviceKey()
		if key != "" && !verifyDeviceSignature(c.Request().Header.Get("X-Device-ID"), c.Request().Header.Get("X-Device-Sig"), key) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}
		locCode := c.QueryParam("location")
		ctx := c.Request().Context()

		resp := StockResponse{SKU: sku}
		var found bool

		// Parallel fetch using errgroup
		eg := new(errgroup.Group)
		eg.Go(func() (err error) {
			resp.OnHandUnits, found, err = repo.NewBatchRepository(db.WithContext(ctx)).OnHandBySKU(sku)
			return err
		})
		eg.Go(func() (err error) {
			resp.PlaceableUnits, err = svc.PlaceableUnitsBySKU(ctx, sku, locCode)
			return err
		})
		err := eg.Wait()

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if err != nil && !errors.Is(err, inventory.ErrNotFound) {
			return api.Error(c, "realtime", err)
		}
		if !found || err != nil {
			msg := "sku not found"
			if found {
				msg = "location not found"
			}
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg, "request_duration_ms": duration})
		}
		return c.JSON(http.StatusOK, resp)
	}, auth.Require(auth.PermViewItem))
}
