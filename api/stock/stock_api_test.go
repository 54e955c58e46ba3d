package stock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	"warehouse.GO/core/validate"
	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/model/testdb"
)

func newServer(t *testing.T, group string) (*echo.Echo, *gorm.DB) {
	t.Helper()
	cache.SetDefault(cache.NewCache())
	db := testdb.New(t)
	e := echo.New()
	e.Validator = validate.New()
	g := e.Group("/api")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.WithActor(c, &auth.Actor{Username: "tester", Group: group})
			return next(c)
		}
	})
	RegisterStockRoutes(g, db)
	return e, db
}

func seed(t *testing.T, db *gorm.DB) *entity.Item {
	t.Helper()
	item := &entity.Item{Name: "Olive Oil", SKUCode: "OIL-1", Unit: "btl", PackagingVolume: decimal.NewFromInt(3), Active: true}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	loc := &entity.Location{Code: "A-01", Name: "Aisle A", CapacityVolume: decimal.NewFromInt(12)}
	if err := db.Create(loc).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return item
}

func send(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestInboundThenOutbound(t *testing.T) {
	e, db := newServer(t, auth.GroupOperators)
	item := seed(t, db)

	rec := send(e, http.MethodPost, "/api/stock/inbound",
		`{"item_id":`+itoa(item.ID)+`,"batch_number":"B1","barcode":"400001","expiry_date":"2027-03-01","quantity_units":6}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("inbound status = %d body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing X-Request-Duration-ms header")
	}
	var in struct {
		Batch struct {
			ID            uint `json:"id"`
			QuantityUnits int  `json:"quantity_units"`
		} `json:"batch"`
		Allocation struct {
			AllocatedUnits int `json:"allocated_units"`
			RemainingUnits int `json:"remaining_units"`
		} `json:"allocation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Batch.QuantityUnits != 6 || in.Allocation.AllocatedUnits != 4 || in.Allocation.RemainingUnits != 2 {
		t.Fatalf("inbound body = %s", rec.Body.String())
	}

	over := send(e, http.MethodPost, "/api/stock/outbound", `{"batch_id":`+itoa(in.Batch.ID)+`,"quantity_units":7}`)
	if over.Code != http.StatusConflict {
		t.Errorf("over-draw status = %d, want 409", over.Code)
	}

	out := send(e, http.MethodPost, "/api/stock/outbound", `{"batch_id":`+itoa(in.Batch.ID)+`,"quantity_units":5}`)
	if out.Code != http.StatusCreated {
		t.Fatalf("outbound status = %d body = %s", out.Code, out.Body.String())
	}
	var rows int64
	db.Model(&entity.BatchLocation{}).Count(&rows)
	if rows != 0 {
		t.Errorf("batch_location rows = %d, want 0", rows)
	}

	hist := send(e, http.MethodGet, "/api/stock/batches/"+itoa(in.Batch.ID)+"/movements", "")
	if hist.Code != http.StatusOK || strings.Count(hist.Body.String(), `"direction"`) != 2 {
		t.Errorf("movements = %d %s", hist.Code, hist.Body.String())
	}
}

func TestInbound_Validation(t *testing.T) {
	e, db := newServer(t, auth.GroupOperators)
	item := seed(t, db)

	rec := send(e, http.MethodPost, "/api/stock/inbound", `{"item_id":`+itoa(item.ID)+`,"quantity_units":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Quantity") {
		t.Errorf("body = %s", rec.Body.String())
	}

	noBatch := send(e, http.MethodPost, "/api/stock/inbound", `{"item_id":`+itoa(item.ID)+`,"quantity_units":1}`)
	if noBatch.Code != http.StatusBadRequest || !strings.Contains(noBatch.Body.String(), "BatchNumber") || !strings.Contains(noBatch.Body.String(), "Barcode") {
		t.Errorf("missing batch number and barcode = %d %s, want 400", noBatch.Code, noBatch.Body.String())
	}

	longBarcode := send(e, http.MethodPost, "/api/stock/inbound",
		`{"item_id":`+itoa(item.ID)+`,"batch_number":"B1","barcode":"`+strings.Repeat("9", 65)+`","quantity_units":1}`)
	if longBarcode.Code != http.StatusBadRequest || !strings.Contains(longBarcode.Body.String(), `"Barcode":"max"`) {
		t.Errorf("65-char barcode = %d %s, want 400", longBarcode.Code, longBarcode.Body.String())
	}
	longNumber := send(e, http.MethodPost, "/api/stock/inbound",
		`{"item_id":`+itoa(item.ID)+`,"batch_number":"`+strings.Repeat("N", 101)+`","barcode":"400009","quantity_units":1}`)
	if longNumber.Code != http.StatusBadRequest {
		t.Errorf("101-char batch number = %d, want 400", longNumber.Code)
	}
	fits := send(e, http.MethodPost, "/api/stock/inbound",
		`{"item_id":`+itoa(item.ID)+`,"batch_number":"`+strings.Repeat("N", 100)+`","barcode":"`+strings.Repeat("9", 64)+`","quantity_units":1}`)
	if fits.Code != http.StatusCreated {
		t.Errorf("max-length batch number and barcode = %d %s, want 201", fits.Code, fits.Body.String())
	}

	missing := send(e, http.MethodPost, "/api/stock/inbound", `{"item_id":9999,"batch_number":"B1","barcode":"400001","quantity_units":1}`)
	if missing.Code != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want 404", missing.Code)
	}
}

func TestScanAndPlaceable(t *testing.T) {
	e, db := newServer(t, auth.GroupOperators)
	item := seed(t, db)
	send(e, http.MethodPost, "/api/stock/inbound",
		`{"item_id":`+itoa(item.ID)+`,"batch_number":"B1","barcode":"400001","quantity_units":3}`)

	byBarcode := send(e, http.MethodGet, "/api/stock/scan?code=400001", "")
	if byBarcode.Code != http.StatusOK || !strings.Contains(byBarcode.Body.String(), `"batch_number":"B1"`) {
		t.Errorf("scan barcode = %d %s", byBarcode.Code, byBarcode.Body.String())
	}
	unknown := send(e, http.MethodGet, "/api/stock/scan?code=nope", "")
	if unknown.Code != http.StatusNotFound {
		t.Errorf("scan unknown status = %d, want 404", unknown.Code)
	}

	// 12 capacity, 9 used by 3 units of 3
	rec := send(e, http.MethodGet, "/api/stock/placeable?sku=OIL-1&location=A-01", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"placeable_units":1`) {
		t.Errorf("placeable = %d %s", rec.Code, rec.Body.String())
	}
}

func TestPermissions(t *testing.T) {
	e, db := newServer(t, "visitors")
	item := seed(t, db)
	rec := send(e, http.MethodPost, "/api/stock/inbound", `{"item_id":`+itoa(item.ID)+`,"quantity_units":1}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
