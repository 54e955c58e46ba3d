package html

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/model/testdb"
)

func newPages(t *testing.T) *echo.Echo {
	t.Helper()
	cache.SetDefault(cache.NewCache())
	db := testdb.New(t)
	item := &entity.Item{Name: "Milk", SKUCode: "MILK", Unit: "ctn", PackagingVolume: decimal.NewFromInt(1), Active: true}
	db.Create(item)
	loc := &entity.Location{Code: "C-01", Name: "Cooler", CapacityVolume: decimal.NewFromInt(40)}
	db.Create(loc)
	soon := entity.Date(time.Now().AddDate(0, 0, 2))
	b := &entity.Batch{ItemID: item.ID, BatchNumber: "M1", Barcode: "880001", QuantityUnits: 12, ExpiryDate: &soon}
	db.Omit("Item").Create(b)
	db.Create(&entity.BatchLocation{BatchID: b.ID, LocationID: loc.ID, QuantityUnits: 12})

	tmpl, err := NewTemplate()
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}
	e := echo.New()
	e.Renderer = tmpl
	RegisterWarehouseHTMLRoutes(e, db)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPages(t *testing.T) {
	e := newPages(t)
	cases := []struct {
		path string
		want string
	}{
		{"/", "expiring by"},
		{"/scan?code=880001", "C-01"},
		{"/scan?code=MILK", "880001"},
		{"/near-expiry", "M1"},
		{"/inventory", "C-01:12"},
	}
	for _, tc := range cases {
		rec := get(e, tc.path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d body = %s", tc.path, rec.Code, rec.Body.String())
			continue
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Errorf("%s: body missing %q", tc.path, tc.want)
		}
	}
}

func TestScanPage_Unknown(t *testing.T) {
	e := newPages(t)
	rec := get(e, "/scan?code=nothing")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No batch or item matches nothing") {
		t.Errorf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestExpiryClass(t *testing.T) {
	today := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	class := TemplateFuncs(func() time.Time { return today })["expiryClass"].(func(entity.Batch) string)
	day := func(n int) *entity.Batch {
		d := entity.Date(today.AddDate(0, 0, n))
		return &entity.Batch{ExpiryDate: &d}
	}
	if got := class(*day(-1)); got != "expired" {
		t.Errorf("yesterday = %q, want expired", got)
	}
	if got := class(*day(3)); got != "warn" {
		t.Errorf("in 3 days = %q, want warn", got)
	}
	if got := class(*day(400)); got != "" {
		t.Errorf("in 400 days = %q, want empty", got)
	}
}
