package report

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/model/testdb"
)

func newServer(t *testing.T, group string) *echo.Echo {
	t.Helper()
	cache.SetDefault(cache.NewCache())
	db := testdb.New(t)
	item := &entity.Item{Name: "Yogurt", SKUCode: "YOG", Unit: "cup", PackagingVolume: decimal.NewFromInt(1), Active: true}
	db.Create(item)
	soon := entity.Date(time.Now().AddDate(0, 0, 3))
	db.Omit("Item").Create(&entity.Batch{ItemID: item.ID, BatchNumber: "Y1", Barcode: "Y1", QuantityUnits: 8, ExpiryDate: &soon})

	e := echo.New()
	g := e.Group("/api")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.WithActor(c, &auth.Actor{Username: "tester", Group: group})
			return next(c)
		}
	})
	RegisterReportRoutes(g, db)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboardAndNearExpiry(t *testing.T) {
	e := newServer(t, auth.GroupManagers)

	rec := get(e, "/api/reports/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	want := `{"item_count":1,"batch_count":1,"near_expiry_count":1}`
	if strings.TrimSpace(rec.Body.String()) != want {
		t.Errorf("dashboard = %s, want %s", rec.Body.String(), want)
	}

	near := get(e, "/api/reports/near-expiry?days=7")
	if near.Code != http.StatusOK || !strings.Contains(near.Body.String(), `"count":1`) {
		t.Errorf("near-expiry = %d %s", near.Code, near.Body.String())
	}
	none := get(e, "/api/reports/near-expiry?days=1")
	if !strings.Contains(none.Body.String(), `"count":0`) {
		t.Errorf("near-expiry 1 day = %s", none.Body.String())
	}
}

func TestInventoryExport(t *testing.T) {
	e := newServer(t, auth.GroupManagers)
	rec := get(e, "/api/reports/inventory.xlsx")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "inventory-") {
		t.Errorf("disposition = %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex("Inventory"); idx < 0 {
		t.Errorf("sheets = %v", f.GetSheetList())
	}
}

func TestReports_ManagersOnly(t *testing.T) {
	e := newServer(t, auth.GroupOperators)
	if rec := get(e, "/api/reports/dashboard"); rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
