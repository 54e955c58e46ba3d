package graphql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/model/testdb"
)

type gqlResponse struct {
	Data   map[string]json.RawMessage
	Errors []struct{ Message string }
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	cache.SetDefault(cache.NewCache())
	db := testdb.New(t)
	item := &entity.Item{Name: "Olive Oil", SKUCode: "OIL-1", Unit: "btl", PackagingVolume: decimal.NewFromInt(3), Active: true}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	for _, l := range []entity.Location{
		{Code: "A-01", Name: "Aisle A", CapacityVolume: decimal.NewFromInt(12)},
		{Code: "B-01", Name: "Aisle B", CapacityVolume: decimal.NewFromInt(6)},
	} {
		if err := db.Create(&l).Error; err != nil {
			t.Fatalf("create location: %v", err)
		}
	}
	e := echo.New()
	RegisterGraphQLRoutes(e, db)
	return e
}

func query(t *testing.T, e *echo.Echo, q string, header map[string]string) gqlResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": q})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp gqlResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestItemsAndLocations(t *testing.T) {
	e := newServer(t)
	resp := query(t, e, `{ items(keyword: "oil") { sku packagingVolume batches { id } } locations { code availableVolume } }`, nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	var items []struct {
		SKU             string `json:"sku"`
		PackagingVolume string `json:"packagingVolume"`
	}
	json.Unmarshal(resp.Data["items"], &items)
	if len(items) != 1 || items[0].SKU != "OIL-1" || items[0].PackagingVolume != "3" {
		t.Errorf("items = %+v", items)
	}
	var locs []struct {
		Code            string `json:"code"`
		AvailableVolume string `json:"availableVolume"`
	}
	json.Unmarshal(resp.Data["locations"], &locs)
	if len(locs) != 2 || locs[0].Code != "A-01" || locs[0].AvailableVolume != "12" {
		t.Errorf("locations = %+v", locs)
	}
}

func TestMaxPlaceableUnits(t *testing.T) {
	e := newServer(t)
	resp := query(t, e, `{ maxPlaceableUnits(sku: "OIL-1") }`, nil)
	if string(resp.Data["maxPlaceableUnits"]) != "6" {
		t.Errorf("maxPlaceableUnits = %s, want 6 (errors %v)", resp.Data["maxPlaceableUnits"], resp.Errors)
	}

	// the X-Location scope must name a real location
	resp = query(t, e, `{ maxPlaceableUnits(sku: "OIL-1") }`, map[string]string{"X-Location": "Z-9"})
	if len(resp.Errors) == 0 || !strings.Contains(resp.Errors[0].Message, "Z-9") {
		t.Errorf("errors = %v, want unknown location Z-9", resp.Errors)
	}
	resp = query(t, e, `{ maxPlaceableUnits(sku: "OIL-1") }`, map[string]string{"X-Location": "B-01"})
	if string(resp.Data["maxPlaceableUnits"]) != "6" {
		t.Errorf("scoped maxPlaceableUnits = %s, want 6", resp.Data["maxPlaceableUnits"])
	}
}

func TestExtensionPermissions(t *testing.T) {
	e := newServer(t)
	resp := query(t, e, `{ _extension(name: "permissions", args: "{\"group\":\"operators\"}") }`, nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	var raw string
	json.Unmarshal(resp.Data["_extension"], &raw)
	if !strings.Contains(raw, `"add_movement"`) || strings.Contains(raw, `"import_item"`) {
		t.Errorf("_extension = %s", raw)
	}
}
