package location

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"warehouse.GO/core/auth"
	"warehouse.GO/core/cache"
	"warehouse.GO/core/validate"
	"warehouse.GO/model/testdb"
)

func newServer(t *testing.T, group string) *echo.Echo {
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
	RegisterLocationRoutes(g, db)
	return e
}

func send(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndList(t *testing.T) {
	e := newServer(t, auth.GroupManagers)

	rec := send(e, http.MethodPost, "/api/locations", `{"code":"A-01","name":"Aisle A","capacity_volume":"20"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", rec.Code, rec.Body.String())
	}
	if rec := send(e, http.MethodPost, "/api/locations", `{"code":"A-01","name":"Again","capacity_volume":"5"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
	if rec := send(e, http.MethodPost, "/api/locations", `{"code":"B-01","name":"B"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing capacity status = %d, want 400", rec.Code)
	}

	rec = send(e, http.MethodGet, "/api/locations", "")
	var list struct {
		Count     int `json:"count"`
		Locations []struct {
			Code       string `json:"code"`
			UsedVolume string `json:"used_volume"`
		} `json:"locations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 1 || list.Locations[0].Code != "A-01" || list.Locations[0].UsedVolume != "0" {
		t.Errorf("list = %+v", list)
	}

	rec = send(e, http.MethodGet, "/api/locations/A-01", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"contents":[]`) {
		t.Errorf("contents status = %d body = %s", rec.Code, rec.Body.String())
	}
	if rec := send(e, http.MethodGet, "/api/locations/Z-9", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown code status = %d, want 404", rec.Code)
	}
}

func TestCreateForbiddenForOperators(t *testing.T) {
	e := newServer(t, auth.GroupOperators)
	if rec := send(e, http.MethodPost, "/api/locations", `{"code":"A-01","name":"A","capacity_volume":"1"}`); rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
