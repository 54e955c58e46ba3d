package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/model/testdb"
)

func seedItems(t *testing.T) (*gorm.DB, []entity.Item) {
	t.Helper()
	db := testdb.New(t)
	items := []entity.Item{
		{Name: "Jasmine Rice", SKUCode: "RICE-J", Unit: "bag", PackagingVolume: decimal.NewFromInt(1), Active: true},
		{Name: "Brown Rice", SKUCode: "RICE-B", Unit: "bag", PackagingVolume: decimal.NewFromInt(1), Active: true},
		{Name: "Olive Oil", SKUCode: "OIL-1", Unit: "bottle", PackagingVolume: decimal.NewFromInt(1), Active: true},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db, items
}

// fakeES answers search requests with the given ids and records indexed docs.
func fakeES(t *testing.T, hitIDs []uint) (*httptest.Server, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var indexed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			hits := make([]map[string]any, len(hitIDs))
			for i, id := range hitIDs {
				hits[i] = map[string]any{"_source": map[string]any{"id": id}}
			}
			json.NewEncoder(w).Encode(map[string]any{
				"hits": map[string]any{"total": map[string]any{"value": len(hitIDs)}, "hits": hits},
			})
		case strings.Contains(r.URL.Path, "/_doc/"):
			body, _ := io.ReadAll(r.Body)
			mu.Lock()
			indexed = append(indexed, string(body))
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"result":"created"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &indexed
}

func TestItems_SQLFallback(t *testing.T) {
	db, _ := seedItems(t)
	svc := &Service{db: db}
	res, err := svc.Items(context.Background(), "rice", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Backend != "sql" || res.Total != 2 {
		t.Errorf("result = %+v", res)
	}
	if svc.Enabled() {
		t.Error("service without client should report disabled")
	}
}

func TestItems_Elasticsearch(t *testing.T) {
	db, items := seedItems(t)
	srv, _ := fakeES(t, []uint{items[2].ID, items[0].ID, 999})
	svc, err := New(db, srv.URL, "test_items")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := svc.Items(context.Background(), "whatever", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Backend != "elasticsearch" || len(res.Items) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res.Items[0].SKUCode != "OIL-1" || res.Items[1].SKUCode != "RICE-J" {
		t.Errorf("hit order not kept: %s, %s", res.Items[0].SKUCode, res.Items[1].SKUCode)
	}
}

func TestItems_FallsBackOnClusterError(t *testing.T) {
	db, _ := seedItems(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"boom"}`)
	}))
	t.Cleanup(srv.Close)
	svc, _ := New(db, srv.URL, "test_items")
	res, err := svc.Items(context.Background(), "oil", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Backend != "sql" || res.Total != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestReindex(t *testing.T) {
	db, _ := seedItems(t)
	srv, indexed := fakeES(t, nil)
	svc, _ := New(db, srv.URL, "test_items")
	n, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if n != 3 || len(*indexed) != 3 {
		t.Errorf("indexed %d docs, sent %d", n, len(*indexed))
	}
	if !strings.Contains((*indexed)[0], `"sku":"RICE-B"`) {
		t.Errorf("first doc = %s", (*indexed)[0])
	}
}
