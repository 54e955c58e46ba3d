package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/model/testdb"
)

func newCatalog(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()
	db := testdb.New(t)
	return db, NewService(db, cache.NewCache())
}

func TestCreateLocation(t *testing.T) {
	_, svc := newCatalog(t)
	ctx := context.Background()
	loc, err := svc.CreateLocation(ctx, LocationInput{Code: " A-01 ", Name: "Aisle 1", CapacityVolume: "12.5"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if loc.Code != "A-01" || !loc.CapacityVolume.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("location = %+v", loc)
	}
	if _, err := svc.CreateLocation(ctx, LocationInput{Code: "A-01", Name: "Dup", CapacityVolume: "1"}); !errors.Is(err, ErrDuplicateCode) {
		t.Errorf("err = %v, want ErrDuplicateCode", err)
	}
	if _, err := svc.CreateLocation(ctx, LocationInput{Code: "B", Name: "B", CapacityVolume: "-1"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}

	locs, err := svc.Locations(ctx)
	if err != nil || len(locs) != 1 {
		t.Fatalf("locations = %v, %v", locs, err)
	}
	if !locs[0].AvailableVolume().Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("available = %s", locs[0].AvailableVolume())
	}
}

func TestImportItems(t *testing.T) {
	db, svc := newCatalog(t)
	csvData := strings.Join([]string{
		"sku,name,unit,packaging_volume,size_text,category,has_shelf_life,colour",
		"RICE-5,Rice 5kg,bag,2.5,5kg,Dry Goods,yes,white",
		"SOAP-1,Soap,,0.1,,Household,no,",
		",Nameless,pcs,1,,,,",
		"BAD-1,Broken,pcs,abc,,,,",
	}, "\n")

	res, err := ImportItems(db, strings.NewReader(csvData), ImportOptions{DefaultUnit: "pcs"})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.TotalRows != 4 || res.Created != 2 || res.Skipped != 2 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Warnings) != 3 || !strings.Contains(res.Warnings[0], "colour") {
		t.Errorf("warnings = %v", res.Warnings)
	}

	var soap entity.Item
	db.Where("sku_code = ?", "SOAP-1").First(&soap)
	if soap.Unit != "pcs" || soap.HasShelfLife || !soap.PackagingVolume.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("soap = %+v", soap)
	}

	again, err := ImportItems(db, strings.NewReader("sku,name,packaging_volume\nRICE-5,Rice 5kg Premium,3\n"), ImportOptions{})
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if again.Updated != 1 || again.Created != 0 {
		t.Errorf("re-import = %+v", again)
	}

	cats, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 {
		t.Errorf("categories = %d, want 2", len(cats))
	}
}

func TestImportItems_RequiresSKUColumn(t *testing.T) {
	db, _ := newCatalog(t)
	if _, err := ImportItems(db, strings.NewReader("name\nx\n"), ImportOptions{}); err == nil {
		t.Error("missing sku column should fail")
	}
}

func TestPackagingListAndUpdate(t *testing.T) {
	db, svc := newCatalog(t)
	ctx := context.Background()
	cat := &entity.Category{Name: "Frozen", Slug: "frozen"}
	db.Create(cat)
	peas := &entity.Item{Name: "Green Peas", SKUCode: "PEAS", Unit: "bag", PackagingVolume: decimal.NewFromInt(1), Active: true, CategoryID: &cat.ID}
	corn := &entity.Item{Name: "Corn", SKUCode: "CORN", Unit: "bag", PackagingVolume: decimal.NewFromInt(1), Active: true}
	db.Create(peas)
	db.Create(corn)

	got, err := svc.Packaging(ctx, "pea", "")
	if err != nil || len(got) != 1 || got[0].SKUCode != "PEAS" {
		t.Fatalf("keyword filter = %v, %v", got, err)
	}
	got, _ = svc.Packaging(ctx, "", "frozen")
	if len(got) != 1 || got[0].Category == nil || got[0].Category.Slug != "frozen" {
		t.Errorf("category filter = %+v", got)
	}

	vol := "0.75"
	size := "500g"
	inactive := false
	updated, err := svc.UpdatePackaging(ctx, corn.ID, PackagingInput{PackagingVolume: &vol, SizeText: &size, Active: &inactive, CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.PackagingVolume.Equal(decimal.RequireFromString("0.75")) || updated.SizeText != "500g" || updated.Active {
		t.Errorf("updated = %+v", updated)
	}
	if updated.CategoryID == nil || *updated.CategoryID != cat.ID || updated.Unit != "bag" {
		t.Errorf("category/unit = %v / %q", updated.CategoryID, updated.Unit)
	}

	bad := "-2"
	if _, err := svc.UpdatePackaging(ctx, corn.ID, PackagingInput{PackagingVolume: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.UpdatePackaging(ctx, 999, PackagingInput{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// inactive items drop out of the category view
	cats, _ := svc.Categories(ctx)
	for _, c := range cats {
		for _, it := range c.Items {
			if it.SKUCode == "CORN" {
				t.Error("inactive item listed in category")
			}
		}
	}
}
