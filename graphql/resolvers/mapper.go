package resolvers

import (
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"gorm.io/datatypes"

	gqlmodels "warehouse.GO/graphql/models"
	entity "warehouse.GO/model/entity/warehouse"
)

func toID(id uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(id), 10))
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dateString(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	return optString(entity.FormatDate(*d))
}

func itemToModel(it *entity.Item) *gqlmodels.Item {
	m := &gqlmodels.Item{
		ID:              toID(it.ID),
		SKU:             it.SKUCode,
		Name:            it.Name,
		Unit:            it.Unit,
		SizeText:        optString(it.SizeText),
		PackagingVolume: it.PackagingVolume.String(),
		HasShelfLife:    it.HasShelfLife,
		Active:          it.Active,
		Batches:         []*gqlmodels.Batch{},
	}
	if it.Category != nil {
		m.Category = optString(it.Category.Name)
	}
	for i := range it.Batches {
		m.Batches = append(m.Batches, batchToModel(&it.Batches[i]))
	}
	return m
}

func locationToModel(l *entity.Location, withUsage bool) *gqlmodels.Location {
	m := &gqlmodels.Location{
		ID:             toID(l.ID),
		Code:           l.Code,
		Name:           l.Name,
		CapacityVolume: l.CapacityVolume.String(),
	}
	if withUsage {
		used, avail := l.UsedVolume.String(), l.AvailableVolume().String()
		m.UsedVolume, m.AvailableVolume = &used, &avail
	}
	return m
}

func batchToModel(b *entity.Batch) *gqlmodels.Batch {
	m := &gqlmodels.Batch{
		ID:             toID(b.ID),
		BatchNumber:    b.BatchNumber,
		Barcode:        b.Barcode,
		QuantityUnits:  int32(b.QuantityUnits),
		ProductionDate: dateString(b.ProductionDate),
		ExpiryDate:     dateString(b.ExpiryDate),
		Locations:      []*gqlmodels.Stock{},
	}
	if b.Item.ID != 0 {
		item := b.Item
		item.Batches = nil
		m.Item = itemToModel(&item)
	}
	for i := range b.Locations {
		row := &b.Locations[i]
		if row.Location == nil {
			continue
		}
		m.Locations = append(m.Locations, &gqlmodels.Stock{
			Location:      locationToModel(row.Location, false),
			QuantityUnits: int32(row.QuantityUnits),
		})
	}
	return m
}
