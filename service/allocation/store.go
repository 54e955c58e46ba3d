package allocation

import (
	"context"

	"github.com/shopspring/decimal"

	"warehouse.GO/model/entity/warehouse"
)

// Store is the persistence the engine works against. Implementations are
// expected to run inside the caller's transaction.
type Store interface {
	// LocationsByCode returns every location ordered by ascending code,
	// leaving out excludeID when it is non-nil.
	LocationsByCode(ctx context.Context, excludeID *uint) ([]warehouse.Location, error)
	// AvailableVolume is capacity minus the volume of every unit stored there.
	AvailableVolume(ctx context.Context, locationID uint) (decimal.Decimal, error)
	// SaveBatchQuantity persists batch.QuantityUnits.
	SaveBatchQuantity(ctx context.Context, batch *warehouse.Batch) error
	// AddUnits gets or creates the (batch, location) row and increments it.
	AddUnits(ctx context.Context, batchID, locationID uint, units int) error
	// FindBatchLocation returns nil, nil when the batch has no row there.
	FindBatchLocation(ctx context.Context, batchID, locationID uint) (*warehouse.BatchLocation, error)
	// BatchLocationsByQuantity lists a batch's rows, fullest first, ties by
	// location code. Location is populated on every row.
	BatchLocationsByQuantity(ctx context.Context, batchID uint) ([]warehouse.BatchLocation, error)
	// DrainBatchLocation decrements row by units and deletes it at zero.
	DrainBatchLocation(ctx context.Context, row *warehouse.BatchLocation, units int) error
}
