package allocation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"warehouse.GO/model/entity/warehouse"
)

type rowKey struct {
	batchID    uint
	locationID uint
}

// MemoryStore keeps locations, batches and their rows in process memory. It
// backs dry-run simulations and tests.
type MemoryStore struct {
	mu        sync.Mutex
	locations map[uint]warehouse.Location
	batches   map[uint]*warehouse.Batch
	rows      map[rowKey]*warehouse.BatchLocation
	nextRowID uint
}

// Verify interface compliance
var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locations: make(map[uint]warehouse.Location),
		batches:   make(map[uint]*warehouse.Batch),
		rows:      make(map[rowKey]*warehouse.BatchLocation),
	}
}

// AddLocation registers loc. IDs must be unique and non-zero.
func (m *MemoryStore) AddLocation(loc warehouse.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[loc.ID] = loc
}

// AddBatch registers a copy of batch (with its Item) for volume accounting.
func (m *MemoryStore) AddBatch(batch warehouse.Batch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := batch
	m.batches[b.ID] = &b
}

// PutRow seeds an existing (batch, location) quantity.
func (m *MemoryStore) PutRow(batchID, locationID uint, units int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRowID++
	m.rows[rowKey{batchID, locationID}] = &warehouse.BatchLocation{
		ID:            m.nextRowID,
		BatchID:       batchID,
		LocationID:    locationID,
		QuantityUnits: units,
	}
}

// Quantity returns the units of batchID in locationID (0 when absent).
func (m *MemoryStore) Quantity(batchID, locationID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[rowKey{batchID, locationID}]; ok {
		return r.QuantityUnits
	}
	return 0
}

// Rows returns every row of batchID, including any zero-quantity row.
func (m *MemoryStore) Rows(batchID uint) []warehouse.BatchLocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []warehouse.BatchLocation
	for k, r := range m.rows {
		if k.batchID == batchID {
			out = append(out, *r)
		}
	}
	return out
}

// BatchQuantity returns the stored total of batchID.
func (m *MemoryStore) BatchQuantity(batchID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.batches[batchID]; ok {
		return b.QuantityUnits
	}
	return 0
}

func (m *MemoryStore) LocationsByCode(_ context.Context, excludeID *uint) ([]warehouse.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]warehouse.Location, 0, len(m.locations))
	for id, loc := range m.locations {
		if excludeID != nil && id == *excludeID {
			continue
		}
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemoryStore) AvailableVolume(_ context.Context, locationID uint) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loc, ok := m.locations[locationID]
	if !ok {
		return decimal.Zero, fmt.Errorf("location %d not found", locationID)
	}
	used := decimal.Zero
	for k, r := range m.rows {
		if k.locationID != locationID {
			continue
		}
		b, ok := m.batches[k.batchID]
		if !ok {
			continue
		}
		used = used.Add(decimal.NewFromInt(int64(r.QuantityUnits)).Mul(b.Item.PackagingVolume))
	}
	return loc.CapacityVolume.Sub(used), nil
}

func (m *MemoryStore) SaveBatchQuantity(_ context.Context, batch *warehouse.Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.batches[batch.ID]; ok {
		b.QuantityUnits = batch.QuantityUnits
		return nil
	}
	b := *batch
	m.batches[b.ID] = &b
	return nil
}

func (m *MemoryStore) AddUnits(_ context.Context, batchID, locationID uint, units int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := rowKey{batchID, locationID}
	r, ok := m.rows[k]
	if !ok {
		m.nextRowID++
		r = &warehouse.BatchLocation{ID: m.nextRowID, BatchID: batchID, LocationID: locationID}
		m.rows[k] = r
	}
	r.QuantityUnits += units
	return nil
}

func (m *MemoryStore) FindBatchLocation(_ context.Context, batchID, locationID uint) (*warehouse.BatchLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[rowKey{batchID, locationID}]
	if !ok {
		return nil, nil
	}
	row := *r
	if loc, ok := m.locations[locationID]; ok {
		row.Location = &loc
	}
	return &row, nil
}

func (m *MemoryStore) BatchLocationsByQuantity(_ context.Context, batchID uint) ([]warehouse.BatchLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []warehouse.BatchLocation
	for k, r := range m.rows {
		if k.batchID != batchID {
			continue
		}
		row := *r
		if loc, ok := m.locations[k.locationID]; ok {
			row.Location = &loc
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantityUnits != out[j].QuantityUnits {
			return out[i].QuantityUnits > out[j].QuantityUnits
		}
		return out[i].Location.Code < out[j].Location.Code
	})
	return out, nil
}

func (m *MemoryStore) DrainBatchLocation(_ context.Context, row *warehouse.BatchLocation, units int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := rowKey{row.BatchID, row.LocationID}
	r, ok := m.rows[k]
	if !ok {
		return fmt.Errorf("batch %d has no stock in location %d", row.BatchID, row.LocationID)
	}
	r.QuantityUnits -= units
	row.QuantityUnits = r.QuantityUnits
	if r.QuantityUnits <= 0 {
		delete(m.rows, k)
	}
	return nil
}
