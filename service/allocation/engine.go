package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"warehouse.GO/config"
	"warehouse.GO/model/entity/warehouse"
)

// UnlimitedUnits is reported by MaxPlaceableUnits for items without a
// packaging volume.
const UnlimitedUnits int64 = 1000000000

// ErrInsufficientStock is returned when an outbound asks for more than the
// batch holds. Nothing is mutated in that case.
var ErrInsufficientStock = errors.New("not enough stock for outbound")

// Assignment is one per-location quantity change, in the order it was applied.
type Assignment struct {
	Location warehouse.Location `json:"location"`
	Units    int                `json:"units"`
}

type AllocationResult struct {
	AllocatedUnits int          `json:"allocated_units"`
	RemainingUnits int          `json:"remaining_units"`
	Assignments    []Assignment `json:"assignments"`
}

type DeallocationResult struct {
	RemovedUnits int          `json:"removed_units"`
	Assignments  []Assignment `json:"assignments"`
}

// Engine turns batch quantity changes into per-location adjustments.
type Engine struct {
	store  Store
	logger *logrus.Logger
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, logger: config.GetLogger()}
}

// candidates returns preferred (if any) followed by every other location by code.
func (e *Engine) candidates(ctx context.Context, preferred *warehouse.Location) ([]warehouse.Location, error) {
	var exclude *uint
	var out []warehouse.Location
	if preferred != nil {
		out = append(out, *preferred)
		exclude = &preferred.ID
	}
	rest, err := e.store.LocationsByCode(ctx, exclude)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return append(out, rest...), nil
}

// fitUnits is floor(available / perUnit) for positive operands.
func fitUnits(available, perUnit decimal.Decimal) int64 {
	q, _ := available.QuoRem(perUnit, 0)
	return q.IntPart()
}

// AllocateInbound grows the batch total by quantity and shelves as much of it
// as the candidate locations can hold. batch.Item must be loaded. Units that do
// not fit are reported in RemainingUnits; that is not an error.
func (e *Engine) AllocateInbound(ctx context.Context, batch *warehouse.Batch, quantity int, preferred *warehouse.Location) (*AllocationResult, error) {
	units := quantity
	if units < 0 {
		units = 0
	}
	result := &AllocationResult{Assignments: []Assignment{}}
	if units == 0 {
		return result, nil
	}

	batch.QuantityUnits += units
	if err := e.store.SaveBatchQuantity(ctx, batch); err != nil {
		batch.QuantityUnits -= units
		return nil, fmt.Errorf("save batch quantity: %w", err)
	}

	locations, err := e.candidates(ctx, preferred)
	if err != nil {
		return nil, err
	}

	perUnit := batch.Item.PackagingVolume
	remaining := units
	for _, loc := range locations {
		if remaining <= 0 {
			break
		}
		assign := remaining
		if perUnit.IsPositive() {
			available, err := e.store.AvailableVolume(ctx, loc.ID)
			if err != nil {
				return nil, fmt.Errorf("available volume of %s: %w", loc.Code, err)
			}
			if !available.IsPositive() {
				continue
			}
			fit := fitUnits(available, perUnit)
			if fit <= 0 {
				continue
			}
			if fit < int64(remaining) {
				assign = int(fit)
			}
		}
		if err := e.store.AddUnits(ctx, batch.ID, loc.ID, assign); err != nil {
			return nil, fmt.Errorf("assign %d units to %s: %w", assign, loc.Code, err)
		}
		result.Assignments = append(result.Assignments, Assignment{Location: loc, Units: assign})
		remaining -= assign
	}

	result.AllocatedUnits = units - remaining
	result.RemainingUnits = remaining
	return result, nil
}

// ReleaseOutbound removes quantity units of the batch from its locations,
// draining preferred first and then the fullest locations.
func (e *Engine) ReleaseOutbound(ctx context.Context, batch *warehouse.Batch, quantity int, preferred *warehouse.Location) (*DeallocationResult, error) {
	units := quantity
	if units < 0 {
		units = 0
	}
	result := &DeallocationResult{Assignments: []Assignment{}}
	if units == 0 {
		return result, nil
	}
	if units > batch.QuantityUnits {
		return nil, fmt.Errorf("%w: requested %d, on hand %d", ErrInsufficientStock, units, batch.QuantityUnits)
	}

	target := units
	remaining := target

	drain := func(row *warehouse.BatchLocation) error {
		take := row.QuantityUnits
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			return nil
		}
		if err := e.store.DrainBatchLocation(ctx, row, take); err != nil {
			return fmt.Errorf("drain location %d: %w", row.LocationID, err)
		}
		var loc warehouse.Location
		if row.Location != nil {
			loc = *row.Location
		}
		result.Assignments = append(result.Assignments, Assignment{Location: loc, Units: take})
		remaining -= take
		return nil
	}

	if preferred != nil {
		row, err := e.store.FindBatchLocation(ctx, batch.ID, preferred.ID)
		if err != nil {
			return nil, fmt.Errorf("find preferred location: %w", err)
		}
		if row != nil {
			if row.Location == nil {
				row.Location = preferred
			}
			if err := drain(row); err != nil {
				return nil, err
			}
		}
	}

	if remaining > 0 {
		rows, err := e.store.BatchLocationsByQuantity(ctx, batch.ID)
		if err != nil {
			return nil, fmt.Errorf("list batch locations: %w", err)
		}
		for i := range rows {
			if err := drain(&rows[i]); err != nil {
				return nil, err
			}
			if remaining <= 0 {
				break
			}
		}
	}

	removed := target - remaining
	if removed > 0 {
		batch.QuantityUnits -= removed
		if batch.QuantityUnits < 0 {
			batch.QuantityUnits = 0
		}
		if err := e.store.SaveBatchQuantity(ctx, batch); err != nil {
			return nil, fmt.Errorf("save batch quantity: %w", err)
		}
	}
	result.RemovedUnits = removed

	if removed < units {
		e.logger.WithFields(logrus.Fields{
			"module":    "allocation",
			"batch_id":  batch.ID,
			"requested": units,
			"removed":   removed,
		}).Warn("location rows under-account for batch stock")
	}
	return result, nil
}

// MaxPlaceableUnits sums how many units of item fit across the candidate
// locations. Read-only.
func (e *Engine) MaxPlaceableUnits(ctx context.Context, item *warehouse.Item, preferred *warehouse.Location) (int64, error) {
	perUnit := item.PackagingVolume
	if !perUnit.IsPositive() {
		return UnlimitedUnits, nil
	}
	locations, err := e.candidates(ctx, preferred)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, loc := range locations {
		available, err := e.store.AvailableVolume(ctx, loc.ID)
		if err != nil {
			return 0, fmt.Errorf("available volume of %s: %w", loc.Code, err)
		}
		if !available.IsPositive() {
			continue
		}
		total += fitUnits(available, perUnit)
	}
	return total, nil
}
