package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"warehouse.GO/config"
	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	repo "warehouse.GO/model/repository/warehouse"
	"warehouse.GO/service/allocation"
)

var (
	ErrNotFound        = errors.New("no matching item or batch")
	ErrInvalidInput    = errors.New("invalid input")
	ErrBarcodeInUse    = errors.New("barcode already used by another batch")
	defaultInboundNote = "scan inbound"
)

// Message is an operator-facing note attached to a movement result.
type Message struct {
	Level string `json:"level"` // info, warning or success
	Text  string `json:"text"`
}

type InboundInput struct {
	BatchID        *uint  `json:"batch_id"`
	ItemID         uint   `json:"item_id"`
	BatchNumber    string `json:"batch_number"`
	ProductionDate string `json:"production_date"`
	ExpiryDate     string `json:"expiry_date"`
	Barcode        string `json:"barcode"`
	Quantity       int    `json:"quantity_units"`
	LocationID     *uint  `json:"location_id"`
	OperatorID     *uint  `json:"-"`
	Note           string `json:"note"`
}

type InboundResult struct {
	Batch      *entity.Batch                `json:"batch"`
	Allocation *allocation.AllocationResult `json:"allocation"`
	Movement   *entity.Movement             `json:"movement"`
	Messages   []Message                    `json:"messages"`
}

type OutboundInput struct {
	BatchID    uint   `json:"batch_id"`
	Quantity   int    `json:"quantity_units"`
	LocationID *uint  `json:"location_id"`
	OperatorID *uint  `json:"-"`
	Note       string `json:"note"`
}

type OutboundResult struct {
	Batch      *entity.Batch                  `json:"batch"`
	Allocation *allocation.DeallocationResult `json:"allocation"`
	Movement   *entity.Movement               `json:"movement"`
	Messages   []Message                      `json:"messages"`
}

// ScanResult holds a batch hit (with its item) or an item hit (with its
// batches, newest first).
type ScanResult struct {
	Item      *entity.Item      `json:"item"`
	Batch     *entity.Batch     `json:"batch,omitempty"`
	Batches   []entity.Batch    `json:"batches,omitempty"`
	Movements []entity.Movement `json:"movements,omitempty"`
}

type Service struct {
	db     *gorm.DB
	cache  cache.Store
	logger *logrus.Logger
}

func NewService(db *gorm.DB, c cache.Store) *Service {
	if c == nil {
		c = cache.Default()
	}
	return &Service{db: db, cache: c, logger: config.GetLogger()}
}

// Inbound receives quantity units into a batch and shelves them. The batch is
// resolved by id, or found/created by (item, batch number). The batch update,
// location rows and the IN movement commit together.
func (s *Service) Inbound(ctx context.Context, in InboundInput) (*InboundResult, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	out := &InboundResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch, err := resolveInboundBatch(tx, in)
		if err != nil {
			return err
		}
		preferred, err := findLocation(tx, in.LocationID)
		if err != nil {
			return err
		}

		res, err := allocation.NewEngine(repo.NewAllocationStore(tx)).AllocateInbound(ctx, batch, in.Quantity, preferred)
		if err != nil {
			return err
		}
		note := strings.TrimSpace(in.Note)
		if note == "" {
			note = defaultInboundNote
		}
		mv := newMovement(batch.ID, entity.DirectionIn, in.Quantity, in.OperatorID, preferred, note)
		if err := repo.NewMovementRepository(tx).Create(mv); err != nil {
			return fmt.Errorf("record movement: %w", err)
		}

		unit := batch.Item.UnitName(config.App().DefaultUnit)
		if len(res.Assignments) > 0 {
			out.Messages = append(out.Messages, Message{"info", "allocated to locations: " + assignmentText(res.Assignments, unit)})
		}
		if res.RemainingUnits > 0 {
			out.Messages = append(out.Messages, Message{"warning", fmt.Sprintf("insufficient location capacity, %d%s not shelved", res.RemainingUnits, unit)})
		}
		out.Messages = append(out.Messages, Message{"success", "inbound recorded"})
		out.Batch, out.Allocation, out.Movement = batch, res, mv
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return out, nil
}

// Outbound ships quantity units of a batch, draining the preferred location
// first. Asking for more than the batch holds fails with
// allocation.ErrInsufficientStock and changes nothing.
func (s *Service) Outbound(ctx context.Context, in OutboundInput) (*OutboundResult, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	out := &OutboundResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch, err := repo.NewBatchRepository(tx).FindByID(in.BatchID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: batch %d", ErrNotFound, in.BatchID)
		}
		if err != nil {
			return err
		}
		preferred, err := findLocation(tx, in.LocationID)
		if err != nil {
			return err
		}

		res, err := allocation.NewEngine(repo.NewAllocationStore(tx)).ReleaseOutbound(ctx, batch, in.Quantity, preferred)
		if err != nil {
			return err
		}
		mv := newMovement(batch.ID, entity.DirectionOut, in.Quantity, in.OperatorID, preferred, strings.TrimSpace(in.Note))
		if err := repo.NewMovementRepository(tx).Create(mv); err != nil {
			return fmt.Errorf("record movement: %w", err)
		}

		unit := batch.Item.UnitName(config.App().DefaultUnit)
		if len(res.Assignments) > 0 {
			out.Messages = append(out.Messages, Message{"info", "removed from locations: " + assignmentText(res.Assignments, unit)})
		}
		if diff := in.Quantity - res.RemovedUnits; diff > 0 {
			out.Messages = append(out.Messages, Message{"warning", fmt.Sprintf("%d%s have no matching location, please verify", diff, unit)})
		}
		out.Messages = append(out.Messages, Message{"success", "outbound recorded"})
		out.Batch, out.Allocation, out.Movement = batch, res, mv
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return out, nil
}

// Scan looks code up as a batch barcode first, then as an item SKU.
func (s *Service) Scan(ctx context.Context, code string) (*ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", ErrInvalidInput)
	}
	db := s.db.WithContext(ctx)

	batch, err := repo.NewBatchRepository(db).FindByBarcode(code)
	if err == nil {
		item := batch.Item
		moves, err := repo.NewMovementRepository(db).ListByBatch(batch.ID, 20)
		if err != nil {
			return nil, err
		}
		return &ScanResult{Item: &item, Batch: batch, Movements: moves}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item, err := repo.NewItemRepository(db).FindBySKUWithBatches(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return &ScanResult{Item: item, Batches: item.Batches}, nil
}

// PlaceableUnits reports how many more units of the item the locations can
// take, starting from locationID when given.
func (s *Service) PlaceableUnits(ctx context.Context, itemID uint, locationID *uint) (int64, error) {
	db := s.db.WithContext(ctx)
	item, err := repo.NewItemRepository(db).FindByID(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return 0, err
	}
	preferred, err := findLocation(db, locationID)
	if err != nil {
		return 0, err
	}
	return allocation.NewEngine(repo.NewAllocationStore(db)).MaxPlaceableUnits(ctx, item, preferred)
}

// PlaceableUnitsBySKU is PlaceableUnits keyed by SKU and location code.
func (s *Service) PlaceableUnitsBySKU(ctx context.Context, sku, locationCode string) (int64, error) {
	db := s.db.WithContext(ctx)
	item, err := repo.NewItemRepository(db).FindBySKU(sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: sku %s", ErrNotFound, sku)
	}
	if err != nil {
		return 0, err
	}
	var locID *uint
	if locationCode != "" {
		loc, err := repo.NewLocationRepository(db).FindByCode(locationCode)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: location %s", ErrNotFound, locationCode)
		}
		if err != nil {
			return 0, err
		}
		locID = &loc.ID
	}
	return s.PlaceableUnits(ctx, item.ID, locID)
}

func (s *Service) invalidate(ctx context.Context) {
	s.cache.DeleteByTag(ctx, cache.TagReports)
}

func resolveInboundBatch(tx *gorm.DB, in InboundInput) (*entity.Batch, error) {
	batches := repo.NewBatchRepository(tx)
	if in.BatchID != nil {
		b, err := batches.FindByID(*in.BatchID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: batch %d", ErrNotFound, *in.BatchID)
		}
		return b, err
	}

	number := strings.TrimSpace(in.BatchNumber)
	barcode := strings.TrimSpace(in.Barcode)
	if in.ItemID == 0 || number == "" || barcode == "" {
		return nil, fmt.Errorf("%w: item, batch number and barcode are required", ErrInvalidInput)
	}
	production, err := repo.ParseDate(in.ProductionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: production date: %v", ErrInvalidInput, err)
	}
	expiry, err := repo.ParseDate(in.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry date: %v", ErrInvalidInput, err)
	}

	item, err := repo.NewItemRepository(tx).FindByID(in.ItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: item %d", ErrNotFound, in.ItemID)
	}
	if err != nil {
		return nil, err
	}

	holder, err := batches.FindByBarcode(barcode)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	batch, err := batches.FindByItemAndNumber(item.ID, number)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if holder != nil {
			return nil, fmt.Errorf("%w: %s", ErrBarcodeInUse, barcode)
		}
		batch = &entity.Batch{
			ItemID:         item.ID,
			BatchNumber:    number,
			ProductionDate: production,
			ExpiryDate:     expiry,
			Barcode:        barcode,
		}
		if err := batches.Create(batch); err != nil {
			return nil, fmt.Errorf("create batch: %w", err)
		}
		batch.Item = *item
		return batch, nil
	case err != nil:
		return nil, err
	}

	if holder != nil && holder.ID != batch.ID {
		return nil, fmt.Errorf("%w: %s", ErrBarcodeInUse, barcode)
	}
	batch.ProductionDate, batch.ExpiryDate, batch.Barcode = production, expiry, barcode
	if err := batches.UpdateDetails(batch); err != nil {
		return nil, fmt.Errorf("update batch: %w", err)
	}
	return batch, nil
}

func findLocation(db *gorm.DB, id *uint) (*entity.Location, error) {
	if id == nil {
		return nil, nil
	}
	loc, err := repo.NewLocationRepository(db).FindByID(*id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: location %d", ErrNotFound, *id)
	}
	return loc, err
}

func newMovement(batchID uint, dir entity.Direction, qty int, operatorID *uint, loc *entity.Location, note string) *entity.Movement {
	mv := &entity.Movement{
		Reference:     uuid.NewString(),
		BatchID:       batchID,
		Direction:     dir,
		QuantityUnits: qty,
		OperatorID:    operatorID,
		Note:          note,
	}
	if loc != nil {
		id := loc.ID
		mv.LocationID = &id
	}
	return mv
}

func assignmentText(assignments []allocation.Assignment, unit string) string {
	parts := make([]string, len(assignments))
	for i, a := range assignments {
		parts[i] = fmt.Sprintf("%s:%d%s", a.Location.Code, a.Units, unit)
	}
	return strings.Join(parts, ", ")
}
