package report

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"warehouse.GO/config"
	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	repo "warehouse.GO/model/repository/warehouse"
)

const cacheTTL = 5 * time.Minute

type Dashboard struct {
	ItemCount       int64 `json:"item_count"`
	BatchCount      int64 `json:"batch_count"`
	NearExpiryCount int64 `json:"near_expiry_count"`
}

type Service struct {
	db     *gorm.DB
	cache  cache.Store
	logger *logrus.Logger
	days   int
	now    func() time.Time
}

func NewService(db *gorm.DB, c cache.Store) *Service {
	if c == nil {
		c = cache.Default()
	}
	return &Service{
		db:     db,
		cache:  c,
		logger: config.GetLogger(),
		days:   config.App().NearExpiryDays,
		now:    time.Now,
	}
}

// WithClock overrides the clock used for expiry thresholds.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Threshold is the last expiry date that still counts as near expiry.
func (s *Service) Threshold() time.Time {
	return time.Time(entity.Date(s.now())).AddDate(0, 0, s.days)
}

// Dashboard counts items, batches and batches expiring by the threshold
// (already expired included, stock level ignored).
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	threshold := s.Threshold()
	key := cache.Key("report", "dashboard", threshold.Format("2006-01-02"))
	return cache.Remember(ctx, s.cache, key, cacheTTL, []string{cache.TagReports}, func() (*Dashboard, error) {
		var d Dashboard
		db := s.db.WithContext(ctx)
		g, _ := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			d.ItemCount, err = repo.NewItemRepository(db).Count()
			return err
		})
		g.Go(func() (err error) {
			d.BatchCount, err = repo.NewBatchRepository(db).Count()
			return err
		})
		g.Go(func() (err error) {
			d.NearExpiryCount, err = repo.NewBatchRepository(db).CountExpiringBy(threshold)
			return err
		})
		if err := g.Wait(); err != nil {
			config.LogError(s.logger, "report", "Dashboard", "count", nil, err)
			return nil, err
		}
		return &d, nil
	})
}

// NearExpiry lists stocked batches expiring within days (or the configured
// window when days <= 0), soonest first.
func (s *Service) NearExpiry(ctx context.Context, days int) ([]entity.Batch, error) {
	if days <= 0 {
		days = s.days
	}
	cutoff := time.Time(entity.Date(s.now())).AddDate(0, 0, days)
	return repo.NewBatchRepository(s.db.WithContext(ctx)).ExpiringBy(cutoff)
}

// PopularItems ranks items by movement count.
func (s *Service) PopularItems(ctx context.Context, limit int) ([]repo.ItemMovementCount, error) {
	if limit <= 0 {
		limit = config.App().PopularLimit
	}
	key := cache.Key("report", "popular", limit)
	return cache.Remember(ctx, s.cache, key, cacheTTL, []string{cache.TagReports}, func() ([]repo.ItemMovementCount, error) {
		return repo.NewMovementRepository(s.db.WithContext(ctx)).PopularItems(limit)
	})
}
