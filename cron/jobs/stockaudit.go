package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"warehouse.GO/config"
	"warehouse.GO/cron"
	repo "warehouse.GO/model/repository/warehouse"
)

func init() {
	cron.Register("stockaudit", config.CronSchedule("stockaudit", "0 * * * *"), func(...string) {
		runJob("stockaudit", 10*time.Minute, func(ctx context.Context) error {
			db, err := config.GetDB()
			if err != nil {
				return err
			}
			_, err = StockAudit(ctx, db, config.GetLogger())
			return err
		})
	})
}

// StockAudit finds batches whose total disagrees with the sum of their
// location rows and logs each one as a warning.
func StockAudit(ctx context.Context, db *gorm.DB, logger *logrus.Logger) ([]repo.Drift, error) {
	drift, err := repo.NewBatchRepository(db.WithContext(ctx)).FindDrift()
	if err != nil {
		return nil, err
	}
	for _, d := range drift {
		logger.WithFields(logrus.Fields{
			"batch_id":       d.BatchID,
			"barcode":        d.Barcode,
			"quantity_units": d.QuantityUnits,
			"row_units":      d.RowUnits,
		}).Warn("stock audit: batch total differs from location rows")
	}
	logger.WithField("drifted", len(drift)).Info("stock audit complete")
	return drift, nil
}
