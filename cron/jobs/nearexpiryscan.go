package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"warehouse.GO/config"
	"warehouse.GO/core/cache"
	"warehouse.GO/cron"
	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/service/report"
)

func init() {
	cron.Register("nearexpiryscan", config.CronSchedule("nearexpiryscan", "0 6 * * *"), func(...string) {
		runJob("nearexpiryscan", 5*time.Minute, func(ctx context.Context) error {
			db, err := config.GetDB()
			if err != nil {
				return err
			}
			_, err = NearExpiryScan(ctx, report.NewService(db, cache.Default()), config.GetLogger())
			return err
		})
	})
}

// NearExpiryScan logs stocked batches inside the near-expiry window and warms
// the cached dashboard for the day.
func NearExpiryScan(ctx context.Context, reports *report.Service, logger *logrus.Logger) ([]entity.Batch, error) {
	batches, err := reports.NearExpiry(ctx, 0)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		expiry := ""
		if b.ExpiryDate != nil {
			expiry = entity.FormatDate(*b.ExpiryDate)
		}
		logger.WithFields(logrus.Fields{
			"batch_id":       b.ID,
			"barcode":        b.Barcode,
			"item":           b.Item.Name,
			"quantity_units": b.QuantityUnits,
			"expiry_date":    expiry,
		}).Warn("near expiry")
	}
	if _, err := reports.Dashboard(ctx); err != nil {
		return batches, err
	}
	return batches, nil
}
