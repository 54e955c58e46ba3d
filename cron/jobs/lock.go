package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"warehouse.GO/config"
)

// errSkipped reports that another instance holds the job lock.
var errSkipped = errors.New("job already running elsewhere")

// withLock runs fn while holding the redis lock "cron:<name>". Without redis
// fn runs unguarded.
func withLock(ctx context.Context, locker *redislock.Client, name string, ttl time.Duration, fn func(context.Context) error) error {
	if locker == nil {
		return fn(ctx)
	}
	lock, err := locker.Obtain(ctx, "cron:"+name, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return errSkipped
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			config.GetLogger().WithError(err).WithField("job", name).Warn("release lock")
		}
	}()
	return fn(ctx)
}

// runJob is the cron entry point shared by the built-in jobs.
func runJob(name string, ttl time.Duration, fn func(context.Context) error) {
	logger := config.GetLogger().WithField("job", name)
	ctx, cancel := context.WithTimeout(context.Background(), ttl)
	defer cancel()

	start := time.Now()
	err := withLock(ctx, config.RedisLocker, name, ttl, fn)
	switch {
	case errors.Is(err, errSkipped):
		logger.Info("skipped, lock held by another instance")
	case err != nil:
		config.LogError(config.GetLogger(), "cron", name, "", nil, err)
	default:
		logger.WithFields(logrus.Fields{"duration_ms": time.Since(start).Milliseconds()}).Info("job finished")
	}
}
