package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"warehouse.GO/config"
)

// StartCron schedules every registered job and starts the scheduler. Jobs
// that panic are recovered and logged.
func StartCron() (*cron.Cron, error) {
	logger := config.GetLogger()
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(logger))))
	for _, j := range Sorted() {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("register job %s (%q): %w", j.Name, j.Schedule, err)
		}
		logger.WithField("job", j.Name).WithField("schedule", j.Schedule).Info("cron job scheduled")
	}
	c.Start()
	return c, nil
}
