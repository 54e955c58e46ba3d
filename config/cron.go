package config

import "strings"

// Default schedules of the built-in jobs. Override with CRON_<NAME>, e.g.
// CRON_STOCKAUDIT="@every 30m".
var CronSchedules = map[string]string{
	"stockaudit":     "0 * * * *",
	"nearexpiryscan": "0 6 * * *",
}

// CronSchedule returns the schedule for job name, falling back to def.
func CronSchedule(name, def string) string {
	if s, ok := CronSchedules[name]; ok {
		def = s
	}
	return GetEnv("CRON_"+strings.ToUpper(name), def)
}
