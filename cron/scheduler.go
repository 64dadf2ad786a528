package cron

import (
	"log"

	"github.com/robfig/cron/v3"
)

// StartCron schedules every registered job and starts the scheduler.
func StartCron() *cron.Cron {
	c := cron.New()
	for name, j := range Jobs() {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	c.Start()
	return c
}
