// Package scheduler runs the automation sweeps on cron schedules for the
// lifetime of the server process.
package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"campusvibe_backend/internals/configs"
	"campusvibe_backend/internals/features/automation/service"
)

type Config struct {
	OffboardSchedule string
	WarningSchedule  string
	Timeout          time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		OffboardSchedule: configs.GetEnv("AUTOMATION_CRON", "0 0 * * *"),
		WarningSchedule:  configs.GetEnv("AUTOMATION_WARNING_CRON", "0 8 * * *"),
		Timeout:          configs.GetEnvDuration("AUTOMATION_TIMEOUT", 10*time.Minute),
	}
}

// Start registers both sweeps and starts the cron. Stop the returned cron on
// shutdown; its context is done once running jobs finish.
func Start(off *service.Offboarder, cfg Config) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if _, err := c.AddFunc(cfg.OffboardSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if _, err := off.Run(ctx); err != nil {
			if errors.Is(err, service.ErrRunInProgress) {
				log.Println("[AUTOMATION] off-boarding skipped: previous run still active")
				return
			}
			log.Printf("[AUTOMATION] off-boarding finished with errors: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(cfg.WarningSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if _, err := off.WarnExpiring(ctx); err != nil {
			log.Printf("[AUTOMATION] expiry warning error: %v", err)
		}
	}); err != nil {
		return nil, err
	}

	log.Printf("[AUTOMATION] started offboard=%q warning=%q timeout=%s",
		cfg.OffboardSchedule, cfg.WarningSchedule, cfg.Timeout)
	c.Start()
	return c, nil
}
