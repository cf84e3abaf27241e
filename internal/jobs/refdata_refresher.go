package jobs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"VzlaR011Cleaning/internal/config"
	"VzlaR011Cleaning/internal/logger"
	"VzlaR011Cleaning/internal/refdata"
)

// RefreshConfig holds configuration for reference-workbook refresh
type RefreshConfig struct {
	Schedule string // Cron schedule (default: every six hours)
	TimeZone string // Timezone for scheduling
}

// NewDefaultRefreshConfig creates a new RefreshConfig with default values
func NewDefaultRefreshConfig() *RefreshConfig {
	schedule := os.Getenv("REFDATA_REFRESH_SCHEDULE")
	if schedule == "" {
		schedule = config.DefaultRefreshSchedule
	}
	return &RefreshConfig{
		Schedule: schedule,
		TimeZone: config.DefaultTimeZone,
	}
}

// RunRefdataRefresher starts the cron job that re-reads the reference
// workbook so lookup edits land without a restart.
func RunRefdataRefresher(cfg *RefreshConfig, cache *refdata.Cache) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRefreshSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		start := time.Now()
		cache.Refresh()
		msg := fmt.Sprintf("Reference workbook refreshed in %s", time.Since(start).Round(time.Millisecond))
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(msg)
		} else {
			log.Println("[Jobs]", msg)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refdata refresh: %v", err)
	}

	c.Start()
	log.Printf("[Jobs] Refdata refresher scheduled (%s, %s)", cfg.Schedule, cfg.TimeZone)
	return nil
}
