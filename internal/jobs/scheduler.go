package jobs

import (
	"fmt"
	"log"

	"VzlaR011Cleaning/internal/logger"
	"VzlaR011Cleaning/internal/refdata"
	"VzlaR011Cleaning/internal/serviceiface"
)

type CronService struct {
	config map[string]interface{}
	cache  *refdata.Cache
}

func NewCronService(cfg map[string]interface{}, cache *refdata.Cache) serviceiface.Service {
	return &CronService{
		config: cfg,
		cache:  cache,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	refreshConfig := NewDefaultRefreshConfig()

	// Override schedule from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["refresh_schedule"].(string); ok && schedule != "" {
			refreshConfig.Schedule = schedule
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			refreshConfig.TimeZone = tz
		}
	}

	if err := RunRefdataRefresher(refreshConfig, s.cache); err != nil {
		return fmt.Errorf("failed to start refdata refresher: %v", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started with refdata refresher")
	}
	log.Println("Cron service started — refdata refresher scheduled")
	return nil
}

func (s *CronService) Stop() error {
	return nil
}
