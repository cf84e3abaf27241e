package report

import (
	"VzlaR011Cleaning/internal/serviceiface"
)

// ReportService wraps the R011 processing HTTP server for the app manager.
type ReportService struct {
	config map[string]interface{}
	deps   Deps
}

func NewReportService(cfg map[string]interface{}, deps Deps) serviceiface.Service {
	return &ReportService{config: cfg, deps: deps}
}

func (s *ReportService) Name() string {
	return "report"
}

func (s *ReportService) Start() error {
	go StartReportService(s.deps)
	return nil
}

func (s *ReportService) Stop() error {
	return nil
}
