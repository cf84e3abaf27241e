package api

import "VzlaR011Cleaning/internal/serviceiface"

type GatewayService struct {
	config     map[string]interface{}
	port       string
	reportPort string
}

func NewGatewayService(cfg map[string]interface{}, port, reportPort string) serviceiface.Service {
	return &GatewayService{config: cfg, port: port, reportPort: reportPort}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

func (s *GatewayService) Start() error {
	go StartGateway(s.port, s.reportPort)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}
