package service

import (
	"fmt"

	"thenumbers/pkg/config"
)

type Services struct {
	Number *NumberService
}

// NewServices 依配置建立所有服務
func NewServices(cfg *config.Config) (*Services, error) {
	numberService, err := NewNumberService(cfg.Numbers, DefaultSource())
	if err != nil {
		return nil, fmt.Errorf("number service: %w", err)
	}

	return &Services{
		Number: numberService,
	}, nil
}
