package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller periodically re-reads durable state so the cached order list picks
// up other writers and the day rollover without a restart.
type Poller struct {
	interval time.Duration
	orders   OrderService
	logger   *zap.Logger
}

func NewPoller(interval time.Duration, orders OrderService, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{interval: interval, orders: orders, logger: logger}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.orders.Refresh(); err != nil {
				p.logger.Warn("order refresh failed", zap.Error(err))
			}
		}
	}
}
