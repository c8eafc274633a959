package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultHealthInterval = 10 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type namedCheck struct {
	name  string
	check Check
}

// HealthWatcher pings the service dependencies on an interval and publishes
// the result to the gRPC health server and /healthz.
type HealthWatcher struct {
	health   *health.Server
	checks   []namedCheck
	interval time.Duration
	serving  atomic.Bool
	logger   logger.ZapLogger
}

func NewHealthWatcher(log logger.ZapLogger) *HealthWatcher {
	w := &HealthWatcher{
		health:   health.NewServer(),
		interval: defaultHealthInterval,
		logger:   log,
	}
	w.serving.Store(true)
	return w
}

func (w *HealthWatcher) AddCheck(name string, check Check) {
	w.checks = append(w.checks, namedCheck{name: name, check: check})
}

func (w *HealthWatcher) Server() *health.Server {
	return w.health
}

func (w *HealthWatcher) Serving() bool {
	return w.serving.Load()
}

// Run checks once immediately and then every interval until ctx is done.
func (w *HealthWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.checkAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.checkAll(ctx)
		}
	}
}

func (w *HealthWatcher) checkAll(ctx context.Context) {
	ok := true
	for _, c := range w.checks {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := c.check(cctx)
		cancel()
		if err != nil {
			ok = false
			w.logger.Warn("dependency health check failed", zap.String("dependency", c.name), zap.Error(err))
		}
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !ok {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	if w.serving.Swap(ok) != ok {
		w.logger.Info("serving status changed", zap.String("status", status.String()))
	}
	w.health.SetServingStatus("", status)
}

// Shutdown marks every service NOT_SERVING so load balancers drain first.
func (w *HealthWatcher) Shutdown() {
	w.serving.Store(false)
	w.health.Shutdown()
}
