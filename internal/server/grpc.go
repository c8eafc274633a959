package server

import (
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/middleware"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewGRPCServer serves grpc.health.v1.Health backed by the watcher, plus
// reflection for grpcurl.
func NewGRPCServer(watcher *HealthWatcher, log logger.ZapLogger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(log),
			middleware.LoggingInterceptor(log),
		),
	)
	healthpb.RegisterHealthServer(srv, watcher.Server())
	reflection.Register(srv)
	return srv
}
