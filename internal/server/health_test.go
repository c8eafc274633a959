package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestHealthWatcher_FlipsStatus(t *testing.T) {
	w := NewHealthWatcher(logger.NewNop())
	var redisErr error
	w.AddCheck("postgres", func(context.Context) error { return nil })
	w.AddCheck("redis", func(context.Context) error { return redisErr })
	ctx := context.Background()

	w.checkAll(ctx)
	resp, err := w.Server().Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	assert.True(t, w.Serving())

	redisErr = errors.New("dial tcp: connection refused")
	w.checkAll(ctx)
	resp, err = w.Server().Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
	assert.False(t, w.Serving())

	redisErr = nil
	w.checkAll(ctx)
	assert.True(t, w.Serving())
}

func TestHealthWatcher_RunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w := NewHealthWatcher(logger.NewNop())
	w.interval = 5 * time.Millisecond
	calls := make(chan struct{}, 16)
	w.AddCheck("postgres", func(context.Context) error {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	<-calls
	<-calls
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestGRPCServer_ServesHealth(t *testing.T) {
	w := NewHealthWatcher(logger.NewNop())
	w.AddCheck("redis", func(context.Context) error { return errors.New("down") })
	w.checkAll(context.Background())

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(w, logger.NewNop())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}
