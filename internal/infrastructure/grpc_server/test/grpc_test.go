package grpcserver_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	v1 "github.com/bionicotaku/lingo-services-greeter/api/helloworld/v1"
	"github.com/bionicotaku/lingo-services-greeter/internal/controllers"
	loader "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/config_loader"
	grpcserver "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/grpc_server"
	"github.com/bionicotaku/lingo-services-greeter/internal/models/po"
	"github.com/bionicotaku/lingo-services-greeter/internal/services"

	"github.com/bionicotaku/lingo-utils/observability"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	stdgrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	grpcmd "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// memoryRepo 记录写入的问候日志，可按需注入一次性失败。
type memoryRepo struct {
	mu       sync.Mutex
	records  []po.GreetingLog
	failNext error
}

func (r *memoryRepo) Record(_ context.Context, g *po.GreetingLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failNext; err != nil {
		r.failNext = nil
		return err
	}
	r.records = append(r.records, *g)
	return nil
}

func (r *memoryRepo) snapshot() []po.GreetingLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]po.GreetingLog(nil), r.records...)
}

func startServer(t *testing.T, repo services.GreetingLogRepo) string {
	t.Helper()
	logger := log.NewStdLogger(io.Discard)
	uc := services.NewGreeterUsecase(repo, logger)
	handler := controllers.NewGreeterHandler(uc, controllers.NewBaseHandler(controllers.HandlerTimeouts{}), logger)

	cfg := &loader.ServerConfig{Network: "tcp", Addr: "127.0.0.1:0", Timeout: 5 * time.Second}
	metricsCfg := &observability.MetricsConfig{GRPCEnabled: true, GRPCIncludeHealth: false}
	srv := grpcserver.NewGRPCServer(cfg, metricsCfg, handler, logger)

	// Force endpoint initialization to retrieve the bound address.
	endpointURL, err := srv.Endpoint()
	require.NoError(t, err)
	addr := endpointURL.Host

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			t.Logf("server start returned: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		_ = srv.Stop(context.Background())
	})

	waitForServing(t, addr)
	return addr
}

func waitForServing(t *testing.T, addr string) {
	t.Helper()
	conn := dial(t, addr)
	health := healthpb.NewHealthClient(conn)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		_, err := health.Check(ctx, &healthpb.HealthCheckRequest{})
		cancel()
		if err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for server at %s", addr)
}

func dial(t *testing.T, addr string) *stdgrpc.ClientConn {
	t.Helper()
	conn, err := stdgrpc.NewClient(addr, stdgrpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewGRPCServerServesGreeter(t *testing.T) {
	repo := &memoryRepo{}
	addr := startServer(t, repo)
	client := v1.NewGreeterClient(dial(t, addr))

	var header grpcmd.MD
	resp, err := client.SayHello(context.Background(), &v1.HelloRequest{Name: "Tester"}, stdgrpc.Header(&header))
	require.NoError(t, err)
	require.Equal(t, "Not hello Tester!", resp.GetMessage())
	require.NotEmpty(t, header.Get("x-request-id"))

	records := repo.snapshot()
	require.Len(t, records, 1)
	require.Equal(t, "Not hello Tester!", records[0].Message)
	require.Regexp(t, `^127\.0\.0\.1:\d+$`, records[0].ClientAddress)
	require.Len(t, records[0].ReceivedAt, 26)
}

func TestNewGRPCServerEchoesRequestID(t *testing.T) {
	addr := startServer(t, &memoryRepo{})
	client := v1.NewGreeterClient(dial(t, addr))

	ctx := grpcmd.AppendToOutgoingContext(context.Background(), "x-request-id", "req-42")
	var header grpcmd.MD
	_, err := client.SayHello(ctx, &v1.HelloRequest{Name: "Tester"}, stdgrpc.Header(&header))
	require.NoError(t, err)
	require.Equal(t, []string{"req-42"}, header.Get("x-request-id"))
}

func TestNewGRPCServerProvidesHealth(t *testing.T) {
	addr := startServer(t, &memoryRepo{})

	healthClient := healthpb.NewHealthClient(dial(t, addr))
	res, err := healthClient.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, res.GetStatus())
}

func TestNewGRPCServerMapsStoreErrors(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{services.ErrLogWriteFailed, codes.Internal},
		{services.ErrLogStoreUnavailable, codes.Unavailable},
		{services.ErrLogWriteTimeout, codes.DeadlineExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			repo := &memoryRepo{failNext: tc.err}
			addr := startServer(t, repo)
			client := v1.NewGreeterClient(dial(t, addr))

			_, err := client.SayHello(context.Background(), &v1.HelloRequest{Name: "first"})
			require.Equal(t, tc.code, status.Code(err))

			resp, err := client.SayHello(context.Background(), &v1.HelloRequest{Name: "second"})
			require.NoError(t, err)
			require.Equal(t, "Not hello second!", resp.GetMessage())
			require.Len(t, repo.snapshot(), 1)
		})
	}
}

func TestNewGRPCServerConcurrentCalls(t *testing.T) {
	repo := &memoryRepo{}
	addr := startServer(t, repo)
	client := v1.NewGreeterClient(dial(t, addr))

	const calls = 50
	var g errgroup.Group
	for i := 0; i < calls; i++ {
		name := fmt.Sprintf("caller-%02d", i)
		g.Go(func() error {
			resp, err := client.SayHello(context.Background(), &v1.HelloRequest{Name: name})
			if err != nil {
				return err
			}
			if want := "Not hello " + name + "!"; resp.GetMessage() != want {
				return fmt.Errorf("reply %q, want %q", resp.GetMessage(), want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	records := repo.snapshot()
	require.Len(t, records, calls)
	seen := make(map[string]struct{}, calls)
	for _, r := range records {
		_, dup := seen[r.Message]
		require.False(t, dup, "duplicate record %q", r.Message)
		seen[r.Message] = struct{}{}
	}
}
