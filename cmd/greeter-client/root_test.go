package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-greeter/internal/controllers"
	loader "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/config_loader"
	grpcserver "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/grpc_server"
	"github.com/bionicotaku/lingo-services-greeter/internal/models/po"
	"github.com/bionicotaku/lingo-services-greeter/internal/services"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

type discardRepo struct{}

func (discardRepo) Record(context.Context, *po.GreetingLog) error { return nil }

func startServer(t *testing.T) string {
	t.Helper()
	logger := log.NewStdLogger(io.Discard)
	uc := services.NewGreeterUsecase(discardRepo{}, logger)
	handler := controllers.NewGreeterHandler(uc, controllers.NewBaseHandler(controllers.HandlerTimeouts{}), logger)
	srv := grpcserver.NewGRPCServer(&loader.ServerConfig{Addr: "127.0.0.1:0"}, nil, handler, logger)

	endpointURL, err := srv.Endpoint()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			t.Logf("server exited: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		_ = srv.Stop(context.Background())
	})
	return endpointURL.Host
}

func TestNormalizeTarget(t *testing.T) {
	require.Equal(t, "127.0.0.1:50051", normalizeTarget(" http://127.0.0.1:50051/ "))
	require.Equal(t, "greeter:50051", normalizeTarget("greeter:50051"))
	require.Equal(t, "", normalizeTarget("  "))
}

func TestRootCmd_RequiresAddress(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")
	cmd := newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.ErrorContains(t, err, "SERVER_ADDRESS")
}

func TestRootCmd_SaysHelloFromEnv(t *testing.T) {
	addr := startServer(t)
	t.Setenv("SERVER_ADDRESS", "http://"+addr)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--timeout", (5 * time.Second).String()})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	require.NoError(t, cmd.Execute())
	require.Equal(t, "Not hello Tonic!", strings.TrimSpace(out.String()))
}

func TestRootCmd_FlagOverridesEnv(t *testing.T) {
	addr := startServer(t)
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:1")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--addr", addr, "--name", "Gopher"})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	require.NoError(t, cmd.Execute())
	require.Equal(t, "Not hello Gopher!", strings.TrimSpace(out.String()))
}
