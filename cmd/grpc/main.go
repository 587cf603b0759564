// Package main boots the Kratos gRPC entrypoint for the greeter service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	loader "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/config_loader"
	loginfra "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/logger"

	"github.com/bionicotaku/lingo-utils/observability"
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/grpc"

	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name string
	// Version is the version of the compiled software.
	Version string

	id, _ = os.Hostname()
)

func newApp(logger log.Logger, gs *grpc.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			gs,
		),
	)
}

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 on graceful stop, 1 on any fatal error.
func run() int {
	// Parse command-line flags (currently only -conf).
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	confPath, err := loader.ParseConfPath(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse flags: %v\n", err)
		return 1
	}

	// Resolve env + optional YAML tunables once.
	bundle, err := loader.Build(loader.Params{ConfPath: confPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		return 1
	}
	if Name == "" {
		Name = bundle.Service.Name
	}
	if Version == "" {
		Version = bundle.Service.Version
	}

	// Build the structured logger used by the entire application.
	loggr, err := loginfra.NewLogger(loginfra.Config{
		Service: Name,
		Version: Version,
		HostID:  bundle.Service.InstanceID,
		Env:     bundle.Service.Environment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	helper := log.NewHelper(loggr)

	obsShutdown, err := observability.Init(context.Background(), bundle.ObsConfig,
		observability.WithLogger(loggr),
		observability.WithServiceName(Name),
		observability.WithServiceVersion(Version),
		observability.WithEnvironment(bundle.Service.Environment),
	)
	if err != nil {
		helper.Errorf("init observability: %v", err)
		return 1
	}
	defer func() {
		if obsShutdown == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obsShutdown(ctx); err != nil {
			helper.Warnf("shutdown observability: %v", err)
		}
	}()

	// Assemble the session, handler and server via Wire. The database session is
	// connected before the listener exists, so a connection failure aborts startup.
	app, cleanupApp, err := wireApp(context.Background(), bundle, loggr)
	if err != nil {
		helper.Errorf("startup failed: %v", err)
		return 1
	}
	defer cleanupApp()

	helper.Infof("greeter listening on %s", bundle.Server.Addr)

	// Start the application and block until a stop signal is received.
	if err := app.Run(); err != nil {
		helper.Errorf("server stopped with error: %v", err)
		return 1
	}
	return 0
}
