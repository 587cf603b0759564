//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/bionicotaku/lingo-services-greeter/internal/clients"
	grpcclient "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/grpc_client"
	loginfra "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/logger"

	"github.com/bionicotaku/lingo-utils/observability"
	"github.com/google/wire"
)

// wireGreeterClient assembles the logger, connection and client facade.
func wireGreeterClient(grpcclient.Target, *observability.MetricsConfig, loginfra.Config) (*clients.GreeterClient, func(), error) {
	panic(wire.Build(loginfra.ProviderSet, grpcclient.ProviderSet, clients.ProviderSet))
}
