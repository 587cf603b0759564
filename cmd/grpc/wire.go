//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-greeter/internal/controllers"
	loader "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/config_loader"
	"github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/database"
	grpcserver "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/grpc_server"
	"github.com/bionicotaku/lingo-services-greeter/internal/repositories"
	"github.com/bionicotaku/lingo-services-greeter/internal/services"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(context.Context, *loader.Bundle, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(
		loader.ProviderSet,
		database.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		controllers.ProviderSet,
		grpcserver.ProviderSet,
		provideHandlerTimeouts,
		newApp,
	))
}
