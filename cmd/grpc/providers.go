package main

import (
	"github.com/bionicotaku/lingo-services-greeter/internal/controllers"
	loader "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/config_loader"
)

func provideHandlerTimeouts(cfg loader.HandlerConfig) controllers.HandlerTimeouts {
	return controllers.HandlerTimeouts{
		Default: cfg.DefaultTimeout,
		Command: cfg.CommandTimeout,
	}
}
