// Package logger builds the structured Kratos logger shared by every component.
package logger

import (
	"context"
	"os"

	gclog "github.com/bionicotaku/lingo-utils/gclog"

	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel/trace"
)

// Config captures runtime metadata used to annotate logs.
type Config struct {
	Service string
	Version string
	HostID  string
	Env     string
}

// NewLogger builds a Kratos-compatible logger with trace/span enrichment.
func NewLogger(cfg Config) (log.Logger, error) {
	labels := map[string]string{}
	if cfg.HostID != "" {
		labels["service.id"] = cfg.HostID
	}
	baseLogger, err := gclog.NewLogger(
		gclog.WithService(cfg.Service),
		gclog.WithVersion(cfg.Version),
		gclog.WithEnvironment(cfg.Env),
		gclog.WithStaticLabels(labels),
		gclog.EnableSourceLocation(),
	)
	if err != nil {
		return nil, err
	}
	return log.With(
		baseLogger,
		"trace_id", TraceID(),
		"span_id", SpanID(),
	), nil
}

// TraceID returns a valuer that extracts the active trace id, or "" outside a span.
func TraceID() log.Valuer {
	return func(ctx context.Context) interface{} {
		sc := trace.SpanContextFromContext(ctx)
		if sc.HasTraceID() {
			return sc.TraceID().String()
		}
		return ""
	}
}

// SpanID returns a valuer that extracts the active span id, or "" outside a span.
func SpanID() log.Valuer {
	return func(ctx context.Context) interface{} {
		sc := trace.SpanContextFromContext(ctx)
		if sc.HasSpanID() {
			return sc.SpanID().String()
		}
		return ""
	}
}

// DefaultConfig builds Config from environment defaults.
func DefaultConfig(service, version string) Config {
	if service == "" {
		service = "greeter"
	}
	if version == "" {
		version = "dev"
	}
	host, _ := os.Hostname()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return Config{Service: service, Version: version, HostID: host, Env: env}
}
