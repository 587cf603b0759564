// Package grpcserver wires the inbound gRPC server and its middleware stack.
package grpcserver

import (
	v1 "github.com/bionicotaku/lingo-services-greeter/api/helloworld/v1"
	"github.com/bionicotaku/lingo-services-greeter/internal/controllers"
	loader "github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/config_loader"

	"github.com/bionicotaku/lingo-utils/observability"
	obsTrace "github.com/bionicotaku/lingo-utils/observability/tracing"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/metadata"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	otelgrpcfilters "go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc/filters"
	"go.opentelemetry.io/otel"
	stdgrpc "google.golang.org/grpc"
	"google.golang.org/grpc/stats"
)

// propagatedPrefix selects the inbound metadata keys carried into the server context.
const propagatedPrefix = "x-md-"

// NewGRPCServer new a gRPC server.
func NewGRPCServer(c *loader.ServerConfig, metricsCfg *observability.MetricsConfig, greeter *controllers.GreeterHandler, logger log.Logger) *grpc.Server {
	// metricsCfg is optional; default to enabled metrics so callers that omit
	// the configuration still get a functional server with tracing only.
	metricsEnabled := true
	includeHealth := false
	if metricsCfg != nil {
		metricsEnabled = metricsCfg.GRPCEnabled
		includeHealth = metricsCfg.GRPCIncludeHealth
	}

	opts := []grpc.ServerOption{
		grpc.Middleware(
			obsTrace.Server(),
			recovery.Recovery(),
			metadata.Server(
				metadata.WithPropagatedPrefix(propagatedPrefix),
			),
			logging.Server(logger),
		),
	}
	if metricsEnabled {
		handler := newServerHandler(includeHealth)
		opts = append(opts, grpc.Options(stdgrpc.StatsHandler(handler)))
	}
	if c != nil {
		if c.Network != "" {
			opts = append(opts, grpc.Network(c.Network))
		}
		if c.Addr != "" {
			opts = append(opts, grpc.Address(c.Addr))
		}
		if c.Timeout > 0 {
			opts = append(opts, grpc.Timeout(c.Timeout))
		}
	}
	srv := grpc.NewServer(opts...)
	v1.RegisterGreeterServer(srv, greeter)
	return srv
}

func newServerHandler(includeHealth bool) stats.Handler {
	opts := []otelgrpc.Option{
		otelgrpc.WithMeterProvider(otel.GetMeterProvider()),
	}
	if !includeHealth {
		opts = append(opts, otelgrpc.WithFilter(otelgrpcfilters.Not(otelgrpcfilters.HealthCheck())))
	}
	return otelgrpc.NewServerHandler(opts...)
}
