package loader

import (
	"flag"

	"github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/database"

	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/google/wire"
)

// ProviderSet exposes configuration-derived dependencies for Wire graphs.
var ProviderSet = wire.NewSet(
	ProvideServerConfig,
	ProvideHandlerConfig,
	ProvideDatabaseConfig,
	ProvideMetricsConfig,
)

// ParseConfPath 解析 -conf 命令行参数，未提供时返回空串交由 ResolveConfPath 回退。
func ParseConfPath(fs *flag.FlagSet, args []string) (string, error) {
	var confPath string
	fs.StringVar(&confPath, "conf", "", "config path, eg: -conf configs/config.yaml")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return confPath, nil
}

// ProvideServerConfig returns the listener section of the bundle.
func ProvideServerConfig(b *Bundle) *ServerConfig {
	if b == nil {
		return nil
	}
	return &b.Server
}

// ProvideHandlerConfig returns the handler timeout section of the bundle.
func ProvideHandlerConfig(b *Bundle) HandlerConfig {
	if b == nil {
		return HandlerConfig{}
	}
	return b.Handler
}

// ProvideDatabaseConfig returns the session settings of the bundle.
func ProvideDatabaseConfig(b *Bundle) database.Config {
	if b == nil {
		return database.Config{}
	}
	return b.Database
}

// ProvideMetricsConfig exposes the metrics section; nil when metrics are not configured.
func ProvideMetricsConfig(b *Bundle) *obswire.MetricsConfig {
	if b == nil {
		return nil
	}
	return b.ObsConfig.Metrics
}
