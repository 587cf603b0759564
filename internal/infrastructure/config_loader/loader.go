// Package loader 负责在启动时一次性解析服务配置。
//
// 必填项来自环境变量（ADDRESS、POSTGRES_CONFIG、POSTGRES_TABLE），
// 可选的调优参数来自 CONF_PATH 指向的 YAML 文件。
package loader

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/database"

	obswire "github.com/bionicotaku/lingo-utils/observability"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"
)

const (
	envAddress        = "ADDRESS"
	envPostgresConfig = "POSTGRES_CONFIG"
	envPostgresTable  = "POSTGRES_TABLE"
	envServiceName    = "SERVICE_NAME"
	envServiceVersion = "SERVICE_VERSION"
	envAppEnv         = "APP_ENV"
	envPort           = "PORT"
)

// BuildError stages.
const (
	StageMissingEnv     = "missing_env"
	StageInvalidAddress = "invalid_address"
	StageLoad           = "load"
	StageScan           = "scan"
)

var envFileNames = []string{".env.local", ".env"}

// Params 包含构造配置 Bundle 所需的运行时输入参数。
type Params struct {
	ConfPath string // 配置文件路径（可为空，使用默认值）
}

// ServiceMetadata 保存服务标识信息，供日志和可观测性组件使用。
type ServiceMetadata struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// ServerConfig 描述 gRPC 监听参数。
type ServerConfig struct {
	Network string
	Addr    string
	Timeout time.Duration
}

// HandlerConfig 描述传输层 Handler 的超时策略。
type HandlerConfig struct {
	DefaultTimeout time.Duration
	CommandTimeout time.Duration
}

// Bundle 聚合强类型的配置片段，供下游 Wire 注入使用。
type Bundle struct {
	Server    ServerConfig
	Handler   HandlerConfig
	Database  database.Config
	ObsConfig obswire.ObservabilityConfig
	Service   ServiceMetadata
}

// BuildError 捕获配置构建过程中的上下文错误信息。
type BuildError struct {
	Stage string
	Key   string
	Path  string
	Err   error
}

// Error 实现 error 接口，提供包含上下文的错误信息。
func (e BuildError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("config %s %s: %v", e.Stage, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("config %s at %q: %v", e.Stage, e.Path, e.Err)
	case e.Stage != "":
		return fmt.Sprintf("config %s: %v", e.Stage, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap 暴露底层错误，支持 errors.Is/As 链式查询。
func (e BuildError) Unwrap() error {
	return e.Err
}

// fileConfig 是 YAML 配置文件的结构，所有字段均为可选。
type fileConfig struct {
	Server struct {
		GRPC struct {
			Network string   `json:"network"`
			Timeout Duration `json:"timeout"`
		} `json:"grpc"`
	} `json:"server"`
	Handler struct {
		DefaultTimeout Duration `json:"default_timeout"`
		CommandTimeout Duration `json:"command_timeout"`
	} `json:"handler"`
	Data struct {
		Postgres struct {
			ConnectTimeout     Duration `json:"connect_timeout"`
			StatementTimeout   Duration `json:"statement_timeout"`
			KeepAliveInterval  Duration `json:"keepalive_interval"`
			PreparedStatements *bool    `json:"prepared_statements"`
		} `json:"postgres"`
	} `json:"data"`
	Observability *observabilityFile `json:"observability"`
}

type observabilityFile struct {
	GlobalAttributes map[string]string `json:"global_attributes"`
	Tracing          *struct {
		Enabled            bool              `json:"enabled"`
		Exporter           string            `json:"exporter"`
		Endpoint           string            `json:"endpoint"`
		Headers            map[string]string `json:"headers"`
		Insecure           bool              `json:"insecure"`
		SamplingRatio      float64           `json:"sampling_ratio"`
		BatchTimeout       Duration          `json:"batch_timeout"`
		ExportTimeout      Duration          `json:"export_timeout"`
		MaxQueueSize       int               `json:"max_queue_size"`
		MaxExportBatchSize int               `json:"max_export_batch_size"`
		Required           bool              `json:"required"`
		Attributes         map[string]string `json:"attributes"`
	} `json:"tracing"`
	Metrics *struct {
		Enabled             bool              `json:"enabled"`
		Exporter            string            `json:"exporter"`
		Endpoint            string            `json:"endpoint"`
		Headers             map[string]string `json:"headers"`
		Insecure            bool              `json:"insecure"`
		Interval            Duration          `json:"interval"`
		DisableRuntimeStats bool              `json:"disable_runtime_stats"`
		Required            bool              `json:"required"`
		ResourceAttributes  map[string]string `json:"resource_attributes"`
		GRPCEnabled         *bool             `json:"grpc_enabled"`
		GRPCIncludeHealth   *bool             `json:"grpc_include_health"`
	} `json:"metrics"`
}

// Build 构建 Bundle。
//
// 流程：
// 1. 解析配置路径并 best-effort 加载 .env 文件
// 2. 读取必填环境变量，缺失任一项即返回 missing_env
// 3. 校验监听地址（host:port），应用 PORT 覆盖
// 4. 加载可选 YAML 调优参数并推导服务元信息
func Build(params Params) (*Bundle, error) {
	confPath := ResolveConfPath(params.ConfPath)
	loadEnvFiles(confPath)

	addr, err := requireEnv(envAddress)
	if err != nil {
		return nil, err
	}
	dsn, err := requireEnv(envPostgresConfig)
	if err != nil {
		return nil, err
	}
	table, err := requireEnv(envPostgresTable)
	if err != nil {
		return nil, err
	}

	if err := validateAddress(addr); err != nil {
		return nil, BuildError{Stage: StageInvalidAddress, Key: envAddress, Err: err}
	}
	if port := strings.TrimSpace(os.Getenv(envPort)); port != "" {
		addr = replacePort(addr, port)
		if err := validateAddress(addr); err != nil {
			return nil, BuildError{Stage: StageInvalidAddress, Key: envPort, Err: err}
		}
	}

	fc, err := loadFileConfig(confPath, params.ConfPath != "" || os.Getenv(envConfPath) != "")
	if err != nil {
		return nil, err
	}

	pg := fc.Data.Postgres
	prepared := true
	if pg.PreparedStatements != nil {
		prepared = *pg.PreparedStatements
	}

	network := fc.Server.GRPC.Network
	if network == "" {
		network = defaultNetwork
	}
	serverTimeout := fc.Server.GRPC.Timeout.Std()
	if serverTimeout <= 0 {
		serverTimeout = defaultServerTimeout
	}

	return &Bundle{
		Server: ServerConfig{
			Network: network,
			Addr:    addr,
			Timeout: serverTimeout,
		},
		Handler: HandlerConfig{
			DefaultTimeout: fc.Handler.DefaultTimeout.Std(),
			CommandTimeout: fc.Handler.CommandTimeout.Std(),
		},
		Database: database.Config{
			DSN:                dsn,
			Table:              table,
			ConnectTimeout:     pg.ConnectTimeout.Std(),
			StatementTimeout:   pg.StatementTimeout.Std(),
			KeepAliveInterval:  pg.KeepAliveInterval.Std(),
			PreparedStatements: prepared,
		},
		ObsConfig: toObservabilityConfig(fc.Observability),
		Service:   buildServiceMetadata(),
	}, nil
}

// ResolveConfPath 应用回退规则确定要加载的配置目录/文件路径。
// 优先级：显式传入路径 > CONF_PATH 环境变量 > 默认路径。
func ResolveConfPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(envConfPath); env != "" {
		return env
	}
	return defaultConfPath
}

func requireEnv(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", BuildError{
			Stage: StageMissingEnv,
			Key:   key,
			Err:   fmt.Errorf("environment variable %s is required", key),
		}
	}
	return value, nil
}

// validateAddress 要求 host:port 形式且端口为 0-65535 的数字。
func validateAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if port == "" {
		return errors.New("missing port")
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}

// loadFileConfig 加载 YAML 调优参数。默认路径不存在时视为空配置；
// 显式指定的路径不存在则返回 load 错误。
func loadFileConfig(confPath string, explicit bool) (*fileConfig, error) {
	var fc fileConfig
	if _, err := os.Stat(confPath); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &fc, nil
		}
		return nil, BuildError{Stage: StageLoad, Path: confPath, Err: err}
	}

	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, BuildError{Stage: StageLoad, Path: confPath, Err: err}
	}
	defer c.Close()

	if err := c.Scan(&fc); err != nil {
		return nil, BuildError{Stage: StageScan, Path: confPath, Err: err}
	}
	return &fc, nil
}

// buildServiceMetadata 构建服务元信息，用于日志、追踪和指标标签。
func buildServiceMetadata() ServiceMetadata {
	name := firstNonEmpty(os.Getenv(envServiceName), defaultServiceName)
	version := firstNonEmpty(os.Getenv(envServiceVersion), defaultServiceVersion)
	env := firstNonEmpty(os.Getenv(envAppEnv), defaultEnvironment)
	host, _ := os.Hostname()

	return ServiceMetadata{
		Name:        name,
		Version:     version,
		Environment: env,
		InstanceID:  host,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// loadEnvFiles best-effort 加载配置相关的 .env 文件，失败时忽略以保持幂等。
func loadEnvFiles(confPath string) {
	files := envFileCandidates(confPath)
	if len(files) == 0 {
		return
	}
	_ = godotenv.Load(files...)
}

// envFileCandidates 按 confPath 目录 -> 当前工作目录的顺序返回存在的
// .env.local / .env 文件。godotenv 不覆盖已设置的变量，因此先出现者优先。
func envFileCandidates(confPath string) []string {
	dirs := orderedDirs(confPath)
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range dirs {
		for _, name := range envFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			files = append(files, candidate)
			seen[candidate] = struct{}{}
		}
	}
	return files
}

// orderedDirs 按优先级返回用于搜索 .env 文件的目录列表（已去重）。
func orderedDirs(confPath string) []string {
	var dirs []string
	appendUnique := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, existing := range dirs {
			if existing == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if confPath != "" {
		if info, err := os.Stat(confPath); err == nil {
			if info.IsDir() {
				appendUnique(confPath)
			} else {
				appendUnique(filepath.Dir(confPath))
			}
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		appendUnique(cwd)
	}

	return dirs
}

// toObservabilityConfig 将文件中的 observability 段转换为 observability 包的规范化结构。
func toObservabilityConfig(src *observabilityFile) obswire.ObservabilityConfig {
	if src == nil {
		return obswire.ObservabilityConfig{}
	}
	cfg := obswire.ObservabilityConfig{
		GlobalAttributes: cloneStringMap(src.GlobalAttributes),
	}
	if tr := src.Tracing; tr != nil {
		cfg.Tracing = &obswire.TracingConfig{
			Enabled:            tr.Enabled,
			Exporter:           tr.Exporter,
			Endpoint:           tr.Endpoint,
			Headers:            cloneStringMap(tr.Headers),
			Insecure:           tr.Insecure,
			SamplingRatio:      tr.SamplingRatio,
			BatchTimeout:       tr.BatchTimeout.Std(),
			ExportTimeout:      tr.ExportTimeout.Std(),
			MaxQueueSize:       tr.MaxQueueSize,
			MaxExportBatchSize: tr.MaxExportBatchSize,
			Required:           tr.Required,
			Attributes:         cloneStringMap(tr.Attributes),
		}
	}
	if mt := src.Metrics; mt != nil {
		grpcEnabled := defaultGRPCMetricsEnabled
		if mt.GRPCEnabled != nil {
			grpcEnabled = *mt.GRPCEnabled
		}
		grpcIncludeHealth := defaultGRPCIncludeHealth
		if mt.GRPCIncludeHealth != nil {
			grpcIncludeHealth = *mt.GRPCIncludeHealth
		}
		cfg.Metrics = &obswire.MetricsConfig{
			Enabled:             mt.Enabled,
			Exporter:            mt.Exporter,
			Endpoint:            mt.Endpoint,
			Headers:             cloneStringMap(mt.Headers),
			Insecure:            mt.Insecure,
			Interval:            mt.Interval.Std(),
			DisableRuntimeStats: mt.DisableRuntimeStats,
			Required:            mt.Required,
			ResourceAttributes:  cloneStringMap(mt.ResourceAttributes),
			GRPCEnabled:         grpcEnabled,
			GRPCIncludeHealth:   grpcIncludeHealth,
		}
	}
	return cfg
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// replacePort 替换地址中的端口部分，保留 host。
//   - "0.0.0.0:9090" -> "0.0.0.0:8080"
//   - "[::1]:9090" -> "[::1]:8080"
func replacePort(addr, newPort string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "0.0.0.0:" + newPort
	}
	return net.JoinHostPort(host, newPort)
}
