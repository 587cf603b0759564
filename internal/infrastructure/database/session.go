// Package database 负责 PostgreSQL 单连接会话的建立、保活与生命周期管理。
//
// 会话在服务启动时建立一次，由后台泵（pump）goroutine 独占持有底层连接：
// 所有 INSERT 通过通道串行交给泵执行，泵同时定期 Ping 以保持连接存活。
// 泵退出后（连接断开或被关闭），后续写入快速失败并返回 ConnectionError。
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgconn/ctxwatch"
)

const (
	defaultConnectTimeout    = 5 * time.Second
	defaultStatementTimeout  = 5 * time.Second
	defaultKeepAliveInterval = 30 * time.Second
	healthCheckTimeout       = 5 * time.Second
	closeTimeout             = 5 * time.Second
	// cancelGracePeriod 是发送 CancelRequest 之后、强制断开连接之前的等待时间。
	cancelGracePeriod = 3 * time.Second

	insertStatementName = "insert_greeting_log"
)

// Config 描述会话所需的全部参数，由配置加载器在启动时一次性解析。
type Config struct {
	DSN   string
	Table string

	ConnectTimeout     time.Duration
	StatementTimeout   time.Duration
	KeepAliveInterval  time.Duration
	PreparedStatements bool
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	if c.StatementTimeout <= 0 {
		c.StatementTimeout = defaultStatementTimeout
	}
	if c.KeepAliveInterval <= 0 {
		c.KeepAliveInterval = defaultKeepAliveInterval
	}
	return c
}

// conn 是会话对底层连接的最小依赖，*pgx.Conn 满足该接口。
type conn interface {
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	IsClosed() bool
}

type insertJob struct {
	ctx   context.Context
	args  []any
	reply chan insertResult
}

type insertResult struct {
	rows int64
	err  error
}

// Session 持有唯一的长连接。Insert 可被任意多个 goroutine 并发调用。
type Session struct {
	conn      conn
	cfg       Config
	table     string
	insertSQL string
	log       *log.Helper

	jobs chan insertJob
	stop chan struct{}
	done chan struct{}

	// prepared 仅由泵 goroutine 读写。
	prepared bool

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// Connect 建立 PostgreSQL 会话并启动后台泵。
//
// 流程：
//  1. 解析 DSN，挂载 pgx 查询日志与 CancelRequest 上下文监听器
//  2. 在 ConnectTimeout 内建立连接
//  3. 启动健康检查（Ping + 版本查询）
//  4. 启动泵 goroutine，返回 cleanup 函数（供 Wire 调用）
//
// 任何一步失败都返回 *ConnectionError，调用方应视为启动致命错误。
func Connect(ctx context.Context, cfg Config, logger log.Logger) (*Session, func(), error) {
	helper := log.NewHelper(logger)
	cfg = cfg.withDefaults()

	if strings.TrimSpace(cfg.Table) == "" {
		return nil, nil, &ConnectionError{Stage: "parse", Err: errors.New("target table is required")}
	}

	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, &ConnectionError{Stage: "parse", Err: err}
	}
	connCfg.ConnectTimeout = cfg.ConnectTimeout
	connCfg.Tracer = &pgxLogger{helper: helper}
	// 超时的语句通过 CancelRequest 在服务端取消，连接本身得以保留。
	connCfg.BuildContextWatcherHandler = func(pgConn *pgconn.PgConn) ctxwatch.Handler {
		return &pgconn.CancelRequestContextWatcherHandler{
			Conn:          pgConn,
			DeadlineDelay: cancelGracePeriod,
		}
	}
	if !cfg.PreparedStatements {
		// 事务级连接池代理（如 PgBouncer transaction 模式）不能使用命名语句；
		// 改用未命名的扩展协议语句，参数仍通过 Bind 传递。
		connCfg.DefaultQueryExecMode = pgx.QueryExecModeExec
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	pgConn, err := pgx.ConnectConfig(connectCtx, connCfg)
	if err != nil {
		return nil, nil, &ConnectionError{Stage: "connect", Err: err}
	}

	if err := healthCheck(ctx, pgConn, helper); err != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), closeTimeout)
		defer closeCancel()
		_ = pgConn.Close(closeCtx)
		return nil, nil, &ConnectionError{Stage: "health_check", Err: err}
	}

	s := newSession(pgConn, cfg, logger)

	helper.Infof(
		"postgres session established: dsn=%s table=%s prepared_statements=%v statement_timeout=%s keepalive=%s",
		sanitizeDSN(cfg.DSN),
		s.table,
		cfg.PreparedStatements,
		cfg.StatementTimeout,
		cfg.KeepAliveInterval,
	)

	cleanup := func() {
		helper.Info("closing postgres session")
		s.Close()
	}
	return s, cleanup, nil
}

// newSession 包装已建立的连接并启动泵。
func newSession(c conn, cfg Config, logger log.Logger) *Session {
	cfg = cfg.withDefaults()
	table := quoteTable(cfg.Table)
	s := &Session{
		conn:      c,
		cfg:       cfg,
		table:     table,
		insertSQL: fmt.Sprintf("INSERT INTO %s (message, client_address, received_at_server) VALUES ($1, $2, $3)", table),
		log:       log.NewHelper(logger),
		jobs:      make(chan insertJob),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

// quoteTable 将配置中的表名（可带 schema 前缀）转为安全引用的标识符。
func quoteTable(name string) string {
	parts := strings.Split(strings.TrimSpace(name), ".")
	return pgx.Identifier(parts).Sanitize()
}

// healthCheck 执行启动健康检查：Ping 与版本查询。
func healthCheck(ctx context.Context, c *pgx.Conn, helper *log.Helper) error {
	healthCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := c.Ping(healthCtx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	var version string
	if err := c.QueryRow(healthCtx, "SELECT version()").Scan(&version); err != nil {
		return fmt.Errorf("version query failed: %w", err)
	}
	helper.Infof("database health check passed: version=%s", truncateVersion(version))
	return nil
}

// Insert 写入一条问候日志并返回受影响行数（预期为 1）。
//
// 三个值始终作为绑定参数传递。每次调用受 StatementTimeout 约束；
// 会话已终止时返回 *ConnectionError，语句失败时返回 *StatementError。
func (s *Session) Insert(ctx context.Context, message, clientAddress, receivedAt string) (int64, error) {
	select {
	case <-s.done:
		return 0, s.closedError()
	default:
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StatementTimeout)
	defer cancel()

	job := insertJob{
		ctx:   ctx,
		args:  []any{message, clientAddress, receivedAt},
		reply: make(chan insertResult, 1),
	}

	select {
	case s.jobs <- job:
	case <-s.done:
		return 0, s.closedError()
	case <-ctx.Done():
		return 0, s.statementError(PhaseExecute, ctx.Err())
	}

	select {
	case res := <-job.reply:
		return res.rows, res.err
	case <-s.done:
		// 泵可能在退出前已经写回结果
		select {
		case res := <-job.reply:
			return res.rows, res.err
		default:
		}
		return 0, s.closedError()
	case <-ctx.Done():
		return 0, s.statementError(PhaseExecute, ctx.Err())
	}
}

// Table 返回已引用的目标表名。
func (s *Session) Table() string {
	return s.table
}

// Done 在泵退出后关闭。
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err 返回导致泵退出的原因；泵仍在运行时返回 nil。
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close 停止泵并关闭连接，可重复调用。
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

func (s *Session) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.terminate(ErrSessionClosed)
			return
		case job := <-s.jobs:
			rows, err := s.exec(job.ctx, job.args)
			job.reply <- insertResult{rows: rows, err: err}
			if s.conn.IsClosed() {
				s.terminate(fmt.Errorf("connection lost: %w", errOrUnknown(err)))
				return
			}
		case <-ticker.C:
			if err := s.keepAlive(); err != nil {
				s.terminate(fmt.Errorf("keepalive failed: %w", err))
				return
			}
		}
	}
}

func (s *Session) exec(ctx context.Context, args []any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, s.statementError(PhaseExecute, err)
	}

	sql := s.insertSQL
	if s.cfg.PreparedStatements {
		if !s.prepared {
			if _, err := s.conn.Prepare(ctx, insertStatementName, s.insertSQL); err != nil {
				return 0, s.statementError(PhasePrepare, err)
			}
			s.prepared = true
		}
		sql = insertStatementName
	}

	tag, err := s.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, s.statementError(PhaseExecute, err)
	}
	return tag.RowsAffected(), nil
}

// keepAlive Ping 服务端；仅当连接已断开时才视为致命。
func (s *Session) keepAlive() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.StatementTimeout)
	defer cancel()
	err := s.conn.Ping(ctx)
	if err == nil {
		return nil
	}
	if s.conn.IsClosed() {
		return err
	}
	s.log.Warnf("postgres keepalive ping failed: %v", err)
	return nil
}

func (s *Session) terminate(cause error) {
	s.mu.Lock()
	s.err = cause
	s.mu.Unlock()

	if errors.Is(cause, ErrSessionClosed) {
		s.log.Info("postgres session pump stopped")
	} else {
		s.log.Errorf("postgres session pump terminated: %v", cause)
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := s.conn.Close(ctx); err != nil {
		s.log.Warnf("close postgres connection: %v", err)
	}
}

func (s *Session) closedError() error {
	return &ConnectionError{Stage: "closed", Err: errOrUnknown(s.Err())}
}

func (s *Session) statementError(phase Phase, err error) error {
	return &StatementError{Phase: phase, Table: s.table, Err: err}
}

func errOrUnknown(err error) error {
	if err == nil {
		return errors.New("unknown cause")
	}
	return err
}
