// Package repositories 提供数据访问层实现，负责与持久化存储交互。
// 该层实现 Service 层定义的 Repository 接口，隔离底层存储细节。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/database"
	"github.com/bionicotaku/lingo-services-greeter/internal/models/po"
	"github.com/bionicotaku/lingo-services-greeter/internal/services"

	"github.com/go-kratos/kratos/v2/log"
)

// LogInserter 是问候日志写入所需的最小会话能力，由 *database.Session 实现。
type LogInserter interface {
	Insert(ctx context.Context, message, clientAddress, receivedAt string) (int64, error)
}

// GreetingLogRepository 是 services.GreetingLogRepo 接口的实现。
type GreetingLogRepository struct {
	db  LogInserter
	log *log.Helper
}

// NewGreetingLogRepository 构造 GreetingLogRepo，通过 Wire 注入数据库会话。
func NewGreetingLogRepository(db LogInserter, logger log.Logger) services.GreetingLogRepo {
	return &GreetingLogRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// Record 写入一行问候日志。
//
// 错误映射：
//   - *database.ConnectionError            → services.ErrLogStoreUnavailable
//   - *database.StatementError（超时）      → services.ErrLogWriteTimeout
//   - 其他错误，或受影响行数不为 1          → services.ErrLogWriteFailed
func (r *GreetingLogRepository) Record(ctx context.Context, g *po.GreetingLog) error {
	rows, err := r.db.Insert(ctx, g.Message, g.ClientAddress, g.ReceivedAt)
	if err != nil {
		return translateInsertError(err)
	}
	if rows != 1 {
		r.log.WithContext(ctx).Warnf("greeting log insert affected %d rows", rows)
		return services.ErrLogWriteFailed.WithCause(fmt.Errorf("insert affected %d rows", rows))
	}
	return nil
}

func translateInsertError(err error) error {
	var connErr *database.ConnectionError
	if errors.As(err, &connErr) {
		return services.ErrLogStoreUnavailable.WithCause(err)
	}
	var stmtErr *database.StatementError
	if errors.As(err, &stmtErr) && stmtErr.Timeout() {
		return services.ErrLogWriteTimeout.WithCause(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.ErrLogWriteTimeout.WithCause(err)
	}
	return services.ErrLogWriteFailed.WithCause(err)
}
