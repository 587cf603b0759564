package database

import (
	"context"
	"errors"
	"fmt"
)

// ErrSessionClosed 表示会话已被显式关闭（Close 或进程退出）。
var ErrSessionClosed = errors.New("postgres session closed")

// Phase 标识语句失败发生的阶段。
type Phase string

const (
	// PhasePrepare 表示在准备（PREPARE）语句时失败。
	PhasePrepare Phase = "prepare"
	// PhaseExecute 表示在执行语句（或等待执行）时失败。
	PhaseExecute Phase = "execute"
)

// ConnectionError 描述会话级别的失败：启动时无法建立连接，或会话泵已终止。
//
// Stage 取值：
//   - "parse": DSN 解析失败
//   - "connect": 建立连接失败
//   - "health_check": 启动健康检查失败
//   - "closed": 会话泵已退出，后续写入快速失败
type ConnectionError struct {
	Stage string
	Err   error
}

// Error 实现 error 接口。
func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("postgres connection %s", e.Stage)
	}
	return fmt.Sprintf("postgres connection %s: %v", e.Stage, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As。
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Timeout 报告失败是否由超时导致。
func (e *ConnectionError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// StatementError 描述单条 INSERT 的失败，仅影响当前调用。
type StatementError struct {
	Phase Phase
	Table string
	Err   error
}

// Error 实现 error 接口。
func (e *StatementError) Error() string {
	return fmt.Sprintf("postgres %s on %s: %v", e.Phase, e.Table, e.Err)
}

// Unwrap 暴露底层错误，支持 errors.Is/As。
func (e *StatementError) Unwrap() error {
	return e.Err
}

// Timeout 报告语句是否因超出 deadline 而失败（StatementError 的超时子类）。
func (e *StatementError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
