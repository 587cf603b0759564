// Package metadata 提供请求级元信息在 Context 中的存取工具，供控制器与服务层共享。
package metadata

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RequestMetadata 描述传输层为单次调用解析出的上下文信息。
type RequestMetadata struct {
	RequestID     string
	ClientAddress string
}

// IsZero 判断 Metadata 是否为空。
func (m RequestMetadata) IsZero() bool {
	return m.RequestID == "" && m.ClientAddress == ""
}

// RequestUUID 尝试解析 request_id 为 UUID；调用方自带的非 UUID 请求 ID 返回 false。
func (m RequestMetadata) RequestUUID() (uuid.UUID, bool) {
	if strings.TrimSpace(m.RequestID) == "" {
		return uuid.Nil, false
	}
	value, err := uuid.Parse(m.RequestID)
	if err != nil {
		return uuid.Nil, false
	}
	return value, true
}

type ctxKey struct{}

// Inject 将 RequestMetadata 注入 Context。
func Inject(ctx context.Context, meta RequestMetadata) context.Context {
	if meta.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, meta)
}

// FromContext 读取上游注入的 RequestMetadata。
func FromContext(ctx context.Context) (RequestMetadata, bool) {
	if ctx == nil {
		return RequestMetadata{}, false
	}
	meta, ok := ctx.Value(ctxKey{}).(RequestMetadata)
	return meta, ok
}
