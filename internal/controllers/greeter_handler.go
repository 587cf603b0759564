// Package controllers 提供传输层 Handler，负责处理外部请求并调用业务层。
package controllers

import (
	"context"

	v1 "github.com/bionicotaku/lingo-services-greeter/api/helloworld/v1"
	"github.com/bionicotaku/lingo-services-greeter/internal/metadata"
	"github.com/bionicotaku/lingo-services-greeter/internal/services"
	"github.com/bionicotaku/lingo-services-greeter/internal/views"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport"
	"google.golang.org/grpc/peer"
)

// ErrPeerUnavailable 表示无法从传输层解析调用方地址，此时拒绝处理请求。
var ErrPeerUnavailable = errors.InternalServer(
	v1.ErrorReason_ERROR_REASON_PEER_UNAVAILABLE.String(),
	"client address unavailable",
)

// GreeterHandler 是 Greeter 服务的 gRPC 传输层处理器。
// 负责解析调用方地址、绑定超时，并将结果通过 views 渲染为 Proto 响应。
type GreeterHandler struct {
	v1.UnimplementedGreeterServer

	*BaseHandler
	uc  *services.GreeterUsecase
	log *log.Helper
}

// NewGreeterHandler 构造一个由 GreeterUsecase 支撑的 gRPC Handler。
func NewGreeterHandler(uc *services.GreeterUsecase, base *BaseHandler, logger log.Logger) *GreeterHandler {
	if base == nil {
		base = NewBaseHandler(HandlerTimeouts{})
	}
	return &GreeterHandler{
		BaseHandler: base,
		uc:          uc,
		log:         log.NewHelper(logger),
	}
}

// SayHello 实现 helloworld.GreeterServer 接口。
//
// 流程：
//  1. 从 gRPC peer 解析调用方地址，缺失时返回 ErrPeerUnavailable
//  2. 生成（或沿用）请求 ID，写入响应头 x-request-id
//  3. 在写命令超时内调用业务层，业务层仅在日志落库成功后返回问候语
func (h *GreeterHandler) SayHello(ctx context.Context, in *v1.HelloRequest) (*v1.HelloReply, error) {
	requestID := h.RequestID(ctx)
	if tr, ok := transport.FromServerContext(ctx); ok {
		tr.ReplyHeader().Set(headerRequestID, requestID)
	}

	clientAddress, err := clientAddressFromContext(ctx)
	if err != nil {
		h.log.WithContext(ctx).Errorf("say hello rejected: request_id=%s err=%v", requestID, err)
		return nil, err
	}

	timeoutCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()
	timeoutCtx = metadata.Inject(timeoutCtx, metadata.RequestMetadata{
		RequestID:     requestID,
		ClientAddress: clientAddress,
	})

	greeting, err := h.uc.SayHello(timeoutCtx, in.GetName(), clientAddress)
	if err != nil {
		h.log.WithContext(ctx).Errorf("say hello failed: request_id=%s client=%s err=%v", requestID, clientAddress, err)
		return nil, err
	}
	h.log.WithContext(ctx).Debugf("say hello served: request_id=%s client=%s", requestID, clientAddress)
	return views.NewHelloReply(greeting), nil
}

// clientAddressFromContext 返回调用方的 host:port 字符串。
func clientAddressFromContext(ctx context.Context) (string, error) {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "", ErrPeerUnavailable
	}
	addr := p.Addr.String()
	if addr == "" {
		return "", ErrPeerUnavailable
	}
	return addr, nil
}
