// Package clients 包含调用 Greeter 服务的客户端门面（Façade），封装 gRPC 调用细节。
package clients

import (
	"context"
	"errors"

	v1 "github.com/bionicotaku/lingo-services-greeter/api/helloworld/v1"

	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// ErrNoConnection 表示门面未绑定任何 gRPC 连接。
var ErrNoConnection = errors.New("greeter client has no connection")

// Reply 是一次 SayHello 调用的结果。
type Reply struct {
	Message   string
	RequestID string // 服务端在 x-request-id 响应头中回传的请求 ID
}

// GreeterClient 封装共享的 gRPC 连接，提供业务级别的调用抽象。
type GreeterClient struct {
	client v1.GreeterClient // gRPC 客户端桩（由 grpc.ClientConn 生成）
	log    *log.Helper
}

// NewGreeterClient 构造 GreeterClient。conn 为 nil 时所有调用返回 ErrNoConnection。
func NewGreeterClient(conn *grpc.ClientConn, logger log.Logger) *GreeterClient {
	helper := log.NewHelper(logger)
	if conn == nil {
		helper.Warn("no grpc client connection; greeter calls disabled")
		return &GreeterClient{log: helper}
	}
	return &GreeterClient{
		client: v1.NewGreeterClient(conn),
		log:    helper,
	}
}

// SayHello 调用远程 Greeter 服务的 SayHello RPC。
func (c *GreeterClient) SayHello(ctx context.Context, name string) (*Reply, error) {
	if c.client == nil {
		return nil, ErrNoConnection
	}
	var header metadata.MD
	reply, err := c.client.SayHello(ctx, &v1.HelloRequest{Name: name}, grpc.Header(&header))
	if err != nil {
		c.log.WithContext(ctx).Warnf("say hello failed: name=%q err=%v", name, err)
		return nil, err
	}
	out := &Reply{Message: reply.GetMessage()}
	if ids := header.Get("x-request-id"); len(ids) > 0 {
		out.RequestID = ids[0]
	}
	c.log.WithContext(ctx).Infof("RESPONSE message=%q request_id=%s", out.Message, out.RequestID)
	return out, nil
}
