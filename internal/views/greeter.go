// Package views 提供视图对象（VO）与 API DTO（Proto 消息）之间的转换辅助函数。
package views

import (
	v1 "github.com/bionicotaku/lingo-services-greeter/api/helloworld/v1"
	"github.com/bionicotaku/lingo-services-greeter/internal/models/vo"
)

// NewHelloReply 将 Greeting 渲染为 gRPC 响应；nil 时返回空的 HelloReply。
func NewHelloReply(greeting *vo.Greeting) *v1.HelloReply {
	if greeting == nil {
		return &v1.HelloReply{}
	}
	return &v1.HelloReply{Message: greeting.Message}
}
