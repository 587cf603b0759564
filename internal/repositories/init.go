package repositories

import (
	"github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/database"

	"github.com/google/wire"
)

// ProviderSet 暴露 Repository 层的构造函数供 Wire 依赖注入使用。
// 数据库会话以 LogInserter 的形式注入。
var ProviderSet = wire.NewSet(
	NewGreetingLogRepository,
	wire.Bind(new(LogInserter), new(*database.Session)),
)
