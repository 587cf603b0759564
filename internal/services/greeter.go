package services

import (
	"context"
	"sync"
	"time"

	v1 "github.com/bionicotaku/lingo-services-greeter/api/helloworld/v1"
	"github.com/bionicotaku/lingo-services-greeter/internal/metadata"
	"github.com/bionicotaku/lingo-services-greeter/internal/models/po"
	"github.com/bionicotaku/lingo-services-greeter/internal/models/vo"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

var (
	// ErrLogWriteFailed is returned when the greeting log row could not be written.
	ErrLogWriteFailed = errors.InternalServer(v1.ErrorReason_ERROR_REASON_LOG_WRITE_FAILED.String(), "greeting could not be recorded")
	// ErrLogWriteTimeout is returned when the greeting log write exceeded its deadline.
	ErrLogWriteTimeout = errors.GatewayTimeout(v1.ErrorReason_ERROR_REASON_LOG_WRITE_TIMEOUT.String(), "greeting log write timed out")
	// ErrLogStoreUnavailable is returned once the database session has terminated.
	ErrLogStoreUnavailable = errors.ServiceUnavailable(v1.ErrorReason_ERROR_REASON_LOG_STORE_UNAVAILABLE.String(), "greeting log store unavailable")
)

// GreetingLogRepo persists greeting log rows.
type GreetingLogRepo interface {
	Record(context.Context, *po.GreetingLog) error
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// GreeterUsecase builds greetings and records every answered call.
type GreeterUsecase struct {
	repo GreetingLogRepo
	now  Clock
	log  *log.Helper

	mu   sync.Mutex
	last time.Time
}

// NewGreeterUsecase constructs a Greeter usecase using the system clock.
func NewGreeterUsecase(repo GreetingLogRepo, logger log.Logger) *GreeterUsecase {
	return NewGreeterUsecaseWithClock(repo, time.Now, logger)
}

// NewGreeterUsecaseWithClock constructs a Greeter usecase with an explicit clock.
func NewGreeterUsecaseWithClock(repo GreetingLogRepo, now Clock, logger log.Logger) *GreeterUsecase {
	if now == nil {
		now = time.Now
	}
	return &GreeterUsecase{repo: repo, now: now, log: log.NewHelper(logger)}
}

// GreetingMessage returns the reply text for name.
func GreetingMessage(name string) string {
	return "Not hello " + name + "!"
}

// SayHello builds the greeting for name and records it together with the
// caller address. The greeting is only returned once the row is written.
func (uc *GreeterUsecase) SayHello(ctx context.Context, name, clientAddress string) (*vo.Greeting, error) {
	record := &po.GreetingLog{
		Message:       GreetingMessage(name),
		ClientAddress: clientAddress,
		ReceivedAt:    po.FormatReceivedAt(uc.receivedAt()),
	}

	meta, _ := metadata.FromContext(ctx)
	if err := uc.repo.Record(ctx, record); err != nil {
		uc.log.WithContext(ctx).Errorf("record greeting failed: request_id=%s client=%s err=%v", meta.RequestID, clientAddress, err)
		var se *errors.Error
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, ErrLogWriteFailed.WithCause(err)
	}

	uc.log.WithContext(ctx).Infof("SayHello: request_id=%s client=%s received_at=%s", meta.RequestID, clientAddress, record.ReceivedAt)
	return &vo.Greeting{Message: record.Message, ReceivedAt: record.ReceivedAt}, nil
}

// receivedAt 返回本次调用的接收时间；墙上时钟回拨时沿用上一次的值，保证时间戳单调不减。
func (uc *GreeterUsecase) receivedAt() time.Time {
	now := uc.now()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if now.Before(uc.last) {
		return uc.last
	}
	uc.last = now
	return now
}
