package services_test

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-greeter/internal/models/po"
	"github.com/bionicotaku/lingo-services-greeter/internal/services"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	mu      sync.Mutex
	records []po.GreetingLog
	err     error
}

func (r *recordingRepo) Record(_ context.Context, g *po.GreetingLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *g)
	return nil
}

func TestGreeterUsecase_SayHelloRecordsGreeting(t *testing.T) {
	repo := &recordingRepo{}
	fixed := time.Date(2026, 10, 19, 8, 30, 0, 123456000, time.UTC)
	uc := services.NewGreeterUsecaseWithClock(repo, func() time.Time { return fixed }, log.NewStdLogger(io.Discard))

	greeting, err := uc.SayHello(context.Background(), "Tonic", "192.0.2.10:53124")
	require.NoError(t, err)
	require.Equal(t, "Not hello Tonic!", greeting.Message)
	require.Equal(t, "2026-10-19T08:30:00.123456", greeting.ReceivedAt)

	require.Equal(t, []po.GreetingLog{{
		Message:       "Not hello Tonic!",
		ClientAddress: "192.0.2.10:53124",
		ReceivedAt:    "2026-10-19T08:30:00.123456",
	}}, repo.records)
}

func TestGreetingMessage(t *testing.T) {
	for name, want := range map[string]string{
		"Tonic":      "Not hello Tonic!",
		"":           "Not hello !",
		"世界":         "Not hello 世界!",
		"a\"b'c;--":  "Not hello a\"b'c;--!",
		"with space": "Not hello with space!",
	} {
		require.Equal(t, want, services.GreetingMessage(name))
	}
}

func TestGreeterUsecase_ReceivedAtIsNonDecreasing(t *testing.T) {
	repo := &recordingRepo{}
	uc := services.NewGreeterUsecase(repo, log.NewStdLogger(io.Discard))

	for i := 0; i < 20; i++ {
		_, err := uc.SayHello(context.Background(), "seq", "127.0.0.1:1")
		require.NoError(t, err)
	}
	for i, rec := range repo.records {
		require.Len(t, rec.ReceivedAt, 26)
		if i > 0 {
			require.GreaterOrEqual(t, rec.ReceivedAt, repo.records[i-1].ReceivedAt)
		}
	}
}

func TestGreeterUsecase_ReceivedAtSurvivesClockStepBack(t *testing.T) {
	repo := &recordingRepo{}
	base := time.Date(2026, 10, 19, 8, 30, 0, 500000000, time.UTC)
	ticks := []time.Time{base, base.Add(-2 * time.Second), base.Add(time.Millisecond)}
	var i int
	clock := func() time.Time {
		next := ticks[i]
		i++
		return next
	}
	uc := services.NewGreeterUsecaseWithClock(repo, clock, log.NewStdLogger(io.Discard))

	for range ticks {
		_, err := uc.SayHello(context.Background(), "step", "127.0.0.1:1")
		require.NoError(t, err)
	}

	require.Len(t, repo.records, 3)
	require.Equal(t, "2026-10-19T08:30:00.500000", repo.records[0].ReceivedAt)
	require.Equal(t, "2026-10-19T08:30:00.500000", repo.records[1].ReceivedAt)
	require.Equal(t, "2026-10-19T08:30:00.501000", repo.records[2].ReceivedAt)
}

func TestGreeterUsecase_PropagatesServiceErrors(t *testing.T) {
	repo := &recordingRepo{err: services.ErrLogStoreUnavailable.WithCause(stderrors.New("pump stopped"))}
	uc := services.NewGreeterUsecase(repo, log.NewStdLogger(io.Discard))

	greeting, err := uc.SayHello(context.Background(), "Tonic", "127.0.0.1:1")
	require.Nil(t, greeting)
	require.True(t, errors.Is(err, services.ErrLogStoreUnavailable))
	require.Equal(t, 503, errors.Code(err))
}

func TestGreeterUsecase_WrapsUnknownErrors(t *testing.T) {
	repo := &recordingRepo{err: stderrors.New("disk full")}
	uc := services.NewGreeterUsecase(repo, log.NewStdLogger(io.Discard))

	_, err := uc.SayHello(context.Background(), "Tonic", "127.0.0.1:1")
	require.True(t, errors.Is(err, services.ErrLogWriteFailed))
	require.Equal(t, 500, errors.Code(err))
	require.ErrorContains(t, errors.Unwrap(err), "disk full")
}
