package worker

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestPool_RunsEverySubmittedTask(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 4, QueueSize: 100, TaskTimeout: time.Second})
	require.NoError(t, p.Start()())

	var (
		count int64
		wg    sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		err := p.Submit(context.Background(), Task{Name: "count", Run: func(ctx context.Context) error {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
			return nil
		}})
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, int64(50), atomic.LoadInt64(&count))
	assert.NoError(t, p.Stop()(context.Background()))
}

func TestPool_QueueFull(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 1, QueueSize: 1})

	noop := Task{Name: "noop", Run: func(ctx context.Context) error { return nil }}
	// not started: the queue only holds one task
	require.NoError(t, p.Submit(context.Background(), noop))
	assert.ErrorIs(t, p.Submit(context.Background(), noop), common.ErrQueueFull)
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 1, QueueSize: 1})
	require.NoError(t, p.Start()())
	require.NoError(t, p.Stop()(context.Background()))

	err := p.Submit(context.Background(), Task{Name: "late", Run: func(ctx context.Context) error { return nil }})
	assert.ErrorIs(t, err, common.ErrWorkerStopped)

	// a second stop is a no-op
	assert.NoError(t, p.Stop()(context.Background()))
}

func TestPool_StopDrainsQueue(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 1, QueueSize: 10})

	var count int64
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(context.Background(), Task{Name: "drain", Run: func(ctx context.Context) error {
			atomic.AddInt64(&count, 1)
			return nil
		}}))
	}

	require.NoError(t, p.Start()())
	require.NoError(t, p.Stop()(context.Background()))
	assert.Equal(t, int64(5), atomic.LoadInt64(&count))
}

func TestPool_TaskOutlivesCallerContext(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 1, QueueSize: 1, TaskTimeout: time.Second})
	require.NoError(t, p.Start()())
	defer func() { _ = p.Stop()(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := make(chan error, 1)
	require.NoError(t, p.Submit(ctx, Task{Name: "detached", Run: func(ctx context.Context) error {
		got <- ctx.Err()
		return nil
	}}))

	select {
	case err := <-got:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestPool_RecoversFromPanic(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 1, QueueSize: 2})
	require.NoError(t, p.Start()())

	done := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), Task{Name: "panic", Run: func(ctx context.Context) error {
		panic("boom")
	}}))
	require.NoError(t, p.Submit(context.Background(), Task{Name: "after", Run: func(ctx context.Context) error {
		close(done)
		return nil
	}}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after panic")
	}
	assert.NoError(t, p.Stop()(context.Background()))
}

func TestPool_StopTimesOut(t *testing.T) {
	p := New(config.DispatcherConfig{Workers: 1, QueueSize: 1})
	require.NoError(t, p.Start()())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), Task{Name: "slow", Run: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Stop()(ctx), context.DeadlineExceeded)
	close(release)
}
