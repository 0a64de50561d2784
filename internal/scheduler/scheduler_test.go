package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"nytviewer/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingRefresher struct {
	mu       sync.Mutex
	sections int
	articles int
	failWith error
}

func (r *recordingRefresher) Execute(_ context.Context, action repository.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch action.(type) {
	case repository.RefreshSections:
		r.sections++
		return r.failWith
	case repository.RefreshArticles:
		r.articles++
	}
	return nil
}

func (r *recordingRefresher) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sections, r.articles
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func runScheduler(t *testing.T, refresher Refresher) (stop func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	sched := NewScheduler(refresher, 10*time.Millisecond, testLogger())
	go func() {
		errCh <- sched.Start(ctx)
	}()

	return func() error {
		cancel()
		return <-errCh
	}
}

func TestScheduler_RefreshesOnEachTick(t *testing.T) {
	refresher := &recordingRefresher{}
	stop := runScheduler(t, refresher)

	require.Eventually(t, func() bool {
		sections, articles := refresher.counts()
		return sections >= 2 && articles >= 2
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, stop(), context.Canceled)
}

func TestScheduler_SectionFailureDoesNotStopArticles(t *testing.T) {
	refresher := &recordingRefresher{failWith: errors.New("(500) boom")}
	stop := runScheduler(t, refresher)

	require.Eventually(t, func() bool {
		_, articles := refresher.counts()
		return articles >= 2
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, stop(), context.Canceled)
}

func TestScheduler_NoRefreshBeforeFirstTick(t *testing.T) {
	refresher := &recordingRefresher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewScheduler(refresher, time.Hour, testLogger()).Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	sections, articles := refresher.counts()
	assert.Zero(t, sections)
	assert.Zero(t, articles)
}
