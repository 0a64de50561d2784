package observable

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func subscribers[T any](v *Value[T]) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func TestValue_GetSet(t *testing.T) {
	v := NewValue(1)
	assert.Equal(t, 1, v.Get())

	v.Set(2)
	assert.Equal(t, 2, v.Get())

	got := v.Update(func(n int) int { return n * 10 })
	assert.Equal(t, 20, got)
	assert.Equal(t, 20, v.Get())
}

func TestValue_SubscribeReplaysLatest(t *testing.T) {
	v := NewValue("a")
	v.Set("b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)
	assert.Equal(t, "b", <-ch)

	v.Set("c")
	assert.Equal(t, "c", <-ch)
}

func TestValue_SlowSubscriberIsConflated(t *testing.T) {
	v := NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Subscribe(ctx)
	for i := 1; i <= 5; i++ {
		v.Set(i)
	}

	assert.Equal(t, 5, <-ch)
	select {
	case got := <-ch:
		t.Fatalf("unexpected extra value %d", got)
	default:
	}
}

func TestValue_MultipleSubscribers(t *testing.T) {
	v := NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := v.Subscribe(ctx)
	b := v.Subscribe(ctx)
	<-a
	<-b
	assert.Equal(t, 2, subscribers(v))

	v.Set(7)
	assert.Equal(t, 7, <-a)
	assert.Equal(t, 7, <-b)
}

func TestValue_CancelClosesChannel(t *testing.T) {
	v := NewValue(0)

	ctx, cancel := context.WithCancel(context.Background())
	ch := v.Subscribe(ctx)
	<-ch

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, subscribers(v))

	v.Set(1)
}

func TestValue_SubscribeWithDoneContext(t *testing.T) {
	v := NewValue(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := v.Subscribe(ctx)
	assert.Equal(t, 3, <-ch)
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, subscribers(v))
}

func TestValue_ConcurrentUpdatesAreLinearized(t *testing.T) {
	v := NewValue(0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, v.Get())
}
