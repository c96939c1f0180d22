package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndRate(t *testing.T) {
	l := New(0)
	require.Equal(t, DefaultRate, l.Rate("unknown"))

	require.False(t, l.Registered("depth"))
	l.Register("depth", 10)
	require.True(t, l.Registered("depth"))
	require.Equal(t, 10, l.Rate("depth"))

	l2 := New(3)
	require.Equal(t, 3, l2.Rate("anything"))
}

func TestLimitSpacesRequests(t *testing.T) {
	l := New(1)
	l.Register("account", 20)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 4; i++ {
		require.NoError(t, l.Limit(ctx, "account"))
	}
	// Four requests at 20/s need at least three 50ms gaps.
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestNamespacesAreIndependent(t *testing.T) {
	l := New(1)
	ctx := context.Background()

	require.NoError(t, l.Limit(ctx, "time"))

	start := time.Now()
	require.NoError(t, l.Limit(ctx, "markets"))
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestUnlimitedNamespace(t *testing.T) {
	l := New(1)
	l.Register("local", 0)

	start := time.Now()
	for i := 0; i < 50; i++ {
		require.NoError(t, l.Limit(context.Background(), "local"))
	}
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestLimitHonoursContext(t *testing.T) {
	l := New(1)
	require.NoError(t, l.Limit(context.Background(), "peers"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Limit(ctx, "peers")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancel2 := context.WithCancel(context.Background())
	cancel2()
	require.ErrorIs(t, l.Limit(cancelled, "other"), context.Canceled)
}

func TestConcurrentRegister(t *testing.T) {
	l := New(1)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Register("ns", i+1)
			_ = l.Rate("ns")
		}(i)
	}
	wg.Wait()
	require.Positive(t, l.Rate("ns"))
}
