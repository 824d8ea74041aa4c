package infra

import (
	"context"
	"sync"
	"testing"
	"time"

	"landing-countdown/countdown/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanPool_BlocksWhenFull(t *testing.T) {
	pool := NewChanPool(1)

	release, ok := pool.Acquire(context.Background())
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, ok = pool.Acquire(ctx)
	assert.False(t, ok, "second acquire should time out")

	release()
	release() // segundo release não pode liberar vaga alheia

	r2, ok := pool.Acquire(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1, pool.(interface{ InUse() int }).InUse())
	r2()
	assert.Equal(t, 0, pool.(interface{ InUse() int }).InUse())
}

func TestChanPool_ConcurrentReleaseFreesOneSlot(t *testing.T) {
	pool := NewChanPool(2)
	inUse := pool.(interface{ InUse() int })

	other, ok := pool.Acquire(context.Background())
	require.True(t, ok)
	release, ok := pool.Acquire(context.Background())
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inUse.InUse(), "the other holder keeps its slot")
	other()
	assert.Equal(t, 0, inUse.InUse())
}

func TestRealClock_UsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	clk := NewRealClock(loc)
	assert.Equal(t, loc, clk.Now().Location())
	assert.Equal(t, loc, clk.Location())

	assert.Equal(t, time.Local, NewRealClock(nil).Location())
}

func TestRealClock_TickerTicks(t *testing.T) {
	tk := NewRealClock(nil).NewTicker(time.Millisecond)
	defer tk.Stop()
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatalf("expected a tick")
	}
}

func TestMemoryEventStore_CountsByKindAndTarget(t *testing.T) {
	s := NewMemoryEventStore(WithKeepEvents(true))
	target := time.Date(2026, time.October, 31, 23, 59, 59, 0, time.UTC)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, domain.Event{CountdownID: "a", Kind: domain.EventStarted, Target: target}))
	require.NoError(t, s.Record(ctx, domain.Event{CountdownID: "a", Kind: domain.EventCompleted, Target: target}))
	require.NoError(t, s.Record(ctx, domain.Event{CountdownID: "b", Kind: domain.EventStarted}))
	require.NoError(t, s.Record(ctx, domain.Event{CountdownID: "b", Kind: domain.EventStopped}))

	assert.Equal(t, Counters{Started: 2, Completed: 1, Stopped: 1}, s.Total())

	by := s.ByTarget()
	assert.Equal(t, Counters{Started: 1, Completed: 1}, by["2026-10-31T23:59:59Z"])
	assert.Equal(t, Counters{Started: 1, Stopped: 1}, by["invalid"])
	assert.Len(t, s.Events(), 4)
}

func TestMemoryEventStore_DoesNotKeepEventsByDefault(t *testing.T) {
	s := NewMemoryEventStore()
	require.NoError(t, s.Record(context.Background(), domain.Event{Kind: domain.EventStarted}))
	assert.Empty(t, s.Events())
	assert.Equal(t, int64(1), s.Total().Started)
}

func TestRedisEventStore_NilIsNoop(t *testing.T) {
	var s *RedisEventStore
	assert.NoError(t, s.Record(context.Background(), domain.Event{Kind: domain.EventStarted}))
}

func TestRedisEventStore_Options(t *testing.T) {
	s := NewRedisEventStore(nil, WithEventsPrefix(":landing:countdown:"), WithEventsBucket(" NONE "), WithEventsTTL(time.Hour), WithEventsTrackTargets(true))
	assert.Equal(t, "landing:countdown", s.Prefix())
	assert.Equal(t, "none", s.bucket)
	assert.Equal(t, time.Hour, s.ttl)
	assert.True(t, s.trackTargets)
}

func TestRedisEventStore_ReturnsWrappedErrorWhenUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() { _ = rdb.Close() }()

	s := NewRedisEventStore(rdb)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := s.Record(ctx, domain.Event{Kind: domain.EventCompleted, At: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record countdown event completed")
}
