package infra

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"landing-countdown/countdown/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHook intercepta os comandos antes da rede: nenhum Redis é necessário.
type captureHook struct {
	mu      sync.Mutex
	cmds    [][]interface{}
	hgetall map[string]string
}

func (h *captureHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *captureHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.capture(cmd)
		if c, ok := cmd.(*redis.MapStringStringCmd); ok {
			c.SetVal(h.hgetall)
		}
		return nil
	}
}

func (h *captureHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			h.capture(cmd)
		}
		return nil
	}
}

func (h *captureHook) capture(cmd redis.Cmder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cmds = append(h.cmds, cmd.Args())
}

func (h *captureHook) commands() [][]interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]interface{}(nil), h.cmds...)
}

func newCaptureClient(t *testing.T) (*redis.Client, *captureHook) {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })
	hook := &captureHook{}
	rdb.AddHook(hook)
	return rdb, hook
}

func TestRedisEventStore_RecordWritesTotalAndMinuteBucket(t *testing.T) {
	rdb, hook := newCaptureClient(t)
	s := NewRedisEventStore(rdb, WithEventsTTL(time.Hour))

	at := time.Date(2026, time.October, 15, 12, 34, 56, 0, time.UTC)
	require.NoError(t, s.Record(context.Background(), domain.Event{
		CountdownID: "abc",
		Kind:        domain.EventStarted,
		Target:      time.Date(2026, time.October, 31, 23, 59, 59, 0, time.UTC),
		At:          at,
	}))

	assert.Equal(t, [][]interface{}{
		{"hincrby", "countdown:events:total", "started", int64(1)},
		{"hincrby", "countdown:events:minute:202610151234", "started", int64(1)},
		{"expire", "countdown:events:minute:202610151234", int64(3600)},
	}, hook.commands())
}

func TestRedisEventStore_RecordTracksTargets(t *testing.T) {
	rdb, hook := newCaptureClient(t)
	s := NewRedisEventStore(rdb,
		WithEventsPrefix("landing"),
		WithEventsBucket("none"),
		WithEventsTTL(2*time.Hour),
		WithEventsTrackTargets(true),
	)

	brt := time.FixedZone("BRT", -3*60*60)
	require.NoError(t, s.Record(context.Background(), domain.Event{
		Kind:   domain.EventCompleted,
		Target: time.Date(2026, time.October, 31, 23, 59, 59, 0, brt),
		At:     time.Now(),
	}))
	require.NoError(t, s.Record(context.Background(), domain.Event{
		Kind: domain.EventStopped,
		At:   time.Now(),
	}))

	assert.Equal(t, [][]interface{}{
		{"hincrby", "landing:total", "completed", int64(1)},
		{"hincrby", "landing:target:2026-11-01T02:59:59Z", "completed", int64(1)},
		{"expire", "landing:target:2026-11-01T02:59:59Z", int64(7200)},
		{"hincrby", "landing:total", "stopped", int64(1)},
		{"hincrby", "landing:target:invalid", "stopped", int64(1)},
		{"expire", "landing:target:invalid", int64(7200)},
	}, hook.commands())
}

func TestRedisEventStore_RecordWithoutTTLSkipsExpire(t *testing.T) {
	rdb, hook := newCaptureClient(t)
	s := NewRedisEventStore(rdb, WithEventsTTL(0))

	require.NoError(t, s.Record(context.Background(), domain.Event{Kind: domain.EventStarted, At: time.Now()}))
	for _, args := range hook.commands() {
		assert.NotEqual(t, "expire", args[0])
	}
	assert.Len(t, hook.commands(), 2)
}

func TestRedisEventStore_TotalParsesCounters(t *testing.T) {
	rdb, hook := newCaptureClient(t)
	hook.hgetall = map[string]string{"started": "7", "completed": "5", "stopped": "2", "lixo": "x"}
	s := NewRedisEventStore(rdb)

	got, err := s.Total(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counters{Started: 7, Completed: 5, Stopped: 2}, got)
	assert.Equal(t, []interface{}{"hgetall", "countdown:events:total"}, hook.commands()[0])
}
