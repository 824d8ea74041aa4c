package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"landing-countdown/countdown/domain"

	"github.com/redis/go-redis/v9"
)

// RedisEventStore grava contadores de eventos de contagem em hashes do Redis.
//
// Layout das chaves (prefixo padrão "countdown:events"):
//
//	<prefix>:total                  started/completed/stopped (cumulativo, sem TTL)
//	<prefix>:minute:200601021504    idem, por minuto (com TTL)
//	<prefix>:target:<rfc3339>       idem, por alvo (opcional, com TTL)
type RedisEventStore struct {
	rdb redis.Cmdable

	prefix string
	// ttl aplica apenas em chaves de série temporal / por alvo.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackTargets bool
}

type RedisEventsOption func(*RedisEventStore)

func WithEventsPrefix(prefix string) RedisEventsOption {
	return func(s *RedisEventStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithEventsTTL(d time.Duration) RedisEventsOption {
	return func(s *RedisEventStore) { s.ttl = d }
}

func WithEventsBucket(bucket string) RedisEventsOption {
	return func(s *RedisEventStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithEventsTrackTargets(track bool) RedisEventsOption {
	return func(s *RedisEventStore) { s.trackTargets = track }
}

// NewRedisEventStore aceita *redis.Client, *redis.ClusterClient ou um pipeline.
func NewRedisEventStore(rdb redis.Cmdable, opts ...RedisEventsOption) *RedisEventStore {
	s := &RedisEventStore{
		rdb:    rdb,
		prefix: "countdown:events",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisEventStore) Prefix() string { return s.prefix }

func (s *RedisEventStore) Record(ctx context.Context, ev domain.Event) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	field := string(ev.Kind)
	if field == "" {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if s.trackTargets {
		targetKey := s.prefix + ":target:" + targetField(ev.Target)
		pipe.HIncrBy(ctx, targetKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, targetKey, s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record countdown event %s: %w", field, err)
	}
	return nil
}

// Total lê os contadores cumulativos.
func (s *RedisEventStore) Total(ctx context.Context) (Counters, error) {
	vals, err := s.rdb.HGetAll(ctx, s.prefix+":total").Result()
	if err != nil {
		return Counters{}, fmt.Errorf("read countdown totals: %w", err)
	}
	var c Counters
	for k, v := range vals {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		switch domain.EventKind(k) {
		case domain.EventStarted:
			c.Started = n
		case domain.EventCompleted:
			c.Completed = n
		case domain.EventStopped:
			c.Stopped = n
		}
	}
	return c, nil
}

// targetField normaliza o alvo para uso como chave: UTC, precisão de segundo.
// Alvo inválido (zero value) vira "invalid".
func targetField(t time.Time) string {
	if t.IsZero() {
		return "invalid"
	}
	return t.UTC().Format(time.RFC3339)
}
