package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landing-countdown/countdown"
	"landing-countdown/countdown/domain"
	"landing-countdown/countdown/infra"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := loadDotEnv(os.Getenv("DOTENV_PATH")); err != nil {
		log.Fatalf(".env error: %v", err)
	}

	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	clock := infra.NewRealClock(cfg.location)
	store := infra.NewStore(cfg.rateRPS, cfg.rateBurst, infra.WithStoreClock(clock))

	var events domain.EventStore
	if cfg.eventsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.eventsRedisAddr,
			Password: cfg.eventsRedisPassword,
			DB:       cfg.eventsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			logger.Fatal("redis events ping error", zap.Error(err))
		}

		events = infra.NewRedisEventStore(
			rdb,
			infra.WithEventsPrefix(cfg.eventsPrefix),
			infra.WithEventsTTL(cfg.eventsTTL),
			infra.WithEventsBucket(cfg.eventsBucket),
			infra.WithEventsTrackTargets(cfg.eventsTrackTargets),
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	store.StartJanitor(ctx)

	opts := countdown.HandlerOptions{
		Clock:    clock,
		Location: cfg.location,
		Target:   cfg.target,
		Interval: cfg.tickInterval,
		Events:   events,
		Logger:   logger,
		StreamLimit: countdown.StreamLimit(countdown.StreamLimitOptions{
			Max:            cfg.streamMax,
			RejectStatus:   http.StatusServiceUnavailable,
			AcquireTimeout: cfg.streamTimeout,
			RetryAfter:     cfg.retryAfter,
			Logger:         logger,
		}),
	}
	if cfg.rateEnabled {
		opts.RateLimit = countdown.RateLimit(countdown.RateLimitOptions{
			Store:               store,
			KeyHeader:           cfg.rateKeyHdr,
			TrustXForwardedFor:  cfg.trustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.retryAfter,
			AddRateLimitHeaders: cfg.addHeaders,
			Logger:              logger,
		})
	}

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           countdown.Handler(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// sem WriteTimeout: o stream fica aberto até a contagem zerar
		IdleTimeout: 90 * time.Second,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("countdown server listening",
		zap.String("addr", cfg.listenAddr),
		zap.String("target", targetLabel(cfg)),
		zap.String("location", cfg.location.String()),
		zap.Duration("tick", cfg.tickInterval),
	)
	logger.Info("rate limit",
		zap.Bool("enabled", cfg.rateEnabled),
		zap.Float64("rps", cfg.rateRPS),
		zap.Int("burst", cfg.rateBurst),
		zap.String("key_header", cfg.rateKeyHdr),
		zap.Bool("trust_xff", cfg.trustXFF),
	)
	logger.Info("streams",
		zap.Int("max", cfg.streamMax),
		zap.Duration("acquire_timeout", cfg.streamTimeout),
	)
	logger.Info("events",
		zap.Bool("enabled", cfg.eventsEnabled),
		zap.String("redis_addr", cfg.eventsRedisAddr),
		zap.String("bucket", cfg.eventsBucket),
		zap.Duration("ttl", cfg.eventsTTL),
		zap.Bool("track_targets", cfg.eventsTrackTargets),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func targetLabel(cfg config) string {
	if cfg.target.IsZero() {
		return "end-of-month"
	}
	return cfg.target.Format(time.RFC3339)
}
