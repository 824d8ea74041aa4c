package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"landing-countdown/countdown/domain"

	"github.com/joho/godotenv"
)

type config struct {
	listenAddr string
	logLevel   string

	// alvo vazio = fim do mês corrente, recalculado por requisição
	target       time.Time
	targetRaw    string
	location     *time.Location
	tickInterval time.Duration

	rateEnabled bool
	rateRPS     float64
	rateBurst   int
	rateKeyHdr  string
	trustXFF    bool
	retryAfter  time.Duration
	addHeaders  bool

	streamMax     int
	streamTimeout time.Duration

	eventsEnabled       bool
	eventsRedisAddr     string
	eventsRedisPassword string
	eventsRedisDB       int
	eventsPrefix        string
	eventsTTL           time.Duration
	eventsBucket        string
	eventsTrackTargets  bool
}

// loadDotEnv carrega .env se existir. Variáveis já definidas no ambiente
// têm precedência.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.logLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))

	loc, err := time.LoadLocation(getenvDefault("COUNTDOWN_LOCATION", "Local"))
	if err != nil {
		return config{}, fmt.Errorf("COUNTDOWN_LOCATION: %w", err)
	}
	cfg.location = loc

	cfg.targetRaw = strings.TrimSpace(os.Getenv("COUNTDOWN_TARGET"))
	if cfg.targetRaw != "" {
		t, err := domain.ParseTarget(cfg.targetRaw, loc)
		if err != nil {
			return config{}, fmt.Errorf("COUNTDOWN_TARGET %q: %w", cfg.targetRaw, err)
		}
		cfg.target = t
	}
	cfg.tickInterval = getenvDurationDefault("COUNTDOWN_TICK", 1*time.Second)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 5)
	// IMPORTANTE: o "burst" permite uma rajada inicial de requisições.
	// A página pede snapshot + widget + stream no carregamento, então o padrão
	// é 10. Com RPS < 1 configurado explicitamente, o padrão cai para 1.
	if burst, ok := getenvInt("RATE_BURST"); ok {
		cfg.rateBurst = burst
	} else {
		cfg.rateBurst = 10
		if getenvIsSet("RATE_RPS") && cfg.rateRPS > 0 && cfg.rateRPS < 1 {
			cfg.rateBurst = 1
		}
	}
	cfg.rateKeyHdr = os.Getenv("RATE_KEY_HEADER")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.streamMax = getenvIntDefault("STREAM_MAX", 500)
	cfg.streamTimeout = getenvDurationDefault("STREAM_ACQUIRE_TIMEOUT", 2*time.Second)

	cfg.eventsEnabled = getenvBoolDefault("EVENTS_ENABLED", false)
	cfg.eventsRedisAddr = getenvDefault("EVENTS_REDIS_ADDR", "")
	cfg.eventsRedisPassword = os.Getenv("EVENTS_REDIS_PASSWORD")
	cfg.eventsRedisDB = getenvIntDefault("EVENTS_REDIS_DB", 0)
	cfg.eventsPrefix = getenvDefault("EVENTS_PREFIX", "countdown:events")
	cfg.eventsTTL = getenvDurationDefault("EVENTS_TTL", 24*time.Hour)
	cfg.eventsBucket = getenvDefault("EVENTS_BUCKET", "minute")
	cfg.eventsTrackTargets = getenvBoolDefault("EVENTS_TRACK_TARGETS", false)

	if cfg.eventsEnabled && strings.TrimSpace(cfg.eventsRedisAddr) == "" {
		return config{}, errors.New("EVENTS_REDIS_ADDR is required when EVENTS_ENABLED=true")
	}
	if cfg.tickInterval <= 0 {
		return config{}, errors.New("COUNTDOWN_TICK must be > 0")
	}
	if cfg.rateRPS <= 0 {
		return config{}, errors.New("RATE_RPS must be > 0")
	}
	if cfg.rateBurst <= 0 {
		return config{}, errors.New("RATE_BURST must be > 0")
	}
	if cfg.streamMax < 0 {
		return config{}, errors.New("STREAM_MAX must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	if i, ok := getenvInt(k); ok {
		return i
	}
	return def
}

func getenvInt(k string) (int, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getenvIsSet(k string) bool {
	v, ok := os.LookupEnv(k)
	return ok && v != ""
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
