package countdown

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"landing-countdown/countdown/application"
	"landing-countdown/countdown/domain"
	"landing-countdown/countdown/infra"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HandlerOptions configura as rotas HTTP da contagem.
type HandlerOptions struct {
	Clock    domain.Clock
	Location *time.Location
	// Target configurado. Zero = fim do mês corrente, calculado por requisição.
	Target   time.Time
	Interval time.Duration
	Events   domain.EventStore
	Logger   *zap.Logger

	// RateLimit e StreamLimit são middlewares opcionais (ver RateLimit/StreamLimit).
	RateLimit   func(http.Handler) http.Handler
	StreamLimit func(http.Handler) http.Handler
}

type handler struct {
	svc      application.Service
	clock    domain.Clock
	interval time.Duration
	events   domain.EventStore
	logger   *zap.Logger
}

// payload é o corpo JSON do snapshot e de cada evento do stream.
type payload struct {
	Target       string `json:"target"`
	Days         int    `json:"days"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Seconds      int    `json:"seconds"`
	TotalSeconds int64  `json:"total_seconds"`
	Display      string `json:"display"`
	State        string `json:"state"`
}

func newPayload(target time.Time, rem domain.Remaining) payload {
	return payload{
		Target:       formatTarget(target),
		Days:         rem.Days,
		Hours:        rem.Hours,
		Minutes:      rem.Minutes,
		Seconds:      rem.Seconds,
		TotalSeconds: rem.TotalSeconds(),
		Display:      rem.String(),
		State:        domain.StateOf(rem).String(),
	}
}

// Handler monta as rotas:
//
//	GET /health
//	GET /countdown          snapshot JSON
//	GET /countdown/widget   fragmento HTML
//	GET /countdown/stream   text/event-stream, um evento por tick até zerar
//
// Em todas, ?target= sobrescreve o alvo configurado.
func Handler(opts HandlerOptions) http.Handler {
	if opts.Clock == nil {
		opts.Clock = infra.NewRealClock(opts.Location)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = application.DefaultInterval
	}

	hd := &handler{
		svc: application.Service{
			Clock:    opts.Clock,
			Location: opts.Location,
			Target:   opts.Target,
			Logger:   opts.Logger,
		},
		clock:    opts.Clock,
		interval: opts.Interval,
		events:   opts.Events,
		logger:   opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", health)

	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}
		r.Get("/countdown", hd.snapshot)
		r.Get("/countdown/widget", hd.widget)

		stream := http.Handler(http.HandlerFunc(hd.stream))
		if opts.StreamLimit != nil {
			stream = opts.StreamLimit(stream)
		}
		r.Method(http.MethodGet, "/countdown/stream", stream)
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (hd *handler) snapshot(w http.ResponseWriter, r *http.Request) {
	target := hd.svc.ResolveTarget(r.URL.Query().Get("target"))
	snap := hd.svc.Snapshot(target)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(newPayload(snap.Target, snap.Remaining)); err != nil {
		hd.logger.Warn("countdown snapshot write failed", zap.Error(err))
	}
}

func (hd *handler) widget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := q.Get("target")
	snap := hd.svc.Snapshot(hd.svc.ResolveTarget(raw))

	streamURL := "/countdown/stream"
	if raw != "" {
		streamURL += "?target=" + url.QueryEscape(raw)
	}
	opts := WidgetOptions{
		ShowLabels: queryBool(q, "labels", true),
		Compact:    queryBool(q, "compact", false),
		StreamURL:  streamURL,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := Widget(snap, opts).Render(w); err != nil {
		hd.logger.Warn("countdown widget render failed", zap.Error(err))
	}
}

func (hd *handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	target := hd.svc.ResolveTarget(r.URL.Query().Get("target"))
	cd := application.New(
		application.WithTarget(target),
		application.WithClock(hd.clock),
		application.WithInterval(hd.interval),
		application.WithEvents(hd.events),
		application.WithLogger(hd.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))),
	)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("X-Countdown-Id", cd.ID())
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	seq := 0
	var last domain.Remaining
	var writeErr error
	send := func(event string, rem domain.Remaining) {
		if writeErr != nil {
			return
		}
		seq++
		id := cd.ID() + "-" + strconv.Itoa(seq)
		if writeErr = writeEvent(w, id, event, newPayload(target, rem)); writeErr != nil {
			// cliente foi embora: para a contagem de dentro do callback
			cd.Stop()
			return
		}
		flusher.Flush()
	}

	err := cd.Start(r.Context(),
		func(rem domain.Remaining) {
			last = rem
			send("tick", rem)
		},
		func() { send("complete", last) },
	)
	if err != nil {
		hd.logger.Error("countdown stream start failed", zap.Error(err))
		return
	}
	<-cd.Done()

	if writeErr != nil {
		hd.logger.Debug("countdown stream closed by client",
			zap.String("countdown_id", cd.ID()),
			zap.Error(writeErr),
		)
	}
}

func writeEvent(w io.Writer, id, event string, p payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", id, event, data)
	return err
}

func queryBool(q url.Values, key string, def bool) bool {
	v := q.Get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
