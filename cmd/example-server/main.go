package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landing-countdown/countdown"
	"landing-countdown/countdown/infra"

	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func main() {
	// Exemplo: montando a contagem dentro do seu próprio webserver (mux da stdlib)
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	clock := infra.NewRealClock(nil)
	store := infra.NewStore(5, 10, infra.WithStoreClock(clock))
	events := infra.NewMemoryEventStore()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	store.StartJanitor(ctx)

	cd := countdown.Handler(countdown.HandlerOptions{
		Clock:  clock,
		Events: events,
		Logger: logger,
		RateLimit: countdown.RateLimit(countdown.RateLimitOptions{
			Store:               store,
			TrustXForwardedFor:  true,
			AddRateLimitHeaders: true,
			Logger:              logger,
		}),
		StreamLimit: countdown.StreamLimit(countdown.StreamLimitOptions{Max: 50, Logger: logger}),
	})

	mux := http.NewServeMux()
	mux.Handle("/countdown", cd)
	mux.Handle("/countdown/", cd)
	mux.Handle("/health", cd)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := landingPage().Render(w); err != nil {
			logger.Warn("landing page render failed", zap.Error(err))
		}
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		c := events.Total()
		logger.Info("countdown stats",
			zap.Int64("started", c.Started),
			zap.Int64("completed", c.Completed),
			zap.Int64("stopped", c.Stopped),
		)
		w.WriteHeader(http.StatusNoContent)
	})

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("example server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

// landingPage carrega o widget e assina o stream para atualizar os valores.
func landingPage() g.Node {
	return h.Doctype(
		h.HTML(h.Lang("pt-BR"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text("Oferta por tempo limitado")),
			),
			h.Body(
				h.H1(g.Text("A oferta termina em")),
				h.Div(h.ID("countdown")),
				h.Script(g.Raw(pageScript)),
			),
		),
	)
}

const pageScript = `
fetch("/countdown/widget").then(r => r.text()).then(html => {
  const box = document.getElementById("countdown");
  box.innerHTML = html;
  const root = box.firstElementChild;
  const src = new EventSource(root.dataset.countdownStream);
  const render = (e) => {
    const d = JSON.parse(e.data);
    const vals = root.querySelectorAll(".countdown-value");
    [d.days, d.hours, d.minutes, d.seconds].forEach((v, i) => {
      vals[i].textContent = String(v).padStart(2, "0");
    });
    root.dataset.countdownState = d.state;
  };
  src.addEventListener("tick", render);
  src.addEventListener("complete", (e) => { render(e); src.close(); });
});
`
