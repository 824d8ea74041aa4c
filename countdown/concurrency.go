package countdown

import (
	"errors"
	"net/http"
	"time"

	"landing-countdown/countdown/application"
	"landing-countdown/countdown/infra"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// StreamLimitOptions limita quantos streams de contagem ficam abertos ao
// mesmo tempo. Cada stream segura um timer e uma conexão até zerar.
type StreamLimitOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	// RetryAfter vai no header Retry-After da recusa. 0 = 1s.
	RetryAfter time.Duration
	Logger     *zap.Logger
}

func StreamLimit(opts StreamLimitOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	svc := application.StreamService{
		Pool:           infra.NewChanPool(opts.Max),
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, err := svc.Acquire(r.Context())
			if err != nil {
				fields := []zap.Field{
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("target", r.URL.Query().Get("target")),
				}
				if !errors.Is(err, application.ErrNoStreamSlot) {
					// cliente desistiu na fila, não há a quem responder
					opts.Logger.Debug("countdown stream abandoned while waiting", append(fields, zap.Error(err))...)
					return
				}
				opts.Logger.Warn("countdown stream rejected, all slots busy",
					append(fields, zap.Int("max", opts.Max))...)
				w.Header().Set("Retry-After", formatInt(int(opts.RetryAfter.Seconds())))
				http.Error(w, http.StatusText(opts.RejectStatus), opts.RejectStatus)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
