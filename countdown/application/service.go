package application

import (
	"errors"
	"time"

	"landing-countdown/countdown/domain"

	"go.uber.org/zap"
)

// Service concentra a leitura pontual da contagem e a política de alvo.
//
// Ele não sabe nada sobre HTTP: recebe o alvo "cru" (config/query) e devolve
// um Snapshot.
type Service struct {
	Clock    domain.Clock
	Location *time.Location
	// Target é o alvo configurado. Zero = fim do mês corrente a cada leitura.
	Target time.Time
	Logger *zap.Logger
}

// ResolveTarget aplica a política de alvo:
//   - vazio: Target configurado, ou fim do mês de agora
//   - inválido: zero value (contagem vencida, conclusão imediata)
//   - válido: o instante interpretado
func (s Service) ResolveTarget(raw string) time.Time {
	if raw == "" {
		if !s.Target.IsZero() {
			return s.Target
		}
		return domain.EndOfMonth(s.now())
	}

	t, err := domain.ParseTarget(raw, s.Location)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTarget) && s.Logger != nil {
			s.Logger.Warn("invalid countdown target, treating as elapsed", zap.String("raw", raw))
		}
		return time.Time{}
	}
	return t
}

func (s Service) Snapshot(target time.Time) domain.Snapshot {
	now := s.now()
	rem := domain.Compute(target, now)
	return domain.Snapshot{
		Target:    target,
		Remaining: rem,
		State:     domain.StateOf(rem),
		At:        now,
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		now := time.Now()
		if s.Location != nil {
			now = now.In(s.Location)
		}
		return now
	}
	return s.Clock.Now()
}

// RateService decide se um cliente pode consultar a contagem agora.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
type RateService struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s RateService) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(key)
	if lim == nil {
		return domain.Decision{Allowed: true}
	}
	if lim.Allow() {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: s.RetryAfter}
}
