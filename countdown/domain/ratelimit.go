package domain

// Contratos de proteção dos endpoints HTTP da contagem (sem net/http).

import (
	"context"
	"time"
)

type Key string

// Limiter decide se uma requisição do cliente é permitida agora.
// A infra usa golang.org/x/time/rate (token bucket).
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave (IP, API key...).
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// RetryAfter vai no header Retry-After quando bloquear. 0 = sem recomendação.
	RetryAfter time.Duration
}

// SlotPool limita quantos streams de contagem ficam abertos ao mesmo tempo.
//
// Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar. A função de
// release devolvida deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
