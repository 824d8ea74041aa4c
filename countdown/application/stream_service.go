package application

import (
	"context"
	"errors"
	"time"

	"landing-countdown/countdown/domain"
)

// ErrNoStreamSlot indica que todas as vagas de stream seguiram ocupadas até o
// fim do AcquireTimeout.
var ErrNoStreamSlot = errors.New("countdown: no stream slot available")

// StreamService controla as vagas de streams de contagem abertos, com timeout
// de aquisição, sem saber nada sobre HTTP.
type StreamService struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tenta adquirir uma vaga.
//   - AcquireTimeout <= 0: espera até ctx encerrar.
//   - AcquireTimeout > 0: espera até o timeout e devolve ErrNoStreamSlot.
//
// Se o próprio ctx acabou (cliente desistiu antes de ganhar a vaga), devolve
// ctx.Err(), para o chamador não responder a quem já foi embora.
func (s StreamService) Acquire(ctx context.Context) (func(), error) {
	if s.Pool == nil {
		return func() {}, nil
	}

	acqCtx := ctx
	if s.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acqCtx, cancel = context.WithTimeout(ctx, s.AcquireTimeout)
		defer cancel()
	}

	if release, ok := s.Pool.Acquire(acqCtx); ok {
		return release, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoStreamSlot
}
