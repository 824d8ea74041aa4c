package infra

import (
	"context"
	"sync"

	"landing-countdown/countdown/domain"
)

type chanPool struct {
	sem chan struct{}
}

// NewChanPool cria um pool de vagas de stream baseado em channel com capacidade `max`.
func NewChanPool(max int) domain.SlotPool {
	return &chanPool{sem: make(chan struct{}, max)}
}

func (p *chanPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case p.sem <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-p.sem }) }, true
	case <-ctx.Done():
		return nil, false
	}
}

// InUse devolve quantas vagas estão ocupadas agora.
func (p *chanPool) InUse() int { return len(p.sem) }
