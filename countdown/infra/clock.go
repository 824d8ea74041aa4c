package infra

import (
	"time"

	"landing-countdown/countdown/domain"
)

// RealClock é o relógio de parede, opcionalmente num fuso fixo.
//
// O fuso importa para o alvo padrão: "fim do mês" é calculado no fuso de Now().
type RealClock struct {
	loc *time.Location
}

// NewRealClock cria o relógio. loc nil = time.Local.
func NewRealClock(loc *time.Location) RealClock {
	if loc == nil {
		loc = time.Local
	}
	return RealClock{loc: loc}
}

func (c RealClock) Now() time.Time {
	if c.loc == nil {
		return time.Now()
	}
	return time.Now().In(c.loc)
}

func (c RealClock) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// NewTicker usa time.Ticker, que descarta ticks atrasados em vez de acumular.
func (RealClock) NewTicker(d time.Duration) domain.Ticker {
	return realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
