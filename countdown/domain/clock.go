package domain

import "time"

// Clock abstrai a fonte de tempo e o agendamento periódico.
//
// A implementação real fica em infra; os testes usam um relógio manual.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker entrega um valor em C() a cada período. Stop libera o recurso e
// deve ser chamado exatamente por quem criou o ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}
