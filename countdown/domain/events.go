package domain

import (
	"context"
	"time"
)

type EventKind string

const (
	EventStarted   EventKind = "started"
	EventCompleted EventKind = "completed"
	EventStopped   EventKind = "stopped"
)

// Event representa uma mudança no ciclo de vida de uma contagem.
//
// Observação: CountdownID é único por instância; não use como chave de série
// em bases como Redis/Prometheus sem controle de cardinalidade.
type Event struct {
	CountdownID string
	Kind        EventKind
	Target      time.Time

	At time.Time
}

// EventStore é a estratégia de persistência dos eventos.
//
// Gravação é best-effort: quem chama registra o erro e segue, a contagem
// nunca para por causa dela.
type EventStore interface {
	Record(ctx context.Context, ev Event) error
}
