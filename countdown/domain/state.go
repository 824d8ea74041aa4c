package domain

import "time"

// State da contagem. A transição Running -> Complete é única e irreversível.
type State int

const (
	StateRunning State = iota
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// StateOf deriva o estado a partir do tempo restante.
func StateOf(r Remaining) State {
	if r.IsZero() {
		return StateComplete
	}
	return StateRunning
}

// Snapshot é uma leitura pontual da contagem (o que a tela mostra agora).
type Snapshot struct {
	Target    time.Time
	Remaining Remaining
	State     State
	At        time.Time
}
