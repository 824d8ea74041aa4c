package domain

import (
	"strconv"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Remaining é o tempo que falta até o alvo, quebrado em unidades inteiras.
//
// Invariantes: todos os campos >= 0; Hours em [0,23]; Minutes e Seconds em [0,59].
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Compute calcula o tempo restante de now até target.
//
// Se target <= now (ou target é o zero value, usado para alvo inválido),
// retorna tudo zero. Só trunca, nunca arredonda: o valor exibido nunca
// passa do tempo real que falta.
func Compute(target, now time.Time) Remaining {
	if target.IsZero() {
		return Remaining{}
	}
	delta := target.Sub(now)
	if delta <= 0 {
		return Remaining{}
	}

	total := int64(delta / time.Second)
	return Remaining{
		Days:    int(total / secondsPerDay),
		Hours:   int(total / secondsPerHour % 24),
		Minutes: int(total / secondsPerMinute % 60),
		Seconds: int(total % 60),
	}
}

func (r Remaining) IsZero() bool {
	return r == Remaining{}
}

func (r Remaining) TotalSeconds() int64 {
	return int64(r.Days)*secondsPerDay +
		int64(r.Hours)*secondsPerHour +
		int64(r.Minutes)*secondsPerMinute +
		int64(r.Seconds)
}

// String formata como DD:HH:MM:SS, cada unidade com pelo menos dois dígitos.
func (r Remaining) String() string {
	b := make([]byte, 0, 12)
	b = appendPadded(b, r.Days)
	b = append(b, ':')
	b = appendPadded(b, r.Hours)
	b = append(b, ':')
	b = appendPadded(b, r.Minutes)
	b = append(b, ':')
	b = appendPadded(b, r.Seconds)
	return string(b)
}

// Pad2 formata um valor com pelo menos dois dígitos (ex: 7 -> "07").
func Pad2(v int) string {
	return string(appendPadded(nil, v))
}

func appendPadded(b []byte, v int) []byte {
	if v >= 0 && v < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(v), 10)
}
