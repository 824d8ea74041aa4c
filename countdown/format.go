// formatação de números para headers e para o corpo dos eventos SSE,
// sem passar por fmt.

package countdown

import (
	"strconv"
	"time"
)

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string {
	// sem notação científica para valores comuns
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTarget devolve o alvo em RFC 3339, ou "" para alvo inválido.
func formatTarget(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
