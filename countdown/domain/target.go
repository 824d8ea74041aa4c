package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTarget indica um alvo que não pôde ser interpretado.
//
// A política da aplicação é tratar esse caso como alvo já vencido (contagem
// zerada e conclusão imediata), e não propagar o erro para a tela.
var ErrInvalidTarget = errors.New("countdown: invalid target")

// EndOfMonth devolve o último instante exibível do mês de now: último dia,
// 23:59:59, no mesmo fuso de now.
//
// É uma função pura da data; quem guarda o resultado decide quando recalcular.
func EndOfMonth(now time.Time) time.Time {
	// dia 0 do mês seguinte = último dia deste mês
	return time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, now.Location())
}

var targetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTarget interpreta o alvo vindo de config/query string.
//
// Aceita epoch em milissegundos, RFC 3339, data-hora sem fuso e data pura.
// Formatos sem fuso usam loc (nil = time.Local).
func ParseTarget(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidTarget
	}
	if loc == nil {
		loc = time.Local
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms <= 0 {
			return time.Time{}, ErrInvalidTarget
		}
		return time.UnixMilli(ms).In(loc), nil
	}

	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTarget
}
