// Package application contém os casos de uso da contagem regressiva.
//
// Não conhece net/http e depende apenas do pacote domain. O relógio é
// injetado por quem monta a contagem (infra.NewRealClock em produção).
// Ex.: Countdown.Start(ctx, onTick, onComplete) emite um tick por segundo até
// zerar; Service.Snapshot(target) devolve a leitura pontual.
package application
