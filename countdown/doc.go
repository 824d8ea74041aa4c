// Package countdown fornece os adapters HTTP (net/http + chi) da contagem
// regressiva da landing page.
//
// Visão geral (camadas):
//
//   - domain: tipos e contratos (tempo restante, alvo, relógio, eventos), sem net/http
//   - application: casos de uso (Countdown com Start/Stop, snapshot, decisão de rate limit)
//   - infra: implementações concretas (relógio real, token bucket, semáforo, Redis)
//   - countdown (este pacote): rotas, widget HTML, stream SSE e middlewares
//
// Fluxo de um stream:
//
//  1. Resolve o alvo (query ?target=, alvo configurado ou fim do mês)
//  2. Cria um Countdown por conexão e envia um evento "tick" por segundo
//  3. Ao zerar, envia "complete" e encerra a resposta
//  4. Se o cliente desconectar, o contexto da requisição cancela o timer
//
// Variáveis de ambiente do binário cmd/countdown-server controlam o comportamento,
// como COUNTDOWN_TARGET, RATE_RPS, STREAM_MAX e EVENTS_ENABLED.
package countdown
