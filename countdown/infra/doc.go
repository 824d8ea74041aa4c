// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - RealClock: relógio de parede num fuso configurado, ticks via time.Ticker
//   - Store: token bucket por cliente usando golang.org/x/time/rate
//   - ChanPool: semáforo simples para limitar streams abertos
//   - MemoryEventStore / RedisEventStore: contadores de eventos da contagem
package infra
