// Package domain define os tipos e contratos da contagem regressiva.
//
// Este pacote não depende de net/http nem de implementações concretas
// (relógio real, Redis, token bucket). O cálculo do tempo restante é uma
// função pura do alvo e do "agora", o que permite testar tudo com relógio
// injetado.
package domain
