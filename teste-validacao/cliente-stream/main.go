package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

type tick struct {
	Display string `json:"display"`
	State   string `json:"state"`
}

func main() {
	base := flag.String("url", "http://localhost:8080/countdown/stream", "endereço do stream")
	target := flag.String("target", "", "alvo opcional (?target=)")
	flag.Parse()

	u, err := url.Parse(*base)
	if err != nil {
		fmt.Printf("URL inválida: %s\n", err)
		os.Exit(1)
	}
	if *target != "" {
		q := u.Query()
		q.Set("target", *target)
		u.RawQuery = q.Encode()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		fmt.Printf("Erro ao montar a requisição: %s\n", err)
		os.Exit(1)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Erro ao conectar no stream: %s\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Stream recusado: %s (Retry-After=%q)\n", resp.Status, resp.Header.Get("Retry-After"))
		os.Exit(1)
	}
	fmt.Printf("Conectado em %s (contagem %s)\n", u, resp.Header.Get("X-Countdown-Id"))

	var event string
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			var t tick
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &t); err != nil {
				fmt.Printf("Log: evento ilegível: %s\n", err)
				continue
			}
			fmt.Printf("%-8s %s (%s)\n", event, t.Display, t.State)
			if event == "complete" {
				fmt.Println("Log: contagem encerrada")
				return
			}
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		fmt.Printf("Erro lendo o stream: %s\n", err)
	}
}
