package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"landing-countdown/countdown/domain"

	"github.com/rs/xid"
	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted = errors.New("countdown: already started")
	ErrStopped        = errors.New("countdown: stopped")
)

const (
	DefaultInterval = 1 * time.Second
	// DefaultEventTimeout limita cada gravação no EventStore para que um
	// store lento não atrase o tick seguinte.
	DefaultEventTimeout = 2 * time.Second
)

// Countdown é uma instância de contagem regressiva com um único timer.
//
// O alvo é fixado na construção e nunca muda. Start dispara uma goroutine que
// recalcula o tempo restante a cada intervalo e chama os callbacks em série,
// sempre na ordem dos ticks.
type Countdown struct {
	id        string
	target    time.Time
	clock     domain.Clock
	interval  time.Duration
	logger    *zap.Logger
	events    domain.EventStore
	evTimeout time.Duration

	mu      sync.Mutex
	state   domain.State
	started bool

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type Option func(*countdownConfig)

type countdownConfig struct {
	id        string
	target    *time.Time
	clock     domain.Clock
	interval  time.Duration
	logger    *zap.Logger
	events    domain.EventStore
	evTimeout time.Duration
}

// WithTarget fixa o alvo. O zero value de time.Time é tratado como alvo
// inválido: a contagem já nasce vencida.
func WithTarget(t time.Time) Option {
	return func(c *countdownConfig) { c.target = &t }
}

func WithClock(clock domain.Clock) Option {
	return func(c *countdownConfig) { c.clock = clock }
}

func WithInterval(d time.Duration) Option {
	return func(c *countdownConfig) { c.interval = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *countdownConfig) { c.logger = l }
}

func WithEvents(s domain.EventStore) Option {
	return func(c *countdownConfig) { c.events = s }
}

func WithID(id string) Option {
	return func(c *countdownConfig) { c.id = id }
}

// WithEventTimeout troca o prazo de cada gravação de evento. <= 0 usa o padrão.
func WithEventTimeout(d time.Duration) Option {
	return func(c *countdownConfig) { c.evTimeout = d }
}

// New cria a contagem. Sem WithTarget, o alvo é o fim do mês corrente,
// calculado uma única vez aqui a partir do relógio.
//
// Quem monta a contagem deve injetar o relógio (infra.NewRealClock em
// produção). Sem WithClock cai no relógio do sistema em time.Local.
func New(opts ...Option) *Countdown {
	cfg := countdownConfig{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = systemClock{}
	}
	if cfg.interval <= 0 {
		cfg.interval = DefaultInterval
	}
	if cfg.evTimeout <= 0 {
		cfg.evTimeout = DefaultEventTimeout
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.id == "" {
		cfg.id = xid.New().String()
	}

	var target time.Time
	if cfg.target != nil {
		target = *cfg.target
	} else {
		target = domain.EndOfMonth(cfg.clock.Now())
	}

	c := &Countdown{
		id:        cfg.id,
		target:    target,
		clock:     cfg.clock,
		interval:  cfg.interval,
		events:    cfg.events,
		evTimeout: cfg.evTimeout,
		logger:    cfg.logger.With(zap.String("countdown_id", cfg.id)),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	return c
}

func (c *Countdown) ID() string        { return c.id }
func (c *Countdown) Target() time.Time { return c.target }

// Remaining recalcula o tempo restante agora, sem depender do timer.
func (c *Countdown) Remaining() domain.Remaining {
	return domain.Compute(c.target, c.clock.Now())
}

// State só vira StateComplete junto com o sinal de conclusão, mesmo que o
// alvo já esteja vencido antes de Start.
func (c *Countdown) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done fecha quando a goroutine da contagem termina (conclusão, Stop ou ctx).
// Depois disso nenhum callback está rodando. Se Start nunca foi chamado, só
// fecha depois de Stop.
func (c *Countdown) Done() <-chan struct{} { return c.done }

// Start inicia o tick periódico. O primeiro tick acontece imediatamente.
//
// Quando o tempo restante chega a zero: onTick(zero), depois onComplete uma
// única vez, e o timer é encerrado. Cancelar ctx equivale a chamar Stop.
// Qualquer callback pode ser nil.
func (c *Countdown) Start(ctx context.Context, onTick func(domain.Remaining), onComplete func()) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	select {
	case <-c.quit:
		c.mu.Unlock()
		return ErrStopped
	default:
	}
	c.started = true
	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	c.record(domain.EventStarted)
	c.logger.Debug("countdown started",
		zap.Time("target", c.target),
		zap.Duration("interval", c.interval),
	)

	ticker := c.clock.NewTicker(c.interval)
	go c.run(ctx, ticker, onTick, onComplete)
	return nil
}

// Stop cancela o timer. É idempotente e não espera a goroutine: pode ser
// chamado antes de Start ou de dentro de um callback.
//
// Depois que Stop retorna nenhum callback novo é iniciado, mas um callback
// que já estava rodando em outra goroutine pode ainda não ter terminado.
// Para liberar o que os callbacks usam, espere <-Done().
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopOnce.Do(func() { close(c.quit) })
	if !c.started {
		// a goroutine nunca existiu, Done fecha aqui
		select {
		case <-c.done:
		default:
			close(c.done)
		}
	}
}

func (c *Countdown) run(ctx context.Context, ticker domain.Ticker, onTick func(domain.Remaining), onComplete func()) {
	defer close(c.done)
	defer ticker.Stop()

	for {
		if c.tick(ctx, onTick, onComplete) {
			return
		}

		select {
		case <-ctx.Done():
		case <-c.quit:
		case <-ticker.C():
		}
	}
}

// tick faz uma recomputação e devolve true quando a contagem terminou
// (zerou ou foi parada).
func (c *Countdown) tick(ctx context.Context, onTick func(domain.Remaining), onComplete func()) bool {
	rem := c.Remaining()
	if !c.enter(ctx, false) {
		c.record(domain.EventStopped)
		return true
	}
	if onTick != nil {
		onTick(rem)
	}
	if !rem.IsZero() {
		return false
	}

	// onTick pode ter chamado Stop: nesse caso não há conclusão
	if !c.enter(ctx, true) {
		c.record(domain.EventStopped)
		return true
	}
	c.logger.Debug("countdown complete", zap.Time("target", c.target))
	if onComplete != nil {
		onComplete()
	}
	c.record(domain.EventCompleted)
	return true
}

// enter autoriza o próximo callback. Devolve false se a contagem já foi
// parada; complete=true faz a transição para StateComplete no mesmo passo.
func (c *Countdown) enter(ctx context.Context, complete bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.quit:
		return false
	case <-ctx.Done():
		return false
	default:
	}
	if complete {
		c.state = domain.StateComplete
	}
	return true
}

func (c *Countdown) record(kind domain.EventKind) {
	if c.events == nil {
		return
	}
	ev := domain.Event{
		CountdownID: c.id,
		Kind:        kind,
		Target:      c.target,
		At:          c.clock.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.evTimeout)
	defer cancel()
	if err := c.events.Record(ctx, ev); err != nil {
		c.logger.Warn("countdown event not recorded",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

// systemClock é o relógio de reserva quando nenhum foi injetado.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTicker(d time.Duration) domain.Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
