package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/acdimalev/acdimalev-demo-2010-05-02-03/internal/config"
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	TickRate      int
	Width, Height float64
	Tuning        config.Tuning
	Limits        config.ResourceLimits
	Seed          int64 // 0 picks a time-based seed
	Clock         Clock // nil ages bullets by tick count
}

// EngineConfigFrom derives an engine configuration from the app config.
func EngineConfigFrom(cfg config.AppConfig) EngineConfig {
	w, h := cfg.Display.Domain()
	return EngineConfig{
		TickRate: cfg.Display.FPS,
		Width:    w,
		Height:   h,
		Tuning:   cfg.Tuning,
		Limits:   cfg.Limits,
	}
}

// Engine owns a World and drives it at a fixed tick rate, either from its
// own ticker (Start) or from an external frame clock (Step). After each tick
// it publishes a snapshot and hands the tick's events to listeners.
type Engine struct {
	mu    sync.Mutex
	world *World

	tickRate  int
	period    time.Duration
	tickCount uint64
	clock     Clock

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}

	pending *config.Tuning

	snapshotPool *SnapshotPool
	eventLog     *EventLog
	listeners    []func(Event)
	onTick       func(time.Duration)
}

// NewEngine creates an engine. It panics on an invalid tier table.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	e := &Engine{
		world: NewWorld(WorldConfig{
			Width:  cfg.Width,
			Height: cfg.Height,
			FPS:    cfg.TickRate,
			Tuning: cfg.Tuning,
			Limits: cfg.Limits,
			Seed:   cfg.Seed,
		}),
		tickRate:     cfg.TickRate,
		period:       time.Second / time.Duration(cfg.TickRate),
		clock:        cfg.Clock,
		snapshotPool: NewSnapshotPool(cfg.Limits.MaxShips, cfg.Limits.MaxMeteors, cfg.Limits.MaxControllers),
		eventLog:     NewEventLog(cfg.Limits.MaxEvents),
	}
	if e.clock == nil {
		e.clock = tickClock{engine: e}
	}
	e.produceSnapshot()
	return e
}

// Start begins the ticker-driven game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.ticker = time.NewTicker(e.period)
	e.stopChan = make(chan struct{})
	e.done = make(chan struct{})
	ticker, stop, done := e.ticker, e.stopChan, e.done
	e.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				if !e.Running() {
					return
				}
				e.Step()
			case <-stop:
				return
			}
		}
	}()

	log.Printf("🎮 Game engine started at %d TPS", e.tickRate)
}

// Stop stops the game loop and waits for the in-flight tick to finish.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.ticker.Stop()
	close(e.stopChan)
	done := e.done
	e.mu.Unlock()

	<-done
	log.Println("🛑 Game engine stopped")
}

// Running reports whether the ticker loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Step runs exactly one tick.
func (e *Engine) Step() {
	start := time.Now()

	e.mu.Lock()
	e.applyPendingTuning()
	e.tickCount++
	e.world.Step(e.clock.Now())
	events := e.world.DrainEvents()
	e.produceSnapshot()
	listeners := e.listeners
	onTick := e.onTick
	e.mu.Unlock()

	for _, ev := range events {
		e.eventLog.Emit(ev)
		for _, fn := range listeners {
			fn(ev)
		}
	}
	if onTick != nil {
		onTick(time.Since(start))
	}
}

func (e *Engine) applyPendingTuning() {
	if e.pending == nil {
		return
	}
	t := *e.pending
	e.pending = nil
	if err := e.world.SetTuning(t); err != nil {
		log.Printf("⚠️ Tuning rejected: %v", err)
		return
	}
	log.Printf("🔧 Tuning applied at tick %d", e.tickCount+1)
}

// ApplyTuning queues a tuning change for the next tick boundary.
func (e *Engine) ApplyTuning(t config.Tuning) error {
	if err := t.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if have := len(e.world.Tuning().Tiers); have != len(t.Tiers) {
		return fmt.Errorf("%w: have %d, got %d", ErrTierCountChanged, have, len(t.Tiers))
	}
	e.pending = &t
	return nil
}

// AddController registers an input source. Safe while the loop runs; the
// source is first polled on the next tick.
func (e *Engine) AddController(src InputSource) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.world.AddController(src)
	if err != nil {
		return -1, err
	}
	log.Printf("🕹️ Controller %d added (%s)", id, src.Class())
	return id, nil
}

// OnEvent registers a listener called after each tick for every event.
func (e *Engine) OnEvent(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// OnTick registers a hook receiving the duration of each tick.
func (e *Engine) OnTick(fn func(time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// Events returns the in-memory event log.
func (e *Engine) Events() *EventLog {
	return e.eventLog
}

// TickCount returns the number of ticks run.
func (e *Engine) TickCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickCount
}

// TickRate returns the configured ticks per second.
func (e *Engine) TickRate() int {
	return e.tickRate
}

// GetSnapshot returns the latest snapshot without copying. Use it only
// from the goroutine calling Step.
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// Snapshot returns a private copy of the latest snapshot.
func (e *Engine) Snapshot() GameSnapshot {
	var snap GameSnapshot
	e.snapshotPool.Load(&snap)
	return snap
}

// SnapshotInto copies the latest snapshot into dst, reusing its slices.
func (e *Engine) SnapshotInto(dst *GameSnapshot) {
	e.snapshotPool.Load(dst)
}

// produceSnapshot publishes the settled state. Called with mu held.
func (e *Engine) produceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	e.world.Fill(snap)
	e.snapshotPool.PublishWrite()
}

// WithWorld runs fn with exclusive access to the world between ticks.
func (e *Engine) WithWorld(fn func(w *World)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.world)
	e.produceSnapshot()
}
