// Package realtime drives the simulated command-center feed: periodic
// snapshot, event, telemetry and insight ticks, a flapping connection flag,
// and a callback subscription interface over the latest state.
package realtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/construction-command-center/internal/dataset"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/domain"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/events"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/insight"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/sim"
	"github.com/ANIKETSHETTY47/construction-command-center/internal/synth"
)

var (
	ErrStopped        = errors.New("realtime: feed stopped")
	ErrAlreadyStarted = errors.New("realtime: feed already started")
)

type Intervals struct {
	Snapshot        time.Duration
	Events          time.Duration
	Telemetry       time.Duration
	Insights        time.Duration
	ConnectionCheck time.Duration
	Reconnect       time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Snapshot:        5 * time.Second,
		Events:          30 * time.Second,
		Telemetry:       10 * time.Second,
		Insights:        60 * time.Second,
		ConnectionCheck: 10 * time.Second,
		Reconnect:       3 * time.Second,
	}
}

type Options struct {
	Intervals             Intervals
	DisconnectProbability float64
	EventBatch            int
	TelemetryBatch        int
	Seed                  int64 // 0 seeds from the clock
	Catalog               *dataset.Catalog
	Engine                *insight.Engine
	Clock                 func() time.Time
	Logger                *zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Intervals:             DefaultIntervals(),
		DisconnectProbability: 0.05,
		EventBatch:            3,
		TelemetryBatch:        5,
	}
}

func (o *Options) fill() {
	def := DefaultIntervals()
	for _, p := range []struct{ v, d *time.Duration }{
		{&o.Intervals.Snapshot, &def.Snapshot},
		{&o.Intervals.Events, &def.Events},
		{&o.Intervals.Telemetry, &def.Telemetry},
		{&o.Intervals.Insights, &def.Insights},
		{&o.Intervals.ConnectionCheck, &def.ConnectionCheck},
		{&o.Intervals.Reconnect, &def.Reconnect},
	} {
		if *p.v <= 0 {
			*p.v = *p.d
		}
	}
	if o.DisconnectProbability < 0 {
		o.DisconnectProbability = 0
	}
	if o.EventBatch <= 0 {
		o.EventBatch = 3
	}
	if o.TelemetryBatch <= 0 {
		o.TelemetryBatch = 5
	}
	if o.Catalog == nil {
		o.Catalog = dataset.Default()
	}
	if o.Engine == nil {
		o.Engine = insight.NewEngine()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = &log.Logger
	}
}

type buffers struct {
	supply    *events.Buffer[domain.SupplyChainEvent]
	financial *events.Buffer[domain.FinancialTransaction]
	workforce *events.Buffer[domain.WorkforceEvent]
	telemetry *events.Buffer[domain.EquipmentTelemetry]
	quality   *events.Buffer[domain.QualityControlIncident]
	insights  *events.Buffer[domain.AIInsight]
}

func newBuffers() buffers {
	return buffers{
		supply:    events.NewBuffer[domain.SupplyChainEvent](events.CapSupplyChain),
		financial: events.NewBuffer[domain.FinancialTransaction](events.CapFinancial),
		workforce: events.NewBuffer[domain.WorkforceEvent](events.CapWorkforce),
		telemetry: events.NewBuffer[domain.EquipmentTelemetry](events.CapTelemetry),
		quality:   events.NewBuffer[domain.QualityControlIncident](events.CapQuality),
		insights:  events.NewBuffer[domain.AIInsight](events.CapInsights),
	}
}

func (b buffers) view() Events {
	return Events{
		SupplyChain: b.supply.Items(),
		Financial:   b.financial.Items(),
		Workforce:   b.workforce.Items(),
		Telemetry:   b.telemetry.Items(),
		Quality:     b.quality.Items(),
		Insights:    b.insights.Items(),
	}
}

// Feed owns the timers and the latest state. Subscriber callbacks run on the
// ticking goroutine and must not call Stop.
type Feed struct {
	opts  Options
	log   zerolog.Logger
	synth *synth.Synthesizer
	gen   *events.Generator

	mu      sync.Mutex // serializes ticks: rng, buffers, state writes
	rng     sim.Rand
	buf     buffers
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	state  atomic.Pointer[State]
	closed atomic.Bool

	deliver sync.RWMutex
	subsMu  sync.Mutex
	subs    map[int]func(Update)
	nextSub int
}

func New(opts Options) *Feed {
	opts.fill()
	f := &Feed{
		opts:  opts,
		log:   opts.Logger.With().Str("component", "realtime").Logger(),
		synth: synth.New(opts.Catalog),
		gen:   events.NewGenerator(opts.Catalog, &events.Counter{}, opts.Clock),
		rng:   sim.NewRand(opts.Seed),
		buf:   newBuffers(),
		subs:  map[int]func(Update){},
	}
	f.state.Store(&State{Connected: true, Status: StatusIdle, Events: f.buf.view(), Predictions: []domain.AIPrediction{}})
	return f
}

// State returns the latest published state. It stays readable after Stop.
func (f *Feed) State() *State { return f.state.Load() }

func (f *Feed) Status() Status { return f.state.Load().Status }

// Counter exposes the event id counter so callers can reset it.
func (f *Feed) Counter() *events.Counter { return f.gen.Counter() }

// Subscribe registers fn for every update until the returned func is called.
// After Stop it registers nothing.
func (f *Feed) Subscribe(fn func(Update)) (unsubscribe func()) {
	if fn == nil || f.closed.Load() {
		return func() {}
	}
	f.subsMu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.subsMu.Unlock()
	return func() {
		f.subsMu.Lock()
		delete(f.subs, id)
		f.subsMu.Unlock()
	}
}

// Start publishes an initial snapshot, event set and prediction list, then
// begins the periodic timers. The timers stop when ctx is done or on Stop.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.closed.Load() {
		f.mu.Unlock()
		return ErrStopped
	}
	if f.started {
		f.mu.Unlock()
		return ErrAlreadyStarted
	}
	f.started = true
	ctx, f.cancel = context.WithCancel(ctx)
	f.mu.Unlock()

	ok := f.apply(KindRefresh, func(s *State) {
		f.fillAll(s)
		s.Status = StatusPolling
	})
	if !ok {
		return ErrStopped
	}

	// Timers join the WaitGroup under f.mu so a concurrent Stop either sees
	// them or prevents them.
	f.mu.Lock()
	if f.closed.Load() {
		f.mu.Unlock()
		return ErrStopped
	}
	iv := f.opts.Intervals
	f.loop(ctx, KindSnapshot, iv.Snapshot, f.tickSnapshot)
	f.loop(ctx, KindEvents, iv.Events, f.tickEvents)
	f.loop(ctx, KindTelemetry, iv.Telemetry, f.tickTelemetry)
	f.loop(ctx, KindInsights, iv.Insights, f.tickInsights)
	f.connectionLoop(ctx)
	f.mu.Unlock()

	f.log.Info().
		Dur("snapshot", iv.Snapshot).
		Dur("events", iv.Events).
		Dur("telemetry", iv.Telemetry).
		Dur("insights", iv.Insights).
		Msg("feed started")
	return nil
}

// Stop cancels every timer and waits for in-flight ticks. No update is
// delivered once Stop returns. Stop is idempotent.
func (f *Feed) Stop() {
	if f.closed.Swap(true) {
		return
	}
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	f.wg.Wait()

	// Wait out any delivery started before closed was set.
	f.deliver.Lock()
	f.subsMu.Lock()
	f.subs = map[int]func(Update){}
	f.subsMu.Unlock()
	f.deliver.Unlock()

	f.mu.Lock()
	prev := f.state.Load()
	next := *prev
	next.Status = StatusStopped
	f.state.Store(&next)
	f.mu.Unlock()
	f.log.Info().Msg("feed stopped")
}

// Refresh recomputes everything immediately.
func (f *Feed) Refresh() error {
	if !f.apply(KindRefresh, f.fillAll) {
		return ErrStopped
	}
	return nil
}

// Reconnect clears a simulated disconnect and refreshes.
func (f *Feed) Reconnect() error {
	ok := f.apply(KindRefresh, func(s *State) {
		f.fillAll(s)
		f.setConnected(s, true)
	})
	if !ok {
		return ErrStopped
	}
	f.log.Info().Msg("manual reconnect")
	return nil
}

func (f *Feed) loop(ctx context.Context, kind Kind, every time.Duration, tick func(*State)) {
	t := time.NewTicker(every)
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer t.Stop()
		for {
			select {
			case <-t.C:
				f.apply(kind, tick)
			case <-ctx.Done():
				f.log.Debug().Str("loop", string(kind)).Msg("loop stopped")
				return
			}
		}
	}()
}

// connectionLoop flips the connected flag off with the configured probability
// and back on after the reconnect delay. It never touches the data timers.
func (f *Feed) connectionLoop(ctx context.Context) {
	t := time.NewTicker(f.opts.Intervals.ConnectionCheck)
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer t.Stop()
		var restore <-chan time.Time
		for {
			select {
			case <-t.C:
				var dropped bool
				f.applyIf(KindConnection, func(s *State) bool {
					dropped = s.Connected && sim.Chance(f.rng, f.opts.DisconnectProbability)
					if dropped {
						f.setConnected(s, false)
					}
					return dropped
				})
				if dropped {
					f.log.Warn().Msg("connection lost, reconnecting")
					restore = time.After(f.opts.Intervals.Reconnect)
				}
			case <-restore:
				restore = nil
				f.apply(KindConnection, func(s *State) { f.setConnected(s, true) })
				f.log.Info().Msg("connection restored")
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (f *Feed) setConnected(s *State, ok bool) {
	s.Connected = ok
	if s.Status == StatusIdle {
		return
	}
	if ok {
		s.Status = StatusPolling
	} else {
		s.Status = StatusDisconnected
	}
}

// apply builds the next state from a copy of the current one and delivers it.
// It reports false after Stop.
func (f *Feed) apply(kind Kind, mutate func(*State)) bool {
	return f.applyIf(kind, func(s *State) bool {
		mutate(s)
		return true
	})
}

// applyIf publishes only when mutate reports a change.
func (f *Feed) applyIf(kind Kind, mutate func(*State) bool) bool {
	f.mu.Lock()
	if f.closed.Load() {
		f.mu.Unlock()
		return false
	}
	next := *f.state.Load()
	if !mutate(&next) {
		f.mu.Unlock()
		return true
	}
	next.Events = f.buf.view()
	next.LastUpdate = f.opts.Clock()
	f.state.Store(&next)
	f.mu.Unlock()

	f.notify(Update{Kind: kind, State: &next})
	return true
}

func (f *Feed) notify(u Update) {
	f.deliver.RLock()
	defer f.deliver.RUnlock()
	if f.closed.Load() {
		return
	}
	f.subsMu.Lock()
	fns := make([]func(Update), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.subsMu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

// Tick bodies run with f.mu held.

func (f *Feed) tickSnapshot(s *State) {
	s.Data = f.synth.Generate(f.rng, f.opts.Clock())
}

func (f *Feed) tickEvents(_ *State) {
	n := f.opts.EventBatch
	f.buf.supply.Prepend(f.gen.SupplyChainEvents(f.rng, n)...)
	f.buf.financial.Prepend(f.gen.FinancialTransactions(f.rng, n)...)
	f.buf.workforce.Prepend(f.gen.WorkforceEvents(f.rng, n)...)
	f.buf.quality.Prepend(f.gen.QualityControlIncidents(f.rng, n)...)
}

func (f *Feed) tickTelemetry(_ *State) {
	f.buf.telemetry.Prepend(f.gen.EquipmentTelemetry(f.rng, f.opts.TelemetryBatch)...)
}

func (f *Feed) tickInsights(s *State) {
	if s.Data == nil {
		s.Data = f.synth.Generate(f.rng, f.opts.Clock())
	}
	s.Predictions = f.opts.Engine.Predict(s.Data)
	f.buf.insights.Prepend(insight.Insights(s.Predictions)...)
}

func (f *Feed) fillAll(s *State) {
	f.tickSnapshot(s)
	f.tickEvents(s)
	f.tickTelemetry(s)
	f.tickInsights(s)
}
