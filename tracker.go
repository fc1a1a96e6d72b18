package cryptofolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each remote call of a fetch cycle.
const DefaultTimeout = 10 * time.Second

// DefaultUSDGBP is the rate used when the rate source has no usable GBP quote.
var DefaultUSDGBP = R(0.8)

// Tracker owns the FetchState of a portfolio and runs fetch cycles.
//
// State is only changed by Refresh and RefreshAsync; readers get copies.
type Tracker struct {
	portfolio *Portfolio
	prices    PriceSource
	rates     RateSource
	timeout   time.Duration
	log       *zap.SugaredLogger
	observer  func(FetchState)
	now       func() time.Time

	notify sync.Mutex // orders writes with observer calls
	mu     sync.RWMutex
	state  FetchState
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTimeout sets the bound of each remote call. Zero or negative disables it.
func WithTimeout(d time.Duration) Option { return func(t *Tracker) { t.timeout = d } }

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.SugaredLogger) Option { return func(t *Tracker) { t.log = log } }

// WithObserver registers f to be called after every state transition, in the
// order the states are stored. f must not start a refresh of the same Tracker.
func WithObserver(f func(FetchState)) Option { return func(t *Tracker) { t.observer = f } }

// WithClock sets the clock used to timestamp Ready states.
func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// NewTracker returns a Tracker for p in the Loading state. No fetch is started.
func NewTracker(p *Portfolio, prices PriceSource, rates RateSource, opts ...Option) *Tracker {
	t := &Tracker{
		portfolio: p,
		prices:    prices,
		rates:     rates,
		timeout:   DefaultTimeout,
		log:       zap.NewNop().Sugar(),
		now:       time.Now,
		state:     LoadingState(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Portfolio returns the tracked portfolio.
func (t *Tracker) Portfolio() *Portfolio { return t.portfolio }

// State returns the current FetchState.
func (t *Tracker) State() FetchState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Valuation returns the valuation of the portfolio in the current state.
func (t *Tracker) Valuation() *Valuation { return t.portfolio.Valuate(t.State()) }

// Refresh runs a full fetch cycle and returns the state it resolved to.
func (t *Tracker) Refresh(ctx context.Context) FetchState {
	return <-t.RefreshAsync(ctx)
}

// RefreshAsync switches to Loading before returning, then runs the fetch cycle
// in the background. The resolved state is stored and sent on the returned
// channel.
//
// Concurrent cycles are not deduplicated nor cancelled: each one stores its
// result when it resolves, the last to resolve wins.
func (t *Tracker) RefreshAsync(ctx context.Context) <-chan FetchState {
	t.set(LoadingState())
	done := make(chan FetchState, 1)
	go func() {
		state := t.fetch(ctx)
		t.set(state)
		done <- state
	}()
	return done
}

func (t *Tracker) set(s FetchState) {
	t.notify.Lock()
	defer t.notify.Unlock()
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
	t.log.Debugw("fetch state changed", "status", s.Status())
	if t.observer != nil {
		t.observer(s)
	}
}

// fetch queries both sources concurrently and normalizes their answers.
func (t *Tracker) fetch(ctx context.Context) FetchState {
	assets := t.portfolio.Assets()
	var (
		quotes map[Asset]Money
		rate   Rate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := t.callContext(gctx)
		defer cancel()
		q, err := t.prices.USDPrices(cctx, assets)
		if err != nil {
			return fmt.Errorf("fetching prices: %w", err)
		}
		quotes = q
		return nil
	})
	g.Go(func() error {
		cctx, cancel := t.callContext(gctx)
		defer cancel()
		r, err := t.rates.Rate(cctx, "USD", "GBP")
		if err != nil {
			return fmt.Errorf("fetching USD/GBP rate: %w", err)
		}
		rate = r
		return nil
	})
	if err := g.Wait(); err != nil {
		t.log.Errorw("fetch cycle failed", "error", err)
		return ErrorState(err)
	}

	snapshot := NewPriceSnapshot(assets, quotes)
	if missing := snapshot.Missing(); len(missing) > 0 {
		t.log.Warnw("prices missing from response, using 0", "assets", missing)
	}
	rate, defaulted := normalizeRate(rate)
	if defaulted {
		t.log.Warnw("no usable USD/GBP quote, using default rate", "rate", DefaultUSDGBP)
	}
	return ReadyState(snapshot, rate, defaulted, t.now())
}

func (t *Tracker) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}

// normalizeRate replaces an unknown or non-positive rate with DefaultUSDGBP.
func normalizeRate(r Rate) (Rate, bool) {
	if !r.IsPositive() {
		return DefaultUSDGBP, true
	}
	return r, false
}
