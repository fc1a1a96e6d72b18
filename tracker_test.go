package cryptofolio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

func newTestTracker(prices PriceSource, rates RateSource, opts ...Option) *Tracker {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewTracker(Punters(), prices, rates, opts...)
}

func TestTracker_initialState(t *testing.T) {
	tr := newTestTracker(&fakePrices{}, &fakeRates{})
	if got := tr.State().Status(); got != Loading {
		t.Errorf("State().Status() = %v, want %v", got, Loading)
	}
}

func TestTracker_Refresh(t *testing.T) {
	tr := newTestTracker(&fakePrices{quotes: referenceQuotes()}, &fakeRates{rate: R(0.79)})

	s := tr.Refresh(context.Background())
	if s.Status() != Ready {
		t.Fatalf("Refresh().Status() = %v, want %v (cause %v)", s.Status(), Ready, s.Cause())
	}
	if got := tr.State(); got.Status() != Ready {
		t.Errorf("State().Status() = %v, want %v", got.Status(), Ready)
	}
	if got := s.Prices().Price(Bitcoin); !got.Equal(USD(50000)) {
		t.Errorf("Price(bitcoin) = %v, want 50000", got.Decimal())
	}
	if !s.Rate().Equal(R(0.79)) || s.RateDefaulted() {
		t.Errorf("Rate() = %v (defaulted %v), want 0.79", s.Rate(), s.RateDefaulted())
	}
	if !s.FetchedAt().Equal(fixedNow) {
		t.Errorf("FetchedAt() = %v, want %v", s.FetchedAt(), fixedNow)
	}
	if got := tr.Valuation().Total.String(); got != "£2,968.48" {
		t.Errorf("Valuation().Total = %q, want %q", got, "£2,968.48")
	}
}

func TestTracker_Refresh_defaults(t *testing.T) {
	quotes := referenceQuotes()
	delete(quotes, Theta)

	tests := []struct {
		name string
		rate Rate
	}{
		{"missing rate", UnknownRate},
		{"zero rate", R(0)},
		{"negative rate", R(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker(&fakePrices{quotes: quotes}, &fakeRates{rate: tt.rate})
			s := tr.Refresh(context.Background())
			if s.Status() != Ready {
				t.Fatalf("Refresh().Status() = %v, want %v", s.Status(), Ready)
			}
			if !s.Rate().Equal(DefaultUSDGBP) || !s.RateDefaulted() {
				t.Errorf("Rate() = %v (defaulted %v), want %v defaulted", s.Rate(), s.RateDefaulted(), DefaultUSDGBP)
			}
			if got := s.Prices().Price(Theta); !got.Equal(USD(0)) {
				t.Errorf("Price(theta) = %v, want 0", got)
			}
			if !s.Prices().IsMissing(Theta) || s.Prices().IsMissing(Bitcoin) {
				t.Errorf("Missing() = %v, want [theta]", s.Prices().Missing())
			}
			if got := tr.Valuation().Holdings[2].Value; !got.Equal(USD(0)) {
				t.Errorf("theta value = %v, want 0", got)
			}
		})
	}
}

func TestTracker_Refresh_failure(t *testing.T) {
	tests := []struct {
		name   string
		prices *fakePrices
		rates  *fakeRates
	}{
		{"prices fail", &fakePrices{err: ErrNetworkFailure}, &fakeRates{rate: R(0.79)}},
		{"rate fails", &fakePrices{quotes: referenceQuotes()}, &fakeRates{err: ErrMalformedResponse}},
		{"both fail", &fakePrices{err: ErrNetworkFailure}, &fakeRates{err: ErrNetworkFailure}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				mu   sync.Mutex
				seen []FetchState
			)
			tr := newTestTracker(tt.prices, tt.rates, WithObserver(func(s FetchState) {
				mu.Lock()
				seen = append(seen, s)
				mu.Unlock()
			}))
			s := tr.Refresh(context.Background())
			if s.Status() != Failed {
				t.Fatalf("Refresh().Status() = %v, want %v", s.Status(), Failed)
			}
			if s.Message() != GenericErrorMessage {
				t.Errorf("Message() = %q, want %q", s.Message(), GenericErrorMessage)
			}
			if !errors.Is(s.Cause(), ErrNetworkFailure) && !errors.Is(s.Cause(), ErrMalformedResponse) {
				t.Errorf("Cause() = %v, want a fetch error", s.Cause())
			}
			if !s.Prices().IsEmpty() || s.Rate().IsKnown() {
				t.Errorf("failed state exposes prices %v or rate %v", s.Prices().Prices(), s.Rate())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, st := range seen {
				if st.Status() == Ready {
					t.Errorf("observed a Ready state during a failed cycle")
				}
			}
			if len(seen) != 2 || seen[0].Status() != Loading || seen[1].Status() != Failed {
				t.Errorf("observed %v, want [loading error]", statuses(seen))
			}
		})
	}
}

func TestTracker_Refresh_timeout(t *testing.T) {
	gate := make(chan struct{}) // never closed
	tr := newTestTracker(&fakePrices{quotes: referenceQuotes(), gate: gate}, &fakeRates{rate: R(0.79)}, WithTimeout(10*time.Millisecond))
	s := tr.Refresh(context.Background())
	if s.Status() != Failed {
		t.Fatalf("Refresh().Status() = %v, want %v", s.Status(), Failed)
	}
	if !errors.Is(s.Cause(), context.DeadlineExceeded) {
		t.Errorf("Cause() = %v, want %v", s.Cause(), context.DeadlineExceeded)
	}
}

func TestTracker_RefreshAsync_fromReady(t *testing.T) {
	gate := make(chan struct{})
	prices := &fakePrices{quotes: referenceQuotes()}
	tr := newTestTracker(prices, &fakeRates{rate: R(0.79)})
	if s := tr.Refresh(context.Background()); s.Status() != Ready {
		t.Fatalf("Refresh().Status() = %v, want %v", s.Status(), Ready)
	}

	prices.gate = gate
	done := tr.RefreshAsync(context.Background())
	if got := tr.State().Status(); got != Loading {
		t.Errorf("State().Status() after RefreshAsync = %v, want %v", got, Loading)
	}
	if v := tr.Valuation(); v.Total.IsKnown() {
		t.Errorf("Valuation().Total = %v while loading, want unknown", v.Total)
	}
	close(gate)
	if s := <-done; s.Status() != Ready {
		t.Errorf("resolved Status() = %v, want %v", s.Status(), Ready)
	}
	if got := tr.State().Status(); got != Ready {
		t.Errorf("State().Status() = %v, want %v", got, Ready)
	}
}

func TestTracker_RefreshAsync_lastWriteWins(t *testing.T) {
	gate := make(chan struct{})
	tr := newTestTracker(&fakePrices{quotes: referenceQuotes(), gate: gate}, &fakeRates{rate: R(0.79)})

	first := tr.RefreshAsync(context.Background())

	// the second cycle fails right away while the first one is still pending
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	second := tr.RefreshAsync(ctx)
	if s := <-second; s.Status() != Failed {
		t.Fatalf("second cycle Status() = %v, want %v", s.Status(), Failed)
	}
	if got := tr.State().Status(); got != Failed {
		t.Errorf("State().Status() = %v, want %v", got, Failed)
	}

	close(gate)
	if s := <-first; s.Status() != Ready {
		t.Fatalf("first cycle Status() = %v, want %v", s.Status(), Ready)
	}
	if got := tr.State().Status(); got != Ready {
		t.Errorf("State().Status() = %v, want %v: the last cycle to resolve wins", got, Ready)
	}
}

func TestTracker_observerOrder(t *testing.T) {
	var (
		mu   sync.Mutex
		last FetchState
	)
	tr := newTestTracker(&fakePrices{quotes: referenceQuotes()}, &fakeRates{rate: R(0.79)}, WithObserver(func(s FetchState) {
		mu.Lock()
		last = s
		mu.Unlock()
	}))
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		ctx := context.Background()
		if i%2 == 1 {
			ctx = cancelled
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-tr.RefreshAsync(ctx)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if got, want := last.Status(), tr.State().Status(); got != want {
		t.Errorf("last observed %v, stored %v", got, want)
	}
}

func TestTracker_logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	quotes := referenceQuotes()
	delete(quotes, Ethereum)
	tr := newTestTracker(&fakePrices{quotes: quotes}, &fakeRates{}, WithLogger(zap.New(core).Sugar()))
	tr.Refresh(context.Background())

	if n := logs.FilterMessage("prices missing from response, using 0").Len(); n != 1 {
		t.Errorf("logged %d missing prices warnings, want 1", n)
	}
	if n := logs.FilterMessage("no usable USD/GBP quote, using default rate").Len(); n != 1 {
		t.Errorf("logged %d default rate warnings, want 1", n)
	}
	if n := logs.FilterMessage("fetch state changed").Len(); n != 2 {
		t.Errorf("logged %d transitions, want 2", n)
	}

	logs.TakeAll()
	tr = newTestTracker(&fakePrices{err: errNotFound}, &fakeRates{rate: R(0.79)}, WithLogger(zap.New(core).Sugar()))
	tr.Refresh(context.Background())
	failures := logs.FilterMessage("fetch cycle failed").All()
	if len(failures) != 1 || failures[0].Level != zapcore.ErrorLevel {
		t.Errorf("logged failures %v, want a single error", failures)
	}
}

func statuses(states []FetchState) []Status {
	var res []Status
	for _, s := range states {
		res = append(res, s.Status())
	}
	return res
}
