package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/cryptofolio/logger"
)

const (
	pricesBody = `{"bitcoin":{"usd":50000},"ethereum":{"usd":3000},"theta-token":{"usd":5}}`
	ratesBody  = `{"base":"USD","rates":{"USD":1,"GBP":0.79}}`
)

// fakeAPIs serves both the price and the rate APIs, and points the global
// flags to it for the duration of the test. A zero status answers 200.
func fakeAPIs(t *testing.T, status int) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/simple/price", func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(pricesBody))
	})
	mux.HandleFunc("/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ratesBody))
	})
	srv := httptest.NewServer(mux)

	oldPrices, oldRates, oldLog := *pricesURL, *ratesURL, log
	*pricesURL, *ratesURL, log = srv.URL, srv.URL, logger.Nop()
	t.Cleanup(func() {
		srv.Close()
		*pricesURL, *ratesURL, log = oldPrices, oldRates, oldLog
	})
}
