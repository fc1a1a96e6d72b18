package exchangerate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/cryptofolio"
)

func newServer(t *testing.T, status int, body string) (*Client, *string) {
	t.Helper()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return &Client{BaseURL: srv.URL, HTTPClient: srv.Client()}, &path
}

func TestClient_URL(t *testing.T) {
	if got, want := New().URL("usd"), "https://api.exchangerate-api.com/v4/latest/USD"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestClient_Rate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want cryptofolio.Rate
	}{
		{"quoted", `{"base":"USD","rates":{"USD":1,"GBP":0.79,"EUR":0.92}}`, cryptofolio.R(0.79)},
		{"string quote", `{"rates":{"GBP":"0.7912"}}`, cryptofolio.R(0.7912)},
		{"missing currency", `{"rates":{"EUR":0.92}}`, cryptofolio.UnknownRate},
		{"missing rates", `{"base":"USD"}`, cryptofolio.UnknownRate},
		{"null quote", `{"rates":{"GBP":null}}`, cryptofolio.UnknownRate},
		{"not a number", `{"rates":{"GBP":"abc"}}`, cryptofolio.UnknownRate},
		{"not an object", `"hello"`, cryptofolio.UnknownRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, path := newServer(t, http.StatusOK, tt.body)
			got, err := c.Rate(context.Background(), "USD", "GBP")
			if err != nil {
				t.Fatalf("Rate() error = %v", err)
			}
			if *path != "/latest/USD" {
				t.Errorf("request path = %q, want %q", *path, "/latest/USD")
			}
			if got.IsKnown() != tt.want.IsKnown() || (got.IsKnown() && !got.Equal(tt.want)) {
				t.Errorf("Rate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_Rate_errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusBadGateway, `{}`, cryptofolio.ErrNetworkFailure},
		{"not found", http.StatusNotFound, `{"result":"error"}`, cryptofolio.ErrNetworkFailure},
		{"truncated", http.StatusOK, `{"rates":{"GBP":0.7`, cryptofolio.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newServer(t, tt.status, tt.body)
			_, err := c.Rate(context.Background(), "USD", "GBP")
			if !errors.Is(err, tt.want) {
				t.Errorf("Rate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClient_Rate_invalidPair(t *testing.T) {
	c := New()
	for _, pair := range [][2]string{{"USD", "$.x"}, {"US", "GBP"}, {"USD", ""}} {
		if _, err := c.Rate(context.Background(), pair[0], pair[1]); err == nil {
			t.Errorf("Rate(%q, %q) error = nil, want an error", pair[0], pair[1])
		}
	}
}
