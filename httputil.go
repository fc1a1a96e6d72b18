package cryptofolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// contains http utils to deal with remote services

// GetJSON performs an HTTP GET request and decodes the JSON response into data.
// Numbers are decoded as json.Number to keep them exact.
//
// Transport failures and non-2xx statuses wrap ErrNetworkFailure, a body that
// is not a single JSON value wraps ErrMalformedResponse.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: cannot http GET %v%v: %v", ErrNetworkFailure, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("%w: reading %v%v: %w", ErrNetworkFailure, resp.Request.URL.Host, resp.Request.URL.Path, err)
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("%w: %v%v: %w", ErrMalformedResponse, resp.Request.URL.Host, resp.Request.URL.Path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: %v%v: trailing data after JSON value", ErrMalformedResponse, resp.Request.URL.Host, resp.Request.URL.Path)
	}
	return nil
}

// DecimalFrom converts a decoded JSON value into a decimal. It accepts
// json.Number, float64 and numeric strings, and reports false for anything
// else, including null.
func DecimalFrom(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		d, err := decimal.NewFromString(t)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// NewHTTPClient returns a client logging every round trip at debug level.
func NewHTTPClient(log *zap.SugaredLogger) *http.Client {
	return &http.Client{Transport: &loggingTransport{base: http.DefaultTransport, log: log}}
}

// loggingTransport logs requests made through base.
type loggingTransport struct {
	base http.RoundTripper
	log  *zap.SugaredLogger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Debugw("http request failed", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "error", err)
		return nil, err
	}
	t.log.Debugw("http request", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "status", resp.Status, "elapsed", time.Since(start))
	return resp, nil
}
