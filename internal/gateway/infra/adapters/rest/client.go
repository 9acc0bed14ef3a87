// Package rest implements the gateway's ports against the commerce backend's
// REST API and the VNPay integration endpoint. All outbound calls share one
// otelhttp-instrumented client so every hop shows up in the trace, and the
// chi request ID is forwarded as X-Request-Id for log correlation.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sportshop/checkout-gateway/internal/checkout"
)

const (
	headerRequestID = "X-Request-Id"
	headerUserID    = "X-User-Id"
)

// envelope is the backend's common response shape. Data stays raw so each
// endpoint can decode its own payload.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is the shared HTTP plumbing for the concrete adapters.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL. The transport is wrapped
// with otelhttp so outbound spans are created automatically.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// doJSON issues one request and decodes the enveloped response. A non-2xx
// status becomes a *checkout.BackendError carrying the backend's message; a
// 2xx with success=false is returned as the envelope for the caller to map
// to its own error type.
func (c *Client) doJSON(ctx context.Context, method, path, userID string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("rest: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("rest: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(headerUserID, userID)
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(headerRequestID, reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("rest: read %s %s: %w", method, path, err)
	}

	var env envelope
	if len(raw) > 0 {
		// A broken body on an error status should still surface the status.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &checkout.BackendError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}
