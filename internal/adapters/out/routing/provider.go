// Package routing implements the DistanceProvider port against an
// OpenRouteService-style directions API.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/ports"
	"swiftparcel/internal/pkg/errs"
)

const (
	directionsPath = "/v2/directions/driving-car"
	maxAttempts    = 3
	initialBackoff = 200 * time.Millisecond
)

// Config carries the routing service endpoint and credentials.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Provider computes routed road distance. Callers are expected to fall back
// to the great-circle distance when it returns an error.
type Provider struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.DistanceProvider = (*Provider)(nil)

// NewProvider creates a routed-distance provider.
func NewProvider(config Config, logger *slog.Logger) *Provider {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Provider{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type directionsRequest struct {
	// Coordinate pairs are longitude first, per the GeoJSON convention.
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// RoadDistanceKm returns the driving distance in kilometers between two points.
func (p *Provider) RoadDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	request := directionsRequest{
		Coordinates: [][2]float64{
			{from.Longitude(), from.Latitude()},
			{to.Longitude(), to.Latitude()},
		},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return 0, errs.NewGatewayErrorWithCause("routing", "encoding payload", err)
	}

	resp, err := p.doWithRetry(ctx, payload)
	if err != nil {
		return 0, errs.NewGatewayErrorWithCause("routing", "directions request failed", err)
	}
	defer resp.Body.Close()

	var body directionsResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, errs.NewGatewayErrorWithCause("routing", "decoding response", err)
	}

	if len(body.Routes) == 0 {
		return 0, errs.NewGatewayError("routing", "no route between points")
	}

	return body.Routes[0].Summary.Distance / 1000.0, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) with exponential backoff while respecting context cancellation.
func (p *Provider) doWithRetry(ctx context.Context, payload []byte) (*http.Response, error) {
	backoff := initialBackoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := p.do(ctx, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		p.logger.Warn("routing request failed, retrying",
			slog.Int("attempt", attempt),
			slog.Any("error", err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func (p *Provider) do(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+directionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}

	return resp, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

func isRetryable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
