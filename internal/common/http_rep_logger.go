package common

import (
	"net/http"
	"time"

	"infinite-experiment/airclock/internal/logging"
)

// LoggingTransport logs each outbound request with its status and latency
type LoggingTransport struct {
	Base http.RoundTripper
}

func (t LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		logging.Warn("Outbound HTTP request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	logging.Debug("Outbound HTTP request",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status_code", resp.StatusCode,
		"content_length", resp.ContentLength,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}
