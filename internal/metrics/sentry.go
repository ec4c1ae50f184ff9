package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordComposition records the shape of one generated piece
func (m *SentryMetrics) RecordComposition(ctx context.Context, compositionID, mode string, sections, relaxed, fallbacks int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "harmony.composition")
	defer span.Finish()

	span.SetTag("mode", mode)
	span.SetTag("fallback", fmt.Sprintf("%t", fallbacks > 0))

	span.SetData("composition_id", compositionID)
	span.SetData("sections", sections)
	span.SetData("relaxed_sections", relaxed)
	span.SetData("fallback_sections", fallbacks)
	span.SetData("duration_us", duration.Microseconds())

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Composition: %s", compositionID)
}

// RecordRender records a MIDI render
func (m *SentryMetrics) RecordRender(ctx context.Context, compositionID string, size int, err error) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "harmony.render")
	defer span.Finish()

	span.SetData("composition_id", compositionID)
	span.SetData("bytes", size)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Description = "MIDI render"
}
