// Package httpclient builds outbound HTTP clients with the retry and
// circuit-breaker policies shared by all service clients.
package httpclient

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/shoply/cartd/pkg/config"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// New creates a resty client with exponential-backoff retries and an
// otel-instrumented transport.
func New(cfg config.ClientConfig, retry config.RetryConfig) *resty.Client {
	return resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(int(retry.MaxAttempts)).
		SetRetryWaitTime(retry.InitialBackoff).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))
}

// NewBreaker returns a circuit breaker for resty calls. The isSuccessful
// function decides which errors count as system failures; business errors
// such as not-found must not trip the breaker.
func NewBreaker(name string, cfg config.CircuitBreakerConfig, isSuccessful func(err error) bool) *gobreaker.CircuitBreaker[*resty.Response] {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > cfg.ConsecutiveFailures ||
				(counts.TotalSuccesses+counts.TotalFailures > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(counts.TotalSuccesses+counts.TotalFailures)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: isSuccessful,
	}
	return gobreaker.NewCircuitBreaker[*resty.Response](st)
}
