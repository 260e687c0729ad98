// Package metrics exposes Prometheus collectors for login outcomes and
// outbound provider calls.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blogem/battlenet-login/authenticator"
)

const namespace = "battlenet_login"

// Login outcome labels
const (
	OutcomeOK                  = "ok"
	OutcomeDenied              = "denied"
	OutcomeTokenExchangeFailed = "token_exchange_failed"
	OutcomeIDTokenInvalid      = "id_token_invalid"
	OutcomeProfileFetchFailed  = "profile_fetch_failed"
	OutcomeError               = "error"
)

// Metrics holds the application collectors
type Metrics struct {
	Logins   *prometheus.CounterVec
	Upstream *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Completed login attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		Upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of outbound identity provider requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code", "method"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.Logins, m.Upstream} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveLogin counts one login attempt
func (m *Metrics) ObserveLogin(provider string, err error) {
	m.Logins.WithLabelValues(provider, Outcome(err)).Inc()
}

// InstrumentTransport wraps next so every outbound request is timed
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperDuration(m.Upstream, next)
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Outcome maps a login error onto its label
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, authenticator.ErrAuthorizationDenied):
		return OutcomeDenied
	case errors.Is(err, authenticator.ErrTokenExchangeFailed):
		return OutcomeTokenExchangeFailed
	case errors.Is(err, authenticator.ErrIDTokenInvalid):
		return OutcomeIDTokenInvalid
	case errors.Is(err, authenticator.ErrProfileFetchFailed):
		return OutcomeProfileFetchFailed
	default:
		return OutcomeError
	}
}
