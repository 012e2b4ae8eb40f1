package csrf

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts issued tokens and verification outcomes.
// A nil *Metrics records nothing.
type Metrics struct {
	issued        prometheus.Counter
	verifications *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg
// (prometheus.DefaultRegisterer if nil). Collectors that are already
// registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	issued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csrf_tokens_issued_total",
		Help: "CSRF tokens issued into sessions",
	})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "csrf_verifications_total",
		Help: "CSRF verifications by outcome",
	}, []string{"outcome"})

	if err := reg.Register(issued); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		issued = are.ExistingCollector.(prometheus.Counter)
	}
	if err := reg.Register(verifications); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		verifications = are.ExistingCollector.(*prometheus.CounterVec)
	}

	return &Metrics{issued: issued, verifications: verifications}, nil
}

func (m *Metrics) observeIssue() {
	if m == nil {
		return
	}
	m.issued.Inc()
}

func (m *Metrics) observeVerify(err error) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrTokenMismatch):
		return "token_mismatch"
	case errors.Is(err, ErrNoOrigin), errors.Is(err, ErrBadOrigin):
		return "bad_origin"
	default:
		return "error"
	}
}
