package signup

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded on signup_submissions_total.
const (
	outcomeSubmitted = "submitted"
	outcomeTestMode  = "test_mode"
	outcomeFailed    = "failed"
	outcomeInvalid   = "invalid"
)

type Metrics struct {
	submissions *prometheus.CounterVec
}

// NewMetrics registers the signup collectors on reg. A nil registerer yields
// nil, and a nil *Metrics records nothing.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Signup submissions by outcome.",
		},
		[]string{"status"},
	)

	if err := reg.Register(submissions); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil
		}
		submissions = existing
	}

	return &Metrics{submissions: submissions}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
