package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	switch {
	case m.Counter != nil:
		return m.Counter.GetValue()
	case m.Gauge != nil:
		return m.Gauge.GetValue()
	}
	return 0
}

func TestRecordInvestment(t *testing.T) {
	applied := InvestmentsTotal.WithLabelValues(OutcomeApplied)
	rejected := InvestmentsTotal.WithLabelValues(OutcomeExceedsGoal)

	beforeApplied := value(t, applied)
	beforeRejected := value(t, rejected)
	beforeAmount := value(t, InvestedAmountTotal)

	RecordInvestment(OutcomeApplied, decimal.RequireFromString("50.25"))
	RecordInvestment(OutcomeExceedsGoal, decimal.NewFromInt(200))

	assert.Equal(t, beforeApplied+1, value(t, applied))
	assert.Equal(t, beforeRejected+1, value(t, rejected))
	assert.InDelta(t, beforeAmount+50.25, value(t, InvestedAmountTotal), 0.001)
}

func TestSetDependency(t *testing.T) {
	SetDependency("database", true)
	assert.Equal(t, 1.0, value(t, DependencyUp.WithLabelValues("database")))

	SetDependency("database", false)
	assert.Equal(t, 0.0, value(t, DependencyUp.WithLabelValues("database")))
}
