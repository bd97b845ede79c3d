package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestObserveAdviceCountsOutcome проверяет счетчик исходов совета.
func TestObserveAdviceCountsOutcome(t *testing.T) {
	before := testutil.ToFloat64(AdviceRequestsTotal.WithLabelValues("gemini", "ok"))

	ObserveAdvice("gemini", "ok", time.Now().Add(-time.Second))

	after := testutil.ToFloat64(AdviceRequestsTotal.WithLabelValues("gemini", "ok"))
	assert.Equal(t, before+1, after)
}

// TestFlag проверяет метку флага.
func TestFlag(t *testing.T) {
	assert.Equal(t, "true", Flag(true))
	assert.Equal(t, "false", Flag(false))
}
