package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGlobalIsSingleton(t *testing.T) {
	m := Global()
	assert.Same(t, m, Global())
}

func TestGenerationCounterByPath(t *testing.T) {
	m := Global()
	before := testutil.ToFloat64(m.Generations.WithLabelValues(PathTemplate))
	m.Generations.WithLabelValues(PathTemplate).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(m.Generations.WithLabelValues(PathTemplate)))
}
