package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObserveAndSummary(t *testing.T) {
	t.Parallel()

	c := NewCollector(4)
	c.Observe("interpolate", 10*time.Microsecond)
	c.Observe("interpolate", 30*time.Microsecond)
	c.Observe("bounds", 5*time.Microsecond)

	summary := c.Summary()
	require.Len(t, summary, 2)

	// Ordered by operation name.
	assert.Equal(t, "bounds", summary[0].Op)
	assert.Equal(t, "interpolate", summary[1].Op)

	itp := summary[1]
	assert.Equal(t, 2, itp.Total)
	assert.Equal(t, 2, itp.Kept)
	assert.Equal(t, 20*time.Microsecond, itp.Mean)
	assert.Equal(t, 30*time.Microsecond, itp.Max)
}

func TestCollectorRingTruncation(t *testing.T) {
	t.Parallel()

	c := NewCollector(3)
	for i := 1; i <= 10; i++ {
		c.Observe("op", time.Duration(i)*time.Millisecond)
	}

	summary := c.Summary()
	require.Len(t, summary, 1)
	st := summary[0]

	assert.Equal(t, 10, st.Total, "total counts every observation")
	assert.Equal(t, 3, st.Kept, "window keeps only the last capacity observations")
	// Window holds 8ms, 9ms, 10ms.
	assert.Equal(t, 9*time.Millisecond, st.Mean)
	assert.Equal(t, 10*time.Millisecond, st.Max)
}

func TestCollectorCapacityFallback(t *testing.T) {
	t.Parallel()

	c := NewCollector(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		c.Observe("op", time.Millisecond)
	}
	st := c.Summary()[0]
	assert.Equal(t, DefaultCapacity, st.Kept)
	assert.Equal(t, DefaultCapacity+10, st.Total)
}

func TestCollectorTimeAndReset(t *testing.T) {
	t.Parallel()

	c := NewCollector(8)
	done := c.Time("query")
	done()

	require.Len(t, c.Summary(), 1)
	assert.Equal(t, 1, c.Summary()[0].Total)

	c.Reset()
	assert.Empty(t, c.Summary())
}
