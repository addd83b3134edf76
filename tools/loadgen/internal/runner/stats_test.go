package runner

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAggregatesPerOperation(t *testing.T) {
	s := NewStats()

	s.Record("inventory.list", 10*time.Millisecond, nil)
	s.Record("inventory.list", 20*time.Millisecond, nil)
	s.Record("inventory.list", 30*time.Millisecond, errors.New("boom"))
	s.Record("appointments.create", 5*time.Millisecond, nil)

	report := s.Snapshot()
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.Ops, 2)

	// Operations come back sorted by name.
	assert.Equal(t, "appointments.create", report.Ops[0].Name)
	assert.Equal(t, "inventory.list", report.Ops[1].Name)

	inv := report.Ops[1]
	assert.Equal(t, 3, inv.Count)
	assert.Equal(t, 1, inv.Errors)
	assert.Equal(t, 20*time.Millisecond, inv.P50)
	assert.Equal(t, 30*time.Millisecond, inv.Max)
}

func TestStatsEmptySnapshot(t *testing.T) {
	report := NewStats().Snapshot()
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Ops)
}

func TestStatsConcurrentRecord(t *testing.T) {
	s := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Record("op", time.Millisecond, nil)
			}
		}()
	}
	wg.Wait()

	report := s.Snapshot()
	assert.Equal(t, 800, report.Total)
	assert.Zero(t, report.Errors)
}

func TestPercentileBounds(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5}
	assert.Equal(t, time.Duration(3), percentile(sorted, 0.50))
	assert.Equal(t, time.Duration(5), percentile(sorted, 1.0))
	assert.Equal(t, time.Duration(1), percentile(sorted, 0))
	assert.Zero(t, percentile(nil, 0.5))
}
