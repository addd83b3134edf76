package runner

import (
	"sort"
	"sync"
	"time"
)

// Stats aggregates per-operation outcomes across workers.
type Stats struct {
	mu   sync.Mutex
	ops  map[string]*opStats
	from time.Time
	to   time.Time
}

type opStats struct {
	count     int
	errors    int
	latencies []time.Duration
}

// OpReport is the aggregated result for one operation.
type OpReport struct {
	Name   string
	Count  int
	Errors int
	P50    time.Duration
	P95    time.Duration
	Max    time.Duration
}

// Report is a finished run.
type Report struct {
	Duration time.Duration
	Total    int
	Errors   int
	Ops      []OpReport
}

// NewStats creates an empty collector.
func NewStats() *Stats {
	return &Stats{
		ops:  make(map[string]*opStats),
		from: time.Now(),
	}
}

// Record stores one operation outcome.
func (s *Stats) Record(op string, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.ops[op]
	if !ok {
		st = &opStats{}
		s.ops[op] = st
	}
	st.count++
	if err != nil {
		st.errors++
	}
	st.latencies = append(st.latencies, latency)
}

// Snapshot closes the window and aggregates the collected outcomes.
func (s *Stats) Snapshot() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.to = time.Now()
	report := Report{Duration: s.to.Sub(s.from)}

	names := make([]string, 0, len(s.ops))
	for name := range s.ops {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := s.ops[name]
		sorted := append([]time.Duration(nil), st.latencies...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		op := OpReport{
			Name:   name,
			Count:  st.count,
			Errors: st.errors,
		}
		if len(sorted) > 0 {
			op.P50 = percentile(sorted, 0.50)
			op.P95 = percentile(sorted, 0.95)
			op.Max = sorted[len(sorted)-1]
		}
		report.Total += st.count
		report.Errors += st.errors
		report.Ops = append(report.Ops, op)
	}
	return report
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
