package metrics

import (
	"sort"
	"sync"

	"github.com/san-kum/pvtcalc/internal/eos"
)

// Metric summarises the states of a batch or sweep.
type Metric interface {
	Name() string
	Observe(s *eos.State)
	Value() float64
	Reset()
}

// Collector feeds every solved state to its metrics and counts failures.
// It satisfies solver.Observer and is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	metrics  []Metric
	solves   int
	failures int
}

func NewCollector(ms ...Metric) *Collector {
	return &Collector{metrics: ms}
}

func (c *Collector) OnSolve(_ eos.Query, s *eos.State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.solves++
	if err != nil || s == nil {
		c.failures++
		return
	}
	for _, m := range c.metrics {
		m.Observe(s)
	}
}

// Values returns each metric by name, plus the solve and failure counts.
func (c *Collector) Values() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := map[string]float64{
		"solves":   float64(c.solves),
		"failures": float64(c.failures),
	}
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names lists the keys of Values in sorted order.
func (c *Collector) Names() []string {
	vals := c.Values()
	names := make([]string, 0, len(vals))
	for k := range vals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.solves, c.failures = 0, 0
	for _, m := range c.metrics {
		m.Reset()
	}
}
