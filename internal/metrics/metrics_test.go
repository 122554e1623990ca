package metrics

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/san-kum/pvtcalc/internal/eos"
)

func TestStability(t *testing.T) {
	m := NewStability()
	if m.Value() != 1.0 {
		t.Errorf("expected 1 with no samples, got %f", m.Value())
	}

	m.Observe(&eos.State{BulkModulusT: 280, HeatCapacityV: 25})
	m.Observe(&eos.State{BulkModulusT: -1, HeatCapacityV: 25})
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected 1 after reset, got %f", m.Value())
	}
}

func TestConsistency(t *testing.T) {
	m := NewConsistency()

	// Cp/Cv = 1.02 = Ks/Kt
	m.Observe(&eos.State{HeatCapacityV: 25, HeatCapacityP: 25.5, BulkModulusT: 300, BulkModulusS: 306})
	if m.Value() > 1e-12 {
		t.Errorf("expected consistent state, got residual %g", m.Value())
	}

	m.Observe(&eos.State{HeatCapacityV: 25, HeatCapacityP: 26, BulkModulusT: 300, BulkModulusS: 306})
	want := math.Abs(26.0/25-1.02) / 1.02
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, m.Value())
	}
}

func TestMean(t *testing.T) {
	if m, err := NewMean("nope"); m != nil || !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v, %v", m, err)
	}

	m, err := NewMean("gamma")
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}
	m.Observe(&eos.State{Gruneisen: 2})
	m.Observe(&eos.State{Gruneisen: 3})
	if m.Name() != "mean_gamma" {
		t.Errorf("unexpected name %s", m.Name())
	}
	if m.Value() != 2.5 {
		t.Errorf("expected 2.5, got %f", m.Value())
	}
}

func TestCollectorConcurrent(t *testing.T) {
	mean, err := NewMean("pressure")
	if err != nil {
		t.Fatalf("NewMean: %v", err)
	}
	c := NewCollector(NewStability(), mean)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 0 {
				c.OnSolve(eos.Query{}, nil, errors.New("failed"))
				return
			}
			c.OnSolve(eos.Query{}, &eos.State{Pressure: 10, BulkModulusT: 1, HeatCapacityV: 1}, nil)
		}(i)
	}
	wg.Wait()

	vals := c.Values()
	if vals["solves"] != 50 || vals["failures"] != 5 {
		t.Errorf("expected 50 solves and 5 failures, got %v", vals)
	}
	if vals["mean_pressure"] != 10 {
		t.Errorf("expected mean pressure 10, got %f", vals["mean_pressure"])
	}
	if len(c.Names()) != 4 {
		t.Errorf("expected 4 names, got %v", c.Names())
	}

	c.Reset()
	if c.Values()["solves"] != 0 {
		t.Error("expected reset to clear counts")
	}
}
