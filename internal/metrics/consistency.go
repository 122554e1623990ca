package metrics

import (
	"math"

	"github.com/san-kum/pvtcalc/internal/eos"
)

// Consistency tracks the largest relative violation of Cp/Cv = Ks/Kt over
// the observed states.
type Consistency struct {
	worst float64
}

func NewConsistency() *Consistency {
	return &Consistency{}
}

func (c *Consistency) Name() string { return "consistency" }

func (c *Consistency) Observe(s *eos.State) {
	if s.HeatCapacityV == 0 || s.BulkModulusT == 0 {
		return
	}
	lhs := s.HeatCapacityP / s.HeatCapacityV
	rhs := s.BulkModulusS / s.BulkModulusT
	c.worst = math.Max(c.worst, math.Abs(lhs-rhs)/math.Abs(rhs))
}

func (c *Consistency) Value() float64 { return c.worst }

func (c *Consistency) Reset() { c.worst = 0 }
