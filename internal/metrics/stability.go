package metrics

import "github.com/san-kum/pvtcalc/internal/eos"

// Stability is the fraction of states that are mechanically and thermally
// stable: positive isothermal bulk modulus and heat capacity.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st *eos.State) {
	s.samples++
	if !(st.BulkModulusT > 0) || !(st.HeatCapacityV > 0) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
