package numeric

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/integrate"
)

const (
	DefaultMinLevels = 3
	DefaultMaxLevels = 16
)

// Quadrature integrates a scalar function by repeated step halving of the
// composite Simpson rule until two successive estimates agree.
type Quadrature struct {
	Tolerance float64 // relative change between successive estimates
	Floor     float64 // absolute change accepted for integrals near zero
	MinLevels int
	MaxLevels int
	Log       *logrus.Entry
}

// Estimate is the outcome of one integration.
type Estimate struct {
	Value       float64
	Levels      int
	Evaluations int
	Converged   bool
}

func NewQuadrature(tol float64) *Quadrature {
	return &Quadrature{
		Tolerance: tol,
		Floor:     1e-14,
		MinLevels: DefaultMinLevels,
		MaxLevels: DefaultMaxLevels,
	}
}

// Integrate returns the signed integral of f from a to b. Bounds given in
// descending order are evaluated over [b, a] and the result negated.
func (q *Quadrature) Integrate(f func(float64) float64, a, b float64) Estimate {
	if a == b {
		return Estimate{Converged: true}
	}
	if a > b {
		est := q.Integrate(f, b, a)
		est.Value = -est.Value
		return est
	}

	xs := []float64{a, a + (b-a)/2, b}
	fs := []float64{f(xs[0]), f(xs[1]), f(xs[2])}
	prev := integrate.Simpsons(xs, fs)
	est := Estimate{Value: prev, Levels: 1, Evaluations: 3}

	maxLevels := q.MaxLevels
	if maxLevels < 2 {
		maxLevels = DefaultMaxLevels
	}

	for level := 2; level <= maxLevels; level++ {
		n := 2 * (len(xs) - 1)
		h := (b - a) / float64(n)
		nx := make([]float64, n+1)
		nf := make([]float64, n+1)
		for i := 0; i <= n; i++ {
			if i%2 == 0 {
				nx[i], nf[i] = xs[i/2], fs[i/2]
				continue
			}
			nx[i] = a + float64(i)*h
			nf[i] = f(nx[i])
		}
		xs, fs = nx, nf
		est.Evaluations += n / 2
		est.Levels = level

		cur := integrate.Simpsons(xs, fs)
		est.Value = cur
		if math.IsNaN(cur) || math.IsInf(cur, 0) {
			return est
		}

		change := math.Abs(cur - prev)
		if level >= q.MinLevels && (change <= q.Tolerance*math.Abs(cur) || change <= q.Floor) {
			est.Converged = true
			return est
		}
		prev = cur
	}

	q.logger().WithFields(logrus.Fields{
		"lower":  a,
		"upper":  b,
		"levels": est.Levels,
		"value":  est.Value,
	}).Warn("quadrature stopped at level cap before reaching tolerance")
	return est
}

func (q *Quadrature) logger() *logrus.Entry {
	if q.Log != nil {
		return q.Log
	}
	return logrus.WithField("component", "quadrature")
}
