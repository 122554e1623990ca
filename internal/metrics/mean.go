package metrics

import (
	"github.com/pkg/errors"

	"github.com/san-kum/pvtcalc/internal/eos"
)

var ErrUnknownColumn = errors.New("metrics: unknown column")

// Mean averages one eos column.
type Mean struct {
	column  string
	get     func(*eos.State) float64
	sum     float64
	samples int
}

// NewMean fails for a column eos does not define.
func NewMean(column string) (*Mean, error) {
	idx := eos.ColumnIndex(column)
	if idx < 0 {
		return nil, errors.Wrapf(ErrUnknownColumn, "mean of %q", column)
	}
	return &Mean{column: column, get: eos.Columns[idx].Get}, nil
}

func (m *Mean) Name() string {
	return "mean_" + m.column
}

func (m *Mean) Observe(s *eos.State) {
	m.sum += m.get(s)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}
