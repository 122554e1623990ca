package eos

import (
	"errors"
	"math"
	"testing"
)

func TestQueryBranch(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  Branch
	}{
		{"pressure unknown", Query{Unknown(), Known(60), Known(300)}, SolveForPressure},
		{"volume unknown", Query{Known(10), Unknown(), Known(300)}, SolveForVolume},
		{"temperature unknown", Query{Known(10), Known(58), Unknown()}, SolveForTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.Branch()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestQueryBranch_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query Query
	}{
		{"zero unknowns", Query{Known(10), Known(60), Known(300)}},
		{"two unknowns", Query{Unknown(), Unknown(), Known(300)}},
		{"three unknowns", Query{}},
		{"nan pressure", Query{Known(math.NaN()), Unknown(), Known(300)}},
		{"infinite volume", Query{Unknown(), Known(math.Inf(1)), Known(300)}},
		{"zero temperature", Query{Known(10), Unknown(), Known(0)}},
		{"negative temperature", Query{Unknown(), Known(60), Known(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.query.Branch()
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	if s := Unknown().String(); s != "?" {
		t.Errorf("expected ?, got %s", s)
	}
	if s := Known(2.5).String(); s != "2.5" {
		t.Errorf("expected 2.5, got %s", s)
	}
}

func TestSolveErrorUnwrap(t *testing.T) {
	err := error(&SolveError{
		Branch:     SolveForVolume,
		Stage:      "bisection",
		Iterate:    0.85,
		Iterations: 100000,
		Wrapped:    ErrNonConvergence,
	})

	if !errors.Is(err, ErrNonConvergence) {
		t.Error("expected SolveError to unwrap to ErrNonConvergence")
	}

	var se *SolveError
	if !errors.As(err, &se) || se.Branch != SolveForVolume {
		t.Errorf("expected branch %s in error, got %v", SolveForVolume, err)
	}
}

func TestStateValuesMatchColumns(t *testing.T) {
	s := &State{Pressure: 1, Volume: 2, Temperature: 3}
	vals := s.Values()
	if len(vals) != len(Columns) {
		t.Fatalf("expected %d values, got %d", len(Columns), len(vals))
	}
	if vals[ColumnIndex("volume")] != 2 {
		t.Errorf("expected volume 2, got %f", vals[ColumnIndex("volume")])
	}
	if ColumnIndex("missing") != -1 {
		t.Error("expected -1 for unknown column")
	}
	if !s.IsValid() {
		t.Error("expected finite state to be valid")
	}
	s.Entropy = math.NaN()
	if s.IsValid() {
		t.Error("expected NaN entropy to invalidate state")
	}
}
