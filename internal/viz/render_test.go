package viz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/pvtcalc/internal/eos"
)

func TestRenderStateListsEveryColumn(t *testing.T) {
	s := &eos.State{Calibrant: "Pt", Branch: eos.SolveForVolume, Pressure: 10, Volume: 58.2}
	out := RenderState(s)

	if !strings.Contains(out, "Pt") {
		t.Error("expected calibrant name in output")
	}
	seen := 0
	for _, g := range groups {
		seen += len(g.columns)
		for _, name := range g.columns {
			if eos.ColumnIndex(name) < 0 {
				t.Errorf("panel column %s is not an eos column", name)
			}
			if !strings.Contains(out, name) {
				t.Errorf("expected %s in output", name)
			}
		}
	}
	if seen != len(eos.Columns) {
		t.Errorf("panels show %d columns, eos has %d", seen, len(eos.Columns))
	}
}

func TestWriteTable(t *testing.T) {
	states := []*eos.State{
		{Pressure: 0, Volume: 60.38},
		{Pressure: 10, Volume: 58.2},
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, states, []string{"pressure", "volume"}); err != nil {
		t.Fatalf("write table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "PRESSURE") {
		t.Errorf("unexpected header %q", lines[0])
	}

	if err := WriteTable(&buf, states, []string{"nope"}); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 4); got != "────" {
		t.Errorf("expected flat line, got %q", got)
	}
	out := Sparkline([]float64{1, 2, 3, 4}, 4)
	if !strings.ContainsRune(out, '█') || !strings.ContainsRune(out, '▁') {
		t.Errorf("expected full range of bars, got %q", out)
	}
}

func TestPlotEmpty(t *testing.T) {
	if !strings.Contains(Plot(nil, "x"), "no data") {
		t.Error("expected placeholder for empty data")
	}
}
