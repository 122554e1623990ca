package viz

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pvtcalc/internal/eos"
)

// groups lays out the state panel; names refer to eos.Columns.
var groups = []struct {
	title   string
	columns []string
}{
	{"state", []string{"pressure", "volume", "temperature", "compression", "molar_volume", "model_pressure", "static_pressure", "thermal_pressure"}},
	{"energies", []string{"helmholtz_energy", "gibbs_energy", "internal_energy", "enthalpy", "static_energy", "entropy"}},
	{"response", []string{"cv", "cp", "kt", "kt_static", "kt_thermal", "ks", "alpha", "dpdt", "gamma", "gamma_lattice", "frequency_scale"}},
}

// RenderState formats a state as three side-by-side panels.
func RenderState(s *eos.State) string {
	panels := make([]string, 0, len(groups))
	for _, g := range groups {
		var b strings.Builder
		b.WriteString(Title.Render(g.title))
		for _, name := range g.columns {
			c := eos.Columns[eos.ColumnIndex(name)]
			fmt.Fprintf(&b, "\n%s %s %s",
				Label.Render(fmt.Sprintf("%-16s", c.Name)),
				Value.Render(fmt.Sprintf("%14.6g", c.Get(s))),
				Unit.Render(c.Unit))
		}
		panels = append(panels, Panel.Render(b.String()))
	}

	header := Title.Render(fmt.Sprintf("%s  %s", s.Calibrant, s.Branch))
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// WriteTable prints the named columns of each state, one row per state.
func WriteTable(w io.Writer, states []*eos.State, columns []string) error {
	idx := make([]int, len(columns))
	for i, name := range columns {
		idx[i] = eos.ColumnIndex(name)
		if idx[i] < 0 {
			return fmt.Errorf("unknown column %q", name)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, s := range states {
		row := make([]string, len(idx))
		for i, j := range idx {
			row[i] = fmt.Sprintf("%.6g", eos.Columns[j].Get(s))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Plot draws ys against their index as an ASCII line chart.
func Plot(ys []float64, caption string) string {
	if len(ys) == 0 {
		return Warn.Render("no data")
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
