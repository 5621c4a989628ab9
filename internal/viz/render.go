// Package viz renders phase collections and binary hulls for the terminal.
package viz

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/phasekit/internal/hull"
	"github.com/san-kum/phasekit/internal/phase"
)

// PhaseTable renders phases as an aligned table with one row per phase.
func PhaseTable(phases []*phase.Phase) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	// tabwriter counts escape sequences toward cell width, so only the
	// trailing stability column carries color.
	fmt.Fprintln(w, "#\tNAME\tCOMPOSITION\teV/ATOM\tSTABILITY")
	for _, p := range phases {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%s\n",
			p.Index, p.Name(), p.Comp().Format(), p.Energy(), stabilityCell(p))
	}
	w.Flush()
	return sb.String()
}

func stabilityCell(p *phase.Phase) string {
	if p.Stability == nil {
		return dim.Render("-")
	}
	if *p.Stability == 0 {
		return stable.Render("stable")
	}
	return fmt.Sprintf("+%.3f", *p.Stability)
}

// HullPlot renders the lower hull of a binary diagram as an ascii chart,
// sampling the hull envelope across the composition axis, with the
// candidate phases listed underneath.
func HullPlot(d *hull.BinaryDiagram, width, height int) string {
	if width <= 0 {
		width = 60
	}
	if height <= 0 {
		height = 12
	}

	series := make([]float64, width)
	for i := range series {
		x := float64(i) / float64(width-1)
		series[i] = d.At(x)
	}

	caption := fmt.Sprintf("%s ... %s (formation energy, eV/atom)", d.EltA, d.EltB)
	chart := asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)

	var sb strings.Builder
	sb.WriteString(title.Render(fmt.Sprintf("%s-%s hull", d.EltA, d.EltB)))
	sb.WriteString("\n")
	sb.WriteString(chart)
	sb.WriteString("\n\n")
	for _, pt := range d.Points {
		marker := dim.Render("above hull")
		if pt.Phase.Stability != nil && *pt.Phase.Stability == 0 {
			marker = stable.Render("on hull")
		}
		sb.WriteString(fmt.Sprintf("  x=%.3f  %-12s %8.4f  %s\n",
			pt.X, pt.Phase.Name(), pt.Y, marker))
	}
	return sb.String()
}
