// Package tui provides an interactive terminal browser over a phase
// collection.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phasekit/internal/phase"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
)

// Browser is the bubbletea model for browsing a phase collection.
type Browser struct {
	data     *phase.Data
	view     []*phase.Phase
	elements []string

	cursor    int
	filterIdx int // 0 means no element filter
	width     int
	height    int
}

// NewBrowser creates a browser over the given collection.
func NewBrowser(data *phase.Data) *Browser {
	b := &Browser{
		data:     data,
		elements: data.Space(),
		width:    80,
		height:   24,
	}
	b.refilter()
	return b
}

// Run starts the browser in the alternate screen and blocks until quit.
func Run(data *phase.Data) error {
	_, err := tea.NewProgram(NewBrowser(data), tea.WithAltScreen()).Run()
	return err
}

func (b *Browser) refilter() {
	if b.filterIdx == 0 {
		b.view = b.data.Phases()
	} else {
		b.view = b.data.ByElement(b.elements[b.filterIdx-1])
	}
	if b.cursor >= len(b.view) {
		b.cursor = len(b.view) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.view)-1 {
				b.cursor++
			}
		case "g":
			b.cursor = 0
		case "G":
			b.cursor = len(b.view) - 1
		case "f":
			b.filterIdx = (b.filterIdx + 1) % (len(b.elements) + 1)
			b.refilter()
		}
	}
	return b, nil
}

func (b *Browser) View() string {
	left := b.listPane()
	right := b.detailPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	filter := "all elements"
	if b.filterIdx > 0 {
		filter = "element " + b.elements[b.filterIdx-1]
	}
	header := cyan.Render("phasekit") + dim.Render(fmt.Sprintf("  %s · %s", b.data, filter))
	help := dim.Render("j/k move · f filter · q quit")

	return header + "\n" + body + "\n" + help
}

func (b *Browser) listPane() string {
	rows := b.height - 6
	if rows < 3 {
		rows = 3
	}
	start := 0
	if b.cursor >= rows {
		start = b.cursor - rows + 1
	}

	var sb strings.Builder
	for i := start; i < len(b.view) && i < start+rows; i++ {
		p := b.view[i]
		line := fmt.Sprintf("%-14s %8.3f", p.Name(), p.Energy())
		switch {
		case i == b.cursor:
			line = white.Bold(true).Render("> " + line)
		case p.Stability != nil && *p.Stability == 0:
			line = green.Render("  " + line)
		default:
			line = dim.Render("  " + line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(b.view) == 0 {
		sb.WriteString(dim.Render("no phases"))
	}
	return panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func (b *Browser) detailPane() string {
	if len(b.view) == 0 {
		return panel.Render(dim.Render("nothing selected"))
	}
	p := b.view[b.cursor]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", yellow.Render(p.Name()))
	fmt.Fprintf(&sb, "composition   %s\n", p.Comp().Format())
	fmt.Fprintf(&sb, "nominal       %s\n", p.NomComp().Format())
	fmt.Fprintf(&sb, "space         %s\n", strings.Join(p.Space(), " "))
	fmt.Fprintf(&sb, "energy        %.4f eV/atom\n", p.Energy())
	fmt.Fprintf(&sb, "total         %.4f eV\n", p.TotalEnergy())
	fmt.Fprintf(&sb, "per f.u.      %.4f eV\n", p.EnergyPFU())
	if p.Stability != nil {
		if *p.Stability == 0 {
			fmt.Fprintf(&sb, "stability     %s\n", green.Render("on hull"))
		} else {
			fmt.Fprintf(&sb, "stability     +%.4f eV/atom\n", *p.Stability)
		}
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", dim.Render(p.Description))
	}
	return panel.Render(strings.TrimRight(sb.String(), "\n"))
}
