package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

// Theme bundles palette, symbols and the panel border.
// All render helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   lipgloss.Style
	Selected                               lipgloss.Style
	Border                                 lipgloss.Border
	BorderColor                            lipgloss.TerminalColor
	SymOK, SymFail, SymReminder, SymCursor string

	// row backgrounds keyed by priority
	priority map[model.Priority]lipgloss.Style
}

// Priority colors: HIGH red, MEDIUM orange, LOW green.
var priorityColors = map[model.Priority]lipgloss.Color{
	model.High:   lipgloss.Color("196"),
	model.Medium: lipgloss.Color("208"),
	model.Low:    lipgloss.Color("34"),
}

var current = newTheme("classic", false)

// SetTheme switches the palette. noColor strips every color but keeps
// bold/reverse so the selected row stays visible.
func SetTheme(name string, noColor bool) {
	current = newTheme(name, noColor)
}

// Current exposes what renderers need.
func Current() Theme { return current }

func newTheme(name string, noColor bool) Theme {
	name = strings.ToLower(name)
	var t Theme
	switch name {
	case "neon":
		t = Theme{
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:   lipgloss.NewStyle().Faint(true),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Border:  lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("13"),
			SymOK: "✔", SymFail: "✖", SymReminder: "⏰", SymCursor: "▶ ",
		}
	case "mono":
		noColor = true
		t = Theme{
			Border: lipgloss.ASCIIBorder(),
			SymOK:  "ok", SymFail: "error:", SymReminder: "(!)", SymCursor: "> ",
		}
	default:
		name = "classic"
		t = Theme{
			Title:   lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Faint(true),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Border:  lipgloss.RoundedBorder(), BorderColor: lipgloss.Color("8"),
			SymOK: "✔", SymFail: "✖", SymReminder: "⏰", SymCursor: "> ",
		}
	}
	t.Name = name
	t.Selected = lipgloss.NewStyle().Bold(true).Reverse(true)
	t.priority = make(map[model.Priority]lipgloss.Style, len(priorityColors))
	for p, c := range priorityColors {
		st := lipgloss.NewStyle()
		if !noColor {
			st = st.Background(c).Foreground(lipgloss.Color("0"))
		}
		t.priority[p] = st
	}
	if noColor {
		t.Title = lipgloss.NewStyle().Bold(t.Title.GetBold())
		t.Muted, t.Accent, t.Success = lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
		t.Error = lipgloss.NewStyle().Bold(true)
		t.BorderColor = lipgloss.NoColor{}
	}
	return t
}

// PriorityStyle is the row style for p.
func (t Theme) PriorityStyle(p model.Priority) lipgloss.Style {
	if st, ok := t.priority[p]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// PriorityColor is the raw color hint for p, independent of theme.
func PriorityColor(p model.Priority) lipgloss.Color { return priorityColors[p] }
