package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/model"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Fail/Panel; nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func OK(msg string) { fmt.Fprintln(stdout, current.Success.Render(current.SymOK+" "+msg)) }

func Fail(msg string) { fmt.Fprintln(stderr, current.Error.Render(current.SymFail+" "+msg)) }

// Hint prints a muted line to stderr.
func Hint(msg string) { fmt.Fprintln(stderr, current.Muted.Render(msg)) }

// PanelString frames lines with the current theme's border.
func PanelString(lines []string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Panel prints a framed box to stdout.
func Panel(lines []string) { fmt.Fprintln(stdout, PanelString(lines)) }

// PriorityBar splits width cells between HIGH, MEDIUM and LOW in proportion
// to counts, each segment in its priority color.
func PriorityBar(counts map[model.Priority]int, width int) string {
	if width < 5 {
		width = 5
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return current.Muted.Render(strings.Repeat("░", width))
	}
	var b strings.Builder
	used := 0
	order := []model.Priority{model.High, model.Medium, model.Low}
	for i, p := range order {
		cells := counts[p] * width / total
		if i == len(order)-1 {
			cells = width - used
		}
		used += cells
		if cells <= 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(PriorityColor(p)).Render(strings.Repeat("█", cells)))
	}
	return b.String()
}

// Header is the title line: greeting plus per-priority counts.
func Header(title string, counts map[model.Priority]int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		current.Title.Render(title),
		current.PriorityStyle(model.High).Render(" H "), counts[model.High],
		current.PriorityStyle(model.Medium).Render(" M "), counts[model.Medium],
		current.PriorityStyle(model.Low).Render(" L "), counts[model.Low],
		current.Accent.Render("Total"), total,
	)
}

// TaskLine renders one row: 1-based index, then the task's display string on
// its priority background.
func TaskLine(index int, t *model.Task) string {
	text := ansi.Truncate(t.String(), 96, "...")
	return fmt.Sprintf("%s %s", current.Muted.Render(fmt.Sprintf("%2d.", index+1)), current.PriorityStyle(t.Priority).Render(text))
}

// TaskLines renders a whole list, or a placeholder when it is empty.
func TaskLines(tasks []*model.Task) []string {
	if len(tasks) == 0 {
		return []string{current.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, TaskLine(i, t))
	}
	return out
}
