package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
)

// fit pads or truncates s to exactly fill r.
func fit(s string, r layout.Rect) string {
	if r.Empty() {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > r.H {
		lines = lines[:r.H]
	}
	for len(lines) < r.H {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = fitWidth(line, r.W)
	}
	return strings.Join(lines, "\n")
}

// fitWidth pads or truncates one rendered line to w cells.
func fitWidth(line string, w int) string {
	n := lipgloss.Width(line)
	switch {
	case n > w:
		return lipgloss.NewStyle().MaxWidth(w).Render(line)
	case n < w:
		return line + strings.Repeat(" ", w-n)
	}
	return line
}

// textSize measures unstyled, possibly multi-line text.
func textSize(s string) event.Size {
	lines := strings.Split(s, "\n")
	var w int
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return event.Size{W: w, H: len(lines)}
}
