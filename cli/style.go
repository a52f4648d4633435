package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/invcore/engine/placement"
	"github.com/nathoo/invcore/types"
)

// styles renders runner output for one writer. The zero value renders
// every line unchanged.
type styles struct {
	enabled  bool
	success  lipgloss.Style
	rejected lipgloss.Style
	failed   lipgloss.Style
	header   lipgloss.Style
	system   lipgloss.Style
	trace    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		enabled:  true,
		success:  r.NewStyle().Foreground(lipgloss.Color("34")),
		rejected: r.NewStyle().Foreground(lipgloss.Color("214")),
		failed:   r.NewStyle().Foreground(lipgloss.Color("196")),
		header:   r.NewStyle().Bold(true),
		system:   r.NewStyle().Foreground(lipgloss.Color("243")),
		trace:    r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// lineOutcome returns the outcome an engine output line ends with, as in
// "Iron Helm -> Body: ItemSwapped".
func lineOutcome(line string) (types.Outcome, bool) {
	i := strings.LastIndex(line, ": ")
	if i < 0 {
		return "", false
	}
	o := types.Outcome(line[i+2:])
	if _, ok := placement.Classify(o); !ok {
		return "", false
	}
	return o, true
}

// line styles one engine output line.
func (s styles) line(text string) string {
	if !s.enabled || text == "" {
		return text
	}
	if o, ok := lineOutcome(text); ok {
		return s.outcome(o).Render(text)
	}
	if strings.HasSuffix(text, ":") && !strings.HasPrefix(text, " ") {
		return s.header.Render(text)
	}
	return text
}

func (s styles) outcome(o types.Outcome) lipgloss.Style {
	sev, _ := placement.Classify(o)
	switch sev {
	case placement.SeverityRejected:
		return s.rejected
	case placement.SeverityFailed:
		return s.failed
	default:
		return s.success
	}
}

func (s styles) systemMsg(text string) string {
	text = "[" + text + "]"
	if !s.enabled {
		return text
	}
	return s.system.Render(text)
}

func (s styles) traceMsg(text string) string {
	text = "[trace] " + text
	if !s.enabled {
		return text
	}
	return s.trace.Render(text)
}
