// Package trace provides the probe trace panel component for the TUI.
package trace

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// Panel renders probe results as they arrive, one line per candidate.
type Panel struct {
	results []domain.ProbeResult
	styles  *styles.Styles
	width   int
	height  int
}

// NewPanel creates a new trace panel component.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Panel{
		results: make([]domain.ProbeResult, 0),
		styles:  s,
		width:   80,
		height:  10,
	}
}

// Init initialises the trace panel.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Update handles trace panel messages.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	// Panel is append-only, fed via Append and SetTrace.
	return p, nil
}

// View renders the trace, windowed to the most recent lines that fit.
func (p *Panel) View() string {
	if len(p.results) == 0 {
		return p.styles.Muted.Render("No candidates probed yet")
	}

	visible := p.results
	offset := 0
	if p.height > 0 && len(visible) > p.height {
		offset = len(visible) - p.height
		visible = visible[offset:]
	}

	lines := make([]string, 0, len(visible))
	for i, r := range visible {
		line := fmt.Sprintf("%2d. %s", offset+i+1, r.String())
		if len(line) > p.width && p.width > 3 {
			line = line[:p.width-3] + "..."
		}
		switch {
		case r.Verified:
			lines = append(lines, p.styles.Success.Render(line))
		case r.LastError != "":
			lines = append(lines, p.styles.Error.Render(line))
		default:
			lines = append(lines, p.styles.Muted.Render(line))
		}
	}

	return strings.Join(lines, "\n")
}

// Append adds a single probe result to the panel.
func (p *Panel) Append(result domain.ProbeResult) {
	p.results = append(p.results, result)
}

// SetTrace replaces the panel contents with a complete trace.
func (p *Panel) SetTrace(trace domain.Trace) {
	p.results = make([]domain.ProbeResult, len(trace))
	copy(p.results, trace)
}

// Clear removes all results.
func (p *Panel) Clear() {
	p.results = p.results[:0]
}

// Count returns the number of results held.
func (p *Panel) Count() int {
	return len(p.results)
}

// SetSize sets the panel dimensions.
func (p *Panel) SetSize(width, height int) {
	if width > 0 {
		p.width = width
	}
	if height > 0 {
		p.height = height
	}
}

// Width returns the panel width.
func (p *Panel) Width() int {
	return p.width
}

// Height returns the panel height.
func (p *Panel) Height() int {
	return p.height
}
