// Package fetch provides the main identifier resolution view for the TUI.
package fetch

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/components/trace"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driving"
)

// probeBuffer sizes the channel between the resolver's probe listener
// and the message loop. Probes arrive at network pace, so the buffer
// only needs to absorb short render stalls.
const probeBuffer = 64

// View represents the fetch view with identifier input, live probe
// trace, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.CodeInput
	trace     *trace.Panel
	statusbar *status.Bar

	resolver driving.Resolver
	saver    driven.FileSaver
	ctx      context.Context

	fetchCtx context.Context
	cancel   context.CancelFunc
	probeCh  chan domain.ProbeResult

	fetching   bool
	outcome    *domain.Outcome
	savedPath  string
	err        error
	focusInput bool

	width  int
	height int
	ready  bool
}

// NewView creates a new fetch view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	resolver driving.Resolver,
	saver driven.FileSaver,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewCodeInput(s),
		trace:      trace.NewPanel(s),
		statusbar:  status.NewBar(s, km),
		resolver:   resolver,
		saver:      saver,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the fetch view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProbeLogged:
		return v.handleProbeLogged(msg)

	case messages.FetchCompleted:
		return v.handleFetchCompleted(msg)

	case messages.DocumentSaved:
		v.handleDocumentSaved(msg)
		return v, nil

	case messages.TemplatesReloaded:
		if !v.fetching {
			v.statusbar.SetMessage(fmt.Sprintf("Templates reloaded: %d groups", msg.Groups))
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateFailed)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward everything else to the input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	return v, inputCmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc cancels an in-flight resolution, otherwise clears state
	if msg.Type == tea.KeyEsc {
		if v.fetching {
			if v.cancel != nil {
				v.cancel()
			}
			return v, nil
		}
		v.Reset()
		return v, nil
	}

	// Enter submits the identifier for resolution
	if msg.Type == tea.KeyEnter && v.focusInput && !v.fetching {
		if !v.input.Complete() {
			v.statusbar.SetMessage(fmt.Sprintf("Enter a %d-digit identifier", domain.IdentifierLength))
			return v, nil
		}
		if v.resolver == nil {
			return v, func() tea.Msg {
				return messages.ErrorOccurred{Err: ErrNoResolver}
			}
		}
		return v, v.startFetch(v.input.Value())
	}

	// Keys while a resolution runs are ignored (Esc handled above)
	if v.fetching {
		return v, nil
	}

	// Result mode: n starts a new fetch
	if !v.focusInput && keymap.Matches(msg.String(), v.keymap.NewFetch) {
		v.Reset()
		return v, nil
	}

	// Input mode: remaining keys go to the input
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	return v, nil
}

// startFetch begins resolving the identifier and wires the probe
// listener into the message loop.
func (v *View) startFetch(identifier string) tea.Cmd {
	v.fetching = true
	v.focusInput = false
	v.input.Blur()
	v.outcome = nil
	v.savedPath = ""
	v.err = nil
	v.trace.Clear()
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateProbing)

	v.fetchCtx, v.cancel = context.WithCancel(v.ctx)
	v.probeCh = make(chan domain.ProbeResult, probeBuffer)

	ch := v.probeCh
	v.resolver.SetProbeListener(func(result domain.ProbeResult) {
		select {
		case ch <- result:
		default:
		}
	})

	return tea.Batch(v.resolveCmd(identifier), v.waitForProbe())
}

// resolveCmd runs the resolution and delivers the terminal outcome.
func (v *View) resolveCmd(identifier string) tea.Cmd {
	ctx := v.fetchCtx
	return func() tea.Msg {
		outcome, err := v.resolver.Resolve(ctx, identifier)
		return messages.FetchCompleted{Outcome: outcome, Err: err}
	}
}

// waitForProbe blocks until the next probe result arrives, then
// re-arms itself from the ProbeLogged handler.
func (v *View) waitForProbe() tea.Cmd {
	ch := v.probeCh
	ctx := v.fetchCtx
	return func() tea.Msg {
		select {
		case result := <-ch:
			return messages.ProbeLogged{Result: result}
		case <-ctx.Done():
			return nil
		}
	}
}

// handleProbeLogged appends a live probe result and re-arms the waiter.
func (v *View) handleProbeLogged(msg messages.ProbeLogged) (*View, tea.Cmd) {
	if !v.fetching {
		// Resolution already completed; the trace was replaced with
		// the authoritative outcome trace.
		return v, nil
	}
	v.trace.Append(msg.Result)
	v.statusbar.SetProbed(v.trace.Count())
	return v, v.waitForProbe()
}

// handleFetchCompleted processes the terminal outcome.
func (v *View) handleFetchCompleted(msg messages.FetchCompleted) (*View, tea.Cmd) {
	v.fetching = false
	v.resolver.SetProbeListener(nil)
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateFailed)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	v.outcome = msg.Outcome
	v.trace.SetTrace(msg.Outcome.Trace)
	v.statusbar.SetProbed(v.trace.Count())

	switch msg.Outcome.Status {
	case domain.StatusFound:
		doc := msg.Outcome.Document
		v.statusbar.SetState(status.StateFound)
		v.statusbar.SetMessage(fmt.Sprintf("Found %s, saving...", doc.Filename))
		return v, v.saveDocument(doc)
	case domain.StatusCancelled:
		v.statusbar.SetState(status.StateFailed)
		v.statusbar.SetMessage("Cancelled")
	default:
		v.statusbar.SetState(status.StateFailed)
		v.statusbar.SetMessage(msg.Outcome.Message)
	}
	return v, nil
}

// saveDocument persists the retrieved document.
func (v *View) saveDocument(doc *domain.Document) tea.Cmd {
	return func() tea.Msg {
		if v.saver == nil {
			return messages.DocumentSaved{Err: ErrNoSaver}
		}
		path, err := v.saver.Save(v.ctx, doc)
		return messages.DocumentSaved{Path: path, Err: err}
	}
}

// handleDocumentSaved records where the document landed.
func (v *View) handleDocumentSaved(msg messages.DocumentSaved) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateFailed)
		v.statusbar.SetMessage("Save failed: " + msg.Err.Error())
		return
	}
	v.savedPath = msg.Path
	v.statusbar.SetState(status.StateFound)
	v.statusbar.SetMessage("Saved " + msg.Path)
}

// View renders the fetch view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("specfetch")
	sections = append(sections, header, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.renderResult()...)

	sections = append(sections, v.trace.View())

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderResult renders the outcome summary block, if any.
func (v *View) renderResult() []string {
	if v.outcome == nil {
		return nil
	}

	if v.outcome.Status == domain.StatusFound {
		doc := v.outcome.Document
		lines := []string{
			v.styles.Success.Render(fmt.Sprintf("Found %s (%d bytes)", doc.Filename, doc.Size())),
			v.styles.Muted.Render("Source: " + doc.SourceURL),
		}
		if v.savedPath != "" {
			lines = append(lines, v.styles.Normal.Render("Saved to "+v.savedPath))
		}
		return append(lines, "")
	}

	return []string{v.styles.Error.Render(v.outcome.Message), ""}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width - 4)
	v.trace.SetSize(width, height-12) // Reserve space for header, input, result, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Fetching reports whether a resolution is in flight.
func (v *View) Fetching() bool {
	return v.fetching
}

// Identifier returns the current input value.
func (v *View) Identifier() string {
	return v.input.Value()
}

// SetIdentifier sets the input value.
func (v *View) SetIdentifier(value string) {
	v.input.SetValue(value)
}

// Outcome returns the last terminal outcome, if any.
func (v *View) Outcome() *domain.Outcome {
	return v.outcome
}

// SavedPath returns where the last document was written.
func (v *View) SavedPath() string {
	return v.savedPath
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to initial input mode.
func (v *View) Reset() {
	v.fetching = false
	v.focusInput = true
	v.input.Focus()
	v.input.Reset()
	v.trace.Clear()
	v.outcome = nil
	v.savedPath = ""
	v.err = nil
	v.statusbar.Clear()
}
