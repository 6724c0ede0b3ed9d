package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/tui/views/fetch"
)

// templateEvent signals the template configuration changed on disk.
type templateEvent struct{}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the global keybindings.
	keymap *keymap.KeyMap

	// fetchView is the identifier resolution view component.
	fetchView *fetch.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// templateEvents receives change notifications from a watching
	// template store, when the store supports it.
	templateEvents <-chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	fetchView := fetch.NewView(s, km, ports.Resolver, ports.Saver)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		fetchView:   fetchView,
		currentView: messages.ViewFetch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.fetchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("specfetch"),
		a.fetchView.Init(),
	}
	if watch := a.watchTemplates(); watch != nil {
		cmds = append(cmds, watch)
	}
	return tea.Batch(cmds...)
}

// watchTemplates subscribes to template configuration changes when the
// store supports watching. Returns nil when it does not.
func (a *App) watchTemplates() tea.Cmd {
	watcher, ok := a.ports.Templates.(TemplateWatcher)
	if !ok {
		return nil
	}

	events, err := watcher.Watch(a.ctx)
	if err != nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: fmt.Errorf("watching templates: %w", err)}
		}
	}

	a.templateEvents = events
	return a.waitForTemplateEvent()
}

// waitForTemplateEvent blocks until the next configuration change, then
// re-arms itself from the templateEvent handler.
func (a *App) waitForTemplateEvent() tea.Cmd {
	events := a.templateEvents
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case _, ok := <-events:
			if !ok {
				return nil
			}
			return templateEvent{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.fetchView, _ = a.fetchView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case templateEvent:
		return a.handleTemplateEvent()

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ProbeLogged, messages.FetchCompleted, messages.DocumentSaved:
		// Resolution progress always reaches the fetch view, even when
		// the help view is on screen.
		a.fetchView, cmd = a.fetchView.Update(msg)
		a.err = a.fetchView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.fetchView, cmd = a.fetchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	if a.currentView == messages.ViewFetch {
		a.fetchView, cmd = a.fetchView.Update(msg)
	}
	return a, cmd
}

// handleKeyMsg processes keyboard input at the application level.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewFetch:
		// Help and quit apply whenever no resolution runs. Neither key
		// is a digit, so intercepting them never loses input.
		if !a.fetchView.Fetching() {
			if keymap.Matches(msg.String(), a.keymap.Help) {
				a.currentView = messages.ViewHelp
				return a, nil
			}
			if keymap.Matches(msg.String(), a.keymap.Quit) {
				return a, tea.Quit
			}
		}
		var cmd tea.Cmd
		a.fetchView, cmd = a.fetchView.Update(msg)
		a.err = a.fetchView.Err()
		return a, cmd

	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewFetch
			return a, nil
		}
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	return a, nil
}

// handleTemplateEvent reloads the template groups and swaps them into
// the resolver, then re-arms the watcher.
func (a *App) handleTemplateEvent() (tea.Model, tea.Cmd) {
	rearm := a.waitForTemplateEvent()

	groups, err := a.ports.Templates.Groups(a.ctx)
	if err != nil {
		a.err = fmt.Errorf("reloading templates: %w", err)
		return a, rearm
	}

	a.ports.Resolver.SetGroups(groups)

	var cmd tea.Cmd
	a.fetchView, cmd = a.fetchView.Update(messages.TemplatesReloaded{Groups: len(groups)})
	return a, tea.Batch(rearm, cmd)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.fetchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Fetch:
  (type)      Enter a 12-digit identifier
  enter       Start resolution
  esc         Cancel a running resolution

Results:
  n           New fetch
  q           Quit

Navigation:
  ?           Toggle help
  esc         Back to fetch
  ctrl+c      Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.fetchView.SetDimensions(width, height)
}
