package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/messages"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/styles"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/views/codebook"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/views/editor"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/views/menu"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/views/session"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	codebookView *codebook.View
	editorView   *editor.View
	sessionView  *session.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

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

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		codebookView: codebook.NewView(s, ports.Codebook, ports.Settings),
		editorView:   editor.NewView(s, ports.Codebook),
		sessionView:  session.NewView(s, ports.Annotation),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.codebookView.SetContext(ctx)
	a.editorView.SetContext(ctx)
	a.sessionView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("methodosync - Codebook"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCodebook:
			return a, a.codebookView.Init()
		case messages.ViewSession:
			return a, a.sessionView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewEditor, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.RowSelected:
		a.currentView = messages.ViewEditor
		return a, a.editorView.SetRow(msg.Row)

	case messages.RowSaved:
		if msg.Err != nil {
			a.err = msg.Err
			a.editorView, cmd = a.editorView.Update(msg)
			return a, cmd
		}
		a.currentView = messages.ViewCodebook
		a.codebookView, cmd = a.codebookView.Update(msg)
		return a, cmd

	case messages.RowsLoaded, messages.RowAdded, messages.RowDeleted,
		messages.CodebookDerived, messages.CodebookExported:
		a.codebookView, cmd = a.codebookView.Update(msg)
		return a, cmd

	case messages.SessionLoaded:
		a.sessionView, cmd = a.sessionView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewCodebook {
			a.codebookView, cmd = a.codebookView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active view.
	switch a.currentView {
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewMenu, messages.ViewCodebook, messages.ViewSession, messages.ViewHelp:
		// Passive views
	}
	return a, cmd
}

func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCodebook:
		a.codebookView, cmd = a.codebookView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewSession:
		a.sessionView, cmd = a.sessionView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		switch msg.String() {
		case "esc":
			a.currentView = messages.ViewMenu
		case "q":
			cmd = tea.Quit
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewCodebook:
		return a.codebookView.View()
	case messages.ViewEditor:
		return a.editorView.View()
	case messages.ViewSession:
		return a.sessionView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Codebook:
  j/k, ↑/↓    Navigate variables
  enter, e    Edit variable
  a           Add a deductive variable
  d           Delete variable (confirm with y)
  g           Derive variables from parsed notes
  x           Export Excel workbook
  r           Reload

Editor:
  tab         Next field
  shift+tab   Previous field
  enter       Next field, save on the last one
  ctrl+s      Save
  esc         Cancel

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
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

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.codebookView.SetDimensions(width, height)
	a.editorView.SetDimensions(width, height)
	a.sessionView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
