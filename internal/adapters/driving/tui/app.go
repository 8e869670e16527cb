package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/transrapport/doclint/internal/adapters/driving/tui/keymap"
	"github.com/transrapport/doclint/internal/adapters/driving/tui/messages"
	"github.com/transrapport/doclint/internal/adapters/driving/tui/styles"
	"github.com/transrapport/doclint/internal/core/domain"
)

// state tracks where the app is in its lifecycle.
type state int

const (
	// stateLoading means a validation run is in flight.
	stateLoading state = iota

	// stateReady means a report is loaded and browsable.
	stateReady

	// stateFailed means the last run failed with a pipeline error.
	stateFailed
)

// severityFilter restricts which findings are shown.
type severityFilter int

const (
	filterAll severityFilter = iota
	filterErrors
	filterWarnings
	filterInfo
)

// String returns the display name of the filter.
func (f severityFilter) String() string {
	switch f {
	case filterErrors:
		return "errors"
	case filterWarnings:
		return "warnings"
	case filterInfo:
		return "info"
	default:
		return "all"
	}
}

// next cycles to the following filter.
func (f severityFilter) next() severityFilter {
	return (f + 1) % 4
}

// matches reports whether a finding severity passes the filter.
func (f severityFilter) matches(s domain.Severity) bool {
	switch f {
	case filterErrors:
		return s == domain.SeverityError
	case filterWarnings:
		return s == domain.SeverityWarning
	case filterInfo:
		return s == domain.SeverityInfo
	default:
		return true
	}
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// spinner animates the loading state.
	spinner spinner.Model

	// state is the current lifecycle state.
	state state

	// report is the last completed validation report.
	report *domain.Report

	// visible holds the findings that pass the current filter.
	visible []domain.ValidationResult

	// filter is the active severity filter.
	filter severityFilter

	// cursor is the selected index into visible.
	cursor int

	// err holds the last pipeline error.
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
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Muted),
	)

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		spinner: sp,
		state:   stateLoading,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It kicks off the first validation run.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("doclint"),
		a.spinner.Tick,
		a.validateCmd(),
	)
}

// validateCmd runs the validation pipeline off the update loop.
func (a *App) validateCmd() tea.Cmd {
	ctx := a.ctx
	validator := a.ports.Validator
	root := a.ports.Root
	cfg := a.ports.Config

	return func() tea.Msg {
		report, err := validator.Validate(ctx, root, cfg)
		return messages.ValidationCompleted{Report: report, Err: err}
	}
}

// revalidate switches back to loading and starts a new run.
func (a *App) revalidate() tea.Cmd {
	a.state = stateLoading
	return tea.Batch(a.spinner.Tick, a.validateCmd())
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if a.state != stateLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.ValidationCompleted:
		if msg.Err != nil {
			a.state = stateFailed
			a.err = msg.Err
			return a, nil
		}
		a.state = stateReady
		a.err = nil
		a.report = msg.Report
		a.applyFilter()
		return a, nil

	case messages.RevalidationRequested:
		return a, a.revalidate()

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleKey dispatches keypresses against the keymap.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, a.keys.Quit) {
		return a, tea.Quit
	}

	// Navigation only makes sense once a report is loaded.
	if a.state == stateLoading {
		return a, nil
	}

	switch {
	case keymap.Matches(keyStr, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case keymap.Matches(keyStr, a.keys.Down):
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}

	case keymap.Matches(keyStr, a.keys.Filter):
		a.filter = a.filter.next()
		a.applyFilter()

	case keymap.Matches(keyStr, a.keys.Revalidate):
		return a, a.revalidate()
	}

	return a, nil
}

// applyFilter rebuilds the visible findings and resets the cursor.
func (a *App) applyFilter() {
	a.visible = a.visible[:0]
	if a.report != nil {
		for _, issue := range a.report.Issues {
			if a.filter.matches(issue.Severity) {
				a.visible = append(a.visible, issue)
			}
		}
	}
	a.cursor = 0
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.state {
	case stateLoading:
		return fmt.Sprintf("\n %s Validating %s...\n", a.spinner.View(), a.ports.Root)
	case stateFailed:
		return "\n " + a.styles.Error.Render(fmt.Sprintf("Validation error: %v", a.err)) + "\n\n " + a.helpLine() + "\n"
	default:
		return a.viewReport()
	}
}

// viewReport renders the loaded report with the findings list.
func (a *App) viewReport() string {
	var b strings.Builder

	b.WriteString(" ")
	b.WriteString(a.styles.Title.Render("doclint"))
	b.WriteString(" ")
	b.WriteString(a.styles.Muted.Render(a.ports.Root))
	b.WriteString("\n\n ")
	b.WriteString(a.summaryLine())
	b.WriteString("\n ")
	b.WriteString(a.styles.Muted.Render(fmt.Sprintf("filter: %s (%d findings)", a.filter, len(a.visible))))
	b.WriteString("\n\n")

	if len(a.visible) == 0 {
		b.WriteString(" ")
		b.WriteString(a.styles.Muted.Render("No findings."))
		b.WriteString("\n")
	} else {
		start, end := a.window()
		for i := start; i < end; i++ {
			b.WriteString(a.renderFinding(a.visible[i], i == a.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n ")
	b.WriteString(a.helpLine())
	b.WriteString("\n")

	return b.String()
}

// summaryLine renders the report outcome and severity counts.
func (a *App) summaryLine() string {
	r := a.report
	outcome := a.styles.Success.Render("OK")
	if !r.Success {
		outcome = a.styles.Error.Render("FAILED")
	}
	counts := fmt.Sprintf("%d files: %d errors, %d warnings, %d info",
		r.FileCount, r.Summary.Errors, r.Summary.Warnings, r.Summary.Info)
	return outcome + " " + a.styles.Normal.Render(counts)
}

// window computes the slice of visible findings that fits the terminal,
// keeping the cursor in view.
func (a *App) window() (int, int) {
	rows := a.height - 8
	if rows < 1 {
		rows = 1
	}
	if rows >= len(a.visible) {
		return 0, len(a.visible)
	}

	start := a.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(a.visible) {
		start = len(a.visible) - rows
	}
	return start, start + rows
}

// renderFinding renders one findings row.
func (a *App) renderFinding(r domain.ValidationResult, selected bool) string {
	loc := r.FilePath
	if r.Line != nil {
		loc = fmt.Sprintf("%s:%d", r.FilePath, *r.Line)
	}
	line := fmt.Sprintf("%s %s %s [%s] %s",
		r.Severity.Symbol(), r.Severity, loc, r.RuleName, r.Message)

	if selected {
		return " " + a.styles.Selected.Render("> "+line)
	}
	return " " + a.styles.ForSeverity(string(r.Severity)).Render("  "+line)
}

// helpLine renders the footer keybinding hints.
func (a *App) helpLine() string {
	var parts []string
	for _, binding := range a.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return a.styles.Help.Render(strings.Join(parts, " · "))
}

// Report returns the last completed report.
func (a *App) Report() *domain.Report {
	return a.report
}

// Findings returns the findings that pass the current filter.
func (a *App) Findings() []domain.ValidationResult {
	return a.visible
}

// Cursor returns the selected finding index.
func (a *App) Cursor() int {
	return a.cursor
}

// Filter returns the display name of the active severity filter.
func (a *App) Filter() string {
	return a.filter.String()
}

// Err returns the last pipeline error.
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
}
