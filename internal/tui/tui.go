// Package tui provides the Bubble Tea rename dialog.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/layer-renamer/internal/config"
	"github.com/handiism/layer-renamer/internal/history"
	"github.com/handiism/layer-renamer/internal/rename"
	"github.com/handiism/layer-renamer/internal/template"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRenaming
	StateComplete
	StateError
)

// counterLegend explains the sequence-number markers of the preview.
const counterLegend = template.AscendingMarker + " counts down to the last layer, " +
	template.DescendingMarker + " counts up from the first"

// errCancelled is reported when the dialog is left before confirming.
var errCancelled = errors.New("cancelled by user")

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   rename.ProgressLevel
}

// Config holds what the dialog works with.
type Config struct {
	Driver      *rename.Driver
	Settings    *config.Settings
	History     *history.History
	HistoryPath string
	Logger      *zap.Logger
}

// Model is the Bubble Tea model for the rename dialog.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model

	driver      *rename.Driver
	settings    *config.Settings
	history     *history.History
	historyPath string
	logger      *zap.Logger

	// Preview context built once when the dialog opens.
	preview      template.RenderContext
	previewReady bool

	// Recent templates, most recent first; historyIdx -1 means none picked
	// and draft holds what was typed before the first pick.
	recent     []string
	historyIdx int
	draft      string

	groupIdx   int
	keywordIdx int

	logs   []LogEntry
	result *rename.Result
	err    error

	ctx    context.Context
	cancel context.CancelFunc

	done  int32
	total int32

	width  int
	height int
}

// NewModel creates the dialog model.
//
// The input starts with the most recent template, or the configured
// default when there is no history.
func NewModel(cfg Config) Model {
	settings := cfg.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	hist := cfg.History
	if hist == nil {
		hist = history.New(settings.HistorySize)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	historyPath := cfg.HistoryPath
	if historyPath == "" {
		historyPath = settings.HistoryPath
	}

	recent := hist.Recent()

	ti := textinput.New()
	ti.Placeholder = "{layer:name}_{nn:1}"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	if len(recent) > 0 {
		ti.SetValue(recent[0])
	} else {
		ti.SetValue(settings.DefaultTemplate)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		progress:    prog,
		driver:      cfg.Driver,
		settings:    settings,
		history:     hist,
		historyPath: historyPath,
		logger:      logger,
		recent:      recent,
		historyIdx:  -1,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadPreview())
}

// Message types
type (
	// PreviewReadyMsg carries the preview context read from the host.
	PreviewReadyMsg struct {
		Context template.RenderContext
		Err     error
	}

	// RenameDoneMsg is sent when the batch finished.
	RenameDoneMsg struct {
		Result *rename.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			// A confirmed batch runs to completion so its result is reported.
			if m.state == StateRenaming {
				return m, nil
			}
			if msg.String() == "ctrl+c" {
				m.cancel()
				return m, tea.Quit
			}
			if m.state == StateInput {
				m.cancel()
				m.err = errCancelled
				return m, tea.Quit
			}

		case "enter":
			if m.state == StateInput {
				tmpl := m.textInput.Value()
				if strings.TrimSpace(tmpl) == "" {
					return m, nil
				}
				m.remember(tmpl)
				m.state = StateRenaming
				m.textInput.Blur()
				return m, tea.Batch(m.startRename(tmpl), m.tickProgress(), m.spinner.Tick)
			}
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "tab":
			if m.state == StateInput {
				m.groupIdx = (m.groupIdx + 1) % len(template.Groups())
				m.keywordIdx = 0
				return m, nil
			}

		case "shift+tab":
			if m.state == StateInput {
				n := len(template.Groups())
				m.groupIdx = (m.groupIdx + n - 1) % n
				m.keywordIdx = 0
				return m, nil
			}

		case "pgdown":
			if m.state == StateInput {
				if m.keywordIdx < len(m.keywords())-1 {
					m.keywordIdx++
				}
				return m, nil
			}

		case "pgup":
			if m.state == StateInput {
				if m.keywordIdx > 0 {
					m.keywordIdx--
				}
				return m, nil
			}

		case "ctrl+k":
			if m.state == StateInput {
				m.insertKeyword()
				return m, nil
			}

		case "down":
			if m.state == StateInput && len(m.recent) > 0 {
				if m.historyIdx == -1 {
					m.draft = m.textInput.Value()
				}
				if m.historyIdx < len(m.recent)-1 {
					m.historyIdx++
				}
				m.textInput.SetValue(m.recent[m.historyIdx])
				m.textInput.CursorEnd()
				return m, nil
			}

		case "up":
			if m.state == StateInput && m.historyIdx >= 0 {
				m.historyIdx--
				if m.historyIdx == -1 {
					m.textInput.SetValue(m.draft)
				} else {
					m.textInput.SetValue(m.recent[m.historyIdx])
				}
				m.textInput.CursorEnd()
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PreviewReadyMsg:
		if msg.Err != nil {
			m.logger.Warn("Preview unavailable", zap.Error(msg.Err))
			m.addLog(fmt.Sprintf("Preview unavailable: %v", msg.Err), rename.LevelWarning)
		} else {
			m.preview = msg.Context
			m.previewReady = true
		}

	case RenameDoneMsg:
		m.result = msg.Result
		if m.driver != nil {
			m.done, m.total = m.driver.Progress()
		}
		if msg.Result != nil {
			for _, f := range msg.Result.Failed {
				m.addLog(f.Error(), rename.LevelError)
			}
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.driver != nil && m.state == StateRenaming {
			m.done, m.total = m.driver.Progress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Result returns the batch result, or nil when nothing was renamed.
func (m Model) Result() *rename.Result {
	return m.result
}

// Err returns the error the dialog ended with.
func (m Model) Err() error {
	return m.err
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Preview resolves the current input against the preview context.
func (m Model) Preview() string {
	return template.Resolve(m.textInput.Value(), m.preview)
}

func (m Model) keywords() []template.Placeholder {
	return template.ByGroup(template.Groups()[m.groupIdx])
}

// insertKeyword puts the highlighted keyword at the input cursor.
func (m *Model) insertKeyword() {
	kws := m.keywords()
	if len(kws) == 0 {
		return
	}
	token := []rune(kws[m.keywordIdx].Token)
	value := []rune(m.textInput.Value())
	pos := m.textInput.Position()
	if pos > len(value) {
		pos = len(value)
	}

	out := make([]rune, 0, len(value)+len(token))
	out = append(out, value[:pos]...)
	out = append(out, token...)
	out = append(out, value[pos:]...)

	m.textInput.SetValue(string(out))
	m.textInput.SetCursor(pos + len(token))
}

// remember adds tmpl to the history and saves it. A failed save is logged
// and does not stop the rename.
func (m *Model) remember(tmpl string) {
	m.history.Add(tmpl)
	if m.historyPath == "" {
		return
	}
	if err := m.history.Save(m.ctx, m.historyPath); err != nil {
		m.logger.Warn("Failed to save history", zap.String("path", m.historyPath), zap.Error(err))
		m.addLog(fmt.Sprintf("Could not save history: %v", err), rename.LevelWarning)
	}
}

func (m *Model) addLog(message string, level rename.ProgressLevel) {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	// Keep only last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// loadPreview reads the preview context from the host.
func (m Model) loadPreview() tea.Cmd {
	driver, ctx := m.driver, m.ctx
	return func() tea.Msg {
		if driver == nil {
			return PreviewReadyMsg{Err: errors.New("no host")}
		}
		pc, err := driver.PreviewContext(ctx)
		return PreviewReadyMsg{Context: pc, Err: err}
	}
}

// startRename runs the batch in the background.
func (m Model) startRename(tmpl string) tea.Cmd {
	driver, ctx := m.driver, m.ctx
	return func() tea.Msg {
		if driver == nil {
			return RenameDoneMsg{Err: errors.New("no host")}
		}
		result, err := driver.Run(ctx, tmpl)
		return RenameDoneMsg{Result: result, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Batch Layer Renamer"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Rename the selected layers from a template"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRenaming:
		b.WriteString(m.viewRenaming())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Rename selected layers to:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(highlightTemplate(m.textInput.Value()))
	b.WriteString("\n")

	if m.previewReady {
		b.WriteString(infoStyle.Render("Preview: "))
		b.WriteString(previewStyle.Render(m.Preview()))
		b.WriteString("\n")
		if template.HasCounters(m.textInput.Value()) {
			b.WriteString(dimStyle.Render(counterLegend))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Recent (%d/%d):", len(m.recent), m.history.Limit())))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for i, tmpl := range m.recent {
		if i == m.historyIdx {
			b.WriteString(previewStyle.Render("› " + tmpl))
		} else {
			b.WriteString(dimStyle.Render("  " + tmpl))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.viewKeywords())

	for _, log := range m.logs {
		b.WriteString("\n")
		b.WriteString(renderLog(log))
	}

	return b.String()
}

// highlightTemplate renders tmpl with recognised keywords set apart from
// literal text.
func highlightTemplate(tmpl string) string {
	var b strings.Builder
	for _, seg := range template.Tokens(tmpl) {
		if seg.Kind == template.SegmentPlaceholder {
			b.WriteString(activeTabStyle.Render(seg.Text))
			continue
		}
		b.WriteString(dimStyle.Render(seg.Text))
	}
	return b.String()
}

func (m Model) viewKeywords() string {
	var b strings.Builder

	var tabs []string
	for i, g := range template.Groups() {
		if i == m.groupIdx {
			tabs = append(tabs, activeTabStyle.Render(g.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(g.String()))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n")

	for i, p := range m.keywords() {
		line := fmt.Sprintf("%-24s %s", p.Token, p.Description)
		if i == m.keywordIdx {
			b.WriteString(previewStyle.Render("› " + line))
		} else {
			b.WriteString(dimStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRenaming() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Renaming layers..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Steps: %d/%d", m.done, m.total)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	renamed, failed := 0, 0
	if m.result != nil {
		renamed, failed = len(m.result.Renamed), len(m.result.Failed)
	}

	box := boxStyle.Render(fmt.Sprintf(
		"Rename Complete!\n\n"+
			"Renamed: %d\n"+
			"Failed: %d",
		renamed,
		failed,
	))
	b.WriteString(box)
	b.WriteString("\n")

	if failed > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, log := range m.logs {
		b.WriteString(renderLog(log))
		b.WriteString("\n")
	}
	return b.String()
}

func renderLog(log LogEntry) string {
	var style lipgloss.Style
	prefix := "•"
	switch log.Level {
	case rename.LevelError:
		style = errorStyle
		prefix = "✗"
	case rename.LevelWarning:
		style = warningStyle
		prefix = "!"
	case rename.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case rename.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + log.Message)
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: rename • ↑/↓: recent • tab: keywords • pgup/pgdn + ctrl+k: insert keyword • esc: cancel"
	case StateRenaming:
		return "renaming..."
	case StateComplete, StateError:
		return "enter/q: quit"
	}
	return ""
}

// Run starts the dialog and returns the batch result.
//
// Leaving the dialog before confirming returns a nil result and a nil
// error: nothing was renamed.
func Run(cfg Config) (*rename.Result, error) {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if errors.Is(m.err, errCancelled) {
		return nil, nil
	}
	return m.result, m.err
}
