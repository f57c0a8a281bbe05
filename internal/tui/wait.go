package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

const pollInterval = time.Second

// StatusSource returns the settled timer record. Reading it also finishes
// a timer that has run out.
type StatusSource interface {
	Status() (timer.Record, error)
	Now() time.Time
}

// WaitResult is the outcome of a wait.
type WaitResult struct {
	Record    timer.Record
	Cancelled bool
}

// WaitModel polls the timer until it finishes or the user quits. Quitting
// leaves the timer untouched.
type WaitModel struct {
	src      StatusSource
	style    duration.Style
	interval time.Duration

	rec       timer.Record
	now       time.Time
	loaded    bool
	finished  bool
	cancelled bool
	err       error

	width    int
	bar      progress.Model
	help     help.Model
	showHelp bool
}

func NewWaitModel(src StatusSource, style duration.Style) WaitModel {
	if style == duration.StyleSeconds || style == "" {
		style = duration.StyleDigital
	}
	return WaitModel{
		src:      src,
		style:    style,
		interval: pollInterval,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		help:     help.New(),
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WaitModel) fetch() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		rec, err := src.Status()
		return recordMsg{rec: rec, now: src.Now(), err: err}
	}
}

func (m WaitModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tickCmd(m.interval))
}

func (m WaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(msg.Width-8, 60))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		}

	case tickMsg:
		if m.finished || m.cancelled {
			return m, nil
		}
		return m, tea.Batch(m.fetch(), tickCmd(m.interval))

	case recordMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rec, m.now, m.loaded = msg.rec, msg.now, true
		if m.rec.State == timer.Finished {
			m.finished = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// elapsedFraction is the share of the duration already used, 0-1.
func (m WaitModel) elapsedFraction() float64 {
	if m.rec.Duration <= 0 || m.rec.State == timer.Finished {
		return 1
	}
	return float64(m.rec.Elapsed(m.now)) / float64(m.rec.Duration)
}

func (m WaitModel) View() string {
	if !m.loaded {
		return mutedStyle.Render("Reading timer...") + "\n"
	}

	left := duration.Format(m.rec.Left(m.now), m.style)
	var clock, label string
	switch m.rec.State {
	case timer.Running:
		clock = timerRunningStyle.Render(left)
		label = mutedStyle.Render("running")
	case timer.Paused:
		clock = timerPausedStyle.Render(left)
		label = mutedStyle.Render("paused")
	default:
		clock = timerFinishedStyle.Render("Time's up!")
		label = mutedStyle.Render(fmt.Sprintf("%s finished", duration.Segmented(m.rec.Duration)))
	}

	rows := []string{titleStyle.Render("Pomodoro")}
	if m.rec.Message != "" {
		rows = append(rows, highlightStyle.Render(m.rec.Message))
	}
	rows = append(rows, "", clock, label, "", m.bar.ViewAs(m.elapsedFraction()))
	if !m.finished {
		rows = append(rows, "", m.help.View(keys))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, rows...)) + "\n"
}

// Result reports how the wait ended.
func (m WaitModel) Result() (WaitResult, error) {
	return WaitResult{Record: m.rec, Cancelled: m.cancelled}, m.err
}

// Wait runs the wait loop in the terminal.
func Wait(src StatusSource, style duration.Style, opts ...tea.ProgramOption) (WaitResult, error) {
	final, err := tea.NewProgram(NewWaitModel(src, style), opts...).Run()
	if err != nil {
		return WaitResult{}, fmt.Errorf("run wait loop: %w", err)
	}
	m, ok := final.(WaitModel)
	if !ok {
		return WaitResult{}, fmt.Errorf("run wait loop: unexpected model %T", final)
	}
	return m.Result()
}
