package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/programme-lv/unsolved/present"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
)

type phase int

const (
	phaseEnterHandle phase = iota
	phaseLoading
	phaseResults
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type resultMsg struct {
	view present.UnsolvedView
	err  error
}

type model struct {
	phase phase

	srvc           *unsolvedsrvc.UnsolvedSrvc
	problemBaseURL string
	chartPath      string

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	handle       string
	err          error
	chartOK      bool
	chartSkipped bool
	width        int
	height       int
}

func initialModel(srvc *unsolvedsrvc.UnsolvedSrvc, problemBaseURL, chartPath string) model {
	ti := textinput.New()
	ti.Placeholder = "tourist"
	ti.Prompt = "Handle: "
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		phase:          phaseEnterHandle,
		srvc:           srvc,
		problemBaseURL: problemBaseURL,
		chartPath:      chartPath,
		input:          ti,
		spinner:        sp,
		viewport:       viewport.New(80, 20),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// fetchCmd runs one pipeline invocation off the UI loop.
func (m model) fetchCmd(handle string) tea.Cmd {
	srvc, baseURL := m.srvc, m.problemBaseURL
	return func() tea.Msg {
		view, err := compute(context.Background(), srvc, handle, baseURL)
		return resultMsg{view: view, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.phase {
	case phaseEnterHandle:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				return m, tea.Quit
			case "enter":
				handle := strings.TrimSpace(m.input.Value())
				if handle == "" {
					return m, nil
				}
				m.handle = handle
				m.err = nil
				m.phase = phaseLoading
				return m, tea.Batch(m.spinner.Tick, m.fetchCmd(handle))
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseLoading:
		switch msg := msg.(type) {
		case resultMsg:
			m.phase = phaseResults
			m.err = msg.err
			m.chartOK = false
			m.chartSkipped = false
			if msg.err == nil {
				m.viewport.SetContent(present.RenderText(msg.view, m.barWidth()))
				m.viewport.GotoTop()
				switch {
				case m.chartPath == "":
				case len(msg.view.Tags) == 0:
					m.chartSkipped = true
				default:
					if err := writeChart(m.chartPath, msg.view.Tags); err != nil {
						m.err = err
					} else {
						m.chartOK = true
					}
				}
			}
			return m, nil
		case spinner.TickMsg:
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case phaseResults:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "q", "esc":
				return m, tea.Quit
			case "n":
				m.phase = phaseEnterHandle
				m.input.Reset()
				return m, textinput.Blink
			}
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) barWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width/3, 10)
}

func (m model) View() string {
	switch m.phase {
	case phaseEnterHandle:
		s := "Find the problems you tried but never solved.\n\n"
		s += m.input.View() + "\n\n"
		s += helpStyle.Render("enter: search • esc: quit")
		return s
	case phaseLoading:
		return fmt.Sprintf("%s Loading submissions of %s...\n", m.spinner.View(), m.handle)
	case phaseResults:
		if m.err != nil {
			return present.ErrStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" +
				helpStyle.Render("n: new search • q: quit")
		}
		footer := "↑/↓: scroll • n: new search • q: quit"
		switch {
		case m.chartOK:
			footer = fmt.Sprintf("chart written to %s • %s", m.chartPath, footer)
		case m.chartSkipped:
			footer = fmt.Sprintf("no tags to chart, %s not written • %s", m.chartPath, footer)
		}
		return m.viewport.View() + "\n" + helpStyle.Render(footer)
	default:
		return ""
	}
}
