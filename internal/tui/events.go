package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	eventsHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	eventsLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	eventsHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// EventsModel replays a completed ode.Integrator run: the accepted-step
// trace of one state component, and the detector crossings recorded
// along the way. It scrubs through the recorded run rather than
// re-driving the integrator.
type EventsModel struct {
	modelName string
	times     []float64
	trace     []float64
	evNames   []string
	evTimes   []float64

	cursor int
	width  int
}

// NewEventsModel builds a replay view over a recorded run's accepted-step
// times and one traced state component, alongside its event log.
func NewEventsModel(modelName string, times, trace []float64, eventNames []string, eventTimes []float64) EventsModel {
	return EventsModel{
		modelName: modelName,
		times:     times,
		trace:     trace,
		evNames:   eventNames,
		evTimes:   eventTimes,
		cursor:    len(times) - 1,
		width:     80,
	}
}

// RunEventsProgram runs m as a full-screen Bubble Tea program.
func RunEventsProgram(m EventsModel) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m EventsModel) Init() tea.Cmd { return nil }

func (m EventsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.times)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.times) - 1
		}
	}
	return m, nil
}

func (m EventsModel) View() string {
	var b strings.Builder

	b.WriteString(eventsHeader.Render(fmt.Sprintf("events replay: %s", m.modelName)))
	b.WriteString("\n\n")

	if len(m.trace) == 0 {
		b.WriteString("no recorded steps\n")
		return b.String()
	}

	upto := m.trace[:m.cursor+1]
	graph := asciigraph.Plot(upto,
		asciigraph.Height(12),
		asciigraph.Width(m.width),
		asciigraph.Caption("x0"),
	)
	b.WriteString(graph)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("t = %.4f   step %d/%d\n\n", m.times[m.cursor], m.cursor+1, len(m.times)))

	b.WriteString(eventsLabel.Render("events up to this point:"))
	b.WriteString("\n")
	shown := 0
	for i, et := range m.evTimes {
		if et > m.times[m.cursor] {
			continue
		}
		fmt.Fprintf(&b, "  t=%9.4f  %s\n", et, m.evNames[i])
		shown++
	}
	if shown == 0 {
		b.WriteString("  (none yet)\n")
	}

	b.WriteString(eventsHelp.Render("←/→ scrub   g/G jump to ends   q quit"))
	b.WriteString("\n")
	return b.String()
}
