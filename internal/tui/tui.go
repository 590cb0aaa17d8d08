package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/memory-dive/internal/engine"
	"github.com/tatianab/memory-dive/internal/models"
	"github.com/tatianab/memory-dive/internal/trigger"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateProcessing
	stateError
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	notice    string
	width     int
	height    int
}

var (
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D7AF"))

	shatterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F")).
			Italic(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	responseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(eng *engine.Engine) model {
	ti := textinput.New()
	ti.Placeholder = "Search the memory index..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     statePlaying,
		engine:    eng,
		textInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type queryProcessedMsg struct {
	outcome engine.Outcome
	err     error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			input := m.textInput.Value()
			m.textInput.Reset()

			if IsCommand(input) {
				notice, err := RunCommand(m.engine, input)
				if errors.Is(err, ErrQuit) {
					return m, tea.Quit
				}
				if err != nil {
					notice = err.Error()
				}
				m.notice = notice
				m.refresh()
				return m, nil
			}

			m.state = stateProcessing
			return m, m.submit(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.70)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, msg.Height-8)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 8
		}
		m.refresh()

	case queryProcessedMsg:
		m.state = statePlaying
		if msg.err != nil {
			if errors.Is(msg.err, engine.ErrBusy) {
				m.notice = "The index is still answering."
				return m, nil
			}
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.notice = msg.outcome.Response
		if msg.outcome.Resolution.Kind == trigger.Reveal {
			m.notice = "✦ " + m.notice
		}
		m.refresh()
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePlaying, stateProcessing:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		notice := responseStyle.Width(int(float64(m.width) * 0.70)).Render(m.notice)
		if m.state == stateProcessing {
			notice = helpStyle.Render("Searching the index...")
		}

		help := helpStyle.Render("Commands: /retrace, /collect <id>, /file <year> <person>, /checkpoint <n>, /sweep, /restart, /quit")

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+notice,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	state := m.engine.Snapshot()
	catalog := m.engine.Catalog()

	var b strings.Builder
	b.WriteString(titleStyle.Render("STABILITY") + "\n")
	fmt.Fprintf(&b, "%d / %d\n", state.SystemStability, models.MaxStability)
	fmt.Fprintf(&b, "Checkpoint: %d\n\n", state.CurrentStoryNode)

	b.WriteString(titleStyle.Render("CONFESSIONS") + "\n")
	for _, id := range state.UnlockedNodeIDs {
		marker := "- "
		if id == state.ActiveNodeID {
			marker = "> "
		}
		b.WriteString(marker + catalog.Title(trigger.Action{Kind: trigger.RevealNode, ID: id}) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("ARCHIVES") + "\n")
	if len(state.UnlockedArchiveIDs) == 0 {
		b.WriteString("(none)\n")
	}
	for _, id := range state.UnlockedArchiveIDs {
		b.WriteString("- " + catalog.Title(archiveAction(id)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("EVIDENCE") + "\n")
	writeList(&b, "People", state.UnlockedPeople, catalog.Label)
	writeList(&b, "Years", state.CollectedYears, catalog.Label)
	writeList(&b, "Clues", state.CollectedClues, catalog.Label)
	writeList(&b, "Dossier", state.CollectedDossierIDs, catalog.Label)

	stateWidth := int(float64(m.width) * 0.28)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func writeList(b *strings.Builder, name string, ids []string, label func(string) string) {
	if len(ids) == 0 {
		return
	}
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = label(id)
	}
	fmt.Fprintf(b, "%s: %s\n", name, strings.Join(labels, ", "))
}

func archiveAction(id string) trigger.Action {
	return trigger.Action{Kind: trigger.RevealArchive, ID: id}
}

func (m model) renderLog() string {
	width := m.viewport.Width
	var b strings.Builder
	for _, entry := range m.engine.Snapshot().History {
		b.WriteString(renderEntry(entry, width) + "\n\n")
	}
	return b.String()
}

func renderEntry(entry models.HistoryEntry, width int) string {
	switch entry.Type {
	case models.HistorySearch:
		return searchStyle.Width(width).Render("> " + entry.Content)
	case models.HistoryInfo:
		return infoStyle.Width(width).Render(entry.Content)
	case models.HistoryShatter:
		return shatterStyle.Width(width).Render(entry.Content)
	default:
		return systemStyle.Width(width).Render(entry.Content)
	}
}

func (m model) submit(query string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.engine.Submit(context.Background(), query)
		return queryProcessedMsg{outcome, err}
	}
}

func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
