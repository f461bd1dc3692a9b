package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/school-maze/pkg/textfilter"
)

var (
	promptTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFA500")).
				Bold(true)

	promptHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

// nameModel asks for the player's name before the game starts.
type nameModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
}

func newNameModel() nameModel {
	ti := textinput.New()
	ti.Placeholder = textfilter.DefaultName
	ti.Focus()
	ti.CharLimit = textfilter.MaxNameLength
	ti.Width = textfilter.MaxNameLength + 2
	return nameModel{input: ti}
}

func (m nameModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m nameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m nameModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s\n",
		promptTitleStyle.Render("What is your name, student?"),
		m.input.View(),
		promptHelpStyle.Render("enter to start, esc to stay anonymous"))
}

// Value is the typed name, empty when the prompt was cancelled.
func (m nameModel) Value() string {
	if m.cancelled {
		return ""
	}
	return strings.TrimSpace(m.input.Value())
}

// promptName runs the name prompt on the terminal.
func promptName() (string, error) {
	final, err := tea.NewProgram(newNameModel()).Run()
	if err != nil {
		return "", err
	}
	return final.(nameModel).Value(), nil
}
