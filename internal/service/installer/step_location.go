package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CityStep sets the city shown before the user searches for another.
type CityStep struct {
	input textinput.Model
}

func NewCityStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Placeholder = "London"

	return &CityStep{input: ti}
}

func (s *CityStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CityStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.DefaultCity = strings.TrimSpace(s.input.Value())
			return nil, nil
		}
	}
	return s, cmd
}

func (s *CityStep) View(state *InstallState) string {
	return "Default city (press Enter for London):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// UnitsStep selects the measurement system.
type UnitsStep struct {
	choices []string
	cursor  int
}

func NewUnitsStep() Step {
	return &UnitsStep{
		choices: []string{"metric", "imperial"},
		cursor:  0,
	}
}

func (s *UnitsStep) Init() tea.Cmd {
	return nil
}

func (s *UnitsStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.Settings.Units = s.choices[s.cursor]
			return nil, nil
		}
	}
	return s, nil
}

func (s *UnitsStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select your unit system:\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
