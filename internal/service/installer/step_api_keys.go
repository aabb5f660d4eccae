package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenWeatherKeyStep collects the OpenWeatherMap API key. The key is
// mandatory: without it there is no weather data at all.
type OpenWeatherKeyStep struct {
	input    textinput.Model
	reminded bool
}

func NewOpenWeatherKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "32-character hex key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &OpenWeatherKeyStep{input: ti}
}

func (s *OpenWeatherKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *OpenWeatherKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			key := strings.TrimSpace(s.input.Value())
			if key == "" {
				s.reminded = true
				return s, nil
			}
			state.Settings.OpenWeatherKey = key
			return nil, nil
		}
	}
	return s, cmd
}

func (s *OpenWeatherKeyStep) View(state *InstallState) string {
	view := "Enter your OpenWeatherMap API Key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
	if s.reminded {
		view += errorStyle.Render("An OpenWeatherMap key is required.") + "\n"
	}
	return view
}

// OpenAIKeyStep collects the optional OpenAI API key. Without it the
// chatbot answers from the rule-based fallback only.
type OpenAIKeyStep struct {
	input textinput.Model
}

func NewOpenAIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "sk-... (optional - press Enter to skip)"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &OpenAIKeyStep{input: ti}
}

func (s *OpenAIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *OpenAIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.OpenAIKey = strings.TrimSpace(s.input.Value())
			return nil, nil
		}
	}
	return s, cmd
}

func (s *OpenAIKeyStep) View(state *InstallState) string {
	return "Enter your OpenAI API Key (optional - press Enter to skip):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// ModelStep picks the chat model; skipped entirely when no OpenAI key
// was provided.
type ModelStep struct {
	input textinput.Model
}

func NewModelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Placeholder = "gpt-3.5-turbo"

	return &ModelStep{input: ti}
}

func (s *ModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Settings.OpenAIKey == "" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.Model = strings.TrimSpace(s.input.Value())
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return "Chat model (press Enter for gpt-3.5-turbo):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
