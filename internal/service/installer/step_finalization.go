package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep normalizes the collected settings before persistence
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// Telegram without a token cannot start; fall back to CLI only.
	if state.Settings.TelegramToken == "" {
		state.Settings.EnableTelegram = false
	}

	if state.Settings.Debug == "" {
		state.Settings.Debug = "0"
	}

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
