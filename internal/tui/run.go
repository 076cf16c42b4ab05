package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cinder-flash/cinder/internal/app"
)

// Run blocks on the bubbletea program until the user quits or the app
// context shuts down.
func Run(appCtx *app.Context) error {
	p := tea.NewProgram(NewModel(appCtx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
