package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	coreapp "undoc/internal/core/app"
)

func runUI(app *coreapp.App) error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	sendUpdate := func(update coreapp.Update) {
		p.Send(updateMsg{
			offenses:        update.Offenses,
			exemptions:      update.Exemptions,
			fileCount:       update.FileCount,
			definitionCount: update.DefinitionCount,
		})
	}

	app.SetUpdateHandler(func(update coreapp.Update) {
		sendUpdate(update)
	})

	go func() {
		sendUpdate(app.CurrentUpdate())
	}()

	_, err := p.Run()
	return err
}
