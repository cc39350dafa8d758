package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"mars-gallery/pkg/app/screens"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

type App struct {
	client services.Client
	store  *store.Store
}

func NewApp(client services.Client) *App {
	return &App{client: client, store: store.New()}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.client, a.store)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
