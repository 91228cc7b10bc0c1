package cli

import (
	"github.com/slotwise/slotwise/internal/scheduling/application/services"
	"github.com/slotwise/slotwise/pkg/config"
)

// App exposes the wired services to commands.
type App struct {
	Config              *config.Config
	Orchestrator        *services.Orchestrator
	RescheduleValidator *services.RescheduleValidator
}

var app *App

// SetApp installs the wired application for commands to use.
func SetApp(a *App) {
	app = a
}

// GetApp returns the wired application, or nil in limited mode.
func GetApp() *App {
	return app
}
