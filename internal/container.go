package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/commands"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitlab-scaffolder/internal/infrastructure/repositories"
)

// AppInternal holds the controllers exposed as CLI sub-commands.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the AppInternal from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns every registered controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: infrastructure repos -> domain entities -> domain commands -> controllers)
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}
