package repositories

import (
	"context"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// ScenarioReader defines read operations for persisted scenarios
type ScenarioReader interface {
	// FindScenarioByID retrieves one scenario by its ID.
	FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error)

	// ListScenarios retrieves all saved scenarios, newest first.
	ListScenarios(ctx context.Context) ([]domain.Scenario, error)
}

// ScenarioWriter defines write operations for persisted scenarios
type ScenarioWriter interface {
	// SaveScenario persists a new scenario.
	SaveScenario(ctx context.Context, scenario domain.Scenario) error

	// UpdateScenario replaces an existing scenario's name and file.
	UpdateScenario(ctx context.Context, scenario domain.Scenario) error

	// DeleteScenario removes a scenario by ID.
	DeleteScenario(ctx context.Context, scenarioID string) error
}

// ScenarioRepositoryFacade combines all scenario-related repository interfaces
type ScenarioRepositoryFacade interface {
	ScenarioReader
	ScenarioWriter
}

// ScenarioRepositoryWithTx extends ScenarioRepositoryFacade with transaction capabilities
type ScenarioRepositoryWithTx interface {
	ScenarioRepositoryFacade
	TransactionManager
}
