package services

import (
	portsrepo "github.com/castor-coop/credit-castor/internal/core/ports/repositories"
	portssvc "github.com/castor-coop/credit-castor/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Calculation    *CalculationService
	FraisGeneraux  *FraisGenerauxService
	Portage        *PortageService
	Redistribution *RedistributionService
	Projection     *ProjectionService
	Timeline       *TimelineService
	CashFlow       *CashFlowService
	Migration      *MigrationService
	Export         *ExportService
	Lots           *LotService
	Scenario       portssvc.ScenarioSvcFacade
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	container := &Container{}

	// Pure calculation services come first; the rest build on them.
	container.FraisGeneraux = NewFraisGenerauxService()
	container.Calculation = NewCalculationService(container.FraisGeneraux)
	container.Portage = NewPortageService()
	container.Redistribution = NewRedistributionService(container.Portage)
	container.Projection = NewProjectionService()
	container.Timeline = NewTimelineService(container.Calculation, container.Projection)
	container.CashFlow = NewCashFlowService(container.Calculation)
	container.Migration = NewMigrationService()
	container.Export = NewExportService()
	container.Lots = NewLotService()

	if repos != nil {
		container.Scenario = NewScenarioService(
			repos.ScenarioRepo,
			repos.PinnedParticipantRepo,
			container.Export,
			container.Migration,
			container.Lots,
		)
	}

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ScenarioSvcFacade = (*ScenarioService)(nil)
	_ portssvc.TimelineSvcFacade = (*TimelineService)(nil)
)
