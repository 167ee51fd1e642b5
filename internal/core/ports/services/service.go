package services

import (
	"context"
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// ScenarioSvcFacade is what handlers need from the scenario service: CRUD on
// persisted scenarios plus import/export of the versioned file format.
type ScenarioSvcFacade interface {
	CreateScenario(ctx context.Context, name string, file domain.ScenarioFile) (*domain.Scenario, error)
	GetScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error)
	ListScenarios(ctx context.Context) ([]domain.Scenario, error)
	UpdateScenario(ctx context.Context, scenarioID, name string, file domain.ScenarioFile) (*domain.Scenario, error)
	DeleteScenario(ctx context.Context, scenarioID string) error
	ExportScenario(ctx context.Context, scenarioID string) ([]byte, error)
	ImportScenario(ctx context.Context, name string, data []byte) (*domain.Scenario, error)
	PinParticipant(ctx context.Context, scenarioID string, participantName string) error
	PinnedParticipant(ctx context.Context, scenarioID string) (*domain.Participant, error)
	UnpinParticipant(ctx context.Context, scenarioID string) error
}

// TimelineSvcFacade exposes the event-log computations handlers call.
type TimelineSvcFacade interface {
	Replay(events []domain.DomainEvent, asOf *time.Time) domain.ProjectionState
	ValidateChronology(events []domain.DomainEvent) []string
	GenerateCoproSnapshots(events []domain.DomainEvent) []domain.CoproSnapshot
	GenerateParticipantSnapshots(events []domain.DomainEvent) []domain.TimelineSnapshot
}
