package repositories

import (
	"context"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// PinnedParticipantRepositoryFacade is the key-value store collaborators use
// to remember which participant a scenario is focused on.
type PinnedParticipantRepositoryFacade interface {
	// LoadPinnedParticipant returns the pinned participant, or nil when none is set.
	LoadPinnedParticipant(ctx context.Context, scenarioID string) (*domain.Participant, error)

	// SavePinnedParticipant stores the pinned participant for a scenario.
	SavePinnedParticipant(ctx context.Context, scenarioID string, participant domain.Participant) error

	// ClearPinnedParticipant removes the pin for a scenario.
	ClearPinnedParticipant(ctx context.Context, scenarioID string) error
}
