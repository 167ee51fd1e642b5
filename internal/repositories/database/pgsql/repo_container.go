package pgsql

import (
	portsrepo "github.com/castor-coop/credit-castor/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	scenarioRepo := newPgxScenarioRepository(dbPool)
	pinnedRepo := newPgxPinnedParticipantRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ScenarioRepo:          scenarioRepo,
		PinnedParticipantRepo: pinnedRepo,
	}
}
