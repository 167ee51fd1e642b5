package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	"github.com/castor-coop/credit-castor/internal/core/domain"
	portsrepo "github.com/castor-coop/credit-castor/internal/core/ports/repositories"
)

type PgxPinnedParticipantRepository struct {
	BaseRepository
}

// newPgxPinnedParticipantRepository creates the key-value store for pinned participants.
func newPgxPinnedParticipantRepository(pool *pgxpool.Pool) portsrepo.PinnedParticipantRepositoryFacade {
	return &PgxPinnedParticipantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PinnedParticipantRepositoryFacade = (*PgxPinnedParticipantRepository)(nil)

// LoadPinnedParticipant returns the pinned participant, or nil when none is set.
func (r *PgxPinnedParticipantRepository) LoadPinnedParticipant(ctx context.Context, scenarioID string) (*domain.Participant, error) {
	var payload []byte
	err := r.Pool.QueryRow(ctx,
		`SELECT payload FROM pinned_participants WHERE scenario_id = $1;`, scenarioID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load pinned participant for %s: %w", scenarioID, err)
	}

	var participant domain.Participant
	if err := json.Unmarshal(payload, &participant); err != nil {
		return nil, fmt.Errorf("%w: stored pinned participant: %v", apperrors.ErrParse, err)
	}
	return &participant, nil
}

// SavePinnedParticipant stores the pin, replacing any previous one.
func (r *PgxPinnedParticipantRepository) SavePinnedParticipant(ctx context.Context, scenarioID string, participant domain.Participant) error {
	payload, err := json.Marshal(participant)
	if err != nil {
		return fmt.Errorf("failed to encode pinned participant: %w", err)
	}

	query := `
		INSERT INTO pinned_participants (scenario_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scenario_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, scenarioID, payload, time.Now()); err != nil {
		return fmt.Errorf("failed to save pinned participant for %s: %w", scenarioID, err)
	}
	return nil
}

// ClearPinnedParticipant removes the pin; clearing an absent pin is not an error.
func (r *PgxPinnedParticipantRepository) ClearPinnedParticipant(ctx context.Context, scenarioID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM pinned_participants WHERE scenario_id = $1;`, scenarioID); err != nil {
		return fmt.Errorf("failed to clear pinned participant for %s: %w", scenarioID, err)
	}
	return nil
}
