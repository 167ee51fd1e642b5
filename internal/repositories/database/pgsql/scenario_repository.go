package pgsql

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	"github.com/castor-coop/credit-castor/internal/core/domain"
	portsrepo "github.com/castor-coop/credit-castor/internal/core/ports/repositories"
)

type PgxScenarioRepository struct {
	BaseRepository
}

// newPgxScenarioRepository creates a new repository for persisted scenarios.
func newPgxScenarioRepository(pool *pgxpool.Pool) portsrepo.ScenarioRepositoryWithTx {
	return &PgxScenarioRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ScenarioRepositoryWithTx = (*PgxScenarioRepository)(nil)

// SaveScenario inserts a new scenario; the file is stored as JSONB.
func (r *PgxScenarioRepository) SaveScenario(ctx context.Context, scenario domain.Scenario) error {
	payload, err := json.Marshal(scenario.File)
	if err != nil {
		return fmt.Errorf("failed to encode scenario %s: %w", scenario.ScenarioID, err)
	}

	query := `
		INSERT INTO scenarios (scenario_id, name, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = r.Pool.Exec(ctx, query,
		scenario.ScenarioID,
		scenario.Name,
		payload,
		scenario.CreatedAt,
		scenario.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", scenario.ScenarioID, err)
	}
	return nil
}

// UpdateScenario replaces an existing scenario's name and file.
func (r *PgxScenarioRepository) UpdateScenario(ctx context.Context, scenario domain.Scenario) error {
	payload, err := json.Marshal(scenario.File)
	if err != nil {
		return fmt.Errorf("failed to encode scenario %s: %w", scenario.ScenarioID, err)
	}

	query := `
		UPDATE scenarios
		SET name = $2, payload = $3, updated_at = $4
		WHERE scenario_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, scenario.ScenarioID, scenario.Name, payload, scenario.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update scenario %s: %w", scenario.ScenarioID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenario.ScenarioID)
	}
	return nil
}

// FindScenarioByID retrieves one scenario.
func (r *PgxScenarioRepository) FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	query := `
		SELECT scenario_id, name, payload, created_at, updated_at
		FROM scenarios
		WHERE scenario_id = $1;
	`
	scenario, err := scanScenario(r.Pool.QueryRow(ctx, query, scenarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenarioID)
		}
		return nil, fmt.Errorf("failed to find scenario %s: %w", scenarioID, err)
	}
	return scenario, nil
}

// ListScenarios retrieves all saved scenarios, newest first.
func (r *PgxScenarioRepository) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	query := `
		SELECT scenario_id, name, payload, created_at, updated_at
		FROM scenarios
		ORDER BY updated_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		scenario, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		scenarios = append(scenarios, *scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading scenario rows: %w", err)
	}
	return scenarios, nil
}

// DeleteScenario removes a scenario by ID, along with its pinned
// participant row, in one transaction.
func (r *PgxScenarioRepository) DeleteScenario(ctx context.Context, scenarioID string) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM pinned_participants WHERE scenario_id = $1;`, scenarioID); err != nil {
			return fmt.Errorf("failed to delete pinned participant for scenario %s: %w", scenarioID, err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM scenarios WHERE scenario_id = $1;`, scenarioID)
		if err != nil {
			return fmt.Errorf("failed to delete scenario %s: %w", scenarioID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: scenario %s", apperrors.ErrNotFound, scenarioID)
		}
		return nil
	})
}

func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var scenario domain.Scenario
	var payload []byte
	if err := row.Scan(&scenario.ScenarioID, &scenario.Name, &payload, &scenario.CreatedAt, &scenario.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &scenario.File); err != nil {
		return nil, fmt.Errorf("%w: stored scenario payload: %v", apperrors.ErrParse, err)
	}
	return &scenario, nil
}
