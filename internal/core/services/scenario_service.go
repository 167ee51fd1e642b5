package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	"github.com/castor-coop/credit-castor/internal/core/domain"
	portsrepo "github.com/castor-coop/credit-castor/internal/core/ports/repositories"
	"github.com/castor-coop/credit-castor/internal/utils"
)

// ScenarioService persists named scenario files and handles their
// import/export lifecycle: validate, sync sold dates, merge portage defaults
// and migrate older formats on the way in.
type ScenarioService struct {
	scenarioRepo portsrepo.ScenarioRepositoryFacade
	pinnedRepo   portsrepo.PinnedParticipantRepositoryFacade
	export       *ExportService
	migration    *MigrationService
	lots         *LotService
}

func NewScenarioService(scenarioRepo portsrepo.ScenarioRepositoryFacade, pinnedRepo portsrepo.PinnedParticipantRepositoryFacade, export *ExportService, migration *MigrationService, lots *LotService) *ScenarioService {
	return &ScenarioService{
		scenarioRepo: scenarioRepo,
		pinnedRepo:   pinnedRepo,
		export:       export,
		migration:    migration,
		lots:         lots,
	}
}

// normalizeFile applies the load pipeline to a scenario file.
func (s *ScenarioService) normalizeFile(file domain.ScenarioFile) (domain.ScenarioFile, error) {
	if err := s.validateFile(file); err != nil {
		return file, err
	}
	file.Participants = s.syncSoldDates(file.Participants, file.DeedDate)
	if file.PortageFormula == (domain.PortageFormulaParams{}) {
		file.PortageFormula = domain.DefaultPortageFormulaParams()
	}
	file.ProjectParams = s.migration.MigrateProjectParams(file.ProjectParams)
	if file.DeedDate.IsZero() {
		file.DeedDate = domain.DefaultDeedDate
	}
	file.Version = domain.ScenarioFileVersion
	return file, nil
}

func (s *ScenarioService) validateFile(file domain.ScenarioFile) error {
	seen := make(map[string]bool, len(file.Participants))
	for _, p := range file.Participants {
		if p.Name == "" {
			return fmt.Errorf("%w: participant with empty name", apperrors.ErrValidation)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate participant name %q", apperrors.ErrValidation, p.Name)
		}
		seen[p.Name] = true
		if p.Surface < 0 {
			return fmt.Errorf("%w: participant %q has negative surface", apperrors.ErrValidation, p.Name)
		}
	}
	if count := s.lots.CountLots(file.Participants, domain.CoproEntity{}); count > maxLotsOrDefault(file.ProjectParams) {
		return fmt.Errorf("%w: scenario holds %d lots, more than the %d lot maximum",
			apperrors.ErrValidation, count, maxLotsOrDefault(file.ProjectParams))
	}
	return nil
}

// syncSoldDates aligns each seller lot's sold date with the buyer's entry
// date, so the consistency check holds after edits.
func (s *ScenarioService) syncSoldDates(participants []domain.Participant, deedDate time.Time) []domain.Participant {
	out := append([]domain.Participant(nil), participants...)
	for _, buyer := range out {
		if buyer.PurchaseDetails == nil || buyer.PurchaseDetails.BuyingFrom == domain.CoproprieteName {
			continue
		}
		entry := buyer.EffectiveEntryDate(utils.DateOrDefault(&deedDate, domain.DefaultDeedDate))
		for i := range out {
			if out[i].Name != buyer.PurchaseDetails.BuyingFrom {
				continue
			}
			for j := range out[i].LotsOwned {
				lot := &out[i].LotsOwned[j]
				if lot.SoldTo != buyer.Name {
					continue
				}
				soldDate := entry
				lot.SoldDate = &soldDate
			}
		}
	}
	return out
}

func (s *ScenarioService) CreateScenario(ctx context.Context, name string, file domain.ScenarioFile) (*domain.Scenario, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: scenario name is required", apperrors.ErrValidation)
	}
	normalized, err := s.normalizeFile(file)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scenario := domain.Scenario{
		ScenarioID: uuid.NewString(),
		Name:       name,
		File:       normalized,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.scenarioRepo.SaveScenario(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}
	return &scenario, nil
}

func (s *ScenarioService) GetScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	scenario, err := s.scenarioRepo.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	return scenario, nil
}

func (s *ScenarioService) ListScenarios(ctx context.Context) ([]domain.Scenario, error) {
	scenarios, err := s.scenarioRepo.ListScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	if scenarios == nil {
		return []domain.Scenario{}, nil
	}
	return scenarios, nil
}

func (s *ScenarioService) UpdateScenario(ctx context.Context, scenarioID, name string, file domain.ScenarioFile) (*domain.Scenario, error) {
	existing, err := s.scenarioRepo.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario for update: %w", err)
	}
	normalized, err := s.normalizeFile(file)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.File = normalized
	existing.UpdatedAt = time.Now()
	if err := s.scenarioRepo.UpdateScenario(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to update scenario: %w", err)
	}
	return existing, nil
}

func (s *ScenarioService) DeleteScenario(ctx context.Context, scenarioID string) error {
	if err := s.scenarioRepo.DeleteScenario(ctx, scenarioID); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if err := s.pinnedRepo.ClearPinnedParticipant(ctx, scenarioID); err != nil {
		return fmt.Errorf("failed to clear pinned participant: %w", err)
	}
	return nil
}

func (s *ScenarioService) ExportScenario(ctx context.Context, scenarioID string) ([]byte, error) {
	scenario, err := s.scenarioRepo.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario for export: %w", err)
	}
	return s.export.ExportScenario(scenario.File)
}

func (s *ScenarioService) ImportScenario(ctx context.Context, name string, data []byte) (*domain.Scenario, error) {
	file, err := s.export.ImportScenario(data, s.migration)
	if err != nil {
		return nil, err
	}
	return s.CreateScenario(ctx, name, file)
}

func (s *ScenarioService) PinParticipant(ctx context.Context, scenarioID string, participantName string) error {
	scenario, err := s.scenarioRepo.FindScenarioByID(ctx, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	for _, p := range scenario.File.Participants {
		if p.Name == participantName {
			return s.pinnedRepo.SavePinnedParticipant(ctx, scenarioID, p)
		}
	}
	return fmt.Errorf("%w: participant %q not in scenario", apperrors.ErrNotFound, participantName)
}

func (s *ScenarioService) PinnedParticipant(ctx context.Context, scenarioID string) (*domain.Participant, error) {
	return s.pinnedRepo.LoadPinnedParticipant(ctx, scenarioID)
}

func (s *ScenarioService) UnpinParticipant(ctx context.Context, scenarioID string) error {
	return s.pinnedRepo.ClearPinnedParticipant(ctx, scenarioID)
}
