package services

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// ExportService serializes the event log to the versioned JSON envelope and
// back. Round-trips are lossless except for ExportedAt, which is regenerated
// on every export.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportTimeline wraps the events in the versioned envelope and marshals it.
func (s *ExportService) ExportTimeline(events []domain.DomainEvent) ([]byte, error) {
	envelope := domain.TimelineExport{
		Version:    domain.TimelineExportVersion,
		ExportedAt: time.Now().UTC(),
		Events:     events,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export timeline: %w", err)
	}
	return data, nil
}

// ImportTimeline parses an exported envelope. Malformed JSON, a missing
// version or a non-array event list all fail with a parse error.
func (s *ExportService) ImportTimeline(data []byte) ([]domain.DomainEvent, error) {
	var head struct {
		Version *int            `json:"version"`
		Events  json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: malformed timeline export: %v", apperrors.ErrParse, err)
	}
	if head.Version == nil {
		return nil, fmt.Errorf("%w: timeline export has no version field", apperrors.ErrParse)
	}
	if *head.Version != domain.TimelineExportVersion {
		return nil, fmt.Errorf("%w: unsupported timeline export version %d", apperrors.ErrParse, *head.Version)
	}
	if len(head.Events) == 0 {
		return nil, fmt.Errorf("%w: timeline export has no events array", apperrors.ErrParse)
	}

	var events domain.EventList
	if err := json.Unmarshal(head.Events, &events); err != nil {
		return nil, fmt.Errorf("%w: failed to decode events: %v", apperrors.ErrParse, err)
	}
	return events, nil
}

// ExportScenario marshals a full scenario file.
func (s *ExportService) ExportScenario(file domain.ScenarioFile) ([]byte, error) {
	file.Version = domain.ScenarioFileVersion
	file.Timestamp = time.Now().UTC()
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export scenario: %w", err)
	}
	return data, nil
}

// ImportScenario parses and migrates a scenario file of any supported version.
func (s *ExportService) ImportScenario(data []byte, migration *MigrationService) (domain.ScenarioFile, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.ScenarioFile{}, fmt.Errorf("%w: malformed scenario file: %v", apperrors.ErrParse, err)
	}
	if _, ok := raw["version"]; !ok {
		return domain.ScenarioFile{}, fmt.Errorf("%w: scenario file has no version field", apperrors.ErrParse)
	}

	migrated, err := json.Marshal(migration.MigrateScenarioFile(raw))
	if err != nil {
		return domain.ScenarioFile{}, fmt.Errorf("failed to re-encode migrated scenario: %w", err)
	}

	var file domain.ScenarioFile
	if err := json.Unmarshal(migrated, &file); err != nil {
		return domain.ScenarioFile{}, fmt.Errorf("%w: failed to decode scenario file: %v", apperrors.ErrParse, err)
	}
	file.ProjectParams = migration.MigrateProjectParams(file.ProjectParams)
	if file.PortageFormula == (domain.PortageFormulaParams{}) {
		file.PortageFormula = domain.DefaultPortageFormulaParams()
	}
	if file.DeedDate.IsZero() {
		file.DeedDate = domain.DefaultDeedDate
	}
	return file, nil
}
