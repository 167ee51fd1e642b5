package dto

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// CreateScenarioRequest names and supplies a full scenario file to persist.
type CreateScenarioRequest struct {
	Name string              `json:"name" binding:"required,notblank"`
	File domain.ScenarioFile `json:"file" binding:"required"`
}

// UpdateScenarioRequest replaces a stored scenario's name and contents.
type UpdateScenarioRequest struct {
	Name string              `json:"name" binding:"required,notblank"`
	File domain.ScenarioFile `json:"file" binding:"required"`
}

// ImportScenarioRequest wraps a raw scenario file, possibly in an older
// format, to migrate and persist under the given name.
type ImportScenarioRequest struct {
	Name string `json:"name" binding:"required,notblank"`
	Data string `json:"data" binding:"required"`
}

// PinParticipantRequest selects the participant a scenario opens on.
type PinParticipantRequest struct {
	ParticipantName string `json:"participantName" binding:"required,notblank"`
}

// ScenarioResponse is the full stored scenario.
type ScenarioResponse struct {
	ScenarioID string              `json:"scenarioID"`
	Name       string              `json:"name"`
	File       domain.ScenarioFile `json:"file"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ScenarioSummaryResponse is the listing form, without the file payload.
type ScenarioSummaryResponse struct {
	ScenarioID   string    `json:"scenarioID"`
	Name         string    `json:"name"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToScenarioResponse converts a domain.Scenario to its response DTO.
func ToScenarioResponse(s *domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ScenarioID: s.ScenarioID,
		Name:       s.Name,
		File:       s.File,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ToListScenarioResponse converts stored scenarios to their listing DTOs.
func ToListScenarioResponse(scenarios []domain.Scenario) []ScenarioSummaryResponse {
	res := make([]ScenarioSummaryResponse, len(scenarios))
	for i, s := range scenarios {
		res[i] = ScenarioSummaryResponse{
			ScenarioID:   s.ScenarioID,
			Name:         s.Name,
			Participants: len(s.File.Participants),
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
		}
	}
	return res
}
