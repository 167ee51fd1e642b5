package dto

import (
	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// CalculateRequest carries everything needed to compute the full cost and
// financing table for a set of participants.
type CalculateRequest struct {
	Participants []domain.Participant         `json:"participants" binding:"required,min=1"`
	Params       domain.ProjectParams         `json:"params" binding:"required"`
	UnitDetails  map[string]domain.UnitDetail `json:"unitDetails"`
}

// CalculationResponse wraps the computed per-participant rows and totals.
type CalculationResponse struct {
	Results domain.CalculationResults `json:"results"`
}

// ToCalculationResponse converts domain results to the response DTO.
func ToCalculationResponse(results domain.CalculationResults) CalculationResponse {
	return CalculationResponse{Results: results}
}
