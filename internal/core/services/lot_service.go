package services

import (
	"fmt"

	"github.com/castor-coop/credit-castor/internal/apperrors"
	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// LotService enforces the project-wide lot capacity.
type LotService struct{}

func NewLotService() *LotService {
	return &LotService{}
}

func maxLotsOrDefault(params domain.ProjectParams) int {
	if params.MaxTotalLots > 0 {
		return params.MaxTotalLots
	}
	return domain.DefaultMaxTotalLots
}

// CountLots counts every lot in the project: itemized participant lots, the
// legacy quantity model, and the copropriété's own inventory.
func (s *LotService) CountLots(participants []domain.Participant, copro domain.CoproEntity) int {
	count := 0
	for _, p := range participants {
		if !p.Enabled {
			continue
		}
		if len(p.LotsOwned) > 0 {
			count += len(p.LotsOwned)
		} else {
			count += p.QuantityOrOne()
		}
	}
	return count + len(copro.LotsOwned)
}

// RemainingCapacity is how many lots may still be added.
func (s *LotService) RemainingCapacity(participants []domain.Participant, copro domain.CoproEntity, params domain.ProjectParams) int {
	remaining := maxLotsOrDefault(params) - s.CountLots(participants, copro)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WouldExceed reports whether adding n lots breaks the project cap.
func (s *LotService) WouldExceed(participants []domain.Participant, copro domain.CoproEntity, params domain.ProjectParams, n int) bool {
	return s.CountLots(participants, copro)+n > maxLotsOrDefault(params)
}

// ValidateAddPortageLot checks that a founder may take an extra portage lot.
func (s *LotService) ValidateAddPortageLot(participants []domain.Participant, copro domain.CoproEntity, params domain.ProjectParams) error {
	if s.WouldExceed(participants, copro, params, 1) {
		return fmt.Errorf("%w: adding a portage lot exceeds the %d lot maximum", apperrors.ErrValidation, maxLotsOrDefault(params))
	}
	return nil
}

// ValidateAddCoproLot checks that the copropriété may take an extra lot.
func (s *LotService) ValidateAddCoproLot(participants []domain.Participant, copro domain.CoproEntity, params domain.ProjectParams) error {
	if s.WouldExceed(participants, copro, params, 1) {
		return fmt.Errorf("%w: adding a copro lot exceeds the %d lot maximum", apperrors.ErrValidation, maxLotsOrDefault(params))
	}
	return nil
}
