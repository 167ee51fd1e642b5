package dto

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// CashFlowProjectionRequest asks for one participant's month-by-month cash
// flow, reconstructed from the event log.
type CashFlowProjectionRequest struct {
	Events          domain.EventList `json:"events" binding:"required,min=1"`
	ParticipantName string           `json:"participantName" binding:"required"`
	EndDate         *time.Time       `json:"endDate"`
}
