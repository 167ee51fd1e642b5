package dto

import (
	"time"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// TimelineReplayRequest carries an event log to replay, optionally up to a
// cut-off date.
type TimelineReplayRequest struct {
	Events domain.EventList `json:"events" binding:"required,min=1"`
	AsOf   *time.Time       `json:"asOf"`
}

// TimelineReplayResponse returns the projected state together with the
// per-date snapshots derived from the same log.
type TimelineReplayResponse struct {
	State                domain.ProjectionState    `json:"state"`
	CoproSnapshots       []domain.CoproSnapshot    `json:"coproSnapshots"`
	ParticipantSnapshots []domain.TimelineSnapshot `json:"participantSnapshots"`
}

// TimelineValidateRequest carries an event log to check for chronology and
// consistency problems.
type TimelineValidateRequest struct {
	Events domain.EventList `json:"events" binding:"required,min=1"`
}

// TimelineValidateResponse lists the warnings found. Valid is true when the
// log raised none.
type TimelineValidateResponse struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}
