package domain

import "time"

// ScenarioFileVersion is the current on-disk scenario format version.
const ScenarioFileVersion = 2

// TimelineExportVersion is the current timeline export envelope version.
const TimelineExportVersion = 1

// ScenarioFile is the versioned saved form of a whole project setup.
type ScenarioFile struct {
	Version        int                   `json:"version"`
	ReleaseVersion string                `json:"releaseVersion,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
	Participants   []Participant         `json:"participants"`
	ProjectParams  ProjectParams         `json:"projectParams"`
	DeedDate       time.Time             `json:"deedDate"`
	PortageFormula PortageFormulaParams  `json:"portageFormula"`
	UnitDetails    map[string]UnitDetail `json:"unitDetails,omitempty"`
	Events         EventList             `json:"events,omitempty"`
}

// Scenario is a persisted, named scenario file.
type Scenario struct {
	ScenarioID string       `json:"scenarioID"`
	Name       string       `json:"name"`
	File       ScenarioFile `json:"file"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// TimelineExport is the versioned envelope for event log import/export.
// ExportedAt is regenerated on every export; everything else round-trips.
type TimelineExport struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Events     EventList `json:"events"`
}
