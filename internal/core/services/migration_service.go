package services

import (
	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// Back-solving anchors for legacy shared-works items that only stored a flat
// amount. The split is a documented heuristic, not recovered truth: sqm is
// derived from a combined 800 EUR/m² anchor, split 600 CASCO / 200 finishing.
const (
	MigrationCombinedPricePerSqm = 800.0
	MigrationCascoPricePerSqm    = 600.0
	MigrationParaPricePerSqm     = 200.0
)

// MigrationService upgrades older saved data shapes in place-free style:
// every method returns a new value and is idempotent.
type MigrationService struct{}

func NewMigrationService() *MigrationService {
	return &MigrationService{}
}

// MigrateTravauxCommuns converts legacy flat-amount items into the
// sqm × price-per-m² shape. Items already carrying sqm pass through untouched,
// and the original amount is preserved for reference.
func (s *MigrationService) MigrateTravauxCommuns(tc domain.TravauxCommuns) domain.TravauxCommuns {
	out := domain.TravauxCommuns{Enabled: tc.Enabled, Items: make([]domain.TravauxCommunsItem, len(tc.Items))}
	for i, item := range tc.Items {
		if item.Sqm > 0 || item.Amount <= 0 {
			out.Items[i] = item
			continue
		}
		// Fractional sqm keeps sqm × (600 + 200) equal to the stored amount.
		out.Items[i] = domain.TravauxCommunsItem{
			Label:                    item.Label,
			Sqm:                      item.Amount / MigrationCombinedPricePerSqm,
			CascoPricePerSqm:         MigrationCascoPricePerSqm,
			ParachevementPricePerSqm: MigrationParaPricePerSqm,
			Amount:                   item.Amount,
		}
	}
	return out
}

// MigrateProjectParams fills defaults that older saves did not carry and
// migrates the shared-works items. Applying it twice is a no-op.
func (s *MigrationService) MigrateProjectParams(params domain.ProjectParams) domain.ProjectParams {
	out := params
	if out.MaxTotalLots <= 0 {
		out.MaxTotalLots = domain.DefaultMaxTotalLots
	}
	out.TravauxCommuns = s.MigrateTravauxCommuns(out.TravauxCommuns)
	return out
}

// MigrateParticipant upgrades a raw participant record from the v2 save
// format: the first-loan capital field collapses into capitalApporte when
// two-loan financing is on, and the dropped loan2IncludesParachevements flag
// is discarded.
func (s *MigrationService) MigrateParticipant(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}

	useTwoLoans, _ := out["useTwoLoans"].(bool)
	if legacy, ok := out["capitalForLoan1"]; ok {
		if useTwoLoans {
			if _, has := out["capitalApporte"]; !has {
				out["capitalApporte"] = legacy
			}
		}
		delete(out, "capitalForLoan1")
	}
	delete(out, "loan2IncludesParachevements")

	if _, ok := out["quantity"]; !ok {
		out["quantity"] = 1
	}
	return out
}

// MigrateScenarioFile upgrades a raw scenario document to the current
// version, touching only the participant list and project params.
func (s *MigrationService) MigrateScenarioFile(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	if participants, ok := out["participants"].([]any); ok {
		migrated := make([]any, len(participants))
		for i, p := range participants {
			if m, ok := p.(map[string]any); ok {
				migrated[i] = s.MigrateParticipant(m)
			} else {
				migrated[i] = p
			}
		}
		out["participants"] = migrated
	}
	out["version"] = domain.ScenarioFileVersion
	return out
}
