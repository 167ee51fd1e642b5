package services

import (
	"math"

	"github.com/castor-coop/credit-castor/internal/core/domain"
)

// CalculationService computes per-participant cost breakdowns and project
// totals. All methods are pure; same input, same output.
type CalculationService struct {
	fraisGeneraux *FraisGenerauxService
}

func NewCalculationService(fraisGeneraux *FraisGenerauxService) *CalculationService {
	return &CalculationService{fraisGeneraux: fraisGeneraux}
}

// PricePerM2 divides the total purchase price across the total surface.
// A zero or negative surface yields 0 rather than a division error.
func (s *CalculationService) PricePerM2(totalPurchase, totalSurface float64) float64 {
	if totalSurface <= 0 {
		return 0
	}
	return totalPurchase / totalSurface
}

// EffectiveSurface is the participant's total surface across all their lots.
func (s *CalculationService) EffectiveSurface(p domain.Participant) float64 {
	return p.Surface * float64(p.QuantityOrOne())
}

// PurchaseShare allocates the purchase price by surface.
func (s *CalculationService) PurchaseShare(p domain.Participant, pricePerM2 float64) float64 {
	return s.EffectiveSurface(p) * pricePerM2
}

// DroitEnregistrements is the Belgian property transfer tax on the purchase share.
func (s *CalculationService) DroitEnregistrements(purchaseShare, registrationFeesRate float64) float64 {
	return purchaseShare * registrationFeesRate / 100
}

// FraisNotaireFixe is the flat notary fee, charged once per lot.
func (s *CalculationService) FraisNotaireFixe(p domain.Participant) float64 {
	return float64(p.QuantityOrOne()) * domain.NotaryFixedFeePerLot
}

// Casco prices the rough construction, TVA included. The billed surface
// defaults to the participant's total surface unless overridden, which
// supports portage lots where only part of the surface is built now.
func (s *CalculationService) Casco(p domain.Participant, params domain.ProjectParams) float64 {
	sqm := s.EffectiveSurface(p)
	if p.CascoSqm != nil {
		sqm = *p.CascoSqm
	}
	return sqm * params.CascoPricePerM2 * (1 + params.TVARate/100)
}

// Parachevements prices the interior finishing. The per-m² rate resolves in
// order: participant override, unit detail, then the project-wide default.
func (s *CalculationService) Parachevements(p domain.Participant, unitDetails map[string]domain.UnitDetail) float64 {
	sqm := s.EffectiveSurface(p)
	if p.ParachevementsSqm != nil {
		sqm = *p.ParachevementsSqm
	}
	rate := float64(domain.DefaultParachevementsPerM2)
	if detail, ok := unitDetails[p.UnitID]; ok && detail.ParachevementsPricePerSqm != nil {
		rate = *detail.ParachevementsPricePerSqm
	}
	if p.ParachevementsPerM2 != nil {
		rate = *p.ParachevementsPerM2
	}
	return sqm * rate
}

// TravauxCommunsItemAmount prices one shared-works line item. Items carrying
// sqm use the per-m² prices; legacy items fall back to their stored amount.
func (s *CalculationService) TravauxCommunsItemAmount(item domain.TravauxCommunsItem) float64 {
	if item.Sqm > 0 {
		return item.Sqm*item.CascoPricePerSqm + item.Sqm*item.ParachevementPricePerSqm
	}
	return item.Amount
}

// TravauxCommunsTotal sums the enabled shared-works items.
func (s *CalculationService) TravauxCommunsTotal(tc domain.TravauxCommuns) float64 {
	if !tc.Enabled {
		return 0
	}
	var total float64
	for _, item := range tc.Items {
		total += s.TravauxCommunsItemAmount(item)
	}
	return total
}

// LoanAmount is the cost not covered by the capital contribution, floored at 0.
func (s *CalculationService) LoanAmount(totalCost, capitalApporte float64) float64 {
	if capitalApporte < 0 {
		capitalApporte = 0
	}
	loan := totalCost - capitalApporte
	if loan < 0 {
		return 0
	}
	return loan
}

// MonthlyPayment is the standard amortizing-loan PMT:
// M = L·r(1+r)^n / ((1+r)^n − 1), with r the monthly rate and n the month count.
func (s *CalculationService) MonthlyPayment(loan, annualRate float64, years int) float64 {
	if loan <= 0 {
		return 0
	}
	n := float64(years * 12)
	if n <= 0 {
		return 0
	}
	r := annualRate / 100 / 12
	if r == 0 {
		return loan / n
	}
	factor := math.Pow(1+r, n)
	return loan * r * factor / (factor - 1)
}

// TotalInterest is what the loan costs beyond its principal.
func (s *CalculationService) TotalInterest(loan, monthlyPayment float64, years int) float64 {
	if loan <= 0 {
		return 0
	}
	return monthlyPayment*float64(years*12) - loan
}

// TwoLoanFinancing splits the participant's borrowing into a signature-phase
// loan and a construction-phase loan released after the delay.
func (s *CalculationService) TwoLoanFinancing(p domain.Participant, r domain.ParticipantResult) *domain.TwoLoanFinancing {
	if !p.UseTwoLoans {
		return nil
	}
	signatureCosts := r.PurchaseShare + r.DroitEnregistrements + r.FraisNotaireFixe + r.FraisGenerauxShare
	constructionCosts := r.Casco + r.Parachevements + r.TravauxCommunsShare
	if p.Loan2RenovationAmount != nil {
		constructionCosts = *p.Loan2RenovationAmount
	}

	delay := 2
	if p.Loan2DelayYears != nil {
		delay = *p.Loan2DelayYears
	}
	loan2Years := p.DurationYears - delay
	if loan2Years < 1 {
		loan2Years = 1
	}

	loan1 := s.LoanAmount(signatureCosts, p.CapitalApporte)
	loan2 := s.LoanAmount(constructionCosts, p.CapitalForLoan2)

	return &domain.TwoLoanFinancing{
		SignatureCosts:     signatureCosts,
		ConstructionCosts:  constructionCosts,
		Loan1Amount:        loan1,
		Loan2Amount:        loan2,
		Loan1Monthly:       s.MonthlyPayment(loan1, p.InterestRate, p.DurationYears),
		Loan2Monthly:       s.MonthlyPayment(loan2, p.InterestRate, loan2Years),
		Loan2DurationYears: loan2Years,
		Loan2DelayYears:    delay,
	}
}

// CalculateAll derives every participant's cost breakdown and the project
// totals. Disabled participants keep their row but contribute nothing.
func (s *CalculationService) CalculateAll(participants []domain.Participant, params domain.ProjectParams, unitDetails map[string]domain.UnitDetail) domain.CalculationResults {
	var totalSurface float64
	var enabledCount int
	for _, p := range participants {
		if !p.Enabled {
			continue
		}
		totalSurface += s.EffectiveSurface(p)
		enabledCount++
	}

	pricePerM2 := s.PricePerM2(params.TotalPurchasePrice, totalSurface)
	travauxTotal := s.TravauxCommunsTotal(params.TravauxCommuns)
	sharedCosts := params.DemolitionCost + params.InfrastructureCost

	fraisGeneraux3Ans := s.fraisGeneraux.Total3Years(participants, params)
	perHead := float64(enabledCount)
	if perHead == 0 {
		perHead = 1
	}
	fraisGenerauxShare := fraisGeneraux3Ans / perHead

	results := domain.CalculationResults{
		Participants: make([]domain.ParticipantResult, 0, len(participants)),
	}
	totals := &results.Totals
	totals.TotalSurface = totalSurface
	totals.PricePerM2 = pricePerM2
	totals.TravauxCommuns = travauxTotal
	totals.FraisGeneraux3Ans = fraisGeneraux3Ans

	for _, p := range participants {
		if !p.Enabled {
			results.Participants = append(results.Participants, domain.ParticipantResult{Name: p.Name})
			continue
		}

		quotite := 0.0
		if totalSurface > 0 {
			quotite = s.EffectiveSurface(p) / totalSurface
		}

		r := domain.ParticipantResult{
			Name:                 p.Name,
			Enabled:              true,
			Surface:              s.EffectiveSurface(p),
			Quotite:              quotite,
			PurchaseShare:        s.PurchaseShare(p, pricePerM2),
			FraisNotaireFixe:     s.FraisNotaireFixe(p),
			Casco:                s.Casco(p, params),
			Parachevements:       s.Parachevements(p, unitDetails),
			TravauxCommunsShare:  quotite * (travauxTotal + sharedCosts),
			FraisGenerauxShare:   fraisGenerauxShare,
		}
		r.DroitEnregistrements = s.DroitEnregistrements(r.PurchaseShare, p.RegistrationFeesRate)
		r.TotalCost = r.PurchaseShare + r.DroitEnregistrements + r.FraisNotaireFixe +
			r.Casco + r.Parachevements + r.TravauxCommunsShare + r.FraisGenerauxShare
		r.LoanAmount = s.LoanAmount(r.TotalCost, p.CapitalApporte)
		r.MonthlyPayment = s.MonthlyPayment(r.LoanAmount, p.InterestRate, p.DurationYears)
		r.TotalInterest = s.TotalInterest(r.LoanAmount, r.MonthlyPayment, p.DurationYears)
		r.Financing = s.TwoLoanFinancing(p, r)

		totals.PurchaseShare += r.PurchaseShare
		totals.DroitEnregistrements += r.DroitEnregistrements
		totals.FraisNotaireFixe += r.FraisNotaireFixe
		totals.Casco += r.Casco
		totals.Parachevements += r.Parachevements
		totals.TotalCost += r.TotalCost
		totals.LoanAmount += r.LoanAmount
		totals.MonthlyPayment += r.MonthlyPayment

		results.Participants = append(results.Participants, r)
	}

	return results
}
