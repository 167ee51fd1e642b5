package domain

// TwoLoanFinancing splits a participant's borrowing into a signature-phase
// loan and a construction-phase loan released later.
type TwoLoanFinancing struct {
	SignatureCosts     float64 `json:"signatureCosts"`
	ConstructionCosts  float64 `json:"constructionCosts"`
	Loan1Amount        float64 `json:"loan1Amount"`
	Loan2Amount        float64 `json:"loan2Amount"`
	Loan1Monthly       float64 `json:"loan1Monthly"`
	Loan2Monthly       float64 `json:"loan2Monthly"`
	Loan2DurationYears int     `json:"loan2DurationYears"`
	Loan2DelayYears    int     `json:"loan2DelayYears"`
}

// ParticipantResult is one participant's computed cost breakdown.
type ParticipantResult struct {
	Name                 string            `json:"name"`
	Enabled              bool              `json:"enabled"`
	Surface              float64           `json:"surface"`
	Quotite              float64           `json:"quotite"` // Fraction of total surface
	PurchaseShare        float64           `json:"purchaseShare"`
	DroitEnregistrements float64           `json:"droitEnregistrements"`
	FraisNotaireFixe     float64           `json:"fraisNotaireFixe"`
	Casco                float64           `json:"casco"`
	Parachevements       float64           `json:"parachevements"`
	TravauxCommunsShare  float64           `json:"travauxCommunsShare"`
	FraisGenerauxShare   float64           `json:"fraisGenerauxShare"`
	TotalCost            float64           `json:"totalCost"`
	LoanAmount           float64           `json:"loanAmount"`
	MonthlyPayment       float64           `json:"monthlyPayment"`
	TotalInterest        float64           `json:"totalInterest"`
	Financing            *TwoLoanFinancing `json:"financing,omitempty"`
}

// CalculationTotals aggregates over all enabled participants.
type CalculationTotals struct {
	TotalSurface         float64 `json:"totalSurface"`
	PricePerM2           float64 `json:"pricePerM2"`
	PurchaseShare        float64 `json:"purchaseShare"`
	DroitEnregistrements float64 `json:"droitEnregistrements"`
	FraisNotaireFixe     float64 `json:"fraisNotaireFixe"`
	Casco                float64 `json:"casco"`
	Parachevements       float64 `json:"parachevements"`
	TravauxCommuns       float64 `json:"travauxCommuns"`
	FraisGeneraux3Ans    float64 `json:"fraisGeneraux3Ans"`
	TotalCost            float64 `json:"totalCost"`
	LoanAmount           float64 `json:"loanAmount"`
	MonthlyPayment       float64 `json:"monthlyPayment"`
}

// CalculationResults is derived data, recomputed on every input change and
// never persisted independently of its inputs.
type CalculationResults struct {
	Participants []ParticipantResult `json:"participants"`
	Totals       CalculationTotals   `json:"totals"`
}
