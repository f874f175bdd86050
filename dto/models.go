package dto

import "time"

// ConfidenceHeuristic marks every audit as best-effort pattern-matched output.
// Consumers must treat extracted values as advisory, never authoritative.
const ConfidenceHeuristic = "low"

// UnknownUtility is the sentinel emitted when no alias or structural pattern
// identifies the utility. The utility field is never empty.
const UnknownUtility = "Unknown Utility"

// BillingPeriod holds the raw date strings as they appeared on the bill.
// They are display strings, not parsed calendar dates.
type BillingPeriod struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// BillTotals holds the monetary lines recovered from the bill.
type BillTotals struct {
	TotalDue        *float64 `json:"total_due"`
	DeliveryCharges *float64 `json:"delivery_charges"`
	SupplyCharges   *float64 `json:"supply_charges"`
	Taxes           *float64 `json:"taxes"`
}

// BillUsage holds the usage quantities recovered from the bill. A bill may
// report more than one commodity; all three are extracted independently.
type BillUsage struct {
	ElectricityKwh *float64 `json:"electricity_kwh"`
	GasTherms      *float64 `json:"gas_therms"`
	GasCcf         *float64 `json:"gas_ccf"`
}

// AuditMeta carries extraction metadata.
type AuditMeta struct {
	ParsedAt   time.Time `json:"parsed_at"`
	Confidence string    `json:"confidence"`
}

// BillAudit is the structured result of heuristic bill-text extraction.
// Every field other than Utility and Meta is independently nullable; a
// missing field is an ordinary outcome, not an error.
type BillAudit struct {
	Utility       string        `json:"utility"`
	AccountNumber *string       `json:"account_number"`
	BillingPeriod BillingPeriod `json:"billing_period"`
	Totals        BillTotals    `json:"totals"`
	Usage         BillUsage     `json:"usage"`
	Meta          AuditMeta     `json:"meta"`
}

// SavingsResult compares the cost of the selected monthly quantity at the
// current supply rate against an offered rate. When any of quantity, current
// rate, or offer rate is unavailable every derived field is null and
// InsufficientData is set; null never means zero savings.
type SavingsResult struct {
	Unit                 *string            `json:"unit"`
	MonthlyQuantity      *float64           `json:"monthly_quantity"`
	CurrentRate          *float64           `json:"current_rate"`
	OfferRate            *float64           `json:"offer_rate"`
	MonthlyCostAtCurrent *float64           `json:"monthly_cost_at_current"`
	MonthlyCostAtOffer   *float64           `json:"monthly_cost_at_offer"`
	MonthlySavings       *float64           `json:"monthly_savings"`
	AnnualSavings        *float64           `json:"annual_savings"`
	TermSavings          map[string]float64 `json:"term_savings,omitempty"`
	InsufficientData     bool               `json:"insufficient_data"`
}
