package handler

import (
	"fmt"

	"github.com/ratewise/bill-audit/dto"
)

// reportView flattens the audit into display strings for the HTML template.
// Null fields render as "n/a"; a null savings block renders the explicit
// not-enough-information state rather than zeros.
type reportView struct {
	Utility       string
	AccountNumber string
	PeriodStart   string
	PeriodEnd     string

	TotalDue        string
	DeliveryCharges string
	SupplyCharges   string
	Taxes           string

	ElectricityKwh string
	GasTherms      string
	GasCcf         string

	HasSavings           bool
	Unit                 string
	MonthlyQuantity      string
	MonthlyCostAtCurrent string
	MonthlyCostAtOffer   string
	MonthlySavings       string
	AnnualSavings        string
	TermSavings          []termRow

	Confidence  string
	ProcessedAt string
}

type termRow struct {
	Term   string
	Amount string
}

func buildReportView(response *dto.BillAuditResponse) reportView {
	audit := response.Audit
	savings := response.Savings

	view := reportView{
		Utility:         audit.Utility,
		AccountNumber:   displayString(audit.AccountNumber),
		PeriodStart:     displayString(audit.BillingPeriod.Start),
		PeriodEnd:       displayString(audit.BillingPeriod.End),
		TotalDue:        displayMoney(audit.Totals.TotalDue),
		DeliveryCharges: displayMoney(audit.Totals.DeliveryCharges),
		SupplyCharges:   displayMoney(audit.Totals.SupplyCharges),
		Taxes:           displayMoney(audit.Totals.Taxes),
		ElectricityKwh:  displayQuantity(audit.Usage.ElectricityKwh),
		GasTherms:       displayQuantity(audit.Usage.GasTherms),
		GasCcf:          displayQuantity(audit.Usage.GasCcf),
		HasSavings:      !savings.InsufficientData,
		Confidence:      audit.Meta.Confidence,
		ProcessedAt:     response.ProcessedAt,
	}

	if view.HasSavings {
		view.Unit = *savings.Unit
		view.MonthlyQuantity = displayQuantity(savings.MonthlyQuantity)
		view.MonthlyCostAtCurrent = displayMoney(savings.MonthlyCostAtCurrent)
		view.MonthlyCostAtOffer = displayMoney(savings.MonthlyCostAtOffer)
		view.MonthlySavings = displayMoney(savings.MonthlySavings)
		view.AnnualSavings = displayMoney(savings.AnnualSavings)
		for _, term := range []string{"2yr", "3yr", "4yr", "5yr"} {
			if amount, ok := savings.TermSavings[term]; ok {
				view.TermSavings = append(view.TermSavings, termRow{
					Term:   term,
					Amount: fmt.Sprintf("$%.2f", amount),
				})
			}
		}
	}

	return view
}

func displayString(s *string) string {
	if s == nil {
		return "n/a"
	}
	return *s
}

func displayMoney(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", *f)
}

func displayQuantity(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *f)
}
