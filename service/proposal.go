package service

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/ratewise/bill-audit/dto"
)

// RenderProposalPDF renders a one-page savings proposal for a finished audit.
// When savings could not be computed the proposal shows an explicit
// "not enough information" notice instead of fabricated numbers.
func RenderProposalPDF(response *dto.BillAuditResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Supply Rate Savings Proposal", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Supply Rate Savings Proposal", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Utility", response.Audit.Utility)
	writeRow(pdf, "Account", strOrDash(response.Audit.AccountNumber))
	writeRow(pdf, "Billing period", periodString(response.Audit.BillingPeriod))
	writeRow(pdf, "Total amount due", moneyOrDash(response.Audit.Totals.TotalDue))
	writeRow(pdf, "Supply charges", moneyOrDash(response.Audit.Totals.SupplyCharges))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 10, "Projected Savings", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	savings := response.Savings
	if savings.InsufficientData {
		pdf.MultiCell(0, 7, "Not enough information on this bill to compare supply rates. "+
			"A usage quantity, the current rate and an offered rate are all required.", "", "L", false)
	} else {
		writeRow(pdf, fmt.Sprintf("Monthly usage (%s)", *savings.Unit), fmt.Sprintf("%.2f", *savings.MonthlyQuantity))
		writeRow(pdf, "Monthly cost at current rate", moneyOrDash(savings.MonthlyCostAtCurrent))
		writeRow(pdf, "Monthly cost at offered rate", moneyOrDash(savings.MonthlyCostAtOffer))
		writeRow(pdf, "Monthly savings", moneyOrDash(savings.MonthlySavings))
		writeRow(pdf, "Annual savings", moneyOrDash(savings.AnnualSavings))
		for _, key := range []string{"2yr", "3yr", "4yr", "5yr"} {
			if term, ok := savings.TermSavings[key]; ok {
				writeRow(pdf, fmt.Sprintf("Savings over %s term", key), fmt.Sprintf("$%.2f", term))
			}
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Figures are heuristic, low-confidence estimates extracted from the uploaded bill "+
		"and are advisory only.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering proposal PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(70, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func strOrDash(s *string) string {
	if s == nil {
		return "n/a"
	}
	return *s
}

func moneyOrDash(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", *f)
}

func periodString(period dto.BillingPeriod) string {
	if period.Start == nil || period.End == nil {
		return "n/a"
	}
	return *period.Start + " to " + *period.End
}
