package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ratewise/bill-audit/dto"
)

// unitPreference is the fixed commodity selection order. Electric bills are
// the dominant use case and kWh the least ambiguous unit; therms beats ccf
// because therms is the billed-energy unit while ccf is a volumetric proxy.
// Only the first available quantity is used; commodities are never mixed in
// one result.
var unitPreference = []struct {
	unit     string
	quantity func(dto.BillUsage) *float64
}{
	{"kWh", func(u dto.BillUsage) *float64 { return u.ElectricityKwh }},
	{"therms", func(u dto.BillUsage) *float64 { return u.GasTherms }},
	{"ccf", func(u dto.BillUsage) *float64 { return u.GasCcf }},
}

// projectionYears are the multi-year horizons reported in term savings.
var projectionYears = []int{2, 3, 4, 5}

var termKeys = map[int]string{2: "2yr", 3: "3yr", 4: "4yr", 5: "5yr"}

// ComputeSavings derives a supply-rate comparison from one audit and two
// optional $/unit rates. It is a total function. When no explicit current
// rate is supplied it is inferred as supplyCharges ÷ monthlyQuantity if both
// are present and the quotient is finite; the offer rate is never inferred.
// If any of quantity, current rate or offer rate remains missing, every
// derived monetary field stays null and InsufficientData is set — null must
// never be read as zero savings.
func ComputeSavings(audit *dto.BillAudit, currentRate, offerRate *float64) dto.SavingsResult {
	result := dto.SavingsResult{InsufficientData: true}
	if audit == nil {
		return result
	}

	quantity := selectQuantity(audit.Usage, &result)

	currentRate = sanitizeRate(currentRate)
	offerRate = sanitizeRate(offerRate)

	if currentRate == nil {
		currentRate = inferCurrentRate(audit.Totals.SupplyCharges, quantity)
	}

	result.CurrentRate = currentRate
	result.OfferRate = offerRate

	if quantity == nil || currentRate == nil || offerRate == nil {
		return result
	}

	qty := decimal.NewFromFloat(*quantity)
	costAtCurrent := qty.Mul(decimal.NewFromFloat(*currentRate)).Round(2)
	costAtOffer := qty.Mul(decimal.NewFromFloat(*offerRate)).Round(2)
	// Negative savings are meaningful: the offer is worse. Never clamped.
	monthly := costAtCurrent.Sub(costAtOffer).Round(2)
	annual := monthly.Mul(decimal.NewFromInt(12)).Round(2)

	result.MonthlyCostAtCurrent = floatPtr(costAtCurrent)
	result.MonthlyCostAtOffer = floatPtr(costAtOffer)
	result.MonthlySavings = floatPtr(monthly)
	result.AnnualSavings = floatPtr(annual)

	result.TermSavings = make(map[string]float64, len(projectionYears))
	for _, years := range projectionYears {
		term := annual.Mul(decimal.NewFromInt(int64(years))).Round(2)
		result.TermSavings[termKeys[years]] = term.InexactFloat64()
	}

	result.InsufficientData = false
	return result
}

func selectQuantity(usage dto.BillUsage, result *dto.SavingsResult) *float64 {
	for _, pref := range unitPreference {
		if quantity := pref.quantity(usage); quantity != nil {
			unit := pref.unit
			result.Unit = &unit
			result.MonthlyQuantity = quantity
			return quantity
		}
	}
	return nil
}

// sanitizeRate treats any non-finite rate as absent. NaN and ±Inf must never
// propagate into output, and must not be coerced to zero.
func sanitizeRate(rate *float64) *float64 {
	if rate == nil || math.IsNaN(*rate) || math.IsInf(*rate, 0) {
		return nil
	}
	return rate
}

// inferCurrentRate derives an effective $/unit rate from the bill's own
// supply charges. There is no fixed reference-rate default; without usable
// operands the rate stays null.
func inferCurrentRate(supplyCharges, quantity *float64) *float64 {
	if supplyCharges == nil || quantity == nil || *quantity == 0 {
		return nil
	}
	rate := *supplyCharges / *quantity
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	return &rate
}

func floatPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}
