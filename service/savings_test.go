package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewise/bill-audit/dto"
	"github.com/ratewise/bill-audit/utils"
)

func floatp(f float64) *float64 { return &f }

func TestComputeSavingsGasScenario(t *testing.T) {
	audit := &dto.BillAudit{
		Usage: dto.BillUsage{GasTherms: floatp(122)},
	}

	result := ComputeSavings(audit, floatp(1.20), floatp(0.69))

	assert.False(t, result.InsufficientData)
	require.NotNil(t, result.Unit)
	assert.Equal(t, "therms", *result.Unit)
	require.NotNil(t, result.MonthlyQuantity)
	assert.Equal(t, 122.0, *result.MonthlyQuantity)
	require.NotNil(t, result.MonthlyCostAtCurrent)
	assert.Equal(t, 146.40, *result.MonthlyCostAtCurrent)
	require.NotNil(t, result.MonthlyCostAtOffer)
	assert.Equal(t, 84.18, *result.MonthlyCostAtOffer)
	require.NotNil(t, result.MonthlySavings)
	assert.Equal(t, 62.22, *result.MonthlySavings)
	require.NotNil(t, result.AnnualSavings)
	assert.Equal(t, 746.64, *result.AnnualSavings)
	assert.Equal(t, 2239.92, result.TermSavings["3yr"])
}

func TestComputeSavingsTermSavingsAreExactMultiples(t *testing.T) {
	audit := &dto.BillAudit{
		Usage: dto.BillUsage{ElectricityKwh: floatp(500)},
	}

	result := ComputeSavings(audit, floatp(0.14), floatp(0.11))

	require.NotNil(t, result.AnnualSavings)
	annual := *result.AnnualSavings
	assert.Equal(t, annual*2, result.TermSavings["2yr"])
	assert.Equal(t, annual*3, result.TermSavings["3yr"])
	assert.Equal(t, annual*4, result.TermSavings["4yr"])
	assert.Equal(t, annual*5, result.TermSavings["5yr"])
}

func TestComputeSavingsHomogeneousInQuantity(t *testing.T) {
	single := ComputeSavings(&dto.BillAudit{
		Usage: dto.BillUsage{ElectricityKwh: floatp(100)},
	}, floatp(0.15), floatp(0.10))
	double := ComputeSavings(&dto.BillAudit{
		Usage: dto.BillUsage{ElectricityKwh: floatp(200)},
	}, floatp(0.15), floatp(0.10))

	require.NotNil(t, single.MonthlySavings)
	require.NotNil(t, double.MonthlySavings)
	assert.Equal(t, *single.MonthlySavings*2, *double.MonthlySavings)
	assert.Equal(t, *single.AnnualSavings*2, *double.AnnualSavings)
}

func TestComputeSavingsNegativeWhenOfferIsWorse(t *testing.T) {
	audit := &dto.BillAudit{
		Usage: dto.BillUsage{ElectricityKwh: floatp(100)},
	}

	result := ComputeSavings(audit, floatp(0.10), floatp(0.15))

	assert.False(t, result.InsufficientData)
	require.NotNil(t, result.MonthlySavings)
	assert.Equal(t, -5.00, *result.MonthlySavings)
	assert.Equal(t, -60.00, *result.AnnualSavings)
}

func TestComputeSavingsUnitPreferenceOrder(t *testing.T) {
	all := ComputeSavings(&dto.BillAudit{
		Usage: dto.BillUsage{
			ElectricityKwh: floatp(400),
			GasTherms:      floatp(90),
			GasCcf:         floatp(95),
		},
	}, floatp(0.12), floatp(0.10))
	require.NotNil(t, all.Unit)
	assert.Equal(t, "kWh", *all.Unit)
	assert.Equal(t, 400.0, *all.MonthlyQuantity)

	gasOnly := ComputeSavings(&dto.BillAudit{
		Usage: dto.BillUsage{
			GasTherms: floatp(90),
			GasCcf:    floatp(95),
		},
	}, floatp(1.10), floatp(0.95))
	require.NotNil(t, gasOnly.Unit)
	assert.Equal(t, "therms", *gasOnly.Unit)

	ccfOnly := ComputeSavings(&dto.BillAudit{
		Usage: dto.BillUsage{GasCcf: floatp(95)},
	}, floatp(1.10), floatp(0.95))
	require.NotNil(t, ccfOnly.Unit)
	assert.Equal(t, "ccf", *ccfOnly.Unit)
}

func TestComputeSavingsInsufficientWithoutOfferRate(t *testing.T) {
	audit := &dto.BillAudit{
		Usage: dto.BillUsage{ElectricityKwh: floatp(412)},
	}

	result := ComputeSavings(audit, floatp(0.12), nil)

	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.MonthlyCostAtCurrent)
	assert.Nil(t, result.MonthlyCostAtOffer)
	assert.Nil(t, result.MonthlySavings)
	assert.Nil(t, result.AnnualSavings)
	assert.Nil(t, result.TermSavings)
}

func TestComputeSavingsInsufficientWithoutQuantity(t *testing.T) {
	result := ComputeSavings(&dto.BillAudit{}, floatp(0.12), floatp(0.10))

	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.Unit)
	assert.Nil(t, result.MonthlySavings)
}

func TestComputeSavingsInfersCurrentRateFromSupplyCharges(t *testing.T) {
	audit := &dto.BillAudit{
		Totals: dto.BillTotals{SupplyCharges: floatp(49.44)},
		Usage:  dto.BillUsage{ElectricityKwh: floatp(412)},
	}

	result := ComputeSavings(audit, nil, floatp(0.10))

	assert.False(t, result.InsufficientData)
	require.NotNil(t, result.CurrentRate)
	assert.InDelta(t, 0.12, *result.CurrentRate, 1e-9)
	require.NotNil(t, result.MonthlyCostAtCurrent)
	assert.Equal(t, 49.44, *result.MonthlyCostAtCurrent)
	assert.Equal(t, 41.20, *result.MonthlyCostAtOffer)
	assert.Equal(t, 8.24, *result.MonthlySavings)
}

func TestComputeSavingsNeverInfersOfferRate(t *testing.T) {
	audit := &dto.BillAudit{
		Totals: dto.BillTotals{SupplyCharges: floatp(49.44)},
		Usage:  dto.BillUsage{ElectricityKwh: floatp(412)},
	}

	result := ComputeSavings(audit, nil, nil)

	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.OfferRate)
	assert.Nil(t, result.MonthlySavings)
}

func TestComputeSavingsNonFiniteRatesTreatedAsAbsent(t *testing.T) {
	audit := &dto.BillAudit{
		Usage: dto.BillUsage{ElectricityKwh: floatp(400)},
	}

	result := ComputeSavings(audit, floatp(math.NaN()), floatp(0.10))
	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.CurrentRate)

	result = ComputeSavings(audit, floatp(0.12), floatp(math.Inf(1)))
	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.OfferRate)
}

func TestComputeSavingsZeroQuantityDoesNotInferRate(t *testing.T) {
	audit := &dto.BillAudit{
		Totals: dto.BillTotals{SupplyCharges: floatp(49.44)},
		Usage:  dto.BillUsage{ElectricityKwh: floatp(0)},
	}

	result := ComputeSavings(audit, nil, floatp(0.10))

	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.CurrentRate)
}

func TestComputeSavingsOnEmptyParseOutput(t *testing.T) {
	audit := utils.ParseBillText("")

	result := ComputeSavings(&audit, floatp(0.12), floatp(0.10))

	assert.True(t, result.InsufficientData)
	assert.Nil(t, result.MonthlySavings)
}

func TestComputeSavingsNilAudit(t *testing.T) {
	result := ComputeSavings(nil, floatp(0.12), floatp(0.10))
	assert.True(t, result.InsufficientData)
}
