package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnuityScheduleReferenceScenario(t *testing.T) {
	result, err := AnnuitySchedule(1000000, 3.45, 30)
	require.NoError(t, err)

	assert.InDelta(t, 4462.58, result.MonthlyPayment, tolerance)
	assert.Equal(t, 0.0, result.MonthlyPaymentDecrease)
	assert.InDelta(t, result.TotalRepayment-result.Principal, result.TotalInterest, 1e-6)
	assert.InDelta(t, 606529.86, result.TotalInterest, tolerance)

	for _, d := range result.Details {
		assert.InDelta(t, result.MonthlyPayment, d.Payment, tolerance)
		assert.InDelta(t, d.Payment, d.Interest+d.Principal, 1e-9)
	}
}

func TestAnnuityScheduleZeroRate(t *testing.T) {
	result, err := AnnuitySchedule(120000, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, result.MonthlyPayment)
	assert.Equal(t, 0.0, result.TotalInterest)
	assert.Equal(t, 120000.0, result.TotalRepayment)
	for _, d := range result.Details {
		assert.InDelta(t, 1000.0, d.Payment, 1e-9)
		assert.Equal(t, 0.0, d.Interest)
	}
}

func TestAnnuityScheduleOverflow(t *testing.T) {
	_, err := AnnuitySchedule(1000000, 1e6, 30)
	assert.ErrorIs(t, err, ErrNumericOverflow)
}

func TestAnnuityScheduleLowRates(t *testing.T) {
	tests := []struct {
		name              string
		annualRatePercent float64
		checkSummary      func(*testing.T, *LoanResult)
	}{
		{
			name:              "rate below float epsilon",
			annualRatePercent: 1e-15,
			checkSummary: func(t *testing.T, result *LoanResult) {
				assert.InDelta(t, 1000000.0/360, result.MonthlyPayment, 1e-6)
				assert.InDelta(t, 0.0, result.TotalInterest, tolerance)
			},
		},
		{
			name:              "rate 1e-9",
			annualRatePercent: 1e-9,
			checkSummary: func(t *testing.T, result *LoanResult) {
				// Проценты за весь срок ≈ P·r·(n+1)/2
				want := 1000000 * (1e-9 / 1200) * 361 / 2
				assert.InDelta(t, want, result.TotalInterest, 1e-6)
			},
		},
		{
			name:              "rate 1e-6",
			annualRatePercent: 1e-6,
			checkSummary: func(t *testing.T, result *LoanResult) {
				assert.Greater(t, result.TotalInterest, 0.0)
				assert.InDelta(t, 1000000*(1e-6/1200)*361/2, result.TotalInterest, 1e-4)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AnnuitySchedule(1000000, tt.annualRatePercent, 30)
			require.NoError(t, err)
			require.Len(t, result.Details, 360)

			last := result.Details[len(result.Details)-1]
			assert.InDelta(t, result.MonthlyPayment, last.Payment, tolerance)
			assert.GreaterOrEqual(t, result.TotalInterest, 0.0)
			tt.checkSummary(t, result)
		})
	}
}
