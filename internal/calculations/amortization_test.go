package calculations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 0.01

func sumDetails(details []MonthlyEntry) (principal, interest float64) {
	for _, d := range details {
		principal += d.Principal
		interest += d.Interest
	}
	return principal, interest
}

func sumPayments(details []MonthlyEntry) (total float64) {
	for _, d := range details {
		total += d.Payment
	}
	return total
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{
			name:  "installment 30 years",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 3.45, TermYears: 30, Method: EqualInstallment},
		},
		{
			name:  "principal 30 years",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 3.45, TermYears: 30, Method: EqualPrincipal},
		},
		{
			name:  "installment short high rate",
			terms: LoanTerms{Principal: 250000, AnnualRatePercent: 18, TermYears: 1, Method: EqualInstallment},
		},
		{
			name:  "principal provident rate",
			terms: LoanTerms{Principal: 600000, AnnualRatePercent: 2.85, TermYears: 25, Method: EqualPrincipal},
		},
		{
			name:  "installment zero rate",
			terms: LoanTerms{Principal: 360000, AnnualRatePercent: 0, TermYears: 10, Method: EqualInstallment},
		},
		{
			name:  "principal zero rate",
			terms: LoanTerms{Principal: 360000, AnnualRatePercent: 0, TermYears: 10, Method: EqualPrincipal},
		},
		{
			name:  "installment tiny rate",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 1e-12, TermYears: 30, Method: EqualInstallment},
		},
		{
			name:  "installment very low rate",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 1e-9, TermYears: 30, Method: EqualInstallment},
		},
		{
			name:  "installment low rate",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 1e-6, TermYears: 30, Method: EqualInstallment},
		},
		{
			name:  "principal tiny rate",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 1e-12, TermYears: 30, Method: EqualPrincipal},
		},
		{
			name:  "principal very low rate",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 1e-9, TermYears: 30, Method: EqualPrincipal},
		},
		{
			name:  "principal low rate",
			terms: LoanTerms{Principal: 1000000, AnnualRatePercent: 1e-6, TermYears: 30, Method: EqualPrincipal},
		},
		{
			name:  "zero principal",
			terms: LoanTerms{Principal: 0, AnnualRatePercent: 4.9, TermYears: 5, Method: EqualInstallment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.terms)
			require.NoError(t, err)
			require.NotNil(t, result)

			months := tt.terms.TermYears * 12
			assert.Equal(t, months, result.TermMonths)
			require.Len(t, result.Details, months)
			assert.Equal(t, tt.terms.Method, result.Method)

			for i, d := range result.Details {
				assert.Equal(t, i+1, d.Month)
				assert.GreaterOrEqual(t, d.RemainingBalance, 0.0)
				if i > 0 {
					assert.LessOrEqual(t, d.RemainingBalance, result.Details[i-1].RemainingBalance)
				}
			}

			// Остаток в последнем месяце равен нулю точно
			assert.Equal(t, 0.0, result.Details[months-1].RemainingBalance)

			sumPrincipal, sumInterest := sumDetails(result.Details)
			assert.InDelta(t, tt.terms.Principal, sumPrincipal, tolerance)
			assert.InDelta(t, result.TotalInterest, sumInterest, tolerance)
			assert.InDelta(t, result.Principal+result.TotalInterest, result.TotalRepayment, 1e-6)
			assert.InDelta(t, result.TotalRepayment, sumPayments(result.Details), tolerance)
			assert.GreaterOrEqual(t, result.TotalInterest, 0.0)

			// Последний платеж не должен отличаться от расчетного
			last := result.Details[months-1]
			wantLast := result.MonthlyPayment - float64(months-1)*result.MonthlyPaymentDecrease
			assert.InDelta(t, wantLast, last.Payment, tolerance)
		})
	}
}

func TestComputeInvalidTerms(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
		want  error
	}{
		{"negative principal", LoanTerms{Principal: -1, AnnualRatePercent: 3, TermYears: 10, Method: EqualInstallment}, ErrInvalidTerms},
		{"negative rate", LoanTerms{Principal: 1000, AnnualRatePercent: -0.5, TermYears: 10, Method: EqualPrincipal}, ErrInvalidTerms},
		{"zero term", LoanTerms{Principal: 1000, AnnualRatePercent: 3, TermYears: 0, Method: EqualInstallment}, ErrInvalidTerms},
		{"negative term", LoanTerms{Principal: 1000, AnnualRatePercent: 3, TermYears: -2, Method: EqualPrincipal}, ErrInvalidTerms},
		{"NaN principal", LoanTerms{Principal: math.NaN(), AnnualRatePercent: 3, TermYears: 10, Method: EqualInstallment}, ErrInvalidTerms},
		{"infinite rate", LoanTerms{Principal: 1000, AnnualRatePercent: math.Inf(1), TermYears: 10, Method: EqualInstallment}, ErrInvalidTerms},
		{"unknown method", LoanTerms{Principal: 1000, AnnualRatePercent: 3, TermYears: 10}, ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.terms)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, result)
		})
	}
}

func TestParseRepaymentMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    RepaymentMethod
		wantErr bool
	}{
		{"equal_installment", EqualInstallment, false},
		{"等额本息", EqualInstallment, false},
		{" Equal_Principal ", EqualPrincipal, false},
		{"等额本金", EqualPrincipal, false},
		{"balloon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRepaymentMethod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoanTypeActiveSubLoans(t *testing.T) {
	tests := []struct {
		loanType       LoanType
		wantCommercial bool
		wantProvident  bool
	}{
		{Commercial, true, false},
		{Provident, false, true},
		{Combined, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.loanType.String(), func(t *testing.T) {
			commercial, provident, err := tt.loanType.ActiveSubLoans()
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommercial, commercial)
			assert.Equal(t, tt.wantProvident, provident)
		})
	}

	_, _, err := LoanType(0).ActiveSubLoans()
	assert.ErrorIs(t, err, ErrUnknownLoanType)

	parsed, err := ParseLoanType("组合贷款")
	require.NoError(t, err)
	assert.Equal(t, Combined, parsed)
}
