package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

// AnnuitySchedule рассчитывает график 等额本息: платеж одинаков каждый месяц
func AnnuitySchedule(principal, annualRatePercent float64, years int) (*LoanResult, error) {
	if err := (LoanTerms{Principal: principal, AnnualRatePercent: annualRatePercent, TermYears: years, Method: EqualInstallment}).Validate(); err != nil {
		return nil, err
	}

	P := principal
	n := years * 12
	r := annualRatePercent / 100.0 / 12.0

	result := newLoanResult(P, annualRatePercent, n, EqualInstallment)

	var monthlyPayment float64
	if r == 0.0 {
		monthlyPayment = P / float64(n)
	} else {
		// (1+r)^n - 1 через expm1/log1p: при малых r обычная степень теряет всю точность
		growth := math.Expm1(float64(n) * math.Log1p(r))
		monthlyPayment = P * r * (growth + 1.0) / growth
	}
	if !utils.IsFinite(monthlyPayment) {
		return nil, fmt.Errorf("%w: annuity payment for rate %.4f%% over %d months", ErrNumericOverflow, annualRatePercent, n)
	}

	remaining := P
	for m := 1; m <= n; m++ {
		interest := remaining * r
		principalComponent := monthlyPayment - interest
		payment := monthlyPayment

		// Последний месяц закрывает остаток целиком, погрешность округления уходит в платеж
		if m == n {
			principalComponent = remaining
			payment = principalComponent + interest
		}

		remaining -= principalComponent
		if remaining < 0 || m == n {
			remaining = 0
		}

		result.Details = append(result.Details, MonthlyEntry{
			Month:            m,
			Payment:          payment,
			Interest:         interest,
			Principal:        principalComponent,
			RemainingBalance: remaining,
		})
	}

	result.MonthlyPayment = monthlyPayment
	if r == 0.0 {
		result.TotalRepayment = P
		result.TotalInterest = 0
	} else {
		result.TotalRepayment = monthlyPayment * float64(n)
		result.TotalInterest = result.TotalRepayment - P
		if result.TotalInterest < 0 {
			result.TotalInterest = 0
			result.TotalRepayment = P
		}
	}

	return result, nil
}
