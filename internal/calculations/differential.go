package calculations

// DifferentialSchedule рассчитывает график 等额本金: основной долг гасится равными частями
func DifferentialSchedule(principal, annualRatePercent float64, years int) (*LoanResult, error) {
	if err := (LoanTerms{Principal: principal, AnnualRatePercent: annualRatePercent, TermYears: years, Method: EqualPrincipal}).Validate(); err != nil {
		return nil, err
	}

	P := principal
	n := years * 12
	r := annualRatePercent / 100.0 / 12.0

	result := newLoanResult(P, annualRatePercent, n, EqualPrincipal)

	principalPerMonth := P / float64(n)
	remaining := P
	totalPaid := 0.0
	totalInterest := 0.0

	for m := 1; m <= n; m++ {
		interest := remaining * r
		payment := principalPerMonth + interest

		totalPaid += payment
		totalInterest += interest

		remaining -= principalPerMonth
		if remaining < 0 || m == n {
			remaining = 0
		}

		result.Details = append(result.Details, MonthlyEntry{
			Month:            m,
			Payment:          payment,
			Interest:         interest,
			Principal:        principalPerMonth,
			RemainingBalance: remaining,
		})
	}

	result.MonthlyPayment = principalPerMonth + P*r
	result.MonthlyPaymentDecrease = principalPerMonth * r
	result.TotalRepayment = totalPaid
	result.TotalInterest = totalInterest

	return result, nil
}
