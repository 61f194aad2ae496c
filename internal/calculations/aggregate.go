package calculations

// Combine объединяет результаты коммерческой и накопительной частей.
// Любой из аргументов может быть nil: отсутствующая часть дает нули во всех полях.
// Графики складываются помесячно, длина итогового графика равна длине большего из них.
func Combine(commercial, provident *LoanResult) CombinedResult {
	combined := CombinedResult{
		Commercial: commercial,
		Provident:  provident,
	}

	for _, part := range []*LoanResult{commercial, provident} {
		if part == nil {
			continue
		}
		combined.TotalPrincipal += part.Principal
		combined.TotalMonthlyPayment += part.MonthlyPayment
		combined.TotalInterest += part.TotalInterest
		combined.TotalRepayment += part.TotalRepayment
		combined.TotalMonthlyDecrease += part.MonthlyPaymentDecrease
	}

	combined.Schedule = mergeSchedules(details(commercial), details(provident))
	combined.TermMonths = len(combined.Schedule)

	return combined
}

func details(r *LoanResult) []MonthlyEntry {
	if r == nil {
		return nil
	}
	return r.Details
}

// mergeSchedules складывает два графика по индексу месяца, недостающие записи считаются нулевыми
func mergeSchedules(a, b []MonthlyEntry) []MonthlyEntry {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	merged := make([]MonthlyEntry, 0, n)
	for i := 0; i < n; i++ {
		var left, right MonthlyEntry
		if i < len(a) {
			left = a[i]
		}
		if i < len(b) {
			right = b[i]
		}

		merged = append(merged, MonthlyEntry{
			Month:            i + 1,
			Payment:          left.Payment + right.Payment,
			Interest:         left.Interest + right.Interest,
			Principal:        left.Principal + right.Principal,
			RemainingBalance: left.RemainingBalance + right.RemainingBalance,
		})
	}
	return merged
}
