package calculations

import "fmt"

// Calculate рассчитывает ипотеку выбранного типа: каждая активная часть считается отдельно,
// затем результаты объединяются
func Calculate(req MortgageRequest) (*CombinedResult, error) {
	withCommercial, withProvident, err := req.LoanType.ActiveSubLoans()
	if err != nil {
		return nil, err
	}

	var commercial, provident *LoanResult

	if withCommercial {
		commercial, err = Compute(req.terms(req.Commercial))
		if err != nil {
			return nil, fmt.Errorf("commercial loan: %w", err)
		}
	}
	if withProvident {
		provident, err = Compute(req.terms(req.Provident))
		if err != nil {
			return nil, fmt.Errorf("provident loan: %w", err)
		}
	}

	combined := Combine(commercial, provident)
	return &combined, nil
}

func (req MortgageRequest) terms(sub SubLoan) LoanTerms {
	return LoanTerms{
		Principal:         sub.Principal,
		AnnualRatePercent: sub.AnnualRatePercent,
		TermYears:         req.TermYears,
		Method:            req.Method,
	}
}
