package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

// Compute рассчитывает график платежей одного кредита.
// Результат зависит только от условий, поэтому функцию можно вызывать конкурентно.
func Compute(terms LoanTerms) (*LoanResult, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	switch terms.Method {
	case EqualInstallment:
		return AnnuitySchedule(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	case EqualPrincipal:
		return DifferentialSchedule(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(terms.Method))
}

// Validate проверяет предусловия расчета
func (t LoanTerms) Validate() error {
	if !utils.IsFinite(t.Principal) || t.Principal < 0 {
		return fmt.Errorf("%w: principal must be a finite number >= 0, got %v", ErrInvalidTerms, t.Principal)
	}
	if !utils.IsFinite(t.AnnualRatePercent) || t.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must be a finite number >= 0, got %v", ErrInvalidTerms, t.AnnualRatePercent)
	}
	if t.TermYears <= 0 {
		return fmt.Errorf("%w: term must be at least one year, got %d", ErrInvalidTerms, t.TermYears)
	}
	if !t.Method.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMethod, int(t.Method))
	}
	return nil
}

func newLoanResult(principal, annualRatePercent float64, months int, method RepaymentMethod) *LoanResult {
	return &LoanResult{
		TermMonths:        months,
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		Method:            method,
		Details:           make([]MonthlyEntry, 0, months),
	}
}
