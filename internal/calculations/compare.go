package calculations

import (
	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

// CompareMethods сравнивает 等额本息 и 等额本金 для одного и того же запроса.
// Поле Method запроса игнорируется.
func CompareMethods(req MortgageRequest) (*MethodComparison, error) {
	req.Method = EqualInstallment
	installment, err := Calculate(req)
	if err != nil {
		return nil, err
	}

	req.Method = EqualPrincipal
	principal, err := Calculate(req)
	if err != nil {
		return nil, err
	}

	// Вычисляем разницу
	interestDiff := utils.Round2(installment.TotalInterest - principal.TotalInterest)
	firstPaymentDiff := utils.Round2(principal.TotalMonthlyPayment - installment.TotalMonthlyPayment)

	var cheaper, recommendation string
	var savings float64

	if interestDiff > 0 {
		cheaper = EqualPrincipal.String()
		savings = interestDiff
		recommendation = "等额本金总利息更少，但前期月供更高，适合收入较高且稳定的购房者。"
	} else if interestDiff < 0 {
		cheaper = EqualInstallment.String()
		savings = -interestDiff
		recommendation = "等额本息总利息更少，月供固定，便于规划家庭预算。"
	} else {
		cheaper = "equal"
		savings = 0.0
		recommendation = "两种还款方式的总利息相同。"
	}

	return &MethodComparison{
		EqualInstallment:       installment,
		EqualPrincipal:         principal,
		InterestDifference:     interestDiff,
		FirstPaymentDifference: firstPaymentDiff,
		CheaperMethod:          cheaper,
		Savings:                savings,
		Recommendation:         recommendation,
	}, nil
}
