package calculations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTerms нарушение предусловий расчета (отрицательная сумма, ставка или срок)
	ErrInvalidTerms = errors.New("invalid loan terms")
	// ErrUnknownMethod неизвестный способ погашения
	ErrUnknownMethod = errors.New("unknown repayment method")
	// ErrUnknownLoanType неизвестный тип кредита
	ErrUnknownLoanType = errors.New("unknown loan type")
	// ErrNumericOverflow формула аннуитета дала неконечное значение
	ErrNumericOverflow = errors.New("numeric overflow")
)

// RepaymentMethod способ погашения кредита
type RepaymentMethod int

const (
	// EqualInstallment 等额本息: фиксированный ежемесячный платеж
	EqualInstallment RepaymentMethod = iota + 1
	// EqualPrincipal 等额本金: фиксированная часть основного долга, платеж убывает
	EqualPrincipal
)

// String возвращает машинное имя способа погашения
func (m RepaymentMethod) String() string {
	switch m {
	case EqualInstallment:
		return "equal_installment"
	case EqualPrincipal:
		return "equal_principal"
	default:
		return fmt.Sprintf("RepaymentMethod(%d)", int(m))
	}
}

// Label возвращает название способа погашения для пользователя
func (m RepaymentMethod) Label() string {
	switch m {
	case EqualInstallment:
		return "等额本息"
	case EqualPrincipal:
		return "等额本金"
	default:
		return ""
	}
}

// Valid сообщает, является ли значение одним из известных способов
func (m RepaymentMethod) Valid() bool {
	return m == EqualInstallment || m == EqualPrincipal
}

// MarshalText реализует encoding.TextMarshaler
func (m RepaymentMethod) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

// ParseRepaymentMethod разбирает способ погашения по машинному имени или китайскому названию
func ParseRepaymentMethod(s string) (RepaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equal_installment", "annuity", "等额本息":
		return EqualInstallment, nil
	case "equal_principal", "differential", "等额本金":
		return EqualPrincipal, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// LoanType тип ипотечного кредита
type LoanType int

const (
	// Commercial 商业贷款
	Commercial LoanType = iota + 1
	// Provident 公积金贷款
	Provident
	// Combined 组合贷款: коммерческий и накопительный кредиты одновременно
	Combined
)

func (t LoanType) String() string {
	switch t {
	case Commercial:
		return "commercial"
	case Provident:
		return "provident"
	case Combined:
		return "combined"
	default:
		return fmt.Sprintf("LoanType(%d)", int(t))
	}
}

// Label возвращает название типа кредита для пользователя
func (t LoanType) Label() string {
	switch t {
	case Commercial:
		return "商业贷款"
	case Provident:
		return "公积金贷款"
	case Combined:
		return "组合贷款"
	default:
		return ""
	}
}

// MarshalText реализует encoding.TextMarshaler
func (t LoanType) MarshalText() ([]byte, error) {
	switch t {
	case Commercial, Provident, Combined:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownLoanType, int(t))
}

// ActiveSubLoans сообщает, какие из двух частей кредита участвуют в расчете
func (t LoanType) ActiveSubLoans() (commercial, provident bool, err error) {
	switch t {
	case Commercial:
		return true, false, nil
	case Provident:
		return false, true, nil
	case Combined:
		return true, true, nil
	}
	return false, false, fmt.Errorf("%w: %d", ErrUnknownLoanType, int(t))
}

// ParseLoanType разбирает тип кредита по машинному имени или китайскому названию
func ParseLoanType(s string) (LoanType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "commercial", "商业贷款":
		return Commercial, nil
	case "provident", "公积金贷款":
		return Provident, nil
	case "combined", "组合贷款":
		return Combined, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLoanType, s)
}

// LoanTerms условия одного кредита
type LoanTerms struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
	Method            RepaymentMethod
}

// TermMonths срок кредита в месяцах
func (t LoanTerms) TermMonths() int {
	return t.TermYears * 12
}

// MonthlyRate месячная ставка в долях
func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRatePercent / 100.0 / 12.0
}

// MonthlyEntry представляет одну запись в графике платежей
type MonthlyEntry struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// LoanResult результат расчета одного кредита
type LoanResult struct {
	// MonthlyPayment фиксированный платеж (等额本息) или платеж первого месяца (等额本金)
	MonthlyPayment         float64         `json:"monthly_payment"`
	MonthlyPaymentDecrease float64         `json:"monthly_payment_decrease"`
	TotalInterest          float64         `json:"total_interest"`
	TotalRepayment         float64         `json:"total_repayment"`
	TermMonths             int             `json:"term_months"`
	Principal              float64         `json:"principal"`
	AnnualRatePercent      float64         `json:"annual_rate_percent"`
	Method                 RepaymentMethod `json:"method"`
	Details                []MonthlyEntry  `json:"details"`
}

// CombinedResult сводный результат по коммерческой и накопительной частям
type CombinedResult struct {
	TotalPrincipal       float64        `json:"total_principal"`
	TotalMonthlyPayment  float64        `json:"total_monthly_payment"`
	TotalInterest        float64        `json:"total_interest"`
	TotalRepayment       float64        `json:"total_repayment"`
	TotalMonthlyDecrease float64        `json:"total_monthly_decrease"`
	TermMonths           int            `json:"term_months"`
	Commercial           *LoanResult    `json:"commercial,omitempty"`
	Provident            *LoanResult    `json:"provident,omitempty"`
	Schedule             []MonthlyEntry `json:"schedule"`
}

// SubLoan сумма и ставка одной части кредита
type SubLoan struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
}

// MortgageRequest запрос на расчет ипотеки
type MortgageRequest struct {
	LoanType   LoanType
	Method     RepaymentMethod
	TermYears  int
	Commercial SubLoan
	Provident  SubLoan
}

// MethodComparison представляет результат сравнения способов погашения
type MethodComparison struct {
	EqualInstallment       *CombinedResult `json:"equal_installment"`
	EqualPrincipal         *CombinedResult `json:"equal_principal"`
	InterestDifference     float64         `json:"interest_difference"`
	FirstPaymentDifference float64         `json:"first_payment_difference"`
	CheaperMethod          string          `json:"cheaper_method"`
	Savings                float64         `json:"savings"`
	Recommendation         string          `json:"recommendation"`
}
