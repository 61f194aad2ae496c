package presenter

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/mcp-mortgage-go/internal/calculations"
	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

const (
	// edgeMonths сколько первых и последних месяцев показывается полностью
	edgeMonths  = 12
	placeholder = "..."
)

var wan = decimal.NewFromFloat(utils.Wan)

// FormatCurrency форматирует сумму в юанях: ¥1234.57
func FormatCurrency(val float64) string {
	return "¥" + decimal.NewFromFloat(val).StringFixed(2)
}

// FormatWan форматирует сумму в 万: 123.46万
func FormatWan(val float64) string {
	return decimal.NewFromFloat(val).Div(wan).StringFixed(2) + "万"
}

// ScheduleRow строка сокращенного графика платежей
type ScheduleRow struct {
	Label              string  `json:"month"`
	Month              int     `json:"month_number"`
	Placeholder        bool    `json:"placeholder,omitempty"`
	Payment            float64 `json:"payment"`
	PaymentFormatted   string  `json:"payment_formatted"`
	Principal          float64 `json:"principal"`
	PrincipalFormatted string  `json:"principal_formatted"`
	Interest           float64 `json:"interest"`
	InterestFormatted  string  `json:"interest_formatted"`
	Remaining          float64 `json:"remaining"`
	RemainingFormatted string  `json:"remaining_formatted"`
}

// Window сокращает график: первые 12 месяцев, месяц в середине срока и последние 12 месяцев.
// Пропущенный диапазон после середины отмечается строкой-заполнителем.
func Window(schedule []calculations.MonthlyEntry) []ScheduleRow {
	total := len(schedule)
	mid := total / 2

	rows := make([]ScheduleRow, 0, 2*edgeMonths+2)
	for i, entry := range schedule {
		month := i + 1
		if month > edgeMonths && month <= total-edgeMonths && month != mid {
			continue
		}

		rows = append(rows, newRow(month, entry))

		if month == mid && month > edgeMonths && month < total-edgeMonths {
			rows = append(rows, placeholderRow())
		}
	}
	return rows
}

func newRow(month int, e calculations.MonthlyEntry) ScheduleRow {
	return ScheduleRow{
		Label:              strconv.Itoa(month) + "期",
		Month:              month,
		Payment:            e.Payment,
		PaymentFormatted:   FormatCurrency(e.Payment),
		Principal:          e.Principal,
		PrincipalFormatted: FormatCurrency(e.Principal),
		Interest:           e.Interest,
		InterestFormatted:  FormatCurrency(e.Interest),
		Remaining:          e.RemainingBalance,
		RemainingFormatted: FormatWan(e.RemainingBalance),
	}
}

func placeholderRow() ScheduleRow {
	return ScheduleRow{
		Label:              placeholder,
		Placeholder:        true,
		PaymentFormatted:   placeholder,
		PrincipalFormatted: placeholder,
		InterestFormatted:  placeholder,
		RemainingFormatted: placeholder,
	}
}

// Summary сводка для отображения
type Summary struct {
	LoanType                 string  `json:"loan_type"`
	RepaymentMethod          string  `json:"repayment_method"`
	Years                    int     `json:"years"`
	Months                   int     `json:"months"`
	TotalAmount              float64 `json:"total_amount"`
	TotalMonthly             float64 `json:"total_monthly"`
	TotalInterest            float64 `json:"total_interest"`
	TotalRepayment           float64 `json:"total_repayment"`
	MonthlyDecrease          float64 `json:"monthly_decrease"`
	TotalAmountFormatted     string  `json:"total_amount_formatted"`
	TotalMonthlyFormatted    string  `json:"total_monthly_formatted"`
	TotalInterestFormatted   string  `json:"total_interest_formatted"`
	TotalRepaymentFormatted  string  `json:"total_repayment_formatted"`
	MonthlyDecreaseFormatted string  `json:"monthly_decrease_formatted"`
}

// Summarize готовит сводку с отформатированными суммами
func Summarize(result *calculations.CombinedResult, loanType calculations.LoanType, method calculations.RepaymentMethod, years int) Summary {
	return Summary{
		LoanType:                 loanType.Label(),
		RepaymentMethod:          method.Label(),
		Years:                    years,
		Months:                   years * 12,
		TotalAmount:              result.TotalPrincipal,
		TotalMonthly:             result.TotalMonthlyPayment,
		TotalInterest:            result.TotalInterest,
		TotalRepayment:           result.TotalRepayment,
		MonthlyDecrease:          result.TotalMonthlyDecrease,
		TotalAmountFormatted:     FormatWan(result.TotalPrincipal),
		TotalMonthlyFormatted:    FormatCurrency(result.TotalMonthlyPayment),
		TotalInterestFormatted:   FormatWan(result.TotalInterest),
		TotalRepaymentFormatted:  FormatWan(result.TotalRepayment),
		MonthlyDecreaseFormatted: FormatCurrency(result.TotalMonthlyDecrease),
	}
}
