package tools

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cloud-ru/mcp-mortgage-go/internal/calculations"
	"github.com/cloud-ru/mcp-mortgage-go/internal/config"
	"github.com/cloud-ru/mcp-mortgage-go/internal/validators"
	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

// ErrInvalidParams ошибка во входных параметрах инструмента
var ErrInvalidParams = errors.New("invalid parameters")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "loan_type", func(fl validator.FieldLevel) bool {
		_, err := calculations.ParseLoanType(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "repayment_method", func(fl validator.FieldLevel) bool {
		_, err := calculations.ParseRepaymentMethod(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// mortgageParams параметры расчета в том виде, в котором их присылает форма: суммы в 万
type mortgageParams struct {
	LoanType            string  `validate:"required,loan_type"`
	RepaymentMethod     string  `validate:"required,repayment_method"`
	Years               int     `validate:"gt=0"`
	CommercialAmountWan float64 `validate:"gte=0"`
	CommercialRate      float64 `validate:"gte=0"`
	ProvidentAmountWan  float64 `validate:"gte=0"`
	ProvidentRate       float64 `validate:"gte=0"`
}

// parseMortgageParams извлекает параметры, проверяет их и собирает запрос к расчету.
// Суммы переводятся из 万 в юани здесь: ядро расчета работает только с юанями.
func parseMortgageParams(cfg *config.Config, params map[string]interface{}, requireMethod bool) (calculations.MortgageRequest, error) {
	var p mortgageParams
	var err error

	if p.LoanType, err = stringParam(params, "loan_type"); err != nil {
		return calculations.MortgageRequest{}, err
	}
	if requireMethod {
		if p.RepaymentMethod, err = stringParam(params, "repayment_method"); err != nil {
			return calculations.MortgageRequest{}, err
		}
	} else {
		p.RepaymentMethod = calculations.EqualInstallment.String()
	}
	if p.Years, err = intParam(params, "years"); err != nil {
		return calculations.MortgageRequest{}, err
	}

	loanType, err := calculations.ParseLoanType(p.LoanType)
	if err != nil {
		return calculations.MortgageRequest{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	withCommercial, withProvident, err := loanType.ActiveSubLoans()
	if err != nil {
		return calculations.MortgageRequest{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	if withCommercial {
		if p.CommercialAmountWan, err = floatParam(params, "commercial_amount_wan"); err != nil {
			return calculations.MortgageRequest{}, err
		}
		if p.CommercialRate, err = optionalFloatParam(params, "commercial_rate_percent", cfg.DefaultCommercialRate); err != nil {
			return calculations.MortgageRequest{}, err
		}
	}
	if withProvident {
		if p.ProvidentAmountWan, err = floatParam(params, "provident_amount_wan"); err != nil {
			return calculations.MortgageRequest{}, err
		}
		if p.ProvidentRate, err = optionalFloatParam(params, "provident_rate_percent", cfg.DefaultProvidentRate); err != nil {
			return calculations.MortgageRequest{}, err
		}
	}

	if err := validate.Struct(p); err != nil {
		return calculations.MortgageRequest{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	method, err := calculations.ParseRepaymentMethod(p.RepaymentMethod)
	if err != nil {
		return calculations.MortgageRequest{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	req := calculations.MortgageRequest{
		LoanType:  loanType,
		Method:    method,
		TermYears: p.Years,
		Commercial: calculations.SubLoan{
			Principal:         utils.WanToYuan(p.CommercialAmountWan),
			AnnualRatePercent: p.CommercialRate,
		},
		Provident: calculations.SubLoan{
			Principal:         utils.WanToYuan(p.ProvidentAmountWan),
			AnnualRatePercent: p.ProvidentRate,
		},
	}

	if err := checkBounds(cfg, req, withCommercial, withProvident); err != nil {
		return calculations.MortgageRequest{}, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	return req, nil
}

func checkBounds(cfg *config.Config, req calculations.MortgageRequest, withCommercial, withProvident bool) error {
	if err := validators.CheckYears(cfg, req.TermYears); err != nil {
		return err
	}
	if withCommercial {
		if err := validators.CheckPrincipal(cfg, "commercial_amount_wan", req.Commercial.Principal); err != nil {
			return err
		}
		if err := validators.CheckRate(cfg, "commercial_rate_percent", req.Commercial.AnnualRatePercent); err != nil {
			return err
		}
	}
	if withProvident {
		if err := validators.CheckPrincipal(cfg, "provident_amount_wan", req.Provident.Principal); err != nil {
			return err
		}
		if err := validators.CheckRate(cfg, "provident_rate_percent", req.Provident.AnnualRatePercent); err != nil {
			return err
		}
	}
	return nil
}

func stringParam(params map[string]interface{}, key string) (string, error) {
	value, ok := params[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidParams, key)
	}
	return value, nil
}

// floatParam принимает число из JSON или строку из query string
func floatParam(params map[string]interface{}, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrInvalidParams, key)
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidParams, key)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidParams, key)
}

func optionalFloatParam(params map[string]interface{}, key string, defaultValue float64) (float64, error) {
	if _, ok := params[key]; !ok {
		return defaultValue, nil
	}
	return floatParam(params, key)
}

func intParam(params map[string]interface{}, key string) (int, error) {
	f, err := floatParam(params, key)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrInvalidParams, key)
	}
	return int(f), nil
}
