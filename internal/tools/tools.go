package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/mcp-mortgage-go/internal/advice"
	"github.com/cloud-ru/mcp-mortgage-go/internal/calculations"
	"github.com/cloud-ru/mcp-mortgage-go/internal/config"
	"github.com/cloud-ru/mcp-mortgage-go/internal/metrics"
	"github.com/cloud-ru/mcp-mortgage-go/internal/presenter"
)

const (
	ToolMortgageCalculate       = "mortgage_calculate"
	ToolCompareRepaymentMethods = "compare_repayment_methods"
	ToolMortgageAdvice          = "mortgage_advice"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry набор инструментов по имени
type Registry map[string]ToolHandler

// NewRegistry регистрирует все инструменты сервиса
func NewRegistry(cfg *config.Config, tracer trace.Tracer, advisor *advice.Service) Registry {
	return Registry{
		ToolMortgageCalculate:       MortgageCalculateHandler(cfg, tracer),
		ToolCompareRepaymentMethods: CompareRepaymentMethodsHandler(cfg, tracer),
		ToolMortgageAdvice:          MortgageAdviceHandler(cfg, tracer, advisor),
	}
}

// Names возвращает отсортированные имена инструментов
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MortgageCalculation ответ инструмента mortgage_calculate
type MortgageCalculation struct {
	Summary        presenter.Summary           `json:"summary"`
	Result         *calculations.CombinedResult `json:"result"`
	ScheduleWindow []presenter.ScheduleRow     `json:"schedule_window"`
}

// MortgageAdvice ответ инструмента mortgage_advice
type MortgageAdvice struct {
	Summary presenter.Summary `json:"summary"`
	Advice  string            `json:"advice"`
}

// MortgageCalculateHandler обрабатывает запрос на расчет ипотеки
func MortgageCalculateHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolMortgageCalculate

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		req, err := parseMortgageParams(cfg, params, true)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		setRequestAttributes(span, req)

		result, err := calculations.Calculate(req)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("total_monthly_payment", result.TotalMonthlyPayment),
			attribute.Float64("total_interest", result.TotalInterest),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return &MortgageCalculation{
			Summary:        presenter.Summarize(result, req.LoanType, req.Method, req.TermYears),
			Result:         result,
			ScheduleWindow: presenter.Window(result.Schedule),
		}, nil
	}
}

// CompareRepaymentMethodsHandler обрабатывает запрос на сравнение способов погашения
func CompareRepaymentMethodsHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareRepaymentMethods

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		req, err := parseMortgageParams(cfg, params, false)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		setRequestAttributes(span, req)

		result, err := calculations.CompareMethods(req)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("cheaper_method", result.CheaperMethod),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return result, nil
	}
}

// MortgageAdviceHandler рассчитывает ипотеку и запрашивает текстовый совет.
// Сбой генератора не считается ошибкой инструмента: в ответ попадает запасной текст.
func MortgageAdviceHandler(cfg *config.Config, tracer trace.Tracer, advisor *advice.Service) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolMortgageAdvice

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		req, err := parseMortgageParams(cfg, params, true)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		setRequestAttributes(span, req)

		result, err := calculations.Calculate(req)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		text := advisor.Advise(ctx, advice.InputFromResult(result, req.TermYears, req.Method))

		span.SetAttributes(attribute.Bool("success", true))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return &MortgageAdvice{
			Summary: presenter.Summarize(result, req.LoanType, req.Method, req.TermYears),
			Advice:  text,
		}, nil
	}
}

func setRequestAttributes(span trace.Span, req calculations.MortgageRequest) {
	span.SetAttributes(
		attribute.String("loan_type", req.LoanType.String()),
		attribute.String("repayment_method", req.Method.String()),
		attribute.Int("years", req.TermYears),
		attribute.Float64("commercial_principal", req.Commercial.Principal),
		attribute.Float64("commercial_rate_percent", req.Commercial.AnnualRatePercent),
		attribute.Float64("provident_principal", req.Provident.Principal),
		attribute.Float64("provident_rate_percent", req.Provident.AnnualRatePercent),
	)
}

func failValidation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

func failCalculation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()

	// Нарушение предусловий ядра - тоже ошибка входных данных
	if errors.Is(err, calculations.ErrInvalidTerms) || errors.Is(err, calculations.ErrUnknownMethod) ||
		errors.Is(err, calculations.ErrUnknownLoanType) || errors.Is(err, calculations.ErrNumericOverflow) {
		return fmt.Errorf("ошибка при выполнении расчета: %w: %w", ErrInvalidParams, err)
	}
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}
