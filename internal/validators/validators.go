package validators

import (
	"fmt"

	"github.com/cloud-ru/mcp-mortgage-go/internal/config"
	"github.com/cloud-ru/mcp-mortgage-go/pkg/utils"
)

// ValidateNumber проверяет, что число конечно и лежит в допустимом диапазоне
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %.0f", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита в юанях. Ноль допустим: часть кредита может быть пустой
func CheckPrincipal(cfg *config.Config, name string, principal float64) error {
	return ValidateNumber(name, principal, 0.0, cfg.MaxPrincipal)
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, name string, rate float64) error {
	return ValidateNumber(name, rate, 0.0, cfg.MaxRate)
}

// CheckYears проверяет срок кредита в годах
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, 1, cfg.MaxYears)
}
