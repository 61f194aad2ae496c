package utils

import "math"

// Wan количество юаней в одном 万
const Wan = 10000.0

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// WanToYuan переводит сумму в 万 в юани
func WanToYuan(wan float64) float64 {
	return wan * Wan
}

// YuanToWan переводит сумму в юанях в 万
func YuanToWan(yuan float64) float64 {
	return yuan / Wan
}
