package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// MicrosToCurrency converte valores em micros (como a API do Google Ads
// devolve custos) para a unidade monetária
func MicrosToCurrency(micros int64) float64 {
	return RoundWithTwoDecimalPlace(float64(micros) / 1_000_000)
}

// SafeRatio divide num por den retornando 0 quando o denominador é zero,
// nunca NaN ou Inf
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
