package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	return roundTo(f, 100)
}

// RoundWithFourDecimalPlace é usado nas taxas de engajamento, que ficam abaixo de 1
func RoundWithFourDecimalPlace(f float64) float64 {
	return roundTo(f, 10000)
}

func roundTo(f float64, factor float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*factor) / factor
}
