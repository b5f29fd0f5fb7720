package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeCTR calcula a taxa de cliques em porcentagem, protegendo contra
// divisão por zero
func SafeCTR(views, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}
	return RoundWithTwoDecimalPlace(float64(views) / float64(impressions) * 100)
}
