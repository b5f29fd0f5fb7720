package stats

import "math"

// Z95 é o quantil da normal padrão para 95% de confiança bilateral
const Z95 = 1.96

// WilsonLowerBound calcula o limite inferior do intervalo de Wilson para
// uma proporção binomial. Mais conservador que a proporção crua em amostras
// pequenas, o que evita declarar vencedor com poucos dados.
func WilsonLowerBound(successes, trials int64, z float64) float64 {
	if trials == 0 {
		return 0
	}

	n := float64(trials)
	p := float64(successes) / n
	z2 := z * z

	denominator := 1 + z2/n
	centre := p + z2/(2*n)
	margin := z * math.Sqrt((p*(1-p)+z2/(4*n))/n)

	lower := (centre - margin) / denominator
	if lower < 0 {
		return 0
	}

	return lower
}

// TwoProportionConfidence estima o nível de confiança de que a proporção A
// é maior que a proporção B, via teste z de duas proporções. Retorna um
// valor em [0, 1]. Amostras vazias resultam em 0.5 (sem evidência).
func TwoProportionConfidence(successesA, trialsA, successesB, trialsB int64) float64 {
	if trialsA == 0 || trialsB == 0 {
		return 0.5
	}

	nA, nB := float64(trialsA), float64(trialsB)
	pA := float64(successesA) / nA
	pB := float64(successesB) / nB

	pooled := float64(successesA+successesB) / (nA + nB)
	variance := pooled * (1 - pooled) * (1/nA + 1/nB)
	if variance == 0 {
		return 0.5
	}

	z := (pA - pB) / math.Sqrt(variance)

	return normalCDF(z)
}

func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}
